package dto

// Valores de CatalogResponse.Status.
const (
	CatalogAccepted = "Accepted"
	CatalogSelected = "Selected"
	CatalogAll      = "All"
)

// CatalogResponse catálogo de perfiles visible para un estudiante.
type CatalogResponse struct {
	Status string            `json:"status"`
	Data   []ProfileResponse `json:"data"`
}

// ApplicationView fila del panel del estudiante. Los datos del perfil son nulos si el perfil no existe.
type ApplicationView struct {
	ProfileCode    string  `json:"profile_code"`
	RecruiterEmail *string `json:"recruiter_email"`
	CompanyName    *string `json:"company_name"`
	Designation    *string `json:"designation"`
	Status         string  `json:"status"`
}

// ApplicantView postulante dentro de un perfil.
type ApplicantView struct {
	EntryNumber string `json:"entry_number"`
	Status      string `json:"status"`
}

// ProfileWithApplicants fila del panel del reclutador/admin.
type ProfileWithApplicants struct {
	ProfileResponse
	Applicants []ApplicantView `json:"applicants"`
}

// DashboardResponse panel de /user/me. Solo una de las listas aplica según el rol.
type DashboardResponse struct {
	Role         string                  `json:"role"`
	Applications []ApplicationView       `json:"applications,omitempty"`
	Profiles     []ProfileWithApplicants `json:"profiles,omitempty"`
}

// Data devuelve la lista que corresponde al rol, para la envoltura {message, data}.
func (d *DashboardResponse) Data() any {
	if d.Role == "student" {
		return d.Applications
	}
	return d.Profiles
}

// Empty informa si el panel no tiene filas.
func (d *DashboardResponse) Empty() bool {
	return len(d.Applications) == 0 && len(d.Profiles) == 0
}
