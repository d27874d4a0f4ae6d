// Package policy contiene la política de autorización por rol.
// Es una función pura: no consulta el estado de los registros, solo (rol, acción).
package policy

import "github.com/jhoicas/campus-placement-api/internal/domain/entity"

// Action acción que un actor solicita ejecutar.
type Action string

const (
	ActionCreateProfile      Action = "create_profile"
	ActionRegisterUser       Action = "register_user"
	ActionApply              Action = "apply"
	ActionBrowseProfiles     Action = "browse_profiles"
	ActionSetCandidateStatus Action = "set_candidate_status" // Selected / Not Selected / Rejected
	ActionRespondToOffer     Action = "respond_to_offer"     // Accepted / Rejected sobre la propia postulación
	ActionViewDashboard      Action = "view_dashboard"
)

var table = map[Action]map[entity.Role]bool{
	ActionCreateProfile:      {entity.RoleRecruiter: true, entity.RoleAdmin: true},
	ActionRegisterUser:       {entity.RoleAdmin: true},
	ActionApply:              {entity.RoleStudent: true},
	ActionBrowseProfiles:     {entity.RoleStudent: true},
	ActionSetCandidateStatus: {entity.RoleRecruiter: true, entity.RoleAdmin: true},
	ActionRespondToOffer:     {entity.RoleStudent: true},
	ActionViewDashboard:      {entity.RoleStudent: true, entity.RoleRecruiter: true, entity.RoleAdmin: true},
}

// Allow informa si el rol puede ejecutar la acción. Acciones o roles desconocidos se niegan.
func Allow(role entity.Role, action Action) bool {
	return table[action][role]
}

// CanManageProfile aplica la regla de propiedad: admin gestiona cualquier perfil,
// el reclutador solo los suyos.
func CanManageProfile(actor entity.Actor, profile *entity.Profile) bool {
	switch actor.Role {
	case entity.RoleAdmin:
		return true
	case entity.RoleRecruiter:
		return profile.OwnedBy(actor.ID)
	default:
		return false
	}
}

// CanRecruiterSet informa si el camino de reclutador/admin puede escribir el estado.
// Accepted nunca: solo el estudiante acepta su propia oferta.
func CanRecruiterSet(status entity.ApplicationStatus) bool {
	switch status {
	case entity.StatusSelected, entity.StatusNotSelected, entity.StatusRejected:
		return true
	}
	return false
}

// CanApplicantSet informa si el estudiante puede escribir el estado sobre su postulación.
func CanApplicantSet(status entity.ApplicationStatus) bool {
	return status == entity.StatusAccepted || status == entity.StatusRejected
}
