package entity

import "time"

// ApplicationStatus estado de una postulación. Los valores son los strings del wire.
type ApplicationStatus string

const (
	StatusApplied     ApplicationStatus = "Applied"
	StatusSelected    ApplicationStatus = "Selected"
	StatusNotSelected ApplicationStatus = "Not Selected"
	StatusAccepted    ApplicationStatus = "Accepted"
	StatusRejected    ApplicationStatus = "Rejected"
)

// Live estados que bloquean una nueva postulación al mismo perfil.
func (s ApplicationStatus) Live() bool {
	return s == StatusApplied || s == StatusSelected
}

// Terminal estados sin transición de salida.
func (s ApplicationStatus) Terminal() bool {
	return s == StatusNotSelected || s == StatusAccepted || s == StatusRejected
}

// Reopenable estados terminales tras los cuales el estudiante puede volver a postular.
func (s ApplicationStatus) Reopenable() bool {
	return s == StatusNotSelected || s == StatusRejected
}

// CanTransition devuelve si from -> to es una arista de la máquina de estados:
// Applied -> {Selected, Not Selected}; Selected -> {Accepted, Rejected}.
func CanTransition(from, to ApplicationStatus) bool {
	switch from {
	case StatusApplied:
		return to == StatusSelected || to == StatusNotSelected
	case StatusSelected:
		return to == StatusAccepted || to == StatusRejected
	default:
		return false
	}
}

// Application postulación de un estudiante a un perfil. Clave compuesta (ProfileCode, ApplicantID).
type Application struct {
	ProfileCode string
	ApplicantID string
	Status      ApplicationStatus
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
