package dto

import "time"

// ChangeStatusRequest entrada del reclutador/admin para mover una postulación.
type ChangeStatusRequest struct {
	ProfileCode string `json:"profile_code" validate:"required"`
	EntryNumber string `json:"entry_number" validate:"required"`
	Status      string `json:"status" validate:"required,oneof='Not Selected' Selected Accepted Rejected"`
}

// RespondRequest entrada del estudiante para aceptar o rechazar su oferta.
type RespondRequest struct {
	ProfileCode string `json:"profile_code" validate:"required"`
	Status      string `json:"status" validate:"required,oneof='Not Selected' Selected Accepted Rejected"`
}

// ApplicationResponse salida de una postulación.
type ApplicationResponse struct {
	ProfileCode string    `json:"profile_code"`
	EntryNumber string    `json:"entry_number"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
