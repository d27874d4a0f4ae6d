package dto

import "time"

// CreateProfileRequest entrada para crear un perfil. RecruiterEmail solo lo usa el admin.
type CreateProfileRequest struct {
	ProfileCode    string `json:"profile_code" validate:"required,max=64"`
	CompanyName    string `json:"company_name" validate:"required,max=200"`
	Designation    string `json:"designation" validate:"required,max=200"`
	RecruiterEmail string `json:"recruiter_email" validate:"omitempty,max=320"`
}

// ProfileResponse salida de un perfil.
type ProfileResponse struct {
	ProfileCode    string    `json:"profile_code"`
	RecruiterEmail string    `json:"recruiter_email"`
	CompanyName    string    `json:"company_name"`
	Designation    string    `json:"designation"`
	CreatedAt      time.Time `json:"created_at"`
}
