package dto

// RegisterRequest entrada para que un admin registre un usuario (password en texto, se hashea en use case).
type RegisterRequest struct {
	UserID   string `json:"userid" validate:"required,max=320"`
	Role     string `json:"role" validate:"required,oneof=admin recruiter student"`
	Password string `json:"password" validate:"required,max=72"` // límite de bcrypt
}

// UserResponse salida de un usuario (sin password).
type UserResponse struct {
	UserID string `json:"userid"`
	Role   string `json:"role"`
}

// LoginRequest entrada para login.
type LoginRequest struct {
	UserID   string `json:"userid" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse salida con token JWT; el mismo token viaja en la cookie.
type LoginResponse struct {
	UserID string `json:"userid"`
	Role   string `json:"role"`
	Token  string `json:"token"`
}
