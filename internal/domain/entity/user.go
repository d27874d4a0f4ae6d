package entity

import "time"

// Role rol de un usuario autenticado (actor).
type Role string

// Roles válidos para User.
const (
	RoleStudent   Role = "student"
	RoleRecruiter Role = "recruiter"
	RoleAdmin     Role = "admin"
)

// Valid informa si el rol pertenece al conjunto cerrado de roles.
func (r Role) Valid() bool {
	switch r {
	case RoleStudent, RoleRecruiter, RoleAdmin:
		return true
	}
	return false
}

// User identidad registrada por un admin. Inmutable después de creada.
type User struct {
	ID           string // entry number del estudiante o email del reclutador
	Role         Role
	PasswordHash string // bcrypt hash
	CreatedAt    time.Time
}

// Actor identidad ya verificada que ejecuta una operación.
type Actor struct {
	ID   string
	Role Role
}
