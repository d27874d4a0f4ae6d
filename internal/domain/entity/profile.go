package entity

import "time"

// Profile oferta de trabajo publicada por un reclutador, identificada por un código único.
type Profile struct {
	Code        string
	OwnerEmail  string // ID del reclutador dueño
	CompanyName string
	Designation string
	CreatedAt   time.Time
}

// OwnedBy informa si el perfil pertenece al usuario indicado.
func (p *Profile) OwnedBy(userID string) bool {
	return p != nil && p.OwnerEmail == userID
}
