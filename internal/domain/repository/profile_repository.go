package repository

import (
	"context"

	"github.com/jhoicas/campus-placement-api/internal/domain/entity"
)

// ProfileFilter restringe un listado de perfiles. Campos vacíos no filtran.
type ProfileFilter struct {
	Codes        []string // solo estos códigos
	ExcludeCodes []string // todos menos estos códigos
}

// ProfileRepository puerto de persistencia del registro de perfiles.
type ProfileRepository interface {
	// GetByCode devuelve domain.ErrNotFound si el código no existe.
	GetByCode(ctx context.Context, code string) (*entity.Profile, error)
	// Create inserta el perfil; domain.ErrConflict si el código ya existe.
	Create(ctx context.Context, profile *entity.Profile) error
	List(ctx context.Context, filter ProfileFilter) ([]*entity.Profile, error)
	ListByOwner(ctx context.Context, ownerEmail string) ([]*entity.Profile, error)
}
