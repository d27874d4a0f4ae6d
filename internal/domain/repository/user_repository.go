package repository

import (
	"context"

	"github.com/jhoicas/campus-placement-api/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para User (DIP).
type UserRepository interface {
	// Create devuelve domain.ErrConflict si el ID ya existe.
	Create(ctx context.Context, user *entity.User) error
	// GetByID devuelve domain.ErrNotFound si no existe.
	GetByID(ctx context.Context, id string) (*entity.User, error)
}
