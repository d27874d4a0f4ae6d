package repository

import (
	"context"

	"github.com/jhoicas/campus-placement-api/internal/domain/entity"
)

// ApplicationRepository puerto de persistencia del ledger de postulaciones.
// Las escrituras deben ser atómicas en el almacén: el motor de ciclo de vida no bloquea.
type ApplicationRepository interface {
	// Insert crea la postulación en estado Applied, o reabre la existente si su estado
	// es Not Selected o Rejected. Cualquier otro estado existente devuelve domain.ErrConflict.
	// Debe ejecutarse como una sola operación insert-if-absent.
	Insert(ctx context.Context, profileCode, applicantID string) (*entity.Application, error)
	// Get devuelve domain.ErrNotFound si no existe la postulación.
	Get(ctx context.Context, profileCode, applicantID string) (*entity.Application, error)
	// UpdateStatus escribe el nuevo estado. Si from no está vacío, solo actualiza cuando el
	// estado actual pertenece a from. Devuelve domain.ErrNotFound si ninguna fila coincide.
	UpdateStatus(ctx context.Context, profileCode, applicantID string, to entity.ApplicationStatus, from ...entity.ApplicationStatus) (*entity.Application, error)
	ListByApplicant(ctx context.Context, applicantID string) ([]*entity.Application, error)
	ListByProfiles(ctx context.Context, codes []string) ([]*entity.Application, error)
}
