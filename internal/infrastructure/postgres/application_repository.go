package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"github.com/jhoicas/campus-placement-api/internal/domain"
	"github.com/jhoicas/campus-placement-api/internal/domain/entity"
	"github.com/jhoicas/campus-placement-api/internal/domain/repository"
)

var _ repository.ApplicationRepository = (*ApplicationRepo)(nil)

var applicationColumns = []string{"profile_code", "entry_number", "status", "created_at", "updated_at"}

const (
	applicationReopen = "ON CONFLICT (profile_code, entry_number) DO UPDATE " +
		"SET status = EXCLUDED.status, updated_at = EXCLUDED.updated_at " +
		"WHERE applications.status IN (?, ?)"
	applicationReturning = "RETURNING profile_code, entry_number, status, created_at, updated_at"
)

type applicationRow struct {
	ProfileCode string    `db:"profile_code"`
	EntryNumber string    `db:"entry_number"`
	Status      string    `db:"status"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

func (r applicationRow) toEntity() *entity.Application {
	return &entity.Application{
		ProfileCode: r.ProfileCode,
		ApplicantID: r.EntryNumber,
		Status:      entity.ApplicationStatus(r.Status),
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

// ApplicationRepo implementación del ledger de postulaciones sobre PostgreSQL.
// Cada escritura es una sola sentencia; la atomicidad la da la base de datos.
type ApplicationRepo struct {
	db  DBInterface
	now func() time.Time
}

// NewApplicationRepository construye el adaptador de persistencia para postulaciones.
func NewApplicationRepository(db DBInterface) *ApplicationRepo {
	return &ApplicationRepo{db: db, now: time.Now}
}

// Insert crea la postulación o reabre la existente si terminó en Not Selected/Rejected.
// Si la fila existe en otro estado, el WHERE del ON CONFLICT no actualiza, RETURNING
// no devuelve nada y se responde ErrConflict.
func (r *ApplicationRepo) Insert(ctx context.Context, profileCode, applicantID string) (*entity.Application, error) {
	now := r.now()
	query, args, err := squirrel.Insert("applications").
		Columns(applicationColumns...).
		Values(profileCode, applicantID, string(entity.StatusApplied), now, now).
		Suffix(applicationReopen+" "+applicationReturning,
			string(entity.StatusNotSelected), string(entity.StatusRejected)).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build insert application: %w", err)
	}
	var row applicationRow
	if err := pgxscan.Get(ctx, r.db, &row, query, args...); err != nil {
		switch {
		case pgxscan.NotFound(err):
			return nil, fmt.Errorf("postulación %s/%s activa: %w", profileCode, applicantID, domain.ErrConflict)
		case isForeignKeyViolation(err):
			return nil, fmt.Errorf("perfil %s o postulante %s: %w", profileCode, applicantID, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("insert application: %w", err)
	}
	return row.toEntity(), nil
}

// Get obtiene la postulación por clave compuesta.
func (r *ApplicationRepo) Get(ctx context.Context, profileCode, applicantID string) (*entity.Application, error) {
	query, args, err := squirrel.Select(applicationColumns...).
		From("applications").
		Where(squirrel.Eq{"profile_code": profileCode, "entry_number": applicantID}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select application: %w", err)
	}
	var row applicationRow
	if err := pgxscan.Get(ctx, r.db, &row, query, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, fmt.Errorf("postulación %s/%s: %w", profileCode, applicantID, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get application: %w", err)
	}
	return row.toEntity(), nil
}

// UpdateStatus actualiza el estado en una sola sentencia condicional.
func (r *ApplicationRepo) UpdateStatus(ctx context.Context, profileCode, applicantID string, to entity.ApplicationStatus, from ...entity.ApplicationStatus) (*entity.Application, error) {
	qb := squirrel.Update("applications").
		Set("status", string(to)).
		Set("updated_at", r.now()).
		Where(squirrel.Eq{"profile_code": profileCode, "entry_number": applicantID})
	if len(from) > 0 {
		qb = qb.Where(squirrel.Eq{"status": statusStrings(from)})
	}
	query, args, err := qb.Suffix(applicationReturning).PlaceholderFormat(squirrel.Dollar).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build update application: %w", err)
	}
	var row applicationRow
	if err := pgxscan.Get(ctx, r.db, &row, query, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, fmt.Errorf("postulación %s/%s: %w", profileCode, applicantID, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("update application status: %w", err)
	}
	return row.toEntity(), nil
}

// ListByApplicant lista las postulaciones de un estudiante.
func (r *ApplicationRepo) ListByApplicant(ctx context.Context, applicantID string) ([]*entity.Application, error) {
	return r.selectApplications(ctx, squirrel.Eq{"entry_number": applicantID})
}

// ListByProfiles lista las postulaciones de un conjunto de perfiles.
func (r *ApplicationRepo) ListByProfiles(ctx context.Context, codes []string) ([]*entity.Application, error) {
	if len(codes) == 0 {
		return []*entity.Application{}, nil
	}
	return r.selectApplications(ctx, squirrel.Eq{"profile_code": codes})
}

func (r *ApplicationRepo) selectApplications(ctx context.Context, where squirrel.Eq) ([]*entity.Application, error) {
	query, args, err := squirrel.Select(applicationColumns...).
		From("applications").
		Where(where).
		OrderBy("created_at", "profile_code", "entry_number").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list applications: %w", err)
	}
	var rows []applicationRow
	if err := pgxscan.Select(ctx, r.db, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list applications: %w", err)
	}
	list := make([]*entity.Application, 0, len(rows))
	for _, row := range rows {
		list = append(list, row.toEntity())
	}
	return list, nil
}

func statusStrings(in []entity.ApplicationStatus) []string {
	out := make([]string, len(in))
	for i, s := range in {
		out[i] = string(s)
	}
	return out
}
