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

var _ repository.ProfileRepository = (*ProfileRepo)(nil)

var profileColumns = []string{"profile_code", "recruiter_email", "company_name", "designation", "created_at"}

type profileRow struct {
	ProfileCode    string    `db:"profile_code"`
	RecruiterEmail string    `db:"recruiter_email"`
	CompanyName    string    `db:"company_name"`
	Designation    string    `db:"designation"`
	CreatedAt      time.Time `db:"created_at"`
}

func (r profileRow) toEntity() *entity.Profile {
	return &entity.Profile{
		Code:        r.ProfileCode,
		OwnerEmail:  r.RecruiterEmail,
		CompanyName: r.CompanyName,
		Designation: r.Designation,
		CreatedAt:   r.CreatedAt,
	}
}

// ProfileRepo implementación del puerto ProfileRepository sobre PostgreSQL.
type ProfileRepo struct {
	db DBInterface
}

// NewProfileRepository construye el adaptador de persistencia para perfiles.
func NewProfileRepository(db DBInterface) *ProfileRepo {
	return &ProfileRepo{db: db}
}

// GetByCode obtiene un perfil por código.
func (r *ProfileRepo) GetByCode(ctx context.Context, code string) (*entity.Profile, error) {
	query, args, err := squirrel.Select(profileColumns...).
		From("profiles").
		Where(squirrel.Eq{"profile_code": code}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select profile: %w", err)
	}
	var row profileRow
	if err := pgxscan.Get(ctx, r.db, &row, query, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, fmt.Errorf("perfil %s: %w", code, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get profile: %w", err)
	}
	return row.toEntity(), nil
}

// Create persiste un perfil nuevo. El código es único.
func (r *ProfileRepo) Create(ctx context.Context, p *entity.Profile) error {
	query, args, err := squirrel.Insert("profiles").
		Columns(profileColumns...).
		Values(p.Code, p.OwnerEmail, p.CompanyName, p.Designation, p.CreatedAt).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert profile: %w", err)
	}
	if _, err := r.db.Exec(ctx, query, args...); err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("perfil %s: %w", p.Code, domain.ErrConflict)
		}
		return fmt.Errorf("insert profile: %w", err)
	}
	return nil
}

// List lista perfiles ordenados por código aplicando el filtro.
func (r *ProfileRepo) List(ctx context.Context, filter repository.ProfileFilter) ([]*entity.Profile, error) {
	qb := squirrel.Select(profileColumns...).From("profiles")
	if len(filter.Codes) > 0 {
		qb = qb.Where(squirrel.Eq{"profile_code": filter.Codes})
	}
	if len(filter.ExcludeCodes) > 0 {
		qb = qb.Where(squirrel.NotEq{"profile_code": filter.ExcludeCodes})
	}
	return r.selectProfiles(ctx, qb)
}

// ListByOwner lista los perfiles de un reclutador.
func (r *ProfileRepo) ListByOwner(ctx context.Context, ownerEmail string) ([]*entity.Profile, error) {
	qb := squirrel.Select(profileColumns...).
		From("profiles").
		Where(squirrel.Eq{"recruiter_email": ownerEmail})
	return r.selectProfiles(ctx, qb)
}

func (r *ProfileRepo) selectProfiles(ctx context.Context, qb squirrel.SelectBuilder) ([]*entity.Profile, error) {
	query, args, err := qb.OrderBy("profile_code").PlaceholderFormat(squirrel.Dollar).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list profiles: %w", err)
	}
	var rows []profileRow
	if err := pgxscan.Select(ctx, r.db, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list profiles: %w", err)
	}
	list := make([]*entity.Profile, 0, len(rows))
	for _, row := range rows {
		list = append(list, row.toEntity())
	}
	return list, nil
}
