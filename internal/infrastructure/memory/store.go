// Package memory implementa los puertos de persistencia en memoria.
// Un único mutex serializa las escrituras, lo que da las mismas garantías
// insert-if-absent y de actualización condicional que las sentencias SQL del adaptador postgres.
package memory

import (
	"context"
	"fmt"
	"slices"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/jhoicas/campus-placement-api/internal/domain"
	"github.com/jhoicas/campus-placement-api/internal/domain/entity"
	"github.com/jhoicas/campus-placement-api/internal/domain/repository"
)

var (
	_ repository.UserRepository        = (*UserRepo)(nil)
	_ repository.ProfileRepository     = (*ProfileRepo)(nil)
	_ repository.ApplicationRepository = (*ApplicationRepo)(nil)
)

type appKey struct {
	profileCode string
	applicantID string
}

// Store almacén en memoria compartido por los tres repositorios.
type Store struct {
	mu       sync.RWMutex
	users    map[string]entity.User
	profiles map[string]entity.Profile
	apps     map[appKey]entity.Application
	now      func() time.Time
}

// NewStore construye un almacén vacío.
func NewStore() *Store {
	return &Store{
		users:    make(map[string]entity.User),
		profiles: make(map[string]entity.Profile),
		apps:     make(map[appKey]entity.Application),
		now:      time.Now,
	}
}

// Users devuelve el adaptador UserRepository.
func (s *Store) Users() *UserRepo { return &UserRepo{s: s} }

// Profiles devuelve el adaptador ProfileRepository.
func (s *Store) Profiles() *ProfileRepo { return &ProfileRepo{s: s} }

// Applications devuelve el adaptador ApplicationRepository.
func (s *Store) Applications() *ApplicationRepo { return &ApplicationRepo{s: s} }

// UserRepo usuarios en memoria.
type UserRepo struct{ s *Store }

func (r *UserRepo) Create(_ context.Context, user *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.users[user.ID]; ok {
		return fmt.Errorf("usuario %s: %w", user.ID, domain.ErrConflict)
	}
	u := *user
	u.ID = strings.Clone(u.ID)
	r.s.users[u.ID] = u
	return nil
}

func (r *UserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	u, ok := r.s.users[id]
	if !ok {
		return nil, fmt.Errorf("usuario %s: %w", id, domain.ErrNotFound)
	}
	return &u, nil
}

// ProfileRepo perfiles en memoria.
type ProfileRepo struct{ s *Store }

func (r *ProfileRepo) GetByCode(_ context.Context, code string) (*entity.Profile, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	p, ok := r.s.profiles[code]
	if !ok {
		return nil, fmt.Errorf("perfil %s: %w", code, domain.ErrNotFound)
	}
	return &p, nil
}

func (r *ProfileRepo) Create(_ context.Context, profile *entity.Profile) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.profiles[profile.Code]; ok {
		return fmt.Errorf("perfil %s: %w", profile.Code, domain.ErrConflict)
	}
	// El almacén no retiene strings del llamador.
	p := *profile
	p.Code = strings.Clone(p.Code)
	p.OwnerEmail = strings.Clone(p.OwnerEmail)
	r.s.profiles[p.Code] = p
	return nil
}

func (r *ProfileRepo) List(_ context.Context, filter repository.ProfileFilter) ([]*entity.Profile, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.s.sortedProfiles(func(p entity.Profile) bool {
		if len(filter.Codes) > 0 && !slices.Contains(filter.Codes, p.Code) {
			return false
		}
		return !slices.Contains(filter.ExcludeCodes, p.Code)
	}), nil
}

func (r *ProfileRepo) ListByOwner(_ context.Context, ownerEmail string) ([]*entity.Profile, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.s.sortedProfiles(func(p entity.Profile) bool { return p.OwnerEmail == ownerEmail }), nil
}

// sortedProfiles ordena por código para que los listados sean estables. Requiere el lock.
func (s *Store) sortedProfiles(keep func(entity.Profile) bool) []*entity.Profile {
	out := make([]*entity.Profile, 0)
	for _, p := range s.profiles {
		if keep(p) {
			p := p
			out = append(out, &p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out
}

// ApplicationRepo postulaciones en memoria.
type ApplicationRepo struct{ s *Store }

func (r *ApplicationRepo) Insert(_ context.Context, profileCode, applicantID string) (*entity.Application, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	key := appKey{strings.Clone(profileCode), strings.Clone(applicantID)}
	now := r.s.now()
	if existing, ok := r.s.apps[key]; ok {
		if !existing.Status.Reopenable() {
			return nil, fmt.Errorf("postulación %s/%s en estado %s: %w", profileCode, applicantID, existing.Status, domain.ErrConflict)
		}
		existing.Status = entity.StatusApplied
		existing.UpdatedAt = now
		r.s.apps[key] = existing
		return &existing, nil
	}
	app := entity.Application{
		ProfileCode: key.profileCode,
		ApplicantID: key.applicantID,
		Status:      entity.StatusApplied,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	r.s.apps[key] = app
	return &app, nil
}

func (r *ApplicationRepo) Get(_ context.Context, profileCode, applicantID string) (*entity.Application, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	app, ok := r.s.apps[appKey{profileCode, applicantID}]
	if !ok {
		return nil, fmt.Errorf("postulación %s/%s: %w", profileCode, applicantID, domain.ErrNotFound)
	}
	return &app, nil
}

func (r *ApplicationRepo) UpdateStatus(_ context.Context, profileCode, applicantID string, to entity.ApplicationStatus, from ...entity.ApplicationStatus) (*entity.Application, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	key := appKey{profileCode, applicantID}
	app, ok := r.s.apps[key]
	if !ok || (len(from) > 0 && !slices.Contains(from, app.Status)) {
		return nil, fmt.Errorf("postulación %s/%s: %w", profileCode, applicantID, domain.ErrNotFound)
	}
	app.Status = to
	app.UpdatedAt = r.s.now()
	r.s.apps[key] = app
	return &app, nil
}

func (r *ApplicationRepo) ListByApplicant(_ context.Context, applicantID string) ([]*entity.Application, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.s.sortedApps(func(a entity.Application) bool { return a.ApplicantID == applicantID }), nil
}

func (r *ApplicationRepo) ListByProfiles(_ context.Context, codes []string) ([]*entity.Application, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if len(codes) == 0 {
		return []*entity.Application{}, nil
	}
	return r.s.sortedApps(func(a entity.Application) bool { return slices.Contains(codes, a.ProfileCode) }), nil
}

// sortedApps ordena por fecha de creación y luego por clave. Requiere el lock.
func (s *Store) sortedApps(keep func(entity.Application) bool) []*entity.Application {
	out := make([]*entity.Application, 0)
	for _, a := range s.apps {
		if keep(a) {
			a := a
			out = append(out, &a)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		if out[i].ProfileCode != out[j].ProfileCode {
			return out[i].ProfileCode < out[j].ProfileCode
		}
		return out[i].ApplicantID < out[j].ApplicantID
	})
	return out
}
