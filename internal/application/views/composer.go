// Package views arma las vistas de lectura por rol sobre el registro de perfiles
// y el ledger de postulaciones. No modifica estado.
package views

import (
	"context"
	"fmt"

	"github.com/jhoicas/campus-placement-api/internal/application/dto"
	"github.com/jhoicas/campus-placement-api/internal/application/usecase"
	"github.com/jhoicas/campus-placement-api/internal/domain"
	"github.com/jhoicas/campus-placement-api/internal/domain/entity"
	"github.com/jhoicas/campus-placement-api/internal/domain/policy"
	"github.com/jhoicas/campus-placement-api/internal/domain/repository"
)

// roleView variante del panel /user/me para un rol.
type roleView interface {
	dashboard(ctx context.Context, actor entity.Actor) (*dto.DashboardResponse, error)
}

// Composer despacha cada vista a la variante del rol del actor.
type Composer struct {
	join     joiner
	variants map[entity.Role]roleView
}

// NewComposer construye el compositor con una variante por rol.
func NewComposer(profiles repository.ProfileRepository, apps repository.ApplicationRepository) *Composer {
	j := joiner{profiles: profiles, apps: apps}
	return &Composer{
		join: j,
		variants: map[entity.Role]roleView{
			entity.RoleStudent:   studentView{join: j},
			entity.RoleRecruiter: recruiterView{join: j},
			entity.RoleAdmin:     adminView{join: j},
		},
	}
}

// ListAvailableProfiles catálogo del estudiante con precedencia Accepted > Selected > All.
// Con alguna oferta aceptada solo ve esos perfiles; si no, con alguna selección solo ve
// esos; si no, ve todos los perfiles.
func (c *Composer) ListAvailableProfiles(ctx context.Context, actor entity.Actor) (*dto.CatalogResponse, error) {
	if !policy.Allow(actor.Role, policy.ActionBrowseProfiles) {
		return nil, fmt.Errorf("solo estudiantes pueden ver el catálogo: %w", domain.ErrForbidden)
	}
	apps, err := c.join.apps.ListByApplicant(ctx, actor.ID)
	if err != nil {
		return nil, err
	}
	var accepted, selected []string
	for _, a := range apps {
		switch a.Status {
		case entity.StatusAccepted:
			accepted = append(accepted, a.ProfileCode)
		case entity.StatusSelected:
			selected = append(selected, a.ProfileCode)
		}
	}

	status := dto.CatalogAll
	filter := repository.ProfileFilter{ExcludeCodes: accepted}
	switch {
	case len(accepted) > 0:
		status, filter = dto.CatalogAccepted, repository.ProfileFilter{Codes: accepted}
	case len(selected) > 0:
		status, filter = dto.CatalogSelected, repository.ProfileFilter{Codes: selected}
	}
	profiles, err := c.join.profiles.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	return &dto.CatalogResponse{Status: status, Data: toProfileResponses(profiles)}, nil
}

// MyApplications postulaciones del estudiante con los datos de cada perfil.
func (c *Composer) MyApplications(ctx context.Context, actor entity.Actor) ([]dto.ApplicationView, error) {
	if actor.Role != entity.RoleStudent {
		return nil, fmt.Errorf("vista exclusiva de estudiantes: %w", domain.ErrForbidden)
	}
	d, err := c.variants[actor.Role].dashboard(ctx, actor)
	if err != nil {
		return nil, err
	}
	return d.Applications, nil
}

// MyProfilesWithApplicants perfiles visibles (propios para el reclutador, todos para el admin)
// con sus postulantes.
func (c *Composer) MyProfilesWithApplicants(ctx context.Context, actor entity.Actor) ([]dto.ProfileWithApplicants, error) {
	if actor.Role != entity.RoleRecruiter && actor.Role != entity.RoleAdmin {
		return nil, fmt.Errorf("vista exclusiva de reclutadores y admin: %w", domain.ErrForbidden)
	}
	d, err := c.variants[actor.Role].dashboard(ctx, actor)
	if err != nil {
		return nil, err
	}
	return d.Profiles, nil
}

// Dashboard panel de /user/me según el rol del actor.
func (c *Composer) Dashboard(ctx context.Context, actor entity.Actor) (*dto.DashboardResponse, error) {
	v, ok := c.variants[actor.Role]
	if !ok || !policy.Allow(actor.Role, policy.ActionViewDashboard) {
		return nil, fmt.Errorf("rol %q sin panel: %w", actor.Role, domain.ErrForbidden)
	}
	return v.dashboard(ctx, actor)
}

type studentView struct{ join joiner }

func (v studentView) dashboard(ctx context.Context, actor entity.Actor) (*dto.DashboardResponse, error) {
	rows, err := v.join.applicationsOf(ctx, actor.ID)
	if err != nil {
		return nil, err
	}
	return &dto.DashboardResponse{Role: string(actor.Role), Applications: rows}, nil
}

type recruiterView struct{ join joiner }

func (v recruiterView) dashboard(ctx context.Context, actor entity.Actor) (*dto.DashboardResponse, error) {
	profiles, err := v.join.profiles.ListByOwner(ctx, actor.ID)
	if err != nil {
		return nil, err
	}
	rows, err := v.join.withApplicants(ctx, profiles)
	if err != nil {
		return nil, err
	}
	return &dto.DashboardResponse{Role: string(actor.Role), Profiles: rows}, nil
}

type adminView struct{ join joiner }

func (v adminView) dashboard(ctx context.Context, actor entity.Actor) (*dto.DashboardResponse, error) {
	profiles, err := v.join.profiles.List(ctx, repository.ProfileFilter{})
	if err != nil {
		return nil, err
	}
	rows, err := v.join.withApplicants(ctx, profiles)
	if err != nil {
		return nil, err
	}
	return &dto.DashboardResponse{Role: string(actor.Role), Profiles: rows}, nil
}

// joiner une postulaciones con perfiles; lo comparten todas las variantes.
type joiner struct {
	profiles repository.ProfileRepository
	apps     repository.ApplicationRepository
}

func (j joiner) applicationsOf(ctx context.Context, applicantID string) ([]dto.ApplicationView, error) {
	apps, err := j.apps.ListByApplicant(ctx, applicantID)
	if err != nil {
		return nil, err
	}
	rows := make([]dto.ApplicationView, 0, len(apps))
	if len(apps) == 0 {
		return rows, nil
	}
	codes := make([]string, 0, len(apps))
	for _, a := range apps {
		codes = append(codes, a.ProfileCode)
	}
	profiles, err := j.profiles.List(ctx, repository.ProfileFilter{Codes: codes})
	if err != nil {
		return nil, err
	}
	byCode := make(map[string]*entity.Profile, len(profiles))
	for _, p := range profiles {
		byCode[p.Code] = p
	}
	for _, a := range apps {
		row := dto.ApplicationView{ProfileCode: a.ProfileCode, Status: string(a.Status)}
		if p, ok := byCode[a.ProfileCode]; ok {
			row.RecruiterEmail = &p.OwnerEmail
			row.CompanyName = &p.CompanyName
			row.Designation = &p.Designation
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func (j joiner) withApplicants(ctx context.Context, profiles []*entity.Profile) ([]dto.ProfileWithApplicants, error) {
	rows := make([]dto.ProfileWithApplicants, 0, len(profiles))
	if len(profiles) == 0 {
		return rows, nil
	}
	codes := make([]string, 0, len(profiles))
	for _, p := range profiles {
		codes = append(codes, p.Code)
	}
	apps, err := j.apps.ListByProfiles(ctx, codes)
	if err != nil {
		return nil, err
	}
	byProfile := make(map[string][]dto.ApplicantView, len(profiles))
	for _, a := range apps {
		byProfile[a.ProfileCode] = append(byProfile[a.ProfileCode], dto.ApplicantView{
			EntryNumber: a.ApplicantID,
			Status:      string(a.Status),
		})
	}
	for _, p := range profiles {
		applicants := byProfile[p.Code]
		if applicants == nil {
			applicants = []dto.ApplicantView{}
		}
		rows = append(rows, dto.ProfileWithApplicants{
			ProfileResponse: *usecase.ToProfileResponse(p),
			Applicants:      applicants,
		})
	}
	return rows, nil
}

func toProfileResponses(profiles []*entity.Profile) []dto.ProfileResponse {
	out := make([]dto.ProfileResponse, 0, len(profiles))
	for _, p := range profiles {
		out = append(out, *usecase.ToProfileResponse(p))
	}
	return out
}
