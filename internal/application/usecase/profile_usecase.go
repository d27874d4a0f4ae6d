package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/campus-placement-api/internal/application/dto"
	"github.com/jhoicas/campus-placement-api/internal/domain"
	"github.com/jhoicas/campus-placement-api/internal/domain/entity"
	"github.com/jhoicas/campus-placement-api/internal/domain/policy"
	"github.com/jhoicas/campus-placement-api/internal/domain/repository"
	"github.com/jhoicas/campus-placement-api/pkg/userid"
)

// ProfileUseCase registro de perfiles de trabajo. Los perfiles no se editan ni se eliminan.
type ProfileUseCase struct {
	repo repository.ProfileRepository
	now  func() time.Time
}

// NewProfileUseCase construye el caso de uso.
func NewProfileUseCase(repo repository.ProfileRepository) *ProfileUseCase {
	return &ProfileUseCase{repo: repo, now: time.Now}
}

// Create crea un perfil. El reclutador queda como dueño; el admin debe indicar recruiter_email.
func (uc *ProfileUseCase) Create(ctx context.Context, actor entity.Actor, in dto.CreateProfileRequest) (*dto.ProfileResponse, error) {
	if !policy.Allow(actor.Role, policy.ActionCreateProfile) {
		return nil, fmt.Errorf("los estudiantes no pueden crear perfiles: %w", domain.ErrForbidden)
	}
	code := strings.TrimSpace(in.ProfileCode)
	if code == "" {
		return nil, fmt.Errorf("profile_code es requerido: %w", domain.ErrValidation)
	}

	var owner string
	switch actor.Role {
	case entity.RoleAdmin:
		owner = userid.Normalize(in.RecruiterEmail)
		if owner == "" {
			return nil, fmt.Errorf("recruiter_email es requerido para admin: %w", domain.ErrValidation)
		}
	default:
		owner = actor.ID
	}

	profile := &entity.Profile{
		Code:        code,
		OwnerEmail:  owner,
		CompanyName: strings.TrimSpace(in.CompanyName),
		Designation: strings.TrimSpace(in.Designation),
		CreatedAt:   uc.now().UTC(),
	}
	if err := uc.repo.Create(ctx, profile); err != nil {
		return nil, err
	}
	return ToProfileResponse(profile), nil
}

// ToProfileResponse convierte la entidad a su salida HTTP.
func ToProfileResponse(p *entity.Profile) *dto.ProfileResponse {
	if p == nil {
		return nil
	}
	return &dto.ProfileResponse{
		ProfileCode:    p.Code,
		RecruiterEmail: p.OwnerEmail,
		CompanyName:    p.CompanyName,
		Designation:    p.Designation,
		CreatedAt:      p.CreatedAt,
	}
}

// ToApplicationResponse convierte la entidad a su salida HTTP.
func ToApplicationResponse(a *entity.Application) *dto.ApplicationResponse {
	if a == nil {
		return nil
	}
	return &dto.ApplicationResponse{
		ProfileCode: a.ProfileCode,
		EntryNumber: a.ApplicantID,
		Status:      string(a.Status),
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
	}
}
