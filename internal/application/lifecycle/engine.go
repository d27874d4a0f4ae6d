// Package lifecycle implementa la máquina de estados de las postulaciones.
// Cada operación valida primero la política por rol, luego la precondición de estado,
// y delega la escritura atómica al repositorio.
package lifecycle

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jhoicas/campus-placement-api/internal/domain"
	"github.com/jhoicas/campus-placement-api/internal/domain/entity"
	"github.com/jhoicas/campus-placement-api/internal/domain/policy"
	"github.com/jhoicas/campus-placement-api/internal/domain/repository"
	"github.com/jhoicas/campus-placement-api/pkg/logger"
	"github.com/jhoicas/campus-placement-api/pkg/userid"
)

// Options reglas configurables del motor.
type Options struct {
	// StrictRecruiterTransitions exige que el estado actual sea Applied o Selected
	// antes de que un reclutador/admin lo sobrescriba. Desactivado, el camino del
	// reclutador sobrescribe desde cualquier estado.
	StrictRecruiterTransitions bool
}

// Engine orquesta las transiciones del ledger de postulaciones.
type Engine struct {
	profiles repository.ProfileRepository
	apps     repository.ApplicationRepository
	opts     Options
	log      *logger.Logger
}

// NewEngine construye el motor de ciclo de vida.
func NewEngine(profiles repository.ProfileRepository, apps repository.ApplicationRepository, opts Options, log *logger.Logger) *Engine {
	if log == nil {
		log = logger.Nop()
	}
	return &Engine{profiles: profiles, apps: apps, opts: opts, log: log.Component("lifecycle")}
}

// Apply crea la postulación del estudiante al perfil en estado Applied.
func (e *Engine) Apply(ctx context.Context, actor entity.Actor, profileCode string) (*entity.Application, error) {
	if !policy.Allow(actor.Role, policy.ActionApply) {
		return nil, fmt.Errorf("solo estudiantes pueden postular: %w", domain.ErrForbidden)
	}
	profileCode = strings.TrimSpace(profileCode)
	if _, err := e.profiles.GetByCode(ctx, profileCode); err != nil {
		return nil, err
	}
	app, err := e.apps.Insert(ctx, profileCode, actor.ID)
	if err != nil {
		return nil, err
	}
	e.log.Info().
		Str("profile_code", profileCode).
		Str("applicant_id", actor.ID).
		Str("to", string(app.Status)).
		Msg("postulación registrada")
	return app, nil
}

// RecruiterSetStatus mueve una postulación a Selected, Not Selected o Rejected.
// Accepted está prohibido en este camino: solo el estudiante acepta su oferta.
func (e *Engine) RecruiterSetStatus(ctx context.Context, actor entity.Actor, profileCode, applicantID string, status entity.ApplicationStatus) (*entity.Application, error) {
	if !policy.Allow(actor.Role, policy.ActionSetCandidateStatus) {
		return nil, fmt.Errorf("estudiantes no pueden cambiar el estado: %w", domain.ErrForbidden)
	}
	if status == entity.StatusAccepted {
		return nil, fmt.Errorf("no se puede asignar Accepted: %w", domain.ErrForbidden)
	}
	if !policy.CanRecruiterSet(status) {
		return nil, fmt.Errorf("estado %q no permitido: %w", status, domain.ErrValidation)
	}
	// El entry_number se guarda plegado igual que en el registro.
	profileCode = strings.TrimSpace(profileCode)
	applicantID = userid.Normalize(applicantID)
	profile, err := e.profiles.GetByCode(ctx, profileCode)
	if err != nil {
		return nil, err
	}
	if !policy.CanManageProfile(actor, profile) {
		return nil, fmt.Errorf("el perfil %s pertenece a otro reclutador: %w", profileCode, domain.ErrForbidden)
	}

	current, err := e.apps.Get(ctx, profileCode, applicantID)
	if err != nil {
		return nil, err
	}

	var from []entity.ApplicationStatus
	if e.opts.StrictRecruiterTransitions {
		if !current.Status.Live() {
			return nil, fmt.Errorf("postulación en estado %s: %w", current.Status, domain.ErrInvalidState)
		}
		from = []entity.ApplicationStatus{entity.StatusApplied, entity.StatusSelected}
	}

	updated, err := e.apps.UpdateStatus(ctx, profileCode, applicantID, status, from...)
	if err != nil {
		if e.opts.StrictRecruiterTransitions && errors.Is(err, domain.ErrNotFound) {
			// La fila existía: otro request cambió el estado entre la lectura y la escritura.
			return nil, fmt.Errorf("postulación modificada concurrentemente: %w", domain.ErrInvalidState)
		}
		return nil, err
	}
	e.logTransition(actor, updated, current.Status)
	return updated, nil
}

// ApplicantRespond acepta o rechaza una oferta. Solo procede desde Selected.
func (e *Engine) ApplicantRespond(ctx context.Context, actor entity.Actor, profileCode string, status entity.ApplicationStatus) (*entity.Application, error) {
	if !policy.Allow(actor.Role, policy.ActionRespondToOffer) {
		return nil, fmt.Errorf("solo estudiantes pueden aceptar o rechazar ofertas: %w", domain.ErrForbidden)
	}
	if !policy.CanApplicantSet(status) {
		return nil, fmt.Errorf("solo se permite Accepted o Rejected: %w", domain.ErrValidation)
	}
	profileCode = strings.TrimSpace(profileCode)
	current, err := e.apps.Get(ctx, profileCode, actor.ID)
	if err != nil {
		return nil, err
	}
	if current.Status.Terminal() {
		return nil, fmt.Errorf("postulación cerrada en estado %s: %w", current.Status, domain.ErrInvalidState)
	}
	if current.Status != entity.StatusSelected {
		return nil, fmt.Errorf("postulación en estado %s, se requiere Selected: %w", current.Status, domain.ErrInvalidState)
	}
	updated, err := e.apps.UpdateStatus(ctx, profileCode, actor.ID, status, entity.StatusSelected)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("la postulación dejó de estar en Selected: %w", domain.ErrInvalidState)
		}
		return nil, err
	}
	e.logTransition(actor, updated, current.Status)
	return updated, nil
}

func (e *Engine) logTransition(actor entity.Actor, app *entity.Application, from entity.ApplicationStatus) {
	ev := e.log.Info()
	if !entity.CanTransition(from, app.Status) {
		// Sobrescritura fuera de la máquina de estados (camino de reclutador sin modo estricto).
		ev = e.log.Warn()
	}
	ev.Str("profile_code", app.ProfileCode).
		Str("applicant_id", app.ApplicantID).
		Str("from", string(from)).
		Str("to", string(app.Status)).
		Str("actor", actor.ID).
		Str("actor_role", string(actor.Role)).
		Msg("estado de postulación actualizado")
}
