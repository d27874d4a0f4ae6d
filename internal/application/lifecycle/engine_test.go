package lifecycle_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/campus-placement-api/internal/application/lifecycle"
	"github.com/jhoicas/campus-placement-api/internal/domain"
	"github.com/jhoicas/campus-placement-api/internal/domain/entity"
	"github.com/jhoicas/campus-placement-api/internal/infrastructure/memory"
)

var (
	student   = entity.Actor{ID: "2021cs101", Role: entity.RoleStudent}
	student2  = entity.Actor{ID: "2021cs102", Role: entity.RoleStudent}
	recruiter = entity.Actor{ID: "r@co.com", Role: entity.RoleRecruiter}
	other     = entity.Actor{ID: "otro@co.com", Role: entity.RoleRecruiter}
	admin     = entity.Actor{ID: "root", Role: entity.RoleAdmin}
)

type fixture struct {
	store  *memory.Store
	engine *lifecycle.Engine
}

func newFixture(t *testing.T, opts lifecycle.Options) *fixture {
	t.Helper()
	store := memory.NewStore()
	ctx := context.Background()
	for _, p := range []entity.Profile{
		{Code: "X1", OwnerEmail: recruiter.ID, CompanyName: "Acme", Designation: "SDE"},
		{Code: "Y2", OwnerEmail: other.ID, CompanyName: "Beta", Designation: "PM"},
	} {
		p := p
		require.NoError(t, store.Profiles().Create(ctx, &p))
	}
	return &fixture{
		store:  store,
		engine: lifecycle.NewEngine(store.Profiles(), store.Applications(), opts, nil),
	}
}

func (f *fixture) status(t *testing.T, code, applicant string) entity.ApplicationStatus {
	t.Helper()
	app, err := f.store.Applications().Get(context.Background(), code, applicant)
	require.NoError(t, err)
	return app.Status
}

func TestApply(t *testing.T) {
	ctx := context.Background()

	t.Run("crea en Applied", func(t *testing.T) {
		f := newFixture(t, lifecycle.Options{})
		app, err := f.engine.Apply(ctx, student, "X1")
		require.NoError(t, err)
		assert.Equal(t, entity.StatusApplied, app.Status)
		assert.Equal(t, entity.StatusApplied, f.status(t, "X1", student.ID))
	})

	t.Run("perfil inexistente", func(t *testing.T) {
		f := newFixture(t, lifecycle.Options{})
		_, err := f.engine.Apply(ctx, student, "NOPE")
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("solo estudiantes", func(t *testing.T) {
		f := newFixture(t, lifecycle.Options{})
		for _, a := range []entity.Actor{recruiter, admin} {
			_, err := f.engine.Apply(ctx, a, "X1")
			assert.ErrorIs(t, err, domain.ErrForbidden, a.Role)
		}
	})

	t.Run("segunda postulación viva es conflicto", func(t *testing.T) {
		f := newFixture(t, lifecycle.Options{})
		_, err := f.engine.Apply(ctx, student, "X1")
		require.NoError(t, err)
		_, err = f.engine.Apply(ctx, student, "X1")
		assert.ErrorIs(t, err, domain.ErrConflict)

		_, err = f.engine.RecruiterSetStatus(ctx, recruiter, "X1", student.ID, entity.StatusSelected)
		require.NoError(t, err)
		_, err = f.engine.Apply(ctx, student, "X1")
		assert.ErrorIs(t, err, domain.ErrConflict, "Selected también bloquea")
	})

	t.Run("se permite volver a postular tras Not Selected o Rejected", func(t *testing.T) {
		f := newFixture(t, lifecycle.Options{})
		for _, terminal := range []entity.ApplicationStatus{entity.StatusNotSelected, entity.StatusRejected} {
			_, err := f.engine.Apply(ctx, student, "X1")
			require.NoError(t, err)
			_, err = f.engine.RecruiterSetStatus(ctx, recruiter, "X1", student.ID, terminal)
			require.NoError(t, err)
		}
		app, err := f.engine.Apply(ctx, student, "X1")
		require.NoError(t, err)
		assert.Equal(t, entity.StatusApplied, app.Status)
	})

	t.Run("no se vuelve a postular tras Accepted", func(t *testing.T) {
		f := newFixture(t, lifecycle.Options{})
		_, err := f.engine.Apply(ctx, student, "X1")
		require.NoError(t, err)
		_, err = f.engine.RecruiterSetStatus(ctx, recruiter, "X1", student.ID, entity.StatusSelected)
		require.NoError(t, err)
		_, err = f.engine.ApplicantRespond(ctx, student, "X1", entity.StatusAccepted)
		require.NoError(t, err)

		_, err = f.engine.Apply(ctx, student, "X1")
		assert.ErrorIs(t, err, domain.ErrConflict)
		assert.Equal(t, entity.StatusAccepted, f.status(t, "X1", student.ID))
	})
}

func TestRecruiterSetStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("Accepted siempre prohibido", func(t *testing.T) {
		f := newFixture(t, lifecycle.Options{})
		_, err := f.engine.Apply(ctx, student, "X1")
		require.NoError(t, err)
		for _, a := range []entity.Actor{recruiter, admin, student, other} {
			_, err := f.engine.RecruiterSetStatus(ctx, a, "X1", student.ID, entity.StatusAccepted)
			assert.ErrorIs(t, err, domain.ErrForbidden, a.ID)
		}
		_, err = f.engine.RecruiterSetStatus(ctx, admin, "NOPE", "nadie", entity.StatusAccepted)
		assert.ErrorIs(t, err, domain.ErrForbidden, "se niega antes de mirar el estado")
		assert.Equal(t, entity.StatusApplied, f.status(t, "X1", student.ID))
	})

	t.Run("estudiante no puede", func(t *testing.T) {
		f := newFixture(t, lifecycle.Options{})
		_, err := f.engine.RecruiterSetStatus(ctx, student, "X1", student.ID, entity.StatusSelected)
		assert.ErrorIs(t, err, domain.ErrForbidden)
	})

	t.Run("estado fuera del camino del reclutador", func(t *testing.T) {
		f := newFixture(t, lifecycle.Options{})
		_, err := f.engine.RecruiterSetStatus(ctx, recruiter, "X1", student.ID, entity.StatusApplied)
		assert.ErrorIs(t, err, domain.ErrValidation)
		_, err = f.engine.RecruiterSetStatus(ctx, recruiter, "X1", student.ID, "Hired")
		assert.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("reclutador ajeno al perfil", func(t *testing.T) {
		f := newFixture(t, lifecycle.Options{})
		_, err := f.engine.Apply(ctx, student, "Y2")
		require.NoError(t, err)
		_, err = f.engine.RecruiterSetStatus(ctx, recruiter, "Y2", student.ID, entity.StatusSelected)
		assert.ErrorIs(t, err, domain.ErrForbidden)
		assert.Equal(t, entity.StatusApplied, f.status(t, "Y2", student.ID))
	})

	t.Run("admin gestiona cualquier perfil", func(t *testing.T) {
		f := newFixture(t, lifecycle.Options{})
		_, err := f.engine.Apply(ctx, student, "Y2")
		require.NoError(t, err)
		app, err := f.engine.RecruiterSetStatus(ctx, admin, "Y2", student.ID, entity.StatusNotSelected)
		require.NoError(t, err)
		assert.Equal(t, entity.StatusNotSelected, app.Status)
	})

	t.Run("postulación o perfil inexistente", func(t *testing.T) {
		f := newFixture(t, lifecycle.Options{})
		_, err := f.engine.RecruiterSetStatus(ctx, recruiter, "X1", student.ID, entity.StatusSelected)
		assert.ErrorIs(t, err, domain.ErrNotFound)
		_, err = f.engine.RecruiterSetStatus(ctx, admin, "NOPE", student.ID, entity.StatusSelected)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("entry_number con las mayúsculas del registro", func(t *testing.T) {
		f := newFixture(t, lifecycle.Options{})
		_, err := f.engine.Apply(ctx, student, "X1")
		require.NoError(t, err)
		app, err := f.engine.RecruiterSetStatus(ctx, recruiter, "X1", " 2021CS101 ", entity.StatusSelected)
		require.NoError(t, err)
		assert.Equal(t, student.ID, app.ApplicantID)
		assert.Equal(t, entity.StatusSelected, f.status(t, "X1", student.ID))
	})

	t.Run("modo laxo sobrescribe estados terminales", func(t *testing.T) {
		f := newFixture(t, lifecycle.Options{})
		_, err := f.engine.Apply(ctx, student, "X1")
		require.NoError(t, err)
		_, err = f.engine.RecruiterSetStatus(ctx, recruiter, "X1", student.ID, entity.StatusSelected)
		require.NoError(t, err)
		_, err = f.engine.ApplicantRespond(ctx, student, "X1", entity.StatusAccepted)
		require.NoError(t, err)

		app, err := f.engine.RecruiterSetStatus(ctx, recruiter, "X1", student.ID, entity.StatusNotSelected)
		require.NoError(t, err)
		assert.Equal(t, entity.StatusNotSelected, app.Status)
	})

	t.Run("modo estricto exige Applied o Selected", func(t *testing.T) {
		f := newFixture(t, lifecycle.Options{StrictRecruiterTransitions: true})
		_, err := f.engine.Apply(ctx, student, "X1")
		require.NoError(t, err)
		_, err = f.engine.RecruiterSetStatus(ctx, recruiter, "X1", student.ID, entity.StatusSelected)
		require.NoError(t, err)
		_, err = f.engine.ApplicantRespond(ctx, student, "X1", entity.StatusAccepted)
		require.NoError(t, err)

		_, err = f.engine.RecruiterSetStatus(ctx, recruiter, "X1", student.ID, entity.StatusNotSelected)
		assert.ErrorIs(t, err, domain.ErrInvalidState)
		assert.Equal(t, entity.StatusAccepted, f.status(t, "X1", student.ID))
	})
}

func TestApplicantRespond(t *testing.T) {
	ctx := context.Background()

	t.Run("flujo completo y repetición", func(t *testing.T) {
		f := newFixture(t, lifecycle.Options{})
		_, err := f.engine.Apply(ctx, student, "X1")
		require.NoError(t, err)
		_, err = f.engine.RecruiterSetStatus(ctx, recruiter, "X1", student.ID, entity.StatusSelected)
		require.NoError(t, err)

		app, err := f.engine.ApplicantRespond(ctx, student, "X1", entity.StatusAccepted)
		require.NoError(t, err)
		assert.Equal(t, entity.StatusAccepted, app.Status)

		_, err = f.engine.ApplicantRespond(ctx, student, "X1", entity.StatusAccepted)
		assert.ErrorIs(t, err, domain.ErrInvalidState)
		_, err = f.engine.ApplicantRespond(ctx, student, "X1", entity.StatusRejected)
		assert.ErrorIs(t, err, domain.ErrInvalidState)
	})

	t.Run("Rejected también es terminal", func(t *testing.T) {
		f := newFixture(t, lifecycle.Options{})
		_, err := f.engine.Apply(ctx, student, "X1")
		require.NoError(t, err)
		_, err = f.engine.RecruiterSetStatus(ctx, recruiter, "X1", student.ID, entity.StatusSelected)
		require.NoError(t, err)
		_, err = f.engine.ApplicantRespond(ctx, student, "X1", entity.StatusRejected)
		require.NoError(t, err)

		_, err = f.engine.ApplicantRespond(ctx, student, "X1", entity.StatusAccepted)
		assert.ErrorIs(t, err, domain.ErrInvalidState)
	})

	t.Run("requiere Selected", func(t *testing.T) {
		f := newFixture(t, lifecycle.Options{})
		_, err := f.engine.Apply(ctx, student, "X1")
		require.NoError(t, err)
		_, err = f.engine.ApplicantRespond(ctx, student, "X1", entity.StatusAccepted)
		assert.ErrorIs(t, err, domain.ErrInvalidState)

		_, err = f.engine.RecruiterSetStatus(ctx, recruiter, "X1", student.ID, entity.StatusNotSelected)
		require.NoError(t, err)
		_, err = f.engine.ApplicantRespond(ctx, student, "X1", entity.StatusAccepted)
		assert.ErrorIs(t, err, domain.ErrInvalidState)
	})

	t.Run("solo la postulación propia", func(t *testing.T) {
		f := newFixture(t, lifecycle.Options{})
		_, err := f.engine.Apply(ctx, student, "X1")
		require.NoError(t, err)
		_, err = f.engine.RecruiterSetStatus(ctx, recruiter, "X1", student.ID, entity.StatusSelected)
		require.NoError(t, err)

		_, err = f.engine.ApplicantRespond(ctx, student2, "X1", entity.StatusAccepted)
		assert.ErrorIs(t, err, domain.ErrNotFound, "student2 no tiene postulación en X1")
		assert.Equal(t, entity.StatusSelected, f.status(t, "X1", student.ID))
	})

	t.Run("códigos con espacios", func(t *testing.T) {
		f := newFixture(t, lifecycle.Options{})
		app, err := f.engine.Apply(ctx, student, " X1 ")
		require.NoError(t, err)
		assert.Equal(t, "X1", app.ProfileCode)
		_, err = f.engine.RecruiterSetStatus(ctx, recruiter, "X1\t", student.ID, entity.StatusSelected)
		require.NoError(t, err)
		app, err = f.engine.ApplicantRespond(ctx, student, "  X1", entity.StatusAccepted)
		require.NoError(t, err)
		assert.Equal(t, entity.StatusAccepted, app.Status)
	})

	t.Run("roles y estados inválidos", func(t *testing.T) {
		f := newFixture(t, lifecycle.Options{})
		_, err := f.engine.ApplicantRespond(ctx, recruiter, "X1", entity.StatusAccepted)
		assert.ErrorIs(t, err, domain.ErrForbidden)
		_, err = f.engine.ApplicantRespond(ctx, student, "X1", entity.StatusSelected)
		assert.ErrorIs(t, err, domain.ErrValidation)
	})
}
