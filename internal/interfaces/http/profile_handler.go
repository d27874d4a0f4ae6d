package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"

	"github.com/jhoicas/campus-placement-api/internal/application/dto"
	"github.com/jhoicas/campus-placement-api/internal/application/lifecycle"
	"github.com/jhoicas/campus-placement-api/internal/application/usecase"
	"github.com/jhoicas/campus-placement-api/internal/application/views"
)

// ProfileHandler registro de perfiles, catálogo y postulación.
type ProfileHandler struct {
	uc       *usecase.ProfileUseCase
	engine   *lifecycle.Engine
	composer *views.Composer
}

// NewProfileHandler construye el handler.
func NewProfileHandler(uc *usecase.ProfileUseCase, engine *lifecycle.Engine, composer *views.Composer) *ProfileHandler {
	return &ProfileHandler{uc: uc, engine: engine, composer: composer}
}

// Create godoc
// @Summary      Crear perfil de trabajo
// @Description  El reclutador queda como dueño; el admin debe enviar recruiter_email.
// @Tags         profiles
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateProfileRequest  true  "Datos del perfil"
// @Success      201   {object}  dto.MessageResponse{data=dto.ProfileResponse}
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/create-profile [post]
func (h *ProfileHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateProfileRequest
	if err := bind(c, &in); err != nil {
		return err
	}
	out, err := h.uc.Create(c.UserContext(), ActorFrom(c), in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(dto.MessageResponse{Message: "perfil creado", Data: out})
}

// List godoc
// @Summary      Catálogo de perfiles del estudiante
// @Description  Accepted > Selected > All: con una oferta aceptada solo se listan esas; si no, las seleccionadas; si no, todas.
// @Tags         profiles
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.CatalogResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/profiles [get]
func (h *ProfileHandler) List(c *fiber.Ctx) error {
	out, err := h.composer.ListAvailableProfiles(c.UserContext(), ActorFrom(c))
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Apply godoc
// @Summary      Postular a un perfil
// @Tags         applications
// @Security     Bearer
// @Produce      json
// @Param        code  path  string  true  "Código del perfil"
// @Success      201   {object}  dto.MessageResponse{data=dto.ApplicationResponse}
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/profile/{code} [post]
func (h *ProfileHandler) Apply(c *fiber.Ctx) error {
	code := utils.CopyString(c.Params("code"))
	if code == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_CODE", Message: "code es requerido"})
	}
	app, err := h.engine.Apply(c.UserContext(), ActorFrom(c), code)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(dto.MessageResponse{Message: "postulación registrada", Data: usecase.ToApplicationResponse(app)})
}
