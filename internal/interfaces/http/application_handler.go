package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/campus-placement-api/internal/application/dto"
	"github.com/jhoicas/campus-placement-api/internal/application/lifecycle"
	"github.com/jhoicas/campus-placement-api/internal/application/usecase"
	"github.com/jhoicas/campus-placement-api/internal/domain/entity"
)

// ApplicationHandler transiciones de estado de las postulaciones.
type ApplicationHandler struct {
	engine *lifecycle.Engine
}

// NewApplicationHandler construye el handler.
func NewApplicationHandler(engine *lifecycle.Engine) *ApplicationHandler {
	return &ApplicationHandler{engine: engine}
}

// ChangeStatus godoc
// @Summary      Cambiar estado de un postulante (reclutador dueño o admin)
// @Description  Permite Selected, Not Selected o Rejected. Accepted responde 403.
// @Tags         applications
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ChangeStatusRequest  true  "profile_code, entry_number, status"
// @Success      200   {object}  dto.MessageResponse{data=dto.ApplicationResponse}
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/profile/application/change-status [post]
func (h *ApplicationHandler) ChangeStatus(c *fiber.Ctx) error {
	var in dto.ChangeStatusRequest
	if err := bind(c, &in); err != nil {
		return err
	}
	app, err := h.engine.RecruiterSetStatus(c.UserContext(), ActorFrom(c), in.ProfileCode, in.EntryNumber, entity.ApplicationStatus(in.Status))
	if err != nil {
		return err
	}
	return c.JSON(dto.MessageResponse{Message: "estado actualizado", Data: usecase.ToApplicationResponse(app)})
}

// Respond godoc
// @Summary      Aceptar o rechazar una oferta (estudiante)
// @Description  Solo desde Selected. Accepted y Rejected son finales.
// @Tags         applications
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RespondRequest  true  "profile_code, status"
// @Success      200   {object}  dto.MessageResponse{data=dto.ApplicationResponse}
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/profile/application/accept [post]
func (h *ApplicationHandler) Respond(c *fiber.Ctx) error {
	var in dto.RespondRequest
	if err := bind(c, &in); err != nil {
		return err
	}
	app, err := h.engine.ApplicantRespond(c.UserContext(), ActorFrom(c), in.ProfileCode, entity.ApplicationStatus(in.Status))
	if err != nil {
		return err
	}
	return c.JSON(dto.MessageResponse{Message: "estado actualizado", Data: usecase.ToApplicationResponse(app)})
}
