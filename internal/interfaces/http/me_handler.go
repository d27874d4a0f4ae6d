package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/campus-placement-api/internal/application/dto"
	"github.com/jhoicas/campus-placement-api/internal/application/views"
)

// MeHandler panel del usuario autenticado.
type MeHandler struct {
	composer *views.Composer
}

// NewMeHandler construye el handler.
func NewMeHandler(composer *views.Composer) *MeHandler {
	return &MeHandler{composer: composer}
}

// Me godoc
// @Summary      Panel del usuario
// @Description  Estudiante: sus postulaciones con datos del perfil. Reclutador: sus perfiles con postulantes. Admin: todos los perfiles.
// @Tags         user
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.MessageResponse
// @Router       /api/user/me [post]
func (h *MeHandler) Me(c *fiber.Ctx) error {
	out, err := h.composer.Dashboard(c.UserContext(), ActorFrom(c))
	if err != nil {
		return err
	}
	msg := "datos del usuario"
	if out.Empty() {
		msg = "sin registros"
	}
	return c.JSON(dto.MessageResponse{Message: msg, Data: out.Data()})
}
