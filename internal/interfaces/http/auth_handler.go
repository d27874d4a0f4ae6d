package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/campus-placement-api/internal/application/auth"
	"github.com/jhoicas/campus-placement-api/internal/application/dto"
)

// CookieConfig atributos de la cookie de sesión.
type CookieConfig struct {
	Secure bool
	MaxAge time.Duration
}

// AuthHandler maneja login, logout y registro.
type AuthHandler struct {
	uc     *auth.AuthUseCase
	cookie CookieConfig
}

// NewAuthHandler construye el handler de auth.
func NewAuthHandler(uc *auth.AuthUseCase, cookie CookieConfig) *AuthHandler {
	return &AuthHandler{uc: uc, cookie: cookie}
}

// Login godoc
// @Summary      Iniciar sesión
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "userid, password"
// @Success      200   {object}  dto.MessageResponse{data=dto.LoginResponse}
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      429   {object}  dto.ErrorResponse
// @Router       /api/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := bind(c, &in); err != nil {
		return err
	}
	out, err := h.uc.Login(c.UserContext(), in)
	if err != nil {
		return err
	}
	cookie := h.sessionCookie(out.Token)
	cookie.MaxAge = int(h.cookie.MaxAge.Seconds())
	c.Cookie(cookie)
	return c.JSON(dto.MessageResponse{Message: "login exitoso", Data: out})
}

// Logout godoc
// @Summary      Cerrar sesión
// @Tags         auth
// @Produce      json
// @Success      200  {object}  dto.MessageResponse
// @Router       /api/logout [post]
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	cookie := h.sessionCookie("")
	cookie.Expires = time.Unix(0, 0)
	c.Cookie(cookie)
	return c.JSON(dto.MessageResponse{Message: "sesión cerrada"})
}

// Register godoc
// @Summary      Registrar usuario (solo admin)
// @Tags         auth
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterRequest  true  "userid, role, password"
// @Success      201   {object}  dto.MessageResponse{data=dto.UserResponse}
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/register [post]
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var in dto.RegisterRequest
	if err := bind(c, &in); err != nil {
		return err
	}
	user, err := h.uc.RegisterUser(c.UserContext(), ActorFrom(c), in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(dto.MessageResponse{Message: "usuario registrado", Data: user})
}

// sessionCookie con SameSite=None solo cuando la cookie es Secure (los navegadores rechazan None sin Secure).
func (h *AuthHandler) sessionCookie(value string) *fiber.Cookie {
	sameSite := fiber.CookieSameSiteLaxMode
	if h.cookie.Secure {
		sameSite = fiber.CookieSameSiteNoneMode
	}
	return &fiber.Cookie{
		Name:     TokenCookie,
		Value:    value,
		Path:     "/",
		HTTPOnly: true,
		Secure:   h.cookie.Secure,
		SameSite: sameSite,
	}
}
