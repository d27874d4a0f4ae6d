package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/campus-placement-api/internal/application/dto"
)

// attemptLimiter contrato mínimo que necesita el middleware.
// Lo implementa *ratelimit.RedisLimiter; un limiter nil permite todo.
type attemptLimiter interface {
	Allow(ctx context.Context, key string) bool
}

// RateLimit responde 429 cuando la IP del cliente superó los intentos de la ventana.
// Con limiter nil el middleware no hace nada.
func RateLimit(limiter attemptLimiter) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if limiter == nil || limiter.Allow(c.UserContext(), c.IP()) {
			return c.Next()
		}
		return c.Status(fiber.StatusTooManyRequests).JSON(dto.ErrorResponse{
			Code:    "TOO_MANY_REQUESTS",
			Message: "demasiados intentos, espere e intente de nuevo",
		})
	}
}
