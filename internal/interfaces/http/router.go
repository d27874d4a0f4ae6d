package http

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"

	"github.com/jhoicas/campus-placement-api/internal/application/auth"
	"github.com/jhoicas/campus-placement-api/internal/application/lifecycle"
	"github.com/jhoicas/campus-placement-api/internal/application/usecase"
	"github.com/jhoicas/campus-placement-api/internal/application/views"
	"github.com/jhoicas/campus-placement-api/internal/domain/policy"
	"github.com/jhoicas/campus-placement-api/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC       *auth.AuthUseCase
	ProfileUC    *usecase.ProfileUseCase
	Engine       *lifecycle.Engine
	Composer     *views.Composer
	LoginLimiter attemptLimiter
	JWTSecret    string
	Cookie       CookieConfig
}

// AppConfig opciones de la aplicación Fiber.
type AppConfig struct {
	Name        string
	CORSOrigins []string
	Log         *logger.Logger
}

// NewApp construye la aplicación Fiber con el manejo de errores, los middlewares comunes,
// el health check y las rutas de la API.
func NewApp(cfg AppConfig, deps RouterDeps) *fiber.App {
	// Immutable: los strings de c.Params/c.Get sobreviven al request y los adaptadores pueden retenerlos.
	app := fiber.New(fiber.Config{
		AppName:      cfg.Name,
		Immutable:    true,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
		ErrorHandler: NewErrorHandler(cfg.Log),
	})
	app.Use(recover.New())
	app.Use(requestid.New(requestid.Config{Generator: uuid.NewString}))
	app.Use(AccessLog(cfg.Log))
	if len(cfg.CORSOrigins) > 0 {
		app.Use(cors.New(cors.Config{
			AllowOrigins:     strings.Join(cfg.CORSOrigins, ","),
			AllowHeaders:     "Origin, Content-Type, Accept, Authorization, token",
			AllowCredentials: true,
		}))
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.Name})
	})

	Router(app, deps)
	return app
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC, deps.Cookie)
	api.Post("/login", RateLimit(deps.LoginLimiter), authHandler.Login)
	api.Post("/logout", authHandler.Logout)

	// Rutas protegidas (token en cookie, header token o Bearer)
	protected := api.Group("", AuthMiddleware(deps.JWTSecret))

	protected.Post("/register", RequireAction(policy.ActionRegisterUser), authHandler.Register)

	profileHandler := NewProfileHandler(deps.ProfileUC, deps.Engine, deps.Composer)
	protected.Post("/create-profile", RequireAction(policy.ActionCreateProfile), profileHandler.Create)
	protected.Get("/profiles", RequireAction(policy.ActionBrowseProfiles), profileHandler.List)

	// Las rutas fijas van antes que /profile/:code.
	applicationHandler := NewApplicationHandler(deps.Engine)
	protected.Post("/profile/application/change-status", RequireAction(policy.ActionSetCandidateStatus), applicationHandler.ChangeStatus)
	protected.Post("/profile/application/accept", RequireAction(policy.ActionRespondToOffer), applicationHandler.Respond)
	protected.Post("/profile/:code", RequireAction(policy.ActionApply), profileHandler.Apply)

	meHandler := NewMeHandler(deps.Composer)
	protected.Post("/user/me", RequireAction(policy.ActionViewDashboard), meHandler.Me)
}
