package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"

	"github.com/jhoicas/campus-placement-api/internal/application/auth"
	"github.com/jhoicas/campus-placement-api/internal/application/lifecycle"
	"github.com/jhoicas/campus-placement-api/internal/application/usecase"
	"github.com/jhoicas/campus-placement-api/internal/application/views"
	"github.com/jhoicas/campus-placement-api/internal/domain/repository"
	"github.com/jhoicas/campus-placement-api/internal/infrastructure/memory"
	"github.com/jhoicas/campus-placement-api/internal/infrastructure/postgres"
	"github.com/jhoicas/campus-placement-api/internal/infrastructure/ratelimit"
	httpRouter "github.com/jhoicas/campus-placement-api/internal/interfaces/http"
	"github.com/jhoicas/campus-placement-api/pkg/config"
	"github.com/jhoicas/campus-placement-api/pkg/logger"
)

// stores repositorios del driver elegido y su función de cierre.
type stores struct {
	users    repository.UserRepository
	profiles repository.ProfileRepository
	apps     repository.ApplicationRepository
	close    func()
}

func openStores(ctx context.Context, cfg config.DBConfig, log *logger.Logger) (*stores, error) {
	if cfg.Driver == config.StoreDriverMemory {
		log.Warn().Msg("STORE_DRIVER=memory: los datos se pierden al reiniciar")
		s := memory.NewStore()
		return &stores{users: s.Users(), profiles: s.Profiles(), apps: s.Applications(), close: func() {}}, nil
	}
	if cfg.AutoMigrate {
		if err := postgres.ApplyMigrations(ctx, cfg.ConnectionString()); err != nil {
			return nil, err
		}
		log.Info().Msg("migraciones aplicadas")
	}
	pool, err := postgres.NewPool(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return &stores{
		users:    postgres.NewUserRepository(pool),
		profiles: postgres.NewProfileRepository(pool),
		apps:     postgres.NewApplicationRepository(pool),
		close:    pool.Close,
	}, nil
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("store", cfg.DB.Driver).
		Bool("strict_transitions", cfg.Lifecycle.StrictTransitions).
		Msg("iniciando aplicación")

	ctx := context.Background()
	st, err := openStores(ctx, cfg.DB, log)
	if err != nil {
		log.Fatal().Err(err).Msg("inicializar almacenamiento")
	}
	defer st.close()

	redisClient := ratelimit.NewClient(cfg.Redis)
	if redisClient != nil {
		defer redisClient.Close()
	} else {
		log.Warn().Msg("REDIS_ADDR vacío: login sin rate limit")
	}
	loginLimiter := ratelimit.NewRedisLimiter(redisClient, cfg.Redis.LoginLimit, cfg.Redis.LoginWindow(), "login", log)

	engine := lifecycle.NewEngine(st.profiles, st.apps, lifecycle.Options{
		StrictRecruiterTransitions: cfg.Lifecycle.StrictTransitions,
	}, log)
	authUC := auth.NewAuthUseCase(st.users, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	}, log)

	app := httpRouter.NewApp(httpRouter.AppConfig{
		Name:        cfg.App.Name,
		CORSOrigins: cfg.HTTP.CORSOrigins,
		Log:         log,
	}, httpRouter.RouterDeps{
		AuthUC:       authUC,
		ProfileUC:    usecase.NewProfileUseCase(st.profiles),
		Engine:       engine,
		Composer:     views.NewComposer(st.profiles, st.apps),
		LoginLimiter: loginLimiter,
		JWTSecret:    cfg.JWT.Secret,
		Cookie: httpRouter.CookieConfig{
			Secure: cfg.JWT.CookieSecure,
			MaxAge: time.Duration(cfg.JWT.Expiration) * time.Minute,
		},
	})

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Campus Placement API",
	}))

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
