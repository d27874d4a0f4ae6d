// seed_admin crea el primer usuario admin; sin él nadie puede registrar usuarios.
//
// Uso: go run ./cmd/seed_admin <userid> <password>
// También acepta SEED_ADMIN_USERID y SEED_ADMIN_PASSWORD.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/campus-placement-api/internal/application/auth"
	"github.com/jhoicas/campus-placement-api/internal/domain"
	"github.com/jhoicas/campus-placement-api/internal/domain/entity"
	"github.com/jhoicas/campus-placement-api/internal/infrastructure/postgres"
	"github.com/jhoicas/campus-placement-api/pkg/config"
	"github.com/jhoicas/campus-placement-api/pkg/logger"
)

func main() {
	id, password := os.Getenv("SEED_ADMIN_USERID"), os.Getenv("SEED_ADMIN_PASSWORD")
	if len(os.Args) > 2 {
		id, password = os.Args[1], os.Args[2]
	}
	if id == "" || password == "" {
		fmt.Fprintln(os.Stderr, "uso: seed_admin <userid> <password>")
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "cargar configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel}).Component("seed_admin")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	user, err := auth.NewUser(id, entity.RoleAdmin, password, bcrypt.DefaultCost)
	if err != nil {
		log.Fatal().Err(err).Msg("datos del admin")
	}
	if err := postgres.NewUserRepository(pool).Create(ctx, user); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			log.Info().Str("userid", user.ID).Msg("el admin ya existe")
			return
		}
		log.Fatal().Err(err).Msg("crear admin")
	}
	log.Info().Str("userid", user.ID).Msg("admin creado")
}
