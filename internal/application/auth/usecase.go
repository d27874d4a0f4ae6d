package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/campus-placement-api/internal/application/dto"
	"github.com/jhoicas/campus-placement-api/internal/domain"
	"github.com/jhoicas/campus-placement-api/internal/domain/entity"
	"github.com/jhoicas/campus-placement-api/internal/domain/policy"
	"github.com/jhoicas/campus-placement-api/internal/domain/repository"
	"github.com/jhoicas/campus-placement-api/pkg/jwt"
	"github.com/jhoicas/campus-placement-api/pkg/logger"
	"github.com/jhoicas/campus-placement-api/pkg/userid"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase casos de uso de autenticación: registro (solo admin) y login.
type AuthUseCase struct {
	userRepo repository.UserRepository
	jwtCfg   JWTConfig
	cost     int
	log      *logger.Logger
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(userRepo repository.UserRepository, jwtCfg JWTConfig, log *logger.Logger) *AuthUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &AuthUseCase{userRepo: userRepo, jwtCfg: jwtCfg, cost: bcrypt.DefaultCost, log: log.Component("auth")}
}

// RegisterUser crea un usuario: hashea password con bcrypt y persiste.
// Solo un admin registra usuarios; domain.ErrConflict si el userid ya existe.
func (uc *AuthUseCase) RegisterUser(ctx context.Context, actor entity.Actor, in dto.RegisterRequest) (*dto.UserResponse, error) {
	if !policy.Allow(actor.Role, policy.ActionRegisterUser) {
		return nil, fmt.Errorf("solo admin puede registrar usuarios: %w", domain.ErrForbidden)
	}
	user, err := NewUser(in.UserID, entity.Role(in.Role), in.Password, uc.cost)
	if err != nil {
		return nil, err
	}
	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	uc.log.Info().Str("userid", user.ID).Str("role", string(user.Role)).Str("by", actor.ID).Msg("usuario registrado")
	return toUserResponse(user), nil
}

// Login verifica userid/password, genera JWT y retorna token + usuario.
// Usuario inexistente y password incorrecto devuelven el mismo error.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := uc.userRepo.GetByID(ctx, userid.Normalize(in.UserID))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrUnauthorized
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, string(user.Role), uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		UserID: user.ID,
		Role:   string(user.Role),
		Token:  token,
	}, nil
}

// NewUser valida rol y password y devuelve el usuario con el hash bcrypt.
// Lo usan el registro y el seed del primer admin.
func NewUser(id string, role entity.Role, password string, cost int) (*entity.User, error) {
	id = userid.Normalize(id)
	if id == "" || password == "" {
		return nil, fmt.Errorf("userid y password son requeridos: %w", domain.ErrValidation)
	}
	if !role.Valid() {
		return nil, fmt.Errorf("rol %q inválido: %w", role, domain.ErrValidation)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return nil, fmt.Errorf("password demasiado largo: %w", domain.ErrValidation)
		}
		return nil, err
	}
	return &entity.User{
		ID:           id,
		Role:         role,
		PasswordHash: string(hash),
		CreatedAt:    time.Now().UTC(),
	}, nil
}

func toUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{UserID: u.ID, Role: string(u.Role)}
}
