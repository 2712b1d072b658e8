package auth

import (
	"context"

	"golang.org/x/crypto/bcrypt"
	"github.com/jhoicas/posventa-api/internal/application/dto"
	"github.com/jhoicas/posventa-api/internal/domain"
	"github.com/jhoicas/posventa-api/internal/domain/repository"
	"github.com/jhoicas/posventa-api/pkg/jwt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase autenticación: login con verificación bcrypt y emisión de JWT.
type AuthUseCase struct {
	userRepo repository.UserRepository
	jwtCfg   JWTConfig
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(userRepo repository.UserRepository, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, jwtCfg: jwtCfg}
}

// Login verifica credenciales y devuelve un token firmado. Devuelve
// ErrUnauthorized indistintamente para usuario inexistente, inactivo o
// contraseña errada (sin filtrar cuál falló).
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	if in.Email == "" || in.Password == "" {
		return nil, &domain.ValidationError{Field: "email", Reason: "email y password son requeridos"}
	}
	user, err := uc.userRepo.GetByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if user == nil || !user.Active {
		return nil, domain.ErrUnauthorized
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)) != nil {
		return nil, domain.ErrUnauthorized
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.Role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{Token: token, Name: user.Name, Role: user.Role}, nil
}
