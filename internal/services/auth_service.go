package services

import (
	"context"

	"clinica-api/internal/auth"
	"clinica-api/internal/models"
	"clinica-api/internal/permissions"
	"clinica-api/internal/repositories"
	"clinica-api/pkg/errors"

	"golang.org/x/crypto/bcrypt"
)

type AuthService struct {
	userRepo     *repositories.UserRepository
	tokenService *auth.TokenService
	perms        *PermissionService
	tokenTTL     int // minutes
}

func NewAuthService(userRepo *repositories.UserRepository, tokenService *auth.TokenService, perms *PermissionService, tokenTTL int) *AuthService {
	return &AuthService{
		userRepo:     userRepo,
		tokenService: tokenService,
		perms:        perms,
		tokenTTL:     tokenTTL,
	}
}

// Login authenticates a clinic user and returns an access token plus
// the navigation modules visible to them, so the frontend can render
// the sidebar from the login response alone.
func (s *AuthService) Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, error) {
	user, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		// Do not reveal whether the address exists.
		return nil, errors.WrapError(err, errors.ErrUnauthorized.Code, "Invalid credentials", errors.ErrUnauthorized.Status)
	}

	if !user.Active {
		return nil, errors.WrapError(nil, errors.ErrForbidden.Code, "Account is disabled", errors.ErrForbidden.Status)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, errors.WrapError(err, errors.ErrUnauthorized.Code, "Invalid credentials", errors.ErrUnauthorized.Status)
	}

	token, err := s.tokenService.GenerateAccessToken(user)
	if err != nil {
		return nil, errors.WrapError(err, "INTERNAL_ERROR", "Failed to generate token", errors.ErrInternalServer.Status)
	}

	role := permissions.ParseRole(user.Role)
	modules, err := s.perms.VisibleModules(ctx, user.ID, role)
	if err != nil {
		// Login still succeeds; the frontend falls back to fetching
		// modules separately once connectivity recovers.
		modules = permissions.VisibleModuleList(role, permissions.Map{}, permissions.DefaultNavConfig)
	}

	return &models.LoginResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   s.tokenTTL * 60,
		User:        user,
		Modules:     modules,
	}, nil
}

// HashPassword produces a bcrypt hash for storage.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
