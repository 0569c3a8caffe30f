package service

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/hotelops/guestdesk/internal/auth"
	"github.com/hotelops/guestdesk/internal/config"
	"github.com/hotelops/guestdesk/internal/domain"
	"github.com/hotelops/guestdesk/internal/repository"
	apperrors "github.com/hotelops/guestdesk/pkg/util"
)

// AuthService authenticates staff for board access. Guests are
// unauthenticated; only manager endpoints and the realtime channel are
// guarded.
type AuthService struct {
	staff  repository.StaffRepository
	tokens *auth.TokenManager
	cost   int
}

// NewAuthService constructs the service.
func NewAuthService(cfg config.AuthConfig, staff repository.StaffRepository) *AuthService {
	return &AuthService{
		staff:  staff,
		tokens: auth.NewTokenManager(cfg.JWTSecret, cfg.AccessTokenTTLMinutes),
		cost:   cfg.BcryptCost,
	}
}

// TokenManager exposes the signer for middleware wiring.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokens
}

// StaffLogin verifies credentials and issues a bearer token.
func (s *AuthService) StaffLogin(ctx context.Context, email, password string) (string, time.Time, *domain.StaffAccount, error) {
	staff, err := s.staff.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", time.Time{}, nil, apperrors.NewUnauthorized("invalid credentials")
		}
		return "", time.Time{}, nil, apperrors.NewUpstreamUnavailable("persistence", err)
	}
	if !staff.Active {
		return "", time.Time{}, nil, apperrors.NewUnauthorized("account disabled")
	}
	if err := auth.ComparePassword(staff.PasswordHash, password); err != nil {
		return "", time.Time{}, nil, apperrors.NewUnauthorized("invalid credentials")
	}

	token, expiresAt, err := s.tokens.GenerateToken(staff.ID, staff.Role)
	if err != nil {
		return "", time.Time{}, nil, apperrors.NewInternalError(err)
	}
	return token, expiresAt, staff, nil
}

// RegisterStaff creates a manager account with a hashed password.
func (s *AuthService) RegisterStaff(ctx context.Context, name, email, password string, role domain.StaffRole) (*domain.StaffAccount, error) {
	hash, err := auth.HashPassword(password, s.cost)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	staff := &domain.StaffAccount{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         role,
		Active:       true,
	}
	if err := s.staff.Create(ctx, staff); err != nil {
		return nil, apperrors.NewUpstreamUnavailable("persistence", err)
	}
	return staff, nil
}
