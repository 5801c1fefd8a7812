package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/Chakraaaa/taskflow/internal/core/domain"
	"github.com/Chakraaaa/taskflow/internal/core/port"
	"github.com/Chakraaaa/taskflow/internal/infra/logger"
	"github.com/Chakraaaa/taskflow/internal/infra/security"
	"github.com/Chakraaaa/taskflow/internal/repository"
)

var (
	// ErrInvalidCredentials indicates the provided email or password are
	// incorrect. The two cases are deliberately indistinguishable.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrInvalidAccessToken indicates the provided access token is malformed
	// or signature validation failed.
	ErrInvalidAccessToken = errors.New("invalid access token")
	// ErrExpiredAccessToken indicates the provided access token has expired.
	ErrExpiredAccessToken = errors.New("access token expired")
)

// AuthService coordinates credential verification and token issuance.
type AuthService struct {
	users  port.UserRepository
	tokens *security.TokenManager
	log    *zap.Logger
}

// NewAuthService constructs an AuthService instance.
func NewAuthService(users port.UserRepository, tokens *security.TokenManager, log *zap.Logger) *AuthService {
	if log == nil {
		log = zap.NewNop()
	}
	return &AuthService{users: users, tokens: tokens, log: log}
}

// Authenticate validates credentials and issues an access token.
func (s *AuthService) Authenticate(ctx context.Context, email, password string) (string, domain.User, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return "", domain.User{}, fmt.Errorf("%w: email and password are required", ErrInvalidInput)
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", domain.User{}, ErrInvalidCredentials
		}
		return "", domain.User{}, fmt.Errorf("lookup user: %w", err)
	}

	ok, err := security.VerifyPassword(password, user.PasswordHash)
	if err != nil {
		return "", domain.User{}, fmt.Errorf("verify password: %w", err)
	}
	if !ok {
		s.log.Info("login rejected", zap.String("email", logger.MaskEmail(email)))
		return "", domain.User{}, ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.ID, user.Email)
	if err != nil {
		return "", domain.User{}, fmt.Errorf("issue access token: %w", err)
	}

	return token, *user, nil
}

// ParseAccessToken verifies the token and returns its claims.
func (s *AuthService) ParseAccessToken(_ context.Context, token string) (*security.AccessClaims, error) {
	claims, err := s.tokens.Parse(token)
	if err != nil {
		if errors.Is(err, security.ErrTokenExpired) {
			return nil, ErrExpiredAccessToken
		}
		return nil, ErrInvalidAccessToken
	}
	return claims, nil
}
