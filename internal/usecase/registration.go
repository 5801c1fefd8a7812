package usecase

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Chakraaaa/taskflow/internal/core/domain"
	"github.com/Chakraaaa/taskflow/internal/core/port"
	"github.com/Chakraaaa/taskflow/internal/infra/logger"
	"github.com/Chakraaaa/taskflow/internal/infra/security"
)

const minPasswordLength = 6

var emailFormat = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// RegistrationService handles new account onboarding.
type RegistrationService struct {
	users port.UserRepository
	log   *zap.Logger
}

// NewRegistrationService constructs a registration service.
func NewRegistrationService(users port.UserRepository) *RegistrationService {
	return &RegistrationService{users: users, log: zap.NewNop()}
}

// WithLogger attaches a logger for registration events.
func (s *RegistrationService) WithLogger(log *zap.Logger) *RegistrationService {
	if log != nil {
		s.log = log
	}
	return s
}

// RegisterUser validates the payload, hashes the credential, and persists the
// user. A duplicate email surfaces as the storage layer's unique-violation
// error, which the transport layer translates to a conflict.
func (s *RegistrationService) RegisterUser(ctx context.Context, name, email, password string) (domain.User, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)

	if name == "" || email == "" || password == "" {
		return domain.User{}, fmt.Errorf("%w: name, email and password are required", ErrInvalidInput)
	}
	if !emailFormat.MatchString(email) {
		return domain.User{}, fmt.Errorf("%w: invalid email format", ErrInvalidInput)
	}
	if len(password) < minPasswordLength {
		return domain.User{}, fmt.Errorf("%w: password must be at least %d characters", ErrInvalidInput, minPasswordLength)
	}

	passwordHash, err := security.HashPassword(password)
	if err != nil {
		return domain.User{}, fmt.Errorf("hash password: %w", err)
	}

	user := domain.User{
		ID:           uuid.NewString(),
		Name:         name,
		Email:        email,
		PasswordHash: passwordHash,
		PasswordAlgo: "argon2id",
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.users.Create(ctx, user); err != nil {
		return domain.User{}, err
	}

	s.log.Info("user registered",
		zap.String("user_id", user.ID),
		zap.String("email", logger.MaskEmail(user.Email)),
	)

	return user, nil
}
