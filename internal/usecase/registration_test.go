package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/Chakraaaa/taskflow/internal/core/domain"
	"github.com/Chakraaaa/taskflow/internal/infra/security"
)

type mockUserRepository struct {
	createErr   error
	createCalls int
	createdUser domain.User

	getByEmailResult *domain.User
	getByEmailErr    error
	getByEmailCalls  int
	getByEmailLast   string
}

func (m *mockUserRepository) Create(_ context.Context, user domain.User) error {
	m.createCalls++
	m.createdUser = user
	return m.createErr
}

func (m *mockUserRepository) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	m.getByEmailCalls++
	m.getByEmailLast = email
	if m.getByEmailResult != nil {
		copy := *m.getByEmailResult
		return &copy, m.getByEmailErr
	}
	return nil, m.getByEmailErr
}

func TestRegistrationService_RegisterUser(t *testing.T) {
	userRepo := &mockUserRepository{}
	service := NewRegistrationService(userRepo)

	user, err := service.RegisterUser(context.Background(), "  Alice  ", " alice@example.com ", "secret123")
	if err != nil {
		t.Fatalf("RegisterUser returned error: %v", err)
	}

	if userRepo.createCalls != 1 {
		t.Fatalf("expected Create to be called once, got %d", userRepo.createCalls)
	}
	if user.ID == "" {
		t.Fatalf("expected generated user ID")
	}
	if user.Name != "Alice" {
		t.Fatalf("expected trimmed name Alice, got %q", user.Name)
	}
	if user.Email != "alice@example.com" {
		t.Fatalf("expected trimmed email, got %q", user.Email)
	}
	if user.PasswordHash == "" || user.PasswordHash == "secret123" {
		t.Fatalf("expected password to be hashed")
	}
	if user.PasswordAlgo != "argon2id" {
		t.Fatalf("expected argon2id algo, got %q", user.PasswordAlgo)
	}

	if ok, err := security.VerifyPassword("secret123", user.PasswordHash); err != nil || !ok {
		t.Fatalf("expected stored hash to match original password")
	}
}

func TestRegistrationService_RegisterUser_ValidationErrors(t *testing.T) {
	cases := []struct {
		name     string
		username string
		email    string
		password string
		detail   string
	}{
		{"missing name", "", "a@example.com", "secret123", "required"},
		{"missing email", "alice", "", "secret123", "required"},
		{"missing password", "alice", "a@example.com", "", "required"},
		{"email without at", "alice", "alice.example.com", "secret123", "email"},
		{"email without domain dot", "alice", "alice@example", "secret123", "email"},
		{"email with spaces", "alice", "ali ce@example.com", "secret123", "email"},
		{"short password", "alice", "a@example.com", "12345", "6 characters"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			userRepo := &mockUserRepository{}
			service := NewRegistrationService(userRepo)

			_, err := service.RegisterUser(context.Background(), tc.username, tc.email, tc.password)
			if !errors.Is(err, ErrInvalidInput) {
				t.Fatalf("expected ErrInvalidInput, got %v", err)
			}
			if !strings.Contains(err.Error(), tc.detail) {
				t.Fatalf("expected error mentioning %q, got %v", tc.detail, err)
			}
			if userRepo.createCalls != 0 {
				t.Fatalf("expected user not to be created")
			}
		})
	}
}

func TestRegistrationService_RegisterUser_CreateErrorPassesThrough(t *testing.T) {
	storageErr := errors.New("unique violation")
	userRepo := &mockUserRepository{createErr: storageErr}
	service := NewRegistrationService(userRepo)

	_, err := service.RegisterUser(context.Background(), "alice", "alice@example.com", "secret123")
	if !errors.Is(err, storageErr) {
		t.Fatalf("expected storage error to surface unchanged, got %v", err)
	}
}
