package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Chakraaaa/taskflow/internal/core/domain"
	"github.com/Chakraaaa/taskflow/internal/core/port"
	"github.com/Chakraaaa/taskflow/internal/repository"
)

// dateLayout is the wire format for period boundaries.
const dateLayout = "2006-01-02"

var (
	// ErrPeriodNotFound indicates the period does not exist or belongs to
	// another user. The two cases are deliberately indistinguishable.
	ErrPeriodNotFound = errors.New("period not found")
	// ErrPeriodLimitReached indicates the caller already owns the maximum
	// number of periods.
	ErrPeriodLimitReached = errors.New("period limit reached")
	// ErrPeriodHasTasks indicates the period cannot be deleted while tasks
	// still reference it.
	ErrPeriodHasTasks = errors.New("period has tasks")
)

// CreatePeriodInput carries the period creation payload. Dates arrive in
// YYYY-MM-DD form.
type CreatePeriodInput struct {
	Title     string
	StartDate string
	EndDate   string
}

// PeriodService enforces the period business rules for a resolved user.
type PeriodService struct {
	periods port.PeriodRepository
}

// NewPeriodService constructs a PeriodService instance.
func NewPeriodService(periods port.PeriodRepository) *PeriodService {
	return &PeriodService{periods: periods}
}

// Create validates and persists a new period owned by userID. The per-user
// cap is enforced atomically by the repository.
func (s *PeriodService) Create(ctx context.Context, userID string, input CreatePeriodInput) (*domain.Period, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, fmt.Errorf("%w: title is required", ErrInvalidInput)
	}
	if input.StartDate == "" || input.EndDate == "" {
		return nil, fmt.Errorf("%w: start_date and end_date are required", ErrInvalidInput)
	}

	startDate, err := time.Parse(dateLayout, input.StartDate)
	if err != nil {
		return nil, fmt.Errorf("%w: start_date must be a valid YYYY-MM-DD date", ErrInvalidInput)
	}
	endDate, err := time.Parse(dateLayout, input.EndDate)
	if err != nil {
		return nil, fmt.Errorf("%w: end_date must be a valid YYYY-MM-DD date", ErrInvalidInput)
	}
	if endDate.Before(startDate) {
		return nil, fmt.Errorf("%w: end_date must not precede start_date", ErrInvalidInput)
	}

	now := time.Now().UTC()
	period := domain.Period{
		ID:        uuid.NewString(),
		UserID:    userID,
		Title:     title,
		StartDate: startDate,
		EndDate:   endDate,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.periods.Create(ctx, period, domain.MaxPeriodsPerUser); err != nil {
		if errors.Is(err, repository.ErrLimitReached) {
			return nil, ErrPeriodLimitReached
		}
		return nil, fmt.Errorf("create period: %w", err)
	}

	return &period, nil
}

// List returns all periods owned by userID ordered by start date ascending.
func (s *PeriodService) List(ctx context.Context, userID string) ([]domain.Period, error) {
	periods, err := s.periods.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list periods: %w", err)
	}
	return periods, nil
}

// Get returns the period if it exists and is owned by userID.
func (s *PeriodService) Get(ctx context.Context, userID, id string) (*domain.Period, error) {
	period, err := s.periods.GetByID(ctx, id, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPeriodNotFound
		}
		return nil, fmt.Errorf("get period: %w", err)
	}
	return period, nil
}

// Delete removes the period unless tasks still reference it.
func (s *PeriodService) Delete(ctx context.Context, userID, id string) error {
	if err := s.periods.Delete(ctx, id, userID); err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return ErrPeriodNotFound
		case errors.Is(err, repository.ErrPeriodInUse):
			return ErrPeriodHasTasks
		}
		return fmt.Errorf("delete period: %w", err)
	}
	return nil
}
