package port

import (
	"context"

	"github.com/Chakraaaa/taskflow/internal/core/domain"
)

// PeriodRepository exposes persistence behavior for periods. Every read and
// write is scoped to the owning user.
type PeriodRepository interface {
	// Create inserts the period only while the owner holds fewer than
	// maxOwned periods. Returns repository.ErrLimitReached otherwise.
	Create(ctx context.Context, period domain.Period, maxOwned int) error
	ListByUser(ctx context.Context, userID string) ([]domain.Period, error)
	GetByID(ctx context.Context, id, userID string) (*domain.Period, error)
	// Delete removes the period unless tasks still reference it, in which
	// case it returns repository.ErrPeriodInUse.
	Delete(ctx context.Context, id, userID string) error
}
