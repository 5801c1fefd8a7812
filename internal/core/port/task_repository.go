package port

import (
	"context"
	"time"

	"github.com/Chakraaaa/taskflow/internal/core/domain"
)

// TaskPatch carries the task fields supplied in a partial update. Nil fields
// are left untouched by the write.
type TaskPatch struct {
	Title       *string
	Description *string
	Status      *domain.TaskStatus
	Priority    *domain.TaskPriority
	PeriodID    *string
}

// Empty reports whether the patch modifies nothing.
func (p TaskPatch) Empty() bool {
	return p.Title == nil && p.Description == nil && p.Status == nil && p.Priority == nil && p.PeriodID == nil
}

// TaskRepository exposes persistence behavior for tasks. Every read and write
// is scoped to the owning user.
type TaskRepository interface {
	Create(ctx context.Context, task domain.Task) error
	// ListByUser returns the owner's tasks ordered by priority rank
	// ascending, then creation time descending.
	ListByUser(ctx context.Context, userID string) ([]domain.Task, error)
	GetByID(ctx context.Context, id, userID string) (*domain.Task, error)
	// Update applies the non-nil patch fields and the refreshed updatedAt in
	// a single statement and returns the resulting row.
	Update(ctx context.Context, id, userID string, patch TaskPatch, updatedAt time.Time) (*domain.Task, error)
	Delete(ctx context.Context, id, userID string) error
}
