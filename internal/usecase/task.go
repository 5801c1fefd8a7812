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

var (
	// ErrTaskNotFound indicates the task does not exist or belongs to another
	// user. The two cases are deliberately indistinguishable.
	ErrTaskNotFound = errors.New("task not found")
	// ErrTaskPeriodLocked indicates a completed task cannot change period.
	ErrTaskPeriodLocked = errors.New("completed task cannot change period")
)

// CreateTaskInput carries the task creation payload. Status and priority fall
// back to their defaults when absent or unrecognized.
type CreateTaskInput struct {
	Title       string
	Description *string
	Status      string
	Priority    string
	PeriodID    string
}

// UpdateTaskInput carries a partial task update. Nil fields are not modified.
// Unlike creation, an unrecognized status or priority here is rejected.
type UpdateTaskInput struct {
	Title       *string
	Description *string
	Status      *string
	Priority    *string
	PeriodID    *string
}

// Empty reports whether the update supplies no fields at all.
func (in UpdateTaskInput) Empty() bool {
	return in.Title == nil && in.Description == nil && in.Status == nil && in.Priority == nil && in.PeriodID == nil
}

// TaskService enforces the task business rules for a resolved user. Period
// cross-references are validated against the same ownership rule the period
// operations use.
type TaskService struct {
	tasks   port.TaskRepository
	periods port.PeriodRepository
}

// NewTaskService constructs a TaskService instance.
func NewTaskService(tasks port.TaskRepository, periods port.PeriodRepository) *TaskService {
	return &TaskService{tasks: tasks, periods: periods}
}

// Create validates and persists a task bound to one of the caller's periods.
// Absent or unrecognized status/priority values silently coerce to the
// defaults; only Update rejects them.
func (s *TaskService) Create(ctx context.Context, userID string, input CreateTaskInput) (*domain.Task, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, fmt.Errorf("%w: title is required", ErrInvalidInput)
	}
	if input.PeriodID == "" {
		return nil, fmt.Errorf("%w: period_id is required", ErrInvalidInput)
	}

	if _, err := s.periods.GetByID(ctx, input.PeriodID, userID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPeriodNotFound
		}
		return nil, fmt.Errorf("check period: %w", err)
	}

	status := domain.TaskStatus(input.Status)
	if !status.Valid() {
		status = domain.TaskStatusPending
	}
	priority := domain.TaskPriority(input.Priority)
	if !priority.Valid() {
		priority = domain.TaskPriorityMedium
	}

	now := time.Now().UTC()
	task := domain.Task{
		ID:        uuid.NewString(),
		UserID:    userID,
		PeriodID:  input.PeriodID,
		Title:     title,
		Status:    status,
		Priority:  priority,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if input.Description != nil {
		trimmed := strings.TrimSpace(*input.Description)
		if trimmed != "" {
			task.Description = &trimmed
		}
	}

	if err := s.tasks.Create(ctx, task); err != nil {
		return nil, fmt.Errorf("create task: %w", err)
	}

	return &task, nil
}

// List returns all tasks owned by userID ordered by priority rank ascending,
// then creation time descending.
func (s *TaskService) List(ctx context.Context, userID string) ([]domain.Task, error) {
	tasks, err := s.tasks.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	return tasks, nil
}

// Get returns the task if it exists and is owned by userID.
func (s *TaskService) Get(ctx context.Context, userID, id string) (*domain.Task, error) {
	task, err := s.tasks.GetByID(ctx, id, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("get task: %w", err)
	}
	return task, nil
}

// Update applies a partial update to the caller's task. Supplying period_id
// for a task whose stored status is done fails regardless of the value; a new
// period otherwise passes the same ownership check as creation.
func (s *TaskService) Update(ctx context.Context, userID, id string, input UpdateTaskInput) (*domain.Task, error) {
	current, err := s.tasks.GetByID(ctx, id, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("get task: %w", err)
	}

	// The lock is evaluated against the stored status, not the status this
	// request may be setting.
	if input.PeriodID != nil && current.Status == domain.TaskStatusDone {
		return nil, ErrTaskPeriodLocked
	}

	if input.PeriodID != nil {
		if _, err := s.periods.GetByID(ctx, *input.PeriodID, userID); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, ErrPeriodNotFound
			}
			return nil, fmt.Errorf("check period: %w", err)
		}
	}

	var patch port.TaskPatch

	if input.Title != nil {
		title := strings.TrimSpace(*input.Title)
		if title == "" {
			return nil, fmt.Errorf("%w: title cannot be empty", ErrInvalidInput)
		}
		patch.Title = &title
	}
	if input.Description != nil {
		description := strings.TrimSpace(*input.Description)
		patch.Description = &description
	}
	if input.Status != nil {
		status := domain.TaskStatus(*input.Status)
		if !status.Valid() {
			return nil, fmt.Errorf("%w: status must be one of pending, in_progress, done", ErrInvalidInput)
		}
		patch.Status = &status
	}
	if input.Priority != nil {
		priority := domain.TaskPriority(*input.Priority)
		if !priority.Valid() {
			return nil, fmt.Errorf("%w: priority must be one of high, medium, low", ErrInvalidInput)
		}
		patch.Priority = &priority
	}
	if input.PeriodID != nil {
		periodID := *input.PeriodID
		patch.PeriodID = &periodID
	}

	if patch.Empty() {
		return nil, fmt.Errorf("%w: no fields to update", ErrInvalidInput)
	}

	task, err := s.tasks.Update(ctx, id, userID, patch, time.Now().UTC())
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("update task: %w", err)
	}

	return task, nil
}

// Delete removes the caller's task unconditionally.
func (s *TaskService) Delete(ctx context.Context, userID, id string) error {
	if err := s.tasks.Delete(ctx, id, userID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrTaskNotFound
		}
		return fmt.Errorf("delete task: %w", err)
	}
	return nil
}
