package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	squirrel "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/Chakraaaa/taskflow/internal/core/domain"
	"github.com/Chakraaaa/taskflow/internal/core/port"
	"github.com/Chakraaaa/taskflow/internal/repository"
)

const taskColumns = "id, user_id, period_id, title, description, status, priority, created_at, updated_at"

// priorityRankExpr orders high before medium before low, with anything else
// sorting last. Must match domain.TaskPriority.Rank.
const priorityRankExpr = "CASE priority WHEN 'high' THEN 1 WHEN 'medium' THEN 2 WHEN 'low' THEN 3 ELSE 4 END ASC"

// TaskRepository implements port.TaskRepository using PostgreSQL.
type TaskRepository struct {
	exec    pgExecutor
	builder squirrel.StatementBuilderType
}

// NewTaskRepository wires a PostgreSQL-backed task repository.
func NewTaskRepository(exec pgExecutor) *TaskRepository {
	return &TaskRepository{
		exec:    exec,
		builder: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Create inserts a new task row.
func (r *TaskRepository) Create(ctx context.Context, task domain.Task) error {
	var description any
	if task.Description != nil && *task.Description != "" {
		description = *task.Description
	}

	stmt, args, err := r.builder.Insert("taskflow.tasks").
		Columns("id", "user_id", "period_id", "title", "description", "status", "priority", "created_at", "updated_at").
		Values(task.ID, task.UserID, task.PeriodID, task.Title, description, task.Status, task.Priority, task.CreatedAt, task.UpdatedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert task sql: %w", err)
	}

	if _, err := r.exec.Exec(ctx, stmt, args...); err != nil {
		return fmt.Errorf("insert task: %w", err)
	}

	return nil
}

// ListByUser returns the owner's tasks ordered by priority rank ascending,
// then creation time descending.
func (r *TaskRepository) ListByUser(ctx context.Context, userID string) ([]domain.Task, error) {
	stmt, args, err := r.builder.
		Select("id", "user_id", "period_id", "title", "description", "status", "priority", "created_at", "updated_at").
		From("taskflow.tasks").
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy(priorityRankExpr, "created_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select tasks sql: %w", err)
	}

	rows, err := r.exec.Query(ctx, stmt, args...)
	if err != nil {
		return nil, fmt.Errorf("query tasks: %w", err)
	}
	defer rows.Close()

	tasks := make([]domain.Task, 0)
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, *task)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate tasks: %w", err)
	}

	return tasks, nil
}

// GetByID retrieves a task scoped to its owner.
func (r *TaskRepository) GetByID(ctx context.Context, id, userID string) (*domain.Task, error) {
	stmt, args, err := r.builder.
		Select("id", "user_id", "period_id", "title", "description", "status", "priority", "created_at", "updated_at").
		From("taskflow.tasks").
		Where(squirrel.Eq{"id": id, "user_id": userID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select task sql: %w", err)
	}

	task, err := scanTask(r.exec.QueryRow(ctx, stmt, args...))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}

	return task, nil
}

// Update applies the non-nil patch fields in a single statement and returns
// the updated row.
func (r *TaskRepository) Update(ctx context.Context, id, userID string, patch port.TaskPatch, updatedAt time.Time) (*domain.Task, error) {
	q := r.builder.Update("taskflow.tasks")

	if patch.Title != nil {
		q = q.Set("title", *patch.Title)
	}
	if patch.Description != nil {
		if *patch.Description == "" {
			q = q.Set("description", nil)
		} else {
			q = q.Set("description", *patch.Description)
		}
	}
	if patch.Status != nil {
		q = q.Set("status", *patch.Status)
	}
	if patch.Priority != nil {
		q = q.Set("priority", *patch.Priority)
	}
	if patch.PeriodID != nil {
		q = q.Set("period_id", *patch.PeriodID)
	}

	stmt, args, err := q.
		Set("updated_at", updatedAt).
		Where(squirrel.Eq{"id": id, "user_id": userID}).
		Suffix("RETURNING " + taskColumns).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build update task sql: %w", err)
	}

	task, err := scanTask(r.exec.QueryRow(ctx, stmt, args...))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}

	return task, nil
}

// Delete removes the owner's task unconditionally.
func (r *TaskRepository) Delete(ctx context.Context, id, userID string) error {
	stmt, args, err := r.builder.
		Delete("taskflow.tasks").
		Where(squirrel.Eq{"id": id, "user_id": userID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete task sql: %w", err)
	}

	tag, err := r.exec.Exec(ctx, stmt, args...)
	if err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}

	return nil
}

func scanTask(row pgx.Row) (*domain.Task, error) {
	var (
		task        domain.Task
		description sql.NullString
	)

	if err := row.Scan(
		&task.ID,
		&task.UserID,
		&task.PeriodID,
		&task.Title,
		&description,
		&task.Status,
		&task.Priority,
		&task.CreatedAt,
		&task.UpdatedAt,
	); err != nil {
		if err == pgx.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("scan task: %w", err)
	}

	if description.Valid {
		val := description.String
		task.Description = &val
	}

	return &task, nil
}
