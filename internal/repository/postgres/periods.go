package postgres

import (
	"context"
	"fmt"

	squirrel "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/Chakraaaa/taskflow/internal/core/domain"
	"github.com/Chakraaaa/taskflow/internal/repository"
)

// createPeriodSQL inserts only while the owner holds fewer than the supplied
// maximum, making the cap check and the insert a single atomic statement.
const createPeriodSQL = `
INSERT INTO taskflow.periods (id, user_id, title, start_date, end_date, created_at, updated_at)
SELECT $1, $2, $3, $4, $5, $6, $7
WHERE (SELECT COUNT(*) FROM taskflow.periods WHERE user_id = $2) < $8`

// PeriodRepository implements port.PeriodRepository using PostgreSQL.
type PeriodRepository struct {
	exec    pgExecutor
	builder squirrel.StatementBuilderType
}

// NewPeriodRepository wires a PostgreSQL-backed period repository.
func NewPeriodRepository(exec pgExecutor) *PeriodRepository {
	return &PeriodRepository{
		exec:    exec,
		builder: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Create inserts the period unless the owner already holds maxOwned periods.
func (r *PeriodRepository) Create(ctx context.Context, period domain.Period, maxOwned int) error {
	tag, err := r.exec.Exec(ctx, createPeriodSQL,
		period.ID,
		period.UserID,
		period.Title,
		period.StartDate,
		period.EndDate,
		period.CreatedAt,
		period.UpdatedAt,
		maxOwned,
	)
	if err != nil {
		return fmt.Errorf("insert period: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrLimitReached
	}

	return nil
}

// ListByUser returns the owner's periods ordered by start date ascending.
func (r *PeriodRepository) ListByUser(ctx context.Context, userID string) ([]domain.Period, error) {
	stmt, args, err := r.builder.
		Select("id", "user_id", "title", "start_date", "end_date", "created_at", "updated_at").
		From("taskflow.periods").
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("start_date ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select periods sql: %w", err)
	}

	rows, err := r.exec.Query(ctx, stmt, args...)
	if err != nil {
		return nil, fmt.Errorf("query periods: %w", err)
	}
	defer rows.Close()

	periods := make([]domain.Period, 0)
	for rows.Next() {
		var p domain.Period
		if err := rows.Scan(&p.ID, &p.UserID, &p.Title, &p.StartDate, &p.EndDate, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan period: %w", err)
		}
		periods = append(periods, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate periods: %w", err)
	}

	return periods, nil
}

// GetByID retrieves a period scoped to its owner.
func (r *PeriodRepository) GetByID(ctx context.Context, id, userID string) (*domain.Period, error) {
	stmt, args, err := r.builder.
		Select("id", "user_id", "title", "start_date", "end_date", "created_at", "updated_at").
		From("taskflow.periods").
		Where(squirrel.Eq{"id": id, "user_id": userID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select period sql: %w", err)
	}

	var p domain.Period
	row := r.exec.QueryRow(ctx, stmt, args...)
	if err := row.Scan(&p.ID, &p.UserID, &p.Title, &p.StartDate, &p.EndDate, &p.CreatedAt, &p.UpdatedAt); err != nil {
		if err == pgx.ErrNoRows {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("scan period: %w", err)
	}

	return &p, nil
}

// Delete removes the owner's period unless tasks still reference it. The
// ownership check, the task count, and the delete run inside one transaction
// with the period row locked.
func (r *PeriodRepository) Delete(ctx context.Context, id, userID string) error {
	beginner, ok := r.exec.(txBeginner)
	if !ok {
		return r.deleteWith(ctx, r.exec, id, userID)
	}

	tx, err := beginner.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin delete period: %w", err)
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	if err := r.deleteWith(ctx, tx, id, userID); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit delete period: %w", err)
	}

	return nil
}

func (r *PeriodRepository) deleteWith(ctx context.Context, exec pgExecutor, id, userID string) error {
	var lockedID string
	row := exec.QueryRow(ctx, "SELECT id FROM taskflow.periods WHERE id = $1 AND user_id = $2 FOR UPDATE", id, userID)
	if err := row.Scan(&lockedID); err != nil {
		if err == pgx.ErrNoRows {
			return repository.ErrNotFound
		}
		return fmt.Errorf("lock period: %w", err)
	}

	var taskCount int
	row = exec.QueryRow(ctx, "SELECT COUNT(*) FROM taskflow.tasks WHERE period_id = $1", id)
	if err := row.Scan(&taskCount); err != nil {
		return fmt.Errorf("count period tasks: %w", err)
	}
	if taskCount > 0 {
		return repository.ErrPeriodInUse
	}

	if _, err := exec.Exec(ctx, "DELETE FROM taskflow.periods WHERE id = $1 AND user_id = $2", id, userID); err != nil {
		return fmt.Errorf("delete period: %w", err)
	}

	return nil
}
