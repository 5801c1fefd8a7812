package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	pgxmock "github.com/pashagolub/pgxmock/v2"

	"github.com/Chakraaaa/taskflow/internal/core/domain"
	"github.com/Chakraaaa/taskflow/internal/core/port"
	"github.com/Chakraaaa/taskflow/internal/repository"
)

func TestTaskRepository_Create(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock.NewPool: %v", err)
	}
	defer mock.Close()

	repo := NewTaskRepository(mock)

	now := time.Now().UTC()
	description := "quarterly numbers"
	task := domain.Task{
		ID:          "task-1",
		UserID:      "user-1",
		PeriodID:    "period-1",
		Title:       "Write report",
		Description: &description,
		Status:      domain.TaskStatusPending,
		Priority:    domain.TaskPriorityHigh,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	mock.ExpectExec(`INSERT INTO taskflow\.tasks`).
		WithArgs(task.ID, task.UserID, task.PeriodID, task.Title, description, task.Status, task.Priority, task.CreatedAt, task.UpdatedAt).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	if err := repo.Create(context.Background(), task); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestTaskRepository_Create_NilDescription(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock.NewPool: %v", err)
	}
	defer mock.Close()

	repo := NewTaskRepository(mock)

	now := time.Now().UTC()
	task := domain.Task{
		ID:        "task-1",
		UserID:    "user-1",
		PeriodID:  "period-1",
		Title:     "Write report",
		Status:    domain.TaskStatusPending,
		Priority:  domain.TaskPriorityMedium,
		CreatedAt: now,
		UpdatedAt: now,
	}

	mock.ExpectExec(`INSERT INTO taskflow\.tasks`).
		WithArgs(task.ID, task.UserID, task.PeriodID, task.Title, nil, task.Status, task.Priority, task.CreatedAt, task.UpdatedAt).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	if err := repo.Create(context.Background(), task); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestTaskRepository_ListByUser_OrdersByPriorityRank(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock.NewPool: %v", err)
	}
	defer mock.Close()

	repo := NewTaskRepository(mock)
	now := time.Now().UTC()

	rows := pgxmock.NewRows([]string{"id", "user_id", "period_id", "title", "description", "status", "priority", "created_at", "updated_at"}).
		AddRow("t1", "user-1", "p1", "Urgent", nil, domain.TaskStatusPending, domain.TaskPriorityHigh, now, now).
		AddRow("t2", "user-1", "p1", "Later", "notes", domain.TaskStatusDone, domain.TaskPriorityLow, now, now)

	mock.ExpectQuery(`SELECT .+ FROM taskflow\.tasks WHERE user_id = \$1 ORDER BY CASE priority WHEN 'high' THEN 1 WHEN 'medium' THEN 2 WHEN 'low' THEN 3 ELSE 4 END ASC, created_at DESC`).
		WithArgs("user-1").
		WillReturnRows(rows)

	tasks, err := repo.ListByUser(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("ListByUser returned error: %v", err)
	}
	if len(tasks) != 2 {
		t.Fatalf("expected 2 tasks, got %d", len(tasks))
	}
	if tasks[0].Description != nil {
		t.Fatalf("expected nil description on first row")
	}
	if tasks[1].Description == nil || *tasks[1].Description != "notes" {
		t.Fatalf("expected description on second row")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestTaskRepository_Update(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock.NewPool: %v", err)
	}
	defer mock.Close()

	repo := NewTaskRepository(mock)
	now := time.Now().UTC()

	title := "New title"
	status := domain.TaskStatusDone
	patch := port.TaskPatch{Title: &title, Status: &status}

	rows := pgxmock.NewRows([]string{"id", "user_id", "period_id", "title", "description", "status", "priority", "created_at", "updated_at"}).
		AddRow("task-1", "user-1", "period-1", title, nil, status, domain.TaskPriorityMedium, now, now)

	mock.ExpectQuery(`UPDATE taskflow\.tasks SET title = \$1, status = \$2, updated_at = \$3 WHERE id = \$4 AND user_id = \$5 RETURNING id, user_id, period_id, title, description, status, priority, created_at, updated_at`).
		WithArgs(title, status, now, "task-1", "user-1").
		WillReturnRows(rows)

	task, err := repo.Update(context.Background(), "task-1", "user-1", patch, now)
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if task.Title != title || task.Status != status {
		t.Fatalf("unexpected updated task: %+v", task)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestTaskRepository_Update_NotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock.NewPool: %v", err)
	}
	defer mock.Close()

	repo := NewTaskRepository(mock)

	title := "New title"
	mock.ExpectQuery(`UPDATE taskflow\.tasks SET`).
		WithArgs(title, pgxmock.AnyArg(), "missing", "user-1").
		WillReturnError(pgx.ErrNoRows)

	if _, err := repo.Update(context.Background(), "missing", "user-1", port.TaskPatch{Title: &title}, time.Now().UTC()); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestTaskRepository_Delete_NotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock.NewPool: %v", err)
	}
	defer mock.Close()

	repo := NewTaskRepository(mock)

	mock.ExpectExec(`DELETE FROM taskflow\.tasks WHERE id = \$1 AND user_id = \$2`).
		WithArgs("missing", "user-1").
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	if err := repo.Delete(context.Background(), "missing", "user-1"); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
