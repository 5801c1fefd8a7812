package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Chakraaaa/taskflow/internal/core/domain"
	"github.com/Chakraaaa/taskflow/internal/transport/http/middleware"
)

const dateLayout = "2006-01-02"

// APIResponse is the envelope returned by every endpoint.
type APIResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
	Count   *int   `json:"count,omitempty"`
	Token   string `json:"token,omitempty"`
	TraceID string `json:"trace_id,omitempty"`
}

// NewErrorResponse creates an error envelope carrying the request trace ID.
func NewErrorResponse(c *gin.Context, message string) APIResponse {
	return APIResponse{
		Success: false,
		Message: message,
		TraceID: middleware.GetTraceID(c),
	}
}

// NewSuccessResponse creates a success envelope with an optional payload.
func NewSuccessResponse(message string, data any) APIResponse {
	return APIResponse{
		Success: true,
		Message: message,
		Data:    data,
	}
}

// NewListResponse creates a success envelope for collection endpoints.
func NewListResponse(message string, data any, count int) APIResponse {
	return APIResponse{
		Success: true,
		Message: message,
		Data:    data,
		Count:   &count,
	}
}

// RegisterRequest defines the account registration payload.
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest defines the payload for the login endpoint.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// CreatePeriodRequest defines the payload for creating a period.
type CreatePeriodRequest struct {
	Title     string `json:"title"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

// CreateTaskRequest defines the payload for creating a task.
type CreateTaskRequest struct {
	Title       string  `json:"title"`
	Description *string `json:"description,omitempty"`
	Status      string  `json:"status"`
	Priority    string  `json:"priority"`
	PeriodID    string  `json:"period_id"`
}

// UpdateTaskRequest defines the partial update payload for a task. Absent
// fields are left untouched.
type UpdateTaskRequest struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	Status      *string `json:"status,omitempty"`
	Priority    *string `json:"priority,omitempty"`
	PeriodID    *string `json:"period_id,omitempty"`
}

// UserPayload describes a user view returned by the API.
type UserPayload struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// PeriodPayload describes a period view returned by the API.
type PeriodPayload struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Title     string    `json:"title"`
	StartDate string    `json:"start_date"`
	EndDate   string    `json:"end_date"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TaskPayload describes a task view returned by the API.
type TaskPayload struct {
	ID          string              `json:"id"`
	UserID      string              `json:"user_id"`
	PeriodID    string              `json:"period_id"`
	Title       string              `json:"title"`
	Description *string             `json:"description,omitempty"`
	Status      domain.TaskStatus   `json:"status"`
	Priority    domain.TaskPriority `json:"priority"`
	CreatedAt   time.Time           `json:"created_at"`
	UpdatedAt   time.Time           `json:"updated_at"`
}

func newUserPayload(user domain.User) UserPayload {
	return UserPayload{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		CreatedAt: user.CreatedAt,
	}
}

func newPeriodPayload(period domain.Period) PeriodPayload {
	return PeriodPayload{
		ID:        period.ID,
		UserID:    period.UserID,
		Title:     period.Title,
		StartDate: period.StartDate.Format(dateLayout),
		EndDate:   period.EndDate.Format(dateLayout),
		CreatedAt: period.CreatedAt,
		UpdatedAt: period.UpdatedAt,
	}
}

func newPeriodPayloads(periods []domain.Period) []PeriodPayload {
	payloads := make([]PeriodPayload, 0, len(periods))
	for _, period := range periods {
		payloads = append(payloads, newPeriodPayload(period))
	}
	return payloads
}

func newTaskPayload(task domain.Task) TaskPayload {
	return TaskPayload{
		ID:          task.ID,
		UserID:      task.UserID,
		PeriodID:    task.PeriodID,
		Title:       task.Title,
		Description: task.Description,
		Status:      task.Status,
		Priority:    task.Priority,
		CreatedAt:   task.CreatedAt,
		UpdatedAt:   task.UpdatedAt,
	}
}

func newTaskPayloads(tasks []domain.Task) []TaskPayload {
	payloads := make([]TaskPayload, 0, len(tasks))
	for _, task := range tasks {
		payloads = append(payloads, newTaskPayload(task))
	}
	return payloads
}
