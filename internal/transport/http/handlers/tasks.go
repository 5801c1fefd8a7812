package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Chakraaaa/taskflow/internal/transport/http/middleware"
	"github.com/Chakraaaa/taskflow/internal/usecase"
)

// TaskHandler exposes the task CRUD endpoints. Every operation is scoped to
// the authenticated user.
type TaskHandler struct {
	tasks *usecase.TaskService
}

// NewTaskHandler constructs TaskHandler.
func NewTaskHandler(tasks *usecase.TaskService) *TaskHandler {
	return &TaskHandler{tasks: tasks}
}

// RegisterRoutes binds task routes onto an authenticated group.
func (h *TaskHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("", h.create)
	r.GET("", h.list)
	r.GET("/:id", h.get)
	r.PUT("/:id", h.update)
	r.DELETE("/:id", h.delete)
}

func (h *TaskHandler) create(c *gin.Context) {
	userID, ok := middleware.GetAuthenticatedUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, NewErrorResponse(c, "authentication required"))
		return
	}

	var req CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, NewErrorResponse(c, "invalid task payload"))
		return
	}

	task, err := h.tasks.Create(c.Request.Context(), userID, usecase.CreateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		Priority:    req.Priority,
		PeriodID:    req.PeriodID,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, NewSuccessResponse("task created", newTaskPayload(*task)))
}

func (h *TaskHandler) list(c *gin.Context) {
	userID, ok := middleware.GetAuthenticatedUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, NewErrorResponse(c, "authentication required"))
		return
	}

	tasks, err := h.tasks.List(c.Request.Context(), userID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	payloads := newTaskPayloads(tasks)
	c.JSON(http.StatusOK, NewListResponse("tasks retrieved", payloads, len(payloads)))
}

func (h *TaskHandler) get(c *gin.Context) {
	userID, ok := middleware.GetAuthenticatedUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, NewErrorResponse(c, "authentication required"))
		return
	}

	task, err := h.tasks.Get(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, NewSuccessResponse("task retrieved", newTaskPayload(*task)))
}

func (h *TaskHandler) update(c *gin.Context) {
	userID, ok := middleware.GetAuthenticatedUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, NewErrorResponse(c, "authentication required"))
		return
	}

	var req UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, NewErrorResponse(c, "invalid task payload"))
		return
	}

	task, err := h.tasks.Update(c.Request.Context(), userID, c.Param("id"), usecase.UpdateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		Priority:    req.Priority,
		PeriodID:    req.PeriodID,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, NewSuccessResponse("task updated", newTaskPayload(*task)))
}

func (h *TaskHandler) delete(c *gin.Context) {
	userID, ok := middleware.GetAuthenticatedUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, NewErrorResponse(c, "authentication required"))
		return
	}

	if err := h.tasks.Delete(c.Request.Context(), userID, c.Param("id")); err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, NewSuccessResponse("task deleted", nil))
}

func (h *TaskHandler) respondError(c *gin.Context, err error) {
	if isInvalidInput(err) {
		c.JSON(http.StatusBadRequest, NewErrorResponse(c, err.Error()))
		return
	}

	RespondWithMappedError(c, err, []ErrorCase{
		{Err: usecase.ErrTaskPeriodLocked, Status: http.StatusConflict, Message: "completed tasks cannot move between periods"},
		{Err: usecase.ErrTaskNotFound, Status: http.StatusNotFound, Message: "task not found"},
		{Err: usecase.ErrPeriodNotFound, Status: http.StatusNotFound, Message: "period not found"},
	}, http.StatusInternalServerError, "task operation failed")
}
