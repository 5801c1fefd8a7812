package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Chakraaaa/taskflow/internal/transport/http/middleware"
	"github.com/Chakraaaa/taskflow/internal/usecase"
)

// PeriodHandler exposes the period CRUD endpoints. Every operation is scoped
// to the authenticated user.
type PeriodHandler struct {
	periods *usecase.PeriodService
}

// NewPeriodHandler constructs PeriodHandler.
func NewPeriodHandler(periods *usecase.PeriodService) *PeriodHandler {
	return &PeriodHandler{periods: periods}
}

// RegisterRoutes binds period routes onto an authenticated group.
func (h *PeriodHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("", h.create)
	r.GET("", h.list)
	r.GET("/:id", h.get)
	r.DELETE("/:id", h.delete)
}

func (h *PeriodHandler) create(c *gin.Context) {
	userID, ok := middleware.GetAuthenticatedUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, NewErrorResponse(c, "authentication required"))
		return
	}

	var req CreatePeriodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, NewErrorResponse(c, "invalid period payload"))
		return
	}

	period, err := h.periods.Create(c.Request.Context(), userID, usecase.CreatePeriodInput{
		Title:     req.Title,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, NewSuccessResponse("period created", newPeriodPayload(*period)))
}

func (h *PeriodHandler) list(c *gin.Context) {
	userID, ok := middleware.GetAuthenticatedUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, NewErrorResponse(c, "authentication required"))
		return
	}

	periods, err := h.periods.List(c.Request.Context(), userID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	payloads := newPeriodPayloads(periods)
	c.JSON(http.StatusOK, NewListResponse("periods retrieved", payloads, len(payloads)))
}

func (h *PeriodHandler) get(c *gin.Context) {
	userID, ok := middleware.GetAuthenticatedUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, NewErrorResponse(c, "authentication required"))
		return
	}

	period, err := h.periods.Get(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, NewSuccessResponse("period retrieved", newPeriodPayload(*period)))
}

func (h *PeriodHandler) delete(c *gin.Context) {
	userID, ok := middleware.GetAuthenticatedUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, NewErrorResponse(c, "authentication required"))
		return
	}

	if err := h.periods.Delete(c.Request.Context(), userID, c.Param("id")); err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, NewSuccessResponse("period deleted", nil))
}

func (h *PeriodHandler) respondError(c *gin.Context, err error) {
	if isInvalidInput(err) {
		c.JSON(http.StatusBadRequest, NewErrorResponse(c, err.Error()))
		return
	}

	RespondWithMappedError(c, err, []ErrorCase{
		{Err: usecase.ErrPeriodLimitReached, Status: http.StatusBadRequest, Message: "period limit reached"},
		{Err: usecase.ErrPeriodHasTasks, Status: http.StatusBadRequest, Message: "period still has tasks attached"},
		{Err: usecase.ErrPeriodNotFound, Status: http.StatusNotFound, Message: "period not found"},
	}, http.StatusInternalServerError, "period operation failed")
}
