package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mfiorvanti/stride/internal/adapters/handler/http/middleware"
	"github.com/mfiorvanti/stride/internal/core/domain"
	"github.com/mfiorvanti/stride/internal/core/services"
)

type GoalHandler struct {
	svc *services.GoalService
}

func NewGoalHandler(svc *services.GoalService) *GoalHandler {
	return &GoalHandler{svc: svc}
}

type createGoalRequest struct {
	Type        string     `json:"goal_type" binding:"required"`
	Title       string     `json:"title" binding:"required"`
	Unit        string     `json:"unit" binding:"required"`
	TargetValue float64    `json:"target_value"`
	Deadline    *time.Time `json:"deadline"`
	StartDate   *time.Time `json:"start_date"`
}

type updateGoalRequest struct {
	Title       string     `json:"title"`
	TargetValue *float64   `json:"target_value"`
	Deadline    *time.Time `json:"deadline"`
	Status      string     `json:"status"`
	Version     int        `json:"version"`
}

func (h *GoalHandler) RegisterRoutes(router *gin.RouterGroup) {
	goals := router.Group("/goals")
	{
		goals.POST("", h.Create)
		goals.GET("", h.List)
		goals.GET("/:id", h.Get)
		goals.PUT("/:id", h.Update)
		goals.DELETE("/:id", h.Delete)
	}
}

func (h *GoalHandler) Create(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user context missing"})
		return
	}

	var req createGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	input := services.CreateGoalInput{
		UserID:      userID,
		Type:        req.Type,
		Title:       req.Title,
		Unit:        req.Unit,
		TargetValue: req.TargetValue,
	}
	if req.Deadline != nil {
		input.Deadline = *req.Deadline
	}
	if req.StartDate != nil {
		input.StartDate = *req.StartDate
	}

	goal, err := h.svc.Create(c.Request.Context(), input)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidGoalType) ||
			errors.Is(err, domain.ErrGoalTitleEmpty) ||
			errors.Is(err, domain.ErrGoalTitleTooLong) ||
			errors.Is(err, domain.ErrGoalUnitEmpty) ||
			errors.Is(err, domain.ErrInvalidTargetValue) ||
			errors.Is(err, domain.ErrMissingDeadline) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusCreated, goal)
}

func (h *GoalHandler) Get(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user context missing"})
		return
	}

	goal, err := h.svc.GetByID(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		if errors.Is(err, domain.ErrGoalNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "goal not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, goal)
}

func (h *GoalHandler) List(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user context missing"})
		return
	}

	filter := domain.GoalFilter{
		Status: c.Query("status"),
		Type:   c.Query("goal_type"),
	}

	goals, err := h.svc.ListByUserID(c.Request.Context(), userID, filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, goals)
}

func (h *GoalHandler) Update(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user context missing"})
		return
	}

	var req updateGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	goal, err := h.svc.Update(c.Request.Context(), services.UpdateGoalInput{
		ID:          c.Param("id"),
		UserID:      userID,
		Title:       req.Title,
		TargetValue: req.TargetValue,
		Deadline:    req.Deadline,
		Status:      req.Status,
		Version:     req.Version,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrGoalConflict):
			c.JSON(http.StatusConflict, gin.H{
				"error":   "version conflict",
				"message": "Data has been modified elsewhere. Please sync.",
			})
		case errors.Is(err, domain.ErrGoalNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "goal not found"})
		case errors.Is(err, domain.ErrInvalidGoalType),
			errors.Is(err, domain.ErrInvalidGoalStatus),
			errors.Is(err, domain.ErrGoalTitleEmpty),
			errors.Is(err, domain.ErrGoalTitleTooLong),
			errors.Is(err, domain.ErrInvalidTargetValue):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		}
		return
	}

	c.JSON(http.StatusOK, goal)
}

func (h *GoalHandler) Delete(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user context missing"})
		return
	}

	err := h.svc.Delete(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		if errors.Is(err, domain.ErrGoalNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "goal not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.Status(http.StatusNoContent)
}
