package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/taskdeck/taskdeck/internal/domain"
	"github.com/taskdeck/taskdeck/internal/usecase"
)

// taskUsecaser is the subset of TaskUsecase the handler needs.
type taskUsecaser interface {
	Create(ctx context.Context, input usecase.CreateTaskInput) (*domain.Task, error)
	GetByID(ctx context.Context, id, userID string) (*domain.Task, error)
	List(ctx context.Context, userID string) ([]*domain.Task, error)
	ListByStatus(ctx context.Context, userID, status string) ([]*domain.Task, error)
	Update(ctx context.Context, id, userID string, input usecase.UpdateTaskInput) (*domain.Task, error)
	Delete(ctx context.Context, id, userID string) error
	Stats(ctx context.Context, userID string) (*domain.TaskStats, error)
}

type TaskHandler struct {
	tasks        taskUsecaser
	logger       *slog.Logger
	exposeErrors bool
}

func NewTaskHandler(tasks taskUsecaser, logger *slog.Logger, exposeErrors bool) *TaskHandler {
	return &TaskHandler{
		tasks:        tasks,
		logger:       logger.With("component", "task_handler"),
		exposeErrors: exposeErrors,
	}
}

type taskResponse struct {
	ID          string          `json:"id"`
	Title       string          `json:"title"`
	Description *string         `json:"description,omitempty"`
	Status      domain.Status   `json:"status"`
	Priority    domain.Priority `json:"priority"`
	DueDate     *time.Time      `json:"dueDate,omitempty"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

func toTaskResponse(t *domain.Task) taskResponse {
	return taskResponse{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Status:      t.Status,
		Priority:    t.Priority,
		DueDate:     t.DueDate,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

func toTaskResponses(tasks []*domain.Task) []taskResponse {
	items := make([]taskResponse, len(tasks))
	for i, t := range tasks {
		items[i] = toTaskResponse(t)
	}
	return items
}

type createTaskRequest struct {
	Title       string     `json:"title"`
	Description *string    `json:"description"`
	Status      string     `json:"status"`
	Priority    string     `json:"priority"`
	DueDate     *time.Time `json:"dueDate"`
}

// POST /api/tasks
func (h *TaskHandler) Create(c *gin.Context) {
	var req createTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}

	task, err := h.tasks.Create(c.Request.Context(), usecase.CreateTaskInput{
		UserID:      c.GetString("userID"),
		Title:       req.Title,
		Description: req.Description,
		Status:      domain.Status(req.Status),
		Priority:    domain.Priority(req.Priority),
		DueDate:     req.DueDate,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrTitleRequired):
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": errTitleRequired})
		case errors.Is(err, domain.ErrInvalidStatus):
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": errInvalidStatus})
		case errors.Is(err, domain.ErrInvalidPriority):
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": errInvalidPriority})
		default:
			h.logger.ErrorContext(c.Request.Context(), "create task", "error", err)
			c.JSON(http.StatusInternalServerError,
				gin.H{"success": false, "message": internalMessage(h.exposeErrors, err)})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Task created successfully",
		"task":    toTaskResponse(task),
	})
}

// GET /api/tasks
func (h *TaskHandler) List(c *gin.Context) {
	tasks, err := h.tasks.List(c.Request.Context(), c.GetString("userID"))
	if err != nil {
		h.logger.ErrorContext(c.Request.Context(), "list tasks", "error", err)
		c.JSON(http.StatusInternalServerError,
			gin.H{"success": false, "message": internalMessage(h.exposeErrors, err)})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"count":   len(tasks),
		"tasks":   toTaskResponses(tasks),
	})
}

// GET /api/tasks/status/:status
func (h *TaskHandler) ListByStatus(c *gin.Context) {
	status := c.Param("status")

	tasks, err := h.tasks.ListByStatus(c.Request.Context(), c.GetString("userID"), status)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidStatus) {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": errInvalidStatus})
			return
		}
		h.logger.ErrorContext(c.Request.Context(), "list tasks by status", "status", status, "error", err)
		c.JSON(http.StatusInternalServerError,
			gin.H{"success": false, "message": internalMessage(h.exposeErrors, err)})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"status":  status,
		"count":   len(tasks),
		"tasks":   toTaskResponses(tasks),
	})
}

// GET /api/tasks/:id
func (h *TaskHandler) GetByID(c *gin.Context) {
	taskID := c.Param("id")

	task, err := h.tasks.GetByID(c.Request.Context(), taskID, c.GetString("userID"))
	if err != nil {
		if errors.Is(err, domain.ErrTaskNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": errTaskNotFound})
			return
		}
		h.logger.ErrorContext(c.Request.Context(), "get task", "task_id", taskID, "error", err)
		c.JSON(http.StatusInternalServerError,
			gin.H{"success": false, "message": internalMessage(h.exposeErrors, err)})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "task": toTaskResponse(task)})
}

type updateTaskRequest struct {
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	Status      *string    `json:"status"`
	Priority    *string    `json:"priority"`
	DueDate     *time.Time `json:"dueDate"`
}

// PUT /api/tasks/:id
func (h *TaskHandler) Update(c *gin.Context) {
	taskID := c.Param("id")

	var req updateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}

	input := usecase.UpdateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		DueDate:     req.DueDate,
	}
	if req.Status != nil {
		s := domain.Status(*req.Status)
		input.Status = &s
	}
	if req.Priority != nil {
		p := domain.Priority(*req.Priority)
		input.Priority = &p
	}

	task, err := h.tasks.Update(c.Request.Context(), taskID, c.GetString("userID"), input)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrTaskNotFound):
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": errTaskNotFound})
		case errors.Is(err, domain.ErrTitleRequired):
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": errTitleRequired})
		case errors.Is(err, domain.ErrInvalidStatus):
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": errInvalidStatus})
		case errors.Is(err, domain.ErrInvalidPriority):
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": errInvalidPriority})
		default:
			h.logger.ErrorContext(c.Request.Context(), "update task", "task_id", taskID, "error", err)
			c.JSON(http.StatusInternalServerError,
				gin.H{"success": false, "message": internalMessage(h.exposeErrors, err)})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Task updated successfully",
		"task":    toTaskResponse(task),
	})
}

// DELETE /api/tasks/:id
func (h *TaskHandler) Delete(c *gin.Context) {
	taskID := c.Param("id")

	err := h.tasks.Delete(c.Request.Context(), taskID, c.GetString("userID"))
	if err != nil {
		if errors.Is(err, domain.ErrTaskNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": errTaskNotFound})
			return
		}
		h.logger.ErrorContext(c.Request.Context(), "delete task", "task_id", taskID, "error", err)
		c.JSON(http.StatusInternalServerError,
			gin.H{"success": false, "message": internalMessage(h.exposeErrors, err)})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Task deleted successfully"})
}

// GET /api/tasks/stats
func (h *TaskHandler) Stats(c *gin.Context) {
	stats, err := h.tasks.Stats(c.Request.Context(), c.GetString("userID"))
	if err != nil {
		h.logger.ErrorContext(c.Request.Context(), "task stats", "error", err)
		c.JSON(http.StatusInternalServerError,
			gin.H{"success": false, "message": internalMessage(h.exposeErrors, err)})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":       true,
		"totalTasks":    stats.Total,
		"statusStats":   stats.ByStatus,
		"priorityStats": stats.ByPriority,
	})
}
