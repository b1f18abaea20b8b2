package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/taskdeck/taskdeck/internal/application"
	"github.com/taskdeck/taskdeck/internal/domain/entity"
	"github.com/taskdeck/taskdeck/internal/interface/middleware"
	"github.com/taskdeck/taskdeck/pkg/response"
	"github.com/taskdeck/taskdeck/pkg/validation"
)

// TaskHandler maps the task routes onto the task service. Every handler
// reads the owner id from the resolved identity only.
type TaskHandler struct {
	Svc    *application.TaskService
	Logger *logrus.Logger
}

func NewTaskHandler(svc *application.TaskService, logger *logrus.Logger) *TaskHandler {
	return &TaskHandler{Svc: svc, Logger: logger}
}

type createTaskRequest struct {
	Title       string `json:"title" binding:"required,max=200"`
	Description string `json:"description" binding:"max=2000"`
}

type updateTaskRequest struct {
	Title       *string `json:"title" binding:"omitempty,max=200"`
	Description *string `json:"description" binding:"omitempty,max=2000"`
}

type taskResponse struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	IsCompleted bool      `json:"is_completed"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func toTaskResponse(t *entity.Task) taskResponse {
	return taskResponse{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		IsCompleted: t.IsCompleted,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

// Create handles POST /tasks.
func (h *TaskHandler) Create(c *gin.Context) {
	var req createTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationErr(c, validation.ToDetails(err))
		return
	}
	t, err := h.Svc.Create(c.Request.Context(), middleware.UserID(c), req.Title, req.Description)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, toTaskResponse(t))
}

// List handles GET /tasks.
func (h *TaskHandler) List(c *gin.Context) {
	list, err := h.Svc.List(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	out := make([]taskResponse, len(list))
	for i := range list {
		out[i] = toTaskResponse(&list[i])
	}
	c.JSON(http.StatusOK, out)
}

// Get handles GET /tasks/:id.
func (h *TaskHandler) Get(c *gin.Context) {
	id, ok := taskID(c)
	if !ok {
		return
	}
	t, err := h.Svc.Get(c.Request.Context(), id, middleware.UserID(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, toTaskResponse(t))
}

// Update handles PUT /tasks/:id; only supplied fields change.
func (h *TaskHandler) Update(c *gin.Context) {
	id, ok := taskID(c)
	if !ok {
		return
	}
	var req updateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationErr(c, validation.ToDetails(err))
		return
	}
	t, err := h.Svc.Update(c.Request.Context(), id, middleware.UserID(c), application.UpdateInput{
		Title:       req.Title,
		Description: req.Description,
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, toTaskResponse(t))
}

// Delete handles DELETE /tasks/:id. Deletion is permanent.
func (h *TaskHandler) Delete(c *gin.Context) {
	id, ok := taskID(c)
	if !ok {
		return
	}
	if err := h.Svc.Delete(c.Request.Context(), id, middleware.UserID(c)); err != nil {
		h.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Toggle handles PATCH /tasks/:id/toggle.
func (h *TaskHandler) Toggle(c *gin.Context) {
	id, ok := taskID(c)
	if !ok {
		return
	}
	t, err := h.Svc.Toggle(c.Request.Context(), id, middleware.UserID(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, toTaskResponse(t))
}

// fail maps every service failure onto the wire error taxonomy. Unknown
// errors become a generic 500; the detail stays server-side.
func (h *TaskHandler) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, application.ErrTaskNotFound):
		response.Err(c, http.StatusNotFound, "Task not found", response.CodeNotFound)
	case errors.Is(err, application.ErrTaskForbidden):
		response.Err(c, http.StatusForbidden, "Not authorized to access this task", response.CodeForbidden)
	case application.IsValidationError(err):
		response.Err(c, http.StatusBadRequest, err.Error(), response.CodeValidation)
	default:
		h.Logger.WithError(err).Error("task operation failed")
		response.Internal(c)
	}
}

// taskID parses the :id path parameter. A non-numeric id cannot reference
// any task, so it answers 404 like an absent one.
func taskID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Err(c, http.StatusNotFound, "Task not found", response.CodeNotFound)
		return 0, false
	}
	return id, true
}
