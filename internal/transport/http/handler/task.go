package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/ErlanBelekov/projecthub/internal/domain"
	"github.com/ErlanBelekov/projecthub/internal/transport/http/middleware"
	"github.com/ErlanBelekov/projecthub/internal/usecase"
	"github.com/gin-gonic/gin"
)

type taskUsecaser interface {
	ListTasks(ctx context.Context, userID, projectID string) ([]*domain.Task, error)
	CreateTask(ctx context.Context, actor *domain.User, projectID string, in usecase.CreateTaskInput) (*domain.Task, error)
	UpdateTask(ctx context.Context, actor *domain.User, taskID string, patch domain.TaskPatch) (*domain.Task, error)
	DeleteTask(ctx context.Context, actor *domain.User, taskID string) error
}

type TaskHandler struct {
	taskUsecase taskUsecaser
	logger      *slog.Logger
}

func NewTaskHandler(taskUsecase taskUsecaser, logger *slog.Logger) *TaskHandler {
	return &TaskHandler{taskUsecase: taskUsecase, logger: logger.With("component", "task_handler")}
}

type createTaskRequest struct {
	Title       string            `json:"title"       binding:"required"`
	Description string            `json:"description"`
	Status      domain.TaskStatus `json:"status"`
	Priority    domain.Priority   `json:"priority"`
	AssignedTo  string            `json:"assignedTo"`
	DueDate     optionalDate      `json:"dueDate"`
	Completed   bool              `json:"completed"`
}

type updateTaskRequest struct {
	Title       *string            `json:"title"`
	Description *string            `json:"description"`
	Status      *domain.TaskStatus `json:"status"`
	Priority    *domain.Priority   `json:"priority"`
	AssignedTo  *string            `json:"assignedTo"`
	DueDate     optionalDate       `json:"dueDate"`
	Completed   *bool              `json:"completed"`
}

type assigneeResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type taskResponse struct {
	ID          string            `json:"id"`
	Project     string            `json:"project"`
	Title       string            `json:"title"`
	Description string            `json:"description"`
	Status      domain.TaskStatus `json:"status"`
	Priority    domain.Priority   `json:"priority"`
	AssignedTo  *string           `json:"assignedTo"`
	Assignee    *assigneeResponse `json:"assignee,omitempty"`
	DueDate     *time.Time        `json:"dueDate"`
	Completed   bool              `json:"completed"`
	CreatedAt   time.Time         `json:"createdAt"`
	UpdatedAt   time.Time         `json:"updatedAt"`
}

func newTaskResponse(t *domain.Task) taskResponse {
	resp := taskResponse{
		ID:          t.ID,
		Project:     t.ProjectID,
		Title:       t.Title,
		Description: t.Description,
		Status:      t.Status,
		Priority:    t.Priority,
		AssignedTo:  t.AssignedTo,
		DueDate:     t.DueDate,
		Completed:   t.Completed,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
	if t.Assignee != nil {
		resp.Assignee = &assigneeResponse{ID: t.Assignee.ID, Name: t.Assignee.Name, Email: t.Assignee.Email}
	}
	return resp
}

// GET /api/tasks/project/:projectId
func (h *TaskHandler) ListByProject(c *gin.Context) {
	tasks, err := h.taskUsecase.ListTasks(c.Request.Context(), middleware.CurrentUser(c).ID, c.Param("projectId"))
	if err != nil {
		h.writeError(c, "list tasks", err)
		return
	}

	resp := make([]taskResponse, 0, len(tasks))
	for _, t := range tasks {
		resp = append(resp, newTaskResponse(t))
	}
	c.JSON(http.StatusOK, resp)
}

// POST /api/tasks/project/:projectId
func (h *TaskHandler) Create(c *gin.Context) {
	var req createTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": errInvalidTask})
		return
	}

	t, err := h.taskUsecase.CreateTask(c.Request.Context(), middleware.CurrentUser(c), c.Param("projectId"), usecase.CreateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		Priority:    req.Priority,
		AssignedTo:  req.AssignedTo,
		DueDate:     req.DueDate.Value,
		Completed:   req.Completed,
	})
	if err != nil {
		h.writeError(c, "create task", err)
		return
	}
	c.JSON(http.StatusCreated, newTaskResponse(t))
}

// PUT /api/tasks/:taskId
func (h *TaskHandler) Update(c *gin.Context) {
	var req updateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": errInvalidTask})
		return
	}

	patch := domain.TaskPatch{
		Title:        req.Title,
		Description:  req.Description,
		Status:       req.Status,
		Priority:     req.Priority,
		AssignedTo:   req.AssignedTo,
		DueDate:      req.DueDate.Value,
		ClearDueDate: req.DueDate.Set && req.DueDate.Value == nil,
		Completed:    req.Completed,
	}

	t, err := h.taskUsecase.UpdateTask(c.Request.Context(), middleware.CurrentUser(c), c.Param("taskId"), patch)
	if err != nil {
		h.writeError(c, "update task", err)
		return
	}
	c.JSON(http.StatusOK, newTaskResponse(t))
}

// DELETE /api/tasks/:taskId
func (h *TaskHandler) Delete(c *gin.Context) {
	if err := h.taskUsecase.DeleteTask(c.Request.Context(), middleware.CurrentUser(c), c.Param("taskId")); err != nil {
		h.writeError(c, "delete task", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": msgTaskDeleted})
}

func (h *TaskHandler) writeError(c *gin.Context, op string, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"message": errInvalidTask})
	case errors.Is(err, domain.ErrInvalidStatus):
		c.JSON(http.StatusBadRequest, gin.H{"message": errInvalidStatus})
	case errors.Is(err, domain.ErrInvalidPriority):
		c.JSON(http.StatusBadRequest, gin.H{"message": errInvalidPriority})
	case errors.Is(err, domain.ErrProjectNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": errProjectNotFound})
	case errors.Is(err, domain.ErrTaskNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": errTaskNotFound})
	default:
		h.logger.ErrorContext(c.Request.Context(), op, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": errInternalServer})
	}
}
