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

type projectUsecaser interface {
	CreateProject(ctx context.Context, actor *domain.User, in usecase.CreateProjectInput) (*domain.Project, error)
	ListProjects(ctx context.Context, userID string) ([]*domain.Project, error)
	GetProject(ctx context.Context, userID, id string) (*domain.Project, error)
	UpdateProject(ctx context.Context, actor *domain.User, id string, patch domain.ProjectPatch) (*domain.Project, error)
	DeleteProject(ctx context.Context, actor *domain.User, id string) error
}

type ProjectHandler struct {
	projectUsecase projectUsecaser
	logger         *slog.Logger
}

func NewProjectHandler(projectUsecase projectUsecaser, logger *slog.Logger) *ProjectHandler {
	return &ProjectHandler{projectUsecase: projectUsecase, logger: logger.With("component", "project_handler")}
}

type createProjectRequest struct {
	Name        string               `json:"name"        binding:"required"`
	Description string               `json:"description"`
	Status      domain.ProjectStatus `json:"status"`
	StartDate   optionalDate         `json:"startDate"`
	EndDate     optionalDate         `json:"endDate"`
	Members     []string             `json:"members"`
	Tags        []string             `json:"tags"`
}

type updateProjectRequest struct {
	Name        *string               `json:"name"`
	Description *string               `json:"description"`
	Status      *domain.ProjectStatus `json:"status"`
	StartDate   optionalDate          `json:"startDate"`
	EndDate     optionalDate          `json:"endDate"`
	Members     *[]string             `json:"members"`
	Tags        *[]string             `json:"tags"`
}

type projectResponse struct {
	ID          string               `json:"id"`
	Name        string               `json:"name"`
	Description string               `json:"description"`
	Status      domain.ProjectStatus `json:"status"`
	StartDate   *time.Time           `json:"startDate"`
	EndDate     *time.Time           `json:"endDate"`
	Members     []string             `json:"members"`
	Tags        []string             `json:"tags"`
	Owner       string               `json:"owner"`
	CreatedAt   time.Time            `json:"createdAt"`
	UpdatedAt   time.Time            `json:"updatedAt"`
}

func newProjectResponse(p *domain.Project) projectResponse {
	members, tags := p.Members, p.Tags
	if members == nil {
		members = []string{}
	}
	if tags == nil {
		tags = []string{}
	}
	return projectResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Status:      p.Status,
		StartDate:   p.StartDate,
		EndDate:     p.EndDate,
		Members:     members,
		Tags:        tags,
		Owner:       p.OwnerID,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

// GET /api/projects
func (h *ProjectHandler) List(c *gin.Context) {
	projects, err := h.projectUsecase.ListProjects(c.Request.Context(), middleware.CurrentUser(c).ID)
	if err != nil {
		h.logger.ErrorContext(c.Request.Context(), "list projects", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": errInternalServer})
		return
	}

	resp := make([]projectResponse, 0, len(projects))
	for _, p := range projects {
		resp = append(resp, newProjectResponse(p))
	}
	c.JSON(http.StatusOK, resp)
}

// GET /api/projects/:id
func (h *ProjectHandler) GetByID(c *gin.Context) {
	projectID := c.Param("id")

	p, err := h.projectUsecase.GetProject(c.Request.Context(), middleware.CurrentUser(c).ID, projectID)
	if err != nil {
		h.writeError(c, "get project", err)
		return
	}
	c.JSON(http.StatusOK, newProjectResponse(p))
}

// POST /api/projects
func (h *ProjectHandler) Create(c *gin.Context) {
	var req createProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": errInvalidProject})
		return
	}

	p, err := h.projectUsecase.CreateProject(c.Request.Context(), middleware.CurrentUser(c), usecase.CreateProjectInput{
		Name:        req.Name,
		Description: req.Description,
		Status:      req.Status,
		StartDate:   req.StartDate.Value,
		EndDate:     req.EndDate.Value,
		Members:     req.Members,
		Tags:        req.Tags,
	})
	if err != nil {
		h.writeError(c, "create project", err)
		return
	}
	c.JSON(http.StatusCreated, newProjectResponse(p))
}

// PUT /api/projects/:id
func (h *ProjectHandler) Update(c *gin.Context) {
	var req updateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": errInvalidProject})
		return
	}

	patch := domain.ProjectPatch{
		Name:           req.Name,
		Description:    req.Description,
		Status:         req.Status,
		StartDate:      req.StartDate.Value,
		ClearStartDate: req.StartDate.Set && req.StartDate.Value == nil,
		EndDate:        req.EndDate.Value,
		ClearEndDate:   req.EndDate.Set && req.EndDate.Value == nil,
		Members:        req.Members,
		Tags:           req.Tags,
	}

	p, err := h.projectUsecase.UpdateProject(c.Request.Context(), middleware.CurrentUser(c), c.Param("id"), patch)
	if err != nil {
		h.writeError(c, "update project", err)
		return
	}
	c.JSON(http.StatusOK, newProjectResponse(p))
}

// DELETE /api/projects/:id
// Only the owner may delete; members get 403.
func (h *ProjectHandler) Delete(c *gin.Context) {
	if err := h.projectUsecase.DeleteProject(c.Request.Context(), middleware.CurrentUser(c), c.Param("id")); err != nil {
		h.writeError(c, "delete project", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": msgProjectDeleted})
}

func (h *ProjectHandler) writeError(c *gin.Context, op string, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"message": errInvalidProject})
	case errors.Is(err, domain.ErrInvalidStatus):
		c.JSON(http.StatusBadRequest, gin.H{"message": errInvalidStatus})
	case errors.Is(err, domain.ErrInvalidDateRange):
		c.JSON(http.StatusBadRequest, gin.H{"message": errInvalidDateRange})
	case errors.Is(err, domain.ErrProjectNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": errProjectNotFound})
	case errors.Is(err, domain.ErrNotProjectOwner):
		c.JSON(http.StatusForbidden, gin.H{"message": errNotProjectOwner})
	default:
		h.logger.ErrorContext(c.Request.Context(), op, "project_id", c.Param("id"), "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": errInternalServer})
	}
}
