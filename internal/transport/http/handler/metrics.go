package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/ErlanBelekov/projecthub/internal/domain"
	"github.com/ErlanBelekov/projecthub/internal/transport/http/middleware"
	"github.com/gin-gonic/gin"
)

type metricsUsecaser interface {
	ForUser(ctx context.Context, userID string) (*domain.UserMetrics, error)
}

type MetricsHandler struct {
	metricsUsecase metricsUsecaser
	logger         *slog.Logger
}

func NewMetricsHandler(metricsUsecase metricsUsecaser, logger *slog.Logger) *MetricsHandler {
	return &MetricsHandler{metricsUsecase: metricsUsecase, logger: logger.With("component", "metrics_handler")}
}

type projectCompletionResponse struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	CompletionRate float64 `json:"completionRate"`
}

type metricsResponse struct {
	TotalProjects          int                         `json:"totalProjects"`
	ActiveProjects         int                         `json:"activeProjects"`
	ActiveTasks            int                         `json:"activeTasks"`
	CompletedTasks         int                         `json:"completedTasks"`
	TeamMembers            int                         `json:"teamMembers"`
	OverallCompletionRate  float64                     `json:"overallCompletionRate"`
	ProjectsWithCompletion []projectCompletionResponse `json:"projectsWithCompletion"`
}

// GET /api/metrics
func (h *MetricsHandler) Get(c *gin.Context) {
	m, err := h.metricsUsecase.ForUser(c.Request.Context(), middleware.CurrentUser(c).ID)
	if err != nil {
		h.logger.ErrorContext(c.Request.Context(), "load metrics", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": errInternalServer})
		return
	}

	projects := make([]projectCompletionResponse, 0, len(m.ProjectsWithCompletion))
	for _, p := range m.ProjectsWithCompletion {
		projects = append(projects, projectCompletionResponse{ID: p.ID, Name: p.Name, CompletionRate: p.CompletionRate})
	}

	c.JSON(http.StatusOK, metricsResponse{
		TotalProjects:          m.TotalProjects,
		ActiveProjects:         m.ActiveProjects,
		ActiveTasks:            m.ActiveTasks,
		CompletedTasks:         m.CompletedTasks,
		TeamMembers:            m.TeamMembers,
		OverallCompletionRate:  m.OverallCompletionRate,
		ProjectsWithCompletion: projects,
	})
}
