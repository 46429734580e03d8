package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/ErlanBelekov/projecthub/internal/domain"
	"github.com/gin-gonic/gin"
)

type activityUsecaser interface {
	Recent(ctx context.Context) ([]*domain.Activity, error)
}

type ActivityHandler struct {
	activityUsecase activityUsecaser
	logger          *slog.Logger
}

func NewActivityHandler(activityUsecase activityUsecaser, logger *slog.Logger) *ActivityHandler {
	return &ActivityHandler{activityUsecase: activityUsecase, logger: logger.With("component", "activity_handler")}
}

type activityResponse struct {
	ID         string                `json:"id"`
	Type       domain.ActivityType   `json:"type"`
	Action     domain.ActivityAction `json:"action"`
	TargetType string                `json:"targetType"`
	TargetName string                `json:"targetName"`
	ActorID    string                `json:"actorId"`
	ActorName  string                `json:"actorName"`
	Timestamp  time.Time             `json:"timestamp"`
}

// GET /api/activity
func (h *ActivityHandler) List(c *gin.Context) {
	items, err := h.activityUsecase.Recent(c.Request.Context())
	if err != nil {
		h.logger.ErrorContext(c.Request.Context(), "list activity", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": errInternalServer})
		return
	}

	resp := make([]activityResponse, 0, len(items))
	for _, a := range items {
		resp = append(resp, activityResponse{
			ID:         a.ID,
			Type:       a.Type,
			Action:     a.Action,
			TargetType: a.TargetType,
			TargetName: a.TargetName,
			ActorID:    a.ActorID,
			ActorName:  a.ActorName,
			Timestamp:  a.Timestamp,
		})
	}
	c.JSON(http.StatusOK, resp)
}
