package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/ErlanBelekov/projecthub/internal/domain"
	"github.com/ErlanBelekov/projecthub/internal/email"
	"github.com/ErlanBelekov/projecthub/internal/transport/http/middleware"
	"github.com/gin-gonic/gin"
)

type userUsecaser interface {
	UpdateProfile(ctx context.Context, current *domain.User, name, email *string) (*domain.User, error)
	DeleteAccount(ctx context.Context, userID string) error
	ResetPassword(ctx context.Context, current *domain.User, currentPassword, newPassword string) error
	ListUsers(ctx context.Context) ([]*domain.UserSummary, error)
	Invite(ctx context.Context, email, subject string) (email.Receipt, error)
}

type UserHandler struct {
	userUsecase userUsecaser
	logger      *slog.Logger
}

func NewUserHandler(userUsecase userUsecaser, logger *slog.Logger) *UserHandler {
	return &UserHandler{userUsecase: userUsecase, logger: logger.With("component", "user_handler")}
}

type updateProfileRequest struct {
	Name  *string `json:"name"`
	Email *string `json:"email"`
}

type resetPasswordRequest struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword"     binding:"required"`
}

type inviteRequest struct {
	Email   string `json:"email"   binding:"required"`
	Subject string `json:"subject"`
}

type userSummaryResponse struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Email         string `json:"email"`
	ProjectsCount int    `json:"projectsCount"`
	TasksCount    int    `json:"tasksCount"`
}

// PUT /api/users/me
func (h *UserHandler) UpdateMe(c *gin.Context) {
	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": errInvalidProfile})
		return
	}

	user, err := h.userUsecase.UpdateProfile(c.Request.Context(), middleware.CurrentUser(c), req.Name, req.Email)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			c.JSON(http.StatusBadRequest, gin.H{"message": errInvalidProfile})
		case errors.Is(err, domain.ErrEmailInUse):
			c.JSON(http.StatusConflict, gin.H{"message": errEmailInUse})
		case errors.Is(err, domain.ErrUserNotFound):
			c.JSON(http.StatusUnauthorized, gin.H{"message": errUnauthorized})
		default:
			h.logger.ErrorContext(c.Request.Context(), "update profile", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": errInternalServer})
		}
		return
	}

	c.JSON(http.StatusOK, newUserResponse(user))
}

// DELETE /api/users/me
func (h *UserHandler) DeleteMe(c *gin.Context) {
	if err := h.userUsecase.DeleteAccount(c.Request.Context(), middleware.CurrentUser(c).ID); err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			c.JSON(http.StatusUnauthorized, gin.H{"message": errUnauthorized})
			return
		}
		h.logger.ErrorContext(c.Request.Context(), "delete account", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": errInternalServer})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// POST /api/users/reset-password
func (h *UserHandler) ResetPassword(c *gin.Context) {
	var req resetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": errPasswordRequired})
		return
	}

	err := h.userUsecase.ResetPassword(c.Request.Context(), middleware.CurrentUser(c), req.CurrentPassword, req.NewPassword)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			c.JSON(http.StatusBadRequest, gin.H{"message": errPasswordRequired})
		case errors.Is(err, domain.ErrWrongPassword):
			c.JSON(http.StatusBadRequest, gin.H{"message": errCurrentPassword})
		case errors.Is(err, domain.ErrFederatedOnly):
			c.JSON(http.StatusBadRequest, gin.H{"message": errNoPasswordToReset})
		default:
			h.logger.ErrorContext(c.Request.Context(), "reset password", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": errInternalServer})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": msgPasswordUpdated})
}

// GET /api/users/allUsers
func (h *UserHandler) List(c *gin.Context) {
	users, err := h.userUsecase.ListUsers(c.Request.Context())
	if err != nil {
		h.logger.ErrorContext(c.Request.Context(), "list users", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": errInternalServer})
		return
	}

	resp := make([]userSummaryResponse, 0, len(users))
	for _, u := range users {
		resp = append(resp, userSummaryResponse{
			ID:            u.ID,
			Name:          u.Name,
			Email:         u.Email,
			ProjectsCount: u.ProjectsCount,
			TasksCount:    u.TasksCount,
		})
	}
	c.JSON(http.StatusOK, resp)
}

// POST /api/users/invite
func (h *UserHandler) Invite(c *gin.Context) {
	var req inviteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": errEmailRequired})
		return
	}

	receipt, err := h.userUsecase.Invite(c.Request.Context(), req.Email, req.Subject)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			c.JSON(http.StatusBadRequest, gin.H{"message": errInvalidEmail})
		case errors.Is(err, domain.ErrDeliveryFailed):
			h.logger.ErrorContext(c.Request.Context(), "deliver invite", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": errSendInvite})
		default:
			h.logger.ErrorContext(c.Request.Context(), "invite", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": errInternalServer})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": receipt})
}
