package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/ErlanBelekov/projecthub/internal/domain"
	"github.com/ErlanBelekov/projecthub/internal/email"
	"github.com/ErlanBelekov/projecthub/internal/transport/http/middleware"
	"github.com/ErlanBelekov/projecthub/internal/usecase"
	"github.com/gin-gonic/gin"
)

// authUsecaser is the subset of AuthUsecase the handler needs.
// Defined here (point of use) so tests can inject a fake.
type authUsecaser interface {
	SendOTP(ctx context.Context, email string) (email.Receipt, error)
	VerifyOTP(ctx context.Context, email, code string) error
	Register(ctx context.Context, in usecase.RegisterInput) (*usecase.AuthResult, error)
	Login(ctx context.Context, email, password string) (*usecase.AuthResult, error)
	FederatedLogin(ctx context.Context, credential string) (*usecase.AuthResult, error)
}

type AuthHandler struct {
	authUsecase authUsecaser
	logger      *slog.Logger
}

func NewAuthHandler(authUsecase authUsecaser, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		authUsecase: authUsecase,
		logger:      logger.With("component", "auth_handler"),
	}
}

type userResponse struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Email          string `json:"email"`
	Authentication string `json:"authentication"`
}

func newUserResponse(u *domain.User) userResponse {
	return userResponse{
		ID:             u.ID,
		Name:           u.Name,
		Email:          u.Email,
		Authentication: u.Authentication,
	}
}

type authResponse struct {
	Token string       `json:"token"`
	User  userResponse `json:"user"`
}

type sendOTPRequest struct {
	Email string `json:"email" binding:"required"`
}

type verifyOTPRequest struct {
	Email string `json:"email" binding:"required"`
	OTP   string `json:"otp"   binding:"required"`
}

type registerRequest struct {
	Name            string `json:"name"            binding:"required"`
	Email           string `json:"email"           binding:"required"`
	Password        string `json:"password"        binding:"required"`
	ConfirmPassword string `json:"confirmPassword" binding:"required"`
}

type loginRequest struct {
	Email    string `json:"email"    binding:"required"`
	Password string `json:"password" binding:"required"`
}

type googleLoginRequest struct {
	Credential string `json:"credential" binding:"required"`
}

// POST /api/auth/send-otp
func (h *AuthHandler) SendOTP(c *gin.Context) {
	var req sendOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": errInvalidEmail})
		return
	}

	receipt, err := h.authUsecase.SendOTP(c.Request.Context(), req.Email)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			c.JSON(http.StatusBadRequest, gin.H{"message": errInvalidEmail})
		case errors.Is(err, domain.ErrAlreadyRegistered):
			c.JSON(http.StatusBadRequest, gin.H{"message": errAlreadyRegistered})
		case errors.Is(err, domain.ErrDeliveryFailed):
			h.logger.ErrorContext(c.Request.Context(), "deliver otp", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": errSendOTP})
		default:
			h.logger.ErrorContext(c.Request.Context(), "send otp", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": errInternalServer})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": receipt})
}

// POST /api/auth/verify-otp
func (h *AuthHandler) VerifyOTP(c *gin.Context) {
	var req verifyOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": errOTPRequired})
		return
	}

	err := h.authUsecase.VerifyOTP(c.Request.Context(), req.Email, req.OTP)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			c.JSON(http.StatusBadRequest, gin.H{"message": errOTPRequired})
		case errors.Is(err, domain.ErrOTPNotFound):
			c.JSON(http.StatusBadRequest, gin.H{"message": errOTPNotFound})
		case errors.Is(err, domain.ErrOTPExpired):
			c.JSON(http.StatusBadRequest, gin.H{"message": errOTPExpired})
		case errors.Is(err, domain.ErrOTPMismatch):
			c.JSON(http.StatusBadRequest, gin.H{"message": errOTPMismatch})
		default:
			h.logger.ErrorContext(c.Request.Context(), "verify otp", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": errInternalServer})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": msgOTPVerified})
}

// POST /api/auth/signup
func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": errInvalidSignup})
		return
	}

	res, err := h.authUsecase.Register(c.Request.Context(), usecase.RegisterInput{
		Name:            req.Name,
		Email:           req.Email,
		Password:        req.Password,
		ConfirmPassword: req.ConfirmPassword,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			c.JSON(http.StatusBadRequest, gin.H{"message": errInvalidSignup})
		case errors.Is(err, domain.ErrEmailInUse):
			c.JSON(http.StatusConflict, gin.H{"message": errEmailInUse})
		default:
			h.logger.ErrorContext(c.Request.Context(), "register", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": errInternalServer})
		}
		return
	}

	c.JSON(http.StatusCreated, authResponse{Token: res.Token, User: newUserResponse(res.User)})
}

// POST /api/auth/login
// Each rejection reason has its own message.
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": errLoginRequired})
		return
	}

	res, err := h.authUsecase.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			c.JSON(http.StatusBadRequest, gin.H{"message": errLoginRequired})
		case errors.Is(err, domain.ErrUserNotFound):
			c.JSON(http.StatusUnauthorized, gin.H{"message": errUserNotFound})
		case errors.Is(err, domain.ErrFederatedOnly):
			c.JSON(http.StatusUnauthorized, gin.H{"message": errFederatedOnly})
		case errors.Is(err, domain.ErrWrongPassword):
			c.JSON(http.StatusUnauthorized, gin.H{"message": errWrongPassword})
		default:
			h.logger.ErrorContext(c.Request.Context(), "login", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": errInternalServer})
		}
		return
	}

	c.JSON(http.StatusOK, authResponse{Token: res.Token, User: newUserResponse(res.User)})
}

// POST /api/auth/google
// Verification failures all surface as one message; the reason is logged by the usecase.
func (h *AuthHandler) GoogleLogin(c *gin.Context) {
	var req googleLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": errMissingCredential})
		return
	}

	res, err := h.authUsecase.FederatedLogin(c.Request.Context(), req.Credential)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			c.JSON(http.StatusBadRequest, gin.H{"message": errMissingCredential})
		case errors.Is(err, domain.ErrFederatedDisabled):
			c.JSON(http.StatusBadRequest, gin.H{"message": errFederatedDisabled})
		case errors.Is(err, domain.ErrInvalidCredential):
			c.JSON(http.StatusUnauthorized, gin.H{"message": errFederatedRejected})
		default:
			h.logger.ErrorContext(c.Request.Context(), "google login", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": errInternalServer})
		}
		return
	}

	c.JSON(http.StatusOK, authResponse{Token: res.Token, User: newUserResponse(res.User)})
}

// GET /api/auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": errUnauthorized})
		return
	}
	c.JSON(http.StatusOK, newUserResponse(user))
}
