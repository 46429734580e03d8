package httptransport

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/ErlanBelekov/projecthub/internal/domain"
	"github.com/ErlanBelekov/projecthub/internal/token"
	"github.com/ErlanBelekov/projecthub/internal/transport/http/handler"
	"github.com/ErlanBelekov/projecthub/internal/transport/http/middleware"
	"github.com/gin-gonic/gin"

	sloggin "github.com/samber/slog-gin"
)

// Handlers groups everything NewRouter mounts.
type Handlers struct {
	Auth     *handler.AuthHandler
	Users    *handler.UserHandler
	Projects *handler.ProjectHandler
	Tasks    *handler.TaskHandler
	Activity *handler.ActivityHandler
	Metrics  *handler.MetricsHandler
}

// UserLookup resolves a token subject to a stored user.
type UserLookup interface {
	FindByID(ctx context.Context, id string) (*domain.User, error)
}

// RouterConfig holds the transport settings taken from config.Config.
type RouterConfig struct {
	CORSOrigins []string
	HSTS        bool
}

func NewRouter(logger *slog.Logger, h Handlers, tokens *token.Issuer, users UserLookup, cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Security(cfg.HSTS))
	r.Use(middleware.CORS(cfg.CORSOrigins))
	r.Use(sloggin.New(logger))
	r.Use(middleware.Metrics("/health"))

	authed := []gin.HandlerFunc{middleware.Auth(tokens), middleware.LoadUser(users, logger)}

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	api := r.Group("/api")

	auth := api.Group("/auth")
	auth.POST("/send-otp", h.Auth.SendOTP)
	auth.POST("/verify-otp", h.Auth.VerifyOTP)
	auth.POST("/signup", h.Auth.Register)
	auth.POST("/login", h.Auth.Login)
	auth.POST("/google", h.Auth.GoogleLogin)
	auth.GET("/me", append(authed, h.Auth.Me)...)

	usersGroup := api.Group("/users", authed...)
	usersGroup.PUT("/me", h.Users.UpdateMe)
	usersGroup.DELETE("/me", h.Users.DeleteMe)
	usersGroup.POST("/reset-password", h.Users.ResetPassword)
	usersGroup.GET("/allUsers", h.Users.List)
	usersGroup.POST("/invite", h.Users.Invite)

	projects := api.Group("/projects", authed...)
	projects.GET("", h.Projects.List)
	projects.POST("", h.Projects.Create)
	projects.GET("/:id", h.Projects.GetByID)
	projects.PUT("/:id", h.Projects.Update)
	projects.DELETE("/:id", h.Projects.Delete)

	tasks := api.Group("/tasks", authed...)
	tasks.GET("/project/:projectId", h.Tasks.ListByProject)
	tasks.POST("/project/:projectId", h.Tasks.Create)
	tasks.PUT("/:taskId", h.Tasks.Update)
	tasks.DELETE("/:taskId", h.Tasks.Delete)

	api.GET("/activity", append(authed, h.Activity.List)...)
	api.GET("/metrics", append(authed, h.Metrics.Get)...)

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"message": "Not Found"})
	})

	return r
}
