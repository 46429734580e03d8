package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/ErlanBelekov/projecthub/internal/domain"
	ctxlog "github.com/ErlanBelekov/projecthub/internal/log"
	"github.com/ErlanBelekov/projecthub/internal/token"
	"github.com/gin-gonic/gin"
)

const (
	errUnauthorized   = "Unauthorized"
	errInternalServer = "Internal server error"

	userIDKey = "userID"
	userKey   = "user"
)

// tokenVerifier is satisfied by *token.Issuer.
type tokenVerifier interface {
	Verify(raw string) (*token.Claims, error)
}

// Auth validates a Bearer token and sets the subject as "userID" in the gin context.
func Auth(verifier tokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": errUnauthorized})
			return
		}

		claims, err := verifier.Verify(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": errUnauthorized})
			return
		}

		c.Set(userIDKey, claims.Subject)
		c.Next()
	}
}

type userFinder interface {
	FindByID(ctx context.Context, id string) (*domain.User, error)
}

// LoadUser runs after Auth and resolves the token subject to a stored user.
// A token whose user has since been deleted is rejected.
func LoadUser(users userFinder, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := users.FindByID(c.Request.Context(), c.GetString(userIDKey))
		if err != nil {
			if errors.Is(err, domain.ErrUserNotFound) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": errUnauthorized})
				return
			}
			logger.ErrorContext(c.Request.Context(), "load current user", "error", err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"message": errInternalServer})
			return
		}

		c.Set(userKey, user)
		c.Request = c.Request.WithContext(ctxlog.WithUserID(c.Request.Context(), user.ID))
		c.Next()
	}
}

// CurrentUser returns the user stored by LoadUser, or nil.
func CurrentUser(c *gin.Context) *domain.User {
	v, ok := c.Get(userKey)
	if !ok {
		return nil
	}
	user, _ := v.(*domain.User)
	return user
}

// SetCurrentUser is used by tests and by callers that resolve the user themselves.
func SetCurrentUser(c *gin.Context, user *domain.User) {
	c.Set(userIDKey, user.ID)
	c.Set(userKey, user)
}
