package auth

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"Tunedeck/internal/apperr"
)

const userIDKey = "auth.userId"

// CurrentUserID returns the verified user identifier set by RequireUser.
func CurrentUserID(c *gin.Context) string {
	id, _ := c.Get(userIDKey)
	s, _ := id.(string)
	return s
}

// BearerToken extracts the token from an Authorization header.
func BearerToken(r *http.Request) string {
	h := r.Header.Get("Authorization")
	if h == "" {
		return ""
	}
	parts := strings.SplitN(h, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return parts[1]
}

// RequireUser verifies the request's session token and stores the user
// identifier on the context. Rejects with 401 otherwise.
func RequireUser(provider Provider, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, err := provider.Verify(c.Request.Context(), BearerToken(c.Request))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"message": "Unauthorized - you must be logged in",
			})
			return
		}

		c.Set(userIDKey, userID)
		c.Next()
	}
}

// RequireAdmin fetches the caller's profile from the identity provider and
// applies the authorization policy. Must run after RequireUser.
func RequireAdmin(provider Provider, policy Policy, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := CurrentUserID(c)
		if userID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"message": "Unauthorized - you must be logged in",
			})
			return
		}

		profile, err := provider.User(c.Request.Context(), userID)
		if err != nil {
			if errors.Is(err, apperr.ErrNotFound) {
				c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
					"message": "Unauthorized - you must be an admin",
				})
				return
			}
			logger.Error("admin check failed", zap.String("user_id", userID), zap.Error(err))
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"message": "Internal server error",
			})
			return
		}

		if !policy(profile, "admin", "access") {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"message": "Unauthorized - you must be an admin",
			})
			return
		}

		c.Next()
	}
}
