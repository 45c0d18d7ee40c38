package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"Tunedeck/internal/service"
)

type AuthHandler interface {
	AuthCallback(c *gin.Context)
}

type authHandler struct {
	users  service.UserService
	logger *zap.Logger
}

func NewAuthHandler(users service.UserService, logger *zap.Logger) AuthHandler {
	return &authHandler{users: users, logger: logger}
}

type authCallbackRequest struct {
	ID        string `json:"id" binding:"required"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	ImageURL  string `json:"imageUrl"`
}

// AuthCallback mirrors the identity-provider profile locally after sign-in
// so the chat directory can render names and avatars.
func (h *authHandler) AuthCallback(c *gin.Context) {
	var req authCallbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, h.logger, bindingError(err))
		return
	}

	fullName := strings.TrimSpace(req.FirstName + " " + req.LastName)
	user, err := h.users.Sync(c.Request.Context(), req.ID, fullName, req.ImageURL)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "user": user})
}
