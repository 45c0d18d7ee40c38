package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"Tunedeck/internal/auth"
	"Tunedeck/internal/model"
	"Tunedeck/internal/service"
)

type UserHandler interface {
	GetAllUsers(c *gin.Context)
	GetMessages(c *gin.Context)
	SendMessage(c *gin.Context)
}

type userHandler struct {
	users  service.UserService
	chat   service.ChatService
	logger *zap.Logger
}

func NewUserHandler(users service.UserService, chat service.ChatService, logger *zap.Logger) UserHandler {
	return &userHandler{
		users:  users,
		chat:   chat,
		logger: logger,
	}
}

func (h *userHandler) GetAllUsers(c *gin.Context) {
	users, err := h.users.All(c.Request.Context(), auth.CurrentUserID(c))
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, users)
}

// GetMessages returns the caller's full conversation with another user,
// oldest first.
func (h *userHandler) GetMessages(c *gin.Context) {
	other := c.Param("userId")

	msgs, err := h.chat.Conversation(c.Request.Context(), auth.CurrentUserID(c), other)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	if msgs == nil {
		msgs = make([]model.Message, 0)
	}

	c.JSON(http.StatusOK, msgs)
}

type sendMessageRequest struct {
	ReceiverID string `json:"receiverId" binding:"required"`
	Content    string `json:"content"`
}

// SendMessage persists a direct message and pushes it to the recipient's
// realtime channel when one is open. The sender always gets the persisted
// message back, regardless of delivery.
func (h *userHandler) SendMessage(c *gin.Context) {
	var req sendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, h.logger, bindingError(err))
		return
	}

	msg, err := h.chat.SendMessage(c.Request.Context(), auth.CurrentUserID(c), req.ReceiverID, req.Content)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, msg)
}
