package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"Tunedeck/internal/apperr"
	"Tunedeck/internal/auth"
	"Tunedeck/internal/model"
)

type fakeChatService struct {
	sent     []model.Message
	sendErr  error
	convByID map[string][]model.Message
}

func (f *fakeChatService) SendMessage(ctx context.Context, senderID, receiverID, content string) (*model.Message, error) {
	if f.sendErr != nil {
		return nil, f.sendErr
	}
	msg, err := model.NewMessage(senderID, receiverID, content)
	if err != nil {
		return nil, err
	}
	msg.ID = primitive.NewObjectID()
	msg.CreatedAt = time.Now().UTC()
	f.sent = append(f.sent, *msg)
	return msg, nil
}

func (f *fakeChatService) Conversation(ctx context.Context, userA, userB string) ([]model.Message, error) {
	return f.convByID[userB], nil
}

type fakeUserService struct {
	users []model.User
}

func (f *fakeUserService) Sync(ctx context.Context, externalID, fullName, imageURL string) (*model.User, error) {
	return &model.User{ExternalID: externalID, FullName: fullName, ImageURL: imageURL}, nil
}

func (f *fakeUserService) All(ctx context.Context, exceptExternalID string) ([]model.User, error) {
	return f.users, nil
}

func newUserTestRouter(chat *fakeChatService, users *fakeUserService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	_ = RegisterValidations()

	h := NewUserHandler(users, chat, zap.NewNop())
	provider := &auth.MockProvider{}

	router := gin.New()
	group := router.Group("/api/users", auth.RequireUser(provider, zap.NewNop()))
	group.GET("", h.GetAllUsers)
	group.GET("/messages/:userId", h.GetMessages)
	group.POST("/messages", h.SendMessage)
	return router
}

func TestSendMessageEndpoint(t *testing.T) {
	chat := &fakeChatService{}
	router := newUserTestRouter(chat, &fakeUserService{})

	body := `{"receiverId":"bob","content":"hi"}`
	req := httptest.NewRequest(http.MethodPost, "/api/users/messages", strings.NewReader(body))
	req.Header.Set("Authorization", "Bearer alice")
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
	require.Len(t, chat.sent, 1)
	assert.Equal(t, "alice", chat.sent[0].SenderID)
	assert.Equal(t, "bob", chat.sent[0].ReceiverID)
	assert.Equal(t, "hi", chat.sent[0].Content)
}

func TestSendMessageEndpointRejectsMissingReceiver(t *testing.T) {
	chat := &fakeChatService{}
	router := newUserTestRouter(chat, &fakeUserService{})

	req := httptest.NewRequest(http.MethodPost, "/api/users/messages", strings.NewReader(`{"content":"hi"}`))
	req.Header.Set("Authorization", "Bearer alice")
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "receiverId")
	assert.Empty(t, chat.sent)
}

func TestSendMessageEndpointRejectsBlankContent(t *testing.T) {
	chat := &fakeChatService{}
	router := newUserTestRouter(chat, &fakeUserService{})

	req := httptest.NewRequest(http.MethodPost, "/api/users/messages", strings.NewReader(`{"receiverId":"bob","content":"   "}`))
	req.Header.Set("Authorization", "Bearer alice")
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "content")
	assert.Empty(t, chat.sent)
}

func TestSendMessageEndpointRequiresAuth(t *testing.T) {
	router := newUserTestRouter(&fakeChatService{}, &fakeUserService{})

	req := httptest.NewRequest(http.MethodPost, "/api/users/messages", strings.NewReader(`{"receiverId":"bob","content":"hi"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestGetMessagesReturnsEmptyArrayNotNull(t *testing.T) {
	router := newUserTestRouter(&fakeChatService{}, &fakeUserService{})

	req := httptest.NewRequest(http.MethodGet, "/api/users/messages/bob", nil)
	req.Header.Set("Authorization", "Bearer alice")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "[]", strings.TrimSpace(rec.Body.String()))
}

func TestGetMessagesReturnsConversation(t *testing.T) {
	chat := &fakeChatService{convByID: map[string][]model.Message{
		"bob": {
			{SenderID: "alice", ReceiverID: "bob", Content: "hey"},
			{SenderID: "bob", ReceiverID: "alice", Content: "yo"},
		},
	}}
	router := newUserTestRouter(chat, &fakeUserService{})

	req := httptest.NewRequest(http.MethodGet, "/api/users/messages/bob", nil)
	req.Header.Set("Authorization", "Bearer alice")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "hey")
	assert.Contains(t, rec.Body.String(), "yo")
}

func TestWriteErrorMapping(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		name string
		err  error
		code int
	}{
		{"validation", apperr.Validation("content", "is required"), http.StatusBadRequest},
		{"unauthenticated", apperr.ErrUnauthenticated, http.StatusUnauthorized},
		{"forbidden", apperr.ErrForbidden, http.StatusForbidden},
		{"not found", apperr.ErrNotFound, http.StatusNotFound},
		{"persistence", apperr.ErrPersistence, http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(rec)
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

			writeError(c, zap.NewNop(), tc.err)
			assert.Equal(t, tc.code, rec.Code)
		})
	}
}
