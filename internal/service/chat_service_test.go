package service

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"Tunedeck/internal/apperr"
	"Tunedeck/internal/event"
	"Tunedeck/internal/model"
)

type fakeMessageRepo struct {
	stored     []model.Message
	insertErr  error
	convResult []model.Message
}

func (f *fakeMessageRepo) Insert(ctx context.Context, msg *model.Message) (*model.Message, error) {
	if f.insertErr != nil {
		return nil, f.insertErr
	}
	stored := *msg
	stored.ID = primitive.NewObjectID()
	stored.CreatedAt = time.Now().UTC()
	f.stored = append(f.stored, stored)
	return &stored, nil
}

func (f *fakeMessageRepo) Conversation(ctx context.Context, userA, userB string) ([]model.Message, error) {
	return f.convResult, nil
}

type fakePusher struct {
	online map[string]bool
	pushed []pushedEvent
}

type pushedEvent struct {
	userID string
	event  event.WsEvent
}

func (f *fakePusher) PushToUser(userID string, ev event.WsEvent) bool {
	if !f.online[userID] {
		return false
	}
	f.pushed = append(f.pushed, pushedEvent{userID: userID, event: ev})
	return true
}

func TestSendMessageDeliversToOnlineRecipient(t *testing.T) {
	repo := &fakeMessageRepo{}
	pusher := &fakePusher{online: map[string]bool{"bob": true}}
	svc := NewChatService(repo, pusher, zap.NewNop())

	msg, err := svc.SendMessage(context.Background(), "alice", "bob", "hi")

	require.NoError(t, err)
	assert.Equal(t, "hi", msg.Content)
	assert.False(t, msg.ID.IsZero())

	require.Len(t, repo.stored, 1)
	require.Len(t, pusher.pushed, 1)
	assert.Equal(t, "bob", pusher.pushed[0].userID)
	assert.Equal(t, event.EventMessageNew, pusher.pushed[0].event.Event)

	var payload model.Message
	require.NoError(t, json.Unmarshal(pusher.pushed[0].event.Payload, &payload))
	assert.Equal(t, "hi", payload.Content)
	assert.Equal(t, "alice", payload.SenderID)
}

func TestSendMessagePersistsWhenRecipientOffline(t *testing.T) {
	repo := &fakeMessageRepo{}
	pusher := &fakePusher{online: map[string]bool{}}
	svc := NewChatService(repo, pusher, zap.NewNop())

	msg, err := svc.SendMessage(context.Background(), "alice", "bob", "hi bob")

	require.NoError(t, err)
	assert.Equal(t, "hi bob", msg.Content)
	assert.Len(t, repo.stored, 1)
	assert.Empty(t, pusher.pushed, "no push should happen for an offline recipient")
}

func TestSendMessageRejectsBlankContent(t *testing.T) {
	repo := &fakeMessageRepo{}
	pusher := &fakePusher{online: map[string]bool{"bob": true}}
	svc := NewChatService(repo, pusher, zap.NewNop())

	msg, err := svc.SendMessage(context.Background(), "alice", "bob", "   ")

	assert.Nil(t, msg)
	_, ok := apperr.AsValidation(err)
	assert.True(t, ok)
	assert.Empty(t, repo.stored, "nothing should be persisted")
	assert.Empty(t, pusher.pushed, "nothing should be pushed")
}

func TestSendMessageSurfacesPersistenceFailure(t *testing.T) {
	repo := &fakeMessageRepo{insertErr: apperr.ErrPersistence}
	pusher := &fakePusher{online: map[string]bool{"bob": true}}
	svc := NewChatService(repo, pusher, zap.NewNop())

	msg, err := svc.SendMessage(context.Background(), "alice", "bob", "hi")

	assert.Nil(t, msg)
	assert.ErrorIs(t, err, apperr.ErrPersistence)
	assert.Empty(t, pusher.pushed, "no push on failed persistence")
}

func TestConversationDelegatesToRepository(t *testing.T) {
	want := []model.Message{
		{SenderID: "alice", ReceiverID: "bob", Content: "hey"},
		{SenderID: "bob", ReceiverID: "alice", Content: "yo"},
	}
	repo := &fakeMessageRepo{convResult: want}
	svc := NewChatService(repo, &fakePusher{}, zap.NewNop())

	got, err := svc.Conversation(context.Background(), "alice", "bob")

	require.NoError(t, err)
	assert.Equal(t, want, got)
}
