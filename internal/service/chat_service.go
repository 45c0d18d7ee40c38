package service

import (
	"context"

	"go.uber.org/zap"

	"Tunedeck/internal/event"
	"Tunedeck/internal/model"
	"Tunedeck/internal/repo"
)

// Pusher delivers an event to a user's realtime channel. Returns false when
// the user has no active connection.
type Pusher interface {
	PushToUser(userID string, ev event.WsEvent) bool
}

type ChatService interface {
	SendMessage(ctx context.Context, senderID, receiverID, content string) (*model.Message, error)
	Conversation(ctx context.Context, userA, userB string) ([]model.Message, error)
}

type chatService struct {
	messages repo.MessageRepository
	pusher   Pusher
	logger   *zap.Logger
}

func NewChatService(messages repo.MessageRepository, pusher Pusher, logger *zap.Logger) ChatService {
	return &chatService{
		messages: messages,
		pusher:   pusher,
		logger:   logger,
	}
}

// SendMessage validates, persists, then pushes to the recipient's channel if
// one is open. Persistence is authoritative: the message is returned to the
// sender whether or not delivery happened, and an offline recipient sees it
// on the next history fetch. No retry, no acknowledgment.
func (s *chatService) SendMessage(ctx context.Context, senderID, receiverID, content string) (*model.Message, error) {
	msg, err := model.NewMessage(senderID, receiverID, content)
	if err != nil {
		return nil, err
	}

	stored, err := s.messages.Insert(ctx, msg)
	if err != nil {
		return nil, err
	}

	ev, err := event.New(event.EventMessageNew, stored)
	if err != nil {
		s.logger.Error("failed to encode message event", zap.Error(err))
		return stored, nil
	}

	if delivered := s.pusher.PushToUser(receiverID, ev); !delivered {
		s.logger.Debug("recipient offline, skipping push",
			zap.String("receiver_id", receiverID),
			zap.String("message_id", stored.ID.Hex()),
		)
	}

	return stored, nil
}

func (s *chatService) Conversation(ctx context.Context, userA, userB string) ([]model.Message, error) {
	return s.messages.Conversation(ctx, userA, userB)
}
