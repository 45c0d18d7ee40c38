package model

import (
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"Tunedeck/internal/apperr"
)

// MaxMessageLength is the maximum accepted content length in characters,
// counted after trimming surrounding whitespace.
const MaxMessageLength = 1000

// Message is a direct message between two users. Immutable once created:
// no edits, no soft deletes, no read receipts.
type Message struct {
	ID         primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	SenderID   string             `json:"senderId" bson:"sender_id"`
	ReceiverID string             `json:"receiverId" bson:"receiver_id"`
	Content    string             `json:"content" bson:"content"`
	CreatedAt  time.Time          `json:"createdAt" bson:"created_at"`
}

// NewMessage validates and builds a message ready for insertion. Content is
// trimmed; the store assigns ID and CreatedAt at insert time.
func NewMessage(senderID, receiverID, content string) (*Message, error) {
	if senderID == "" {
		return nil, apperr.Validation("senderId", "is required")
	}
	if receiverID == "" {
		return nil, apperr.Validation("receiverId", "is required")
	}

	trimmed := strings.TrimSpace(content)
	if trimmed == "" {
		return nil, apperr.Validation("content", "is required")
	}
	if len([]rune(trimmed)) > MaxMessageLength {
		return nil, apperr.Validation("content", fmt.Sprintf("must be at most %d characters", MaxMessageLength))
	}

	return &Message{
		SenderID:   senderID,
		ReceiverID: receiverID,
		Content:    trimmed,
	}, nil
}
