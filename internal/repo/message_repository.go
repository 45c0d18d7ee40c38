package repo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"Tunedeck/internal/apperr"
	"Tunedeck/internal/db"
	"Tunedeck/internal/model"
)

// MessageRepository is the durable message store. Messages are create-once,
// read-many: no update or delete operations exist.
type MessageRepository interface {
	Insert(ctx context.Context, msg *model.Message) (*model.Message, error)
	Conversation(ctx context.Context, userA, userB string) ([]model.Message, error)
}

type messageRepository struct {
	con       *mongo.Database
	mongoRepo *db.Repository[model.Message]
	logger    *zap.Logger
}

func NewMessageRepository(con *mongo.Database, mongoRepo *db.Repository[model.Message], logger *zap.Logger) MessageRepository {
	return &messageRepository{
		con:       con,
		mongoRepo: mongoRepo,
		logger:    logger,
	}
}

// Insert assigns the server-generated id and timestamp and persists the
// message. Each insert is an independent write; there is no multi-message
// transactional scope.
func (m *messageRepository) Insert(ctx context.Context, msg *model.Message) (*model.Message, error) {
	if msg == nil {
		return nil, ErrInvalidMessage
	}
	if msg.SenderID == "" || msg.ReceiverID == "" {
		return nil, ErrInvalidUserID
	}

	ctx, cancel := ensureTimeout(ctx, defaultWriteTimeout)
	defer cancel()

	stored := *msg
	stored.ID = primitive.NewObjectID()
	stored.CreatedAt = time.Now().UTC()

	if _, err := m.mongoRepo.Create(ctx, stored); err != nil {
		m.logger.Error("failed to insert message",
			zap.String("sender_id", stored.SenderID),
			zap.String("receiver_id", stored.ReceiverID),
			zap.Error(err),
		)
		return nil, fmt.Errorf("%w: insert message: %v", apperr.ErrPersistence, err)
	}

	m.logger.Debug("message inserted",
		zap.String("id", stored.ID.Hex()),
		zap.String("sender_id", stored.SenderID),
	)
	return &stored, nil
}

// Conversation returns the full history between two users in either
// direction, ordered by creation time ascending. Retrieval is symmetric:
// Conversation(a, b) == Conversation(b, a).
func (m *messageRepository) Conversation(ctx context.Context, userA, userB string) ([]model.Message, error) {
	if userA == "" || userB == "" {
		return nil, ErrInvalidUserID
	}

	ctx, cancel := ensureTimeout(ctx, defaultReadTimeout)
	defer cancel()

	filter := db.NewFilter().Or(
		bson.M{"sender_id": userA, "receiver_id": userB},
		bson.M{"sender_id": userB, "receiver_id": userA},
	).Build()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
	msgs, err := m.mongoRepo.FindAll(ctx, filter, opts)
	if err != nil {
		m.logger.Error("failed to query conversation",
			zap.String("user_a", userA),
			zap.String("user_b", userB),
			zap.Error(err),
		)
		return nil, fmt.Errorf("%w: query conversation: %v", apperr.ErrPersistence, err)
	}

	return msgs, nil
}
