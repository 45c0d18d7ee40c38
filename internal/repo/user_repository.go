package repo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"Tunedeck/internal/apperr"
	"Tunedeck/internal/db"
	"Tunedeck/internal/model"
)

type UserRepository interface {
	Upsert(ctx context.Context, externalID, fullName, imageURL string) (*model.User, error)
	AllExcept(ctx context.Context, externalID string) ([]model.User, error)
	Count(ctx context.Context) (int64, error)
}

type userRepository struct {
	con       *mongo.Database
	mongoRepo *db.Repository[model.User]
	logger    *zap.Logger
}

func NewUserRepository(con *mongo.Database, mongoRepo *db.Repository[model.User], logger *zap.Logger) UserRepository {
	return &userRepository{
		con:       con,
		mongoRepo: mongoRepo,
		logger:    logger,
	}
}

// Upsert mirrors the identity-provider profile locally, keyed by the
// provider-issued identifier.
func (r *userRepository) Upsert(ctx context.Context, externalID, fullName, imageURL string) (*model.User, error) {
	if externalID == "" {
		return nil, ErrInvalidUserID
	}

	ctx, cancel := ensureTimeout(ctx, defaultWriteTimeout)
	defer cancel()

	now := time.Now().UTC()
	filter := db.NewFilter().Eq("external_id", externalID).Build()
	update := bson.M{
		"$set": bson.M{
			"full_name":  fullName,
			"image_url":  imageURL,
			"updated_at": now,
		},
		"$setOnInsert": bson.M{
			"external_id": externalID,
			"created_at":  now,
		},
	}

	if _, err := r.mongoRepo.UpdateRaw(ctx, filter, update, options.Update().SetUpsert(true)); err != nil {
		r.logger.Error("failed to upsert user", zap.String("external_id", externalID), zap.Error(err))
		return nil, fmt.Errorf("%w: upsert user: %v", apperr.ErrPersistence, err)
	}

	return r.mongoRepo.FindOne(ctx, filter)
}

// AllExcept returns the user directory minus the caller, newest first.
func (r *userRepository) AllExcept(ctx context.Context, externalID string) ([]model.User, error) {
	ctx, cancel := ensureTimeout(ctx, defaultReadTimeout)
	defer cancel()

	filter := db.NewFilter().Ne("external_id", externalID).Build()
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})

	users, err := r.mongoRepo.FindAll(ctx, filter, opts)
	if err != nil {
		r.logger.Error("failed to list users", zap.Error(err))
		return nil, fmt.Errorf("%w: list users: %v", apperr.ErrPersistence, err)
	}
	return users, nil
}

func (r *userRepository) Count(ctx context.Context) (int64, error) {
	ctx, cancel := ensureTimeout(ctx, defaultReadTimeout)
	defer cancel()
	return r.mongoRepo.Count(ctx, db.Empty())
}
