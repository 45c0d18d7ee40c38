package repo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"Tunedeck/internal/apperr"
	"Tunedeck/internal/db"
	"Tunedeck/internal/model"
)

type AlbumRepository interface {
	Insert(ctx context.Context, album *model.Album) (*model.Album, error)
	ByID(ctx context.Context, id string) (*model.Album, error)
	All(ctx context.Context) ([]model.Album, error)
	PushSong(ctx context.Context, albumID, songID primitive.ObjectID) error
	PullSong(ctx context.Context, albumID, songID primitive.ObjectID) error
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)
}

type albumRepository struct {
	con       *mongo.Database
	mongoRepo *db.Repository[model.Album]
	logger    *zap.Logger
}

func NewAlbumRepository(con *mongo.Database, mongoRepo *db.Repository[model.Album], logger *zap.Logger) AlbumRepository {
	return &albumRepository{
		con:       con,
		mongoRepo: mongoRepo,
		logger:    logger,
	}
}

func (r *albumRepository) Insert(ctx context.Context, album *model.Album) (*model.Album, error) {
	ctx, cancel := ensureTimeout(ctx, defaultWriteTimeout)
	defer cancel()

	stored := *album
	stored.ID = primitive.NewObjectID()
	if stored.Songs == nil {
		stored.Songs = []primitive.ObjectID{}
	}

	if _, err := r.mongoRepo.Create(ctx, stored); err != nil {
		r.logger.Error("failed to insert album", zap.String("title", stored.Title), zap.Error(err))
		return nil, fmt.Errorf("%w: insert album: %v", apperr.ErrPersistence, err)
	}
	return &stored, nil
}

func (r *albumRepository) ByID(ctx context.Context, id string) (*model.Album, error) {
	ctx, cancel := ensureTimeout(ctx, defaultReadTimeout)
	defer cancel()

	album, err := r.mongoRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) || errors.Is(err, primitive.ErrInvalidHex) {
			return nil, apperr.ErrNotFound
		}
		return nil, fmt.Errorf("%w: find album: %v", apperr.ErrPersistence, err)
	}
	return album, nil
}

func (r *albumRepository) All(ctx context.Context) ([]model.Album, error) {
	ctx, cancel := ensureTimeout(ctx, defaultReadTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	albums, err := r.mongoRepo.FindAll(ctx, db.Empty(), opts)
	if err != nil {
		r.logger.Error("failed to list albums", zap.Error(err))
		return nil, fmt.Errorf("%w: list albums: %v", apperr.ErrPersistence, err)
	}
	return albums, nil
}

func (r *albumRepository) PushSong(ctx context.Context, albumID, songID primitive.ObjectID) error {
	return r.updateSongs(ctx, albumID, bson.M{"$push": bson.M{"songs": songID}})
}

func (r *albumRepository) PullSong(ctx context.Context, albumID, songID primitive.ObjectID) error {
	return r.updateSongs(ctx, albumID, bson.M{"$pull": bson.M{"songs": songID}})
}

func (r *albumRepository) updateSongs(ctx context.Context, albumID primitive.ObjectID, update bson.M) error {
	ctx, cancel := ensureTimeout(ctx, defaultWriteTimeout)
	defer cancel()

	if _, err := r.mongoRepo.UpdateRaw(ctx, bson.M{"_id": albumID}, update); err != nil {
		r.logger.Error("failed to update album songs", zap.String("album_id", albumID.Hex()), zap.Error(err))
		return fmt.Errorf("%w: update album songs: %v", apperr.ErrPersistence, err)
	}
	return nil
}

func (r *albumRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := ensureTimeout(ctx, defaultWriteTimeout)
	defer cancel()

	res, err := r.mongoRepo.DeleteByID(ctx, id)
	if err != nil {
		if errors.Is(err, primitive.ErrInvalidHex) {
			return apperr.ErrNotFound
		}
		return fmt.Errorf("%w: delete album: %v", apperr.ErrPersistence, err)
	}
	if res.DeletedCount == 0 {
		return apperr.ErrNotFound
	}
	return nil
}

func (r *albumRepository) Count(ctx context.Context) (int64, error) {
	ctx, cancel := ensureTimeout(ctx, defaultReadTimeout)
	defer cancel()
	return r.mongoRepo.Count(ctx, db.Empty())
}
