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

type SongRepository interface {
	Insert(ctx context.Context, song *model.Song) (*model.Song, error)
	ByID(ctx context.Context, id string) (*model.Song, error)
	All(ctx context.Context) ([]model.Song, error)
	ByAlbum(ctx context.Context, albumID primitive.ObjectID) ([]model.Song, error)
	Sample(ctx context.Context, n int) ([]model.Song, error)
	Delete(ctx context.Context, id string) error
	DeleteByAlbum(ctx context.Context, albumID primitive.ObjectID) (int64, error)
	Count(ctx context.Context) (int64, error)
	DistinctArtists(ctx context.Context) ([]string, error)
}

type songRepository struct {
	con       *mongo.Database
	mongoRepo *db.Repository[model.Song]
	logger    *zap.Logger
}

func NewSongRepository(con *mongo.Database, mongoRepo *db.Repository[model.Song], logger *zap.Logger) SongRepository {
	return &songRepository{
		con:       con,
		mongoRepo: mongoRepo,
		logger:    logger,
	}
}

func (r *songRepository) Insert(ctx context.Context, song *model.Song) (*model.Song, error) {
	ctx, cancel := ensureTimeout(ctx, defaultWriteTimeout)
	defer cancel()

	stored := *song
	stored.ID = primitive.NewObjectID()

	if _, err := r.mongoRepo.Create(ctx, stored); err != nil {
		r.logger.Error("failed to insert song", zap.String("title", stored.Title), zap.Error(err))
		return nil, fmt.Errorf("%w: insert song: %v", apperr.ErrPersistence, err)
	}
	return &stored, nil
}

func (r *songRepository) ByID(ctx context.Context, id string) (*model.Song, error) {
	ctx, cancel := ensureTimeout(ctx, defaultReadTimeout)
	defer cancel()

	song, err := r.mongoRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) || errors.Is(err, primitive.ErrInvalidHex) {
			return nil, apperr.ErrNotFound
		}
		return nil, fmt.Errorf("%w: find song: %v", apperr.ErrPersistence, err)
	}
	return song, nil
}

func (r *songRepository) All(ctx context.Context) ([]model.Song, error) {
	ctx, cancel := ensureTimeout(ctx, defaultReadTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	songs, err := r.mongoRepo.FindAll(ctx, db.Empty(), opts)
	if err != nil {
		r.logger.Error("failed to list songs", zap.Error(err))
		return nil, fmt.Errorf("%w: list songs: %v", apperr.ErrPersistence, err)
	}
	return songs, nil
}

func (r *songRepository) ByAlbum(ctx context.Context, albumID primitive.ObjectID) ([]model.Song, error) {
	ctx, cancel := ensureTimeout(ctx, defaultReadTimeout)
	defer cancel()

	songs, err := r.mongoRepo.FindAll(ctx, db.NewFilter().Eq("album_id", albumID).Build())
	if err != nil {
		return nil, fmt.Errorf("%w: list album songs: %v", apperr.ErrPersistence, err)
	}
	return songs, nil
}

func (r *songRepository) Sample(ctx context.Context, n int) ([]model.Song, error) {
	ctx, cancel := ensureTimeout(ctx, defaultReadTimeout)
	defer cancel()

	songs, err := r.mongoRepo.Sample(ctx, n)
	if err != nil {
		r.logger.Error("failed to sample songs", zap.Int("n", n), zap.Error(err))
		return nil, fmt.Errorf("%w: sample songs: %v", apperr.ErrPersistence, err)
	}
	return songs, nil
}

func (r *songRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := ensureTimeout(ctx, defaultWriteTimeout)
	defer cancel()

	res, err := r.mongoRepo.DeleteByID(ctx, id)
	if err != nil {
		if errors.Is(err, primitive.ErrInvalidHex) {
			return apperr.ErrNotFound
		}
		return fmt.Errorf("%w: delete song: %v", apperr.ErrPersistence, err)
	}
	if res.DeletedCount == 0 {
		return apperr.ErrNotFound
	}
	return nil
}

func (r *songRepository) DeleteByAlbum(ctx context.Context, albumID primitive.ObjectID) (int64, error) {
	ctx, cancel := ensureTimeout(ctx, defaultWriteTimeout)
	defer cancel()

	res, err := r.mongoRepo.DeleteMany(ctx, db.NewFilter().Eq("album_id", albumID).Build())
	if err != nil {
		return 0, fmt.Errorf("%w: delete album songs: %v", apperr.ErrPersistence, err)
	}
	return res.DeletedCount, nil
}

func (r *songRepository) Count(ctx context.Context) (int64, error) {
	ctx, cancel := ensureTimeout(ctx, defaultReadTimeout)
	defer cancel()
	return r.mongoRepo.Count(ctx, db.Empty())
}

func (r *songRepository) DistinctArtists(ctx context.Context) ([]string, error) {
	ctx, cancel := ensureTimeout(ctx, defaultReadTimeout)
	defer cancel()

	values, err := r.mongoRepo.Distinct(ctx, "artist", db.Empty())
	if err != nil {
		return nil, fmt.Errorf("%w: distinct artists: %v", apperr.ErrPersistence, err)
	}

	artists := make([]string, 0, len(values))
	for _, v := range values {
		if s, ok := v.(string); ok {
			artists = append(artists, s)
		}
	}
	return artists, nil
}
