package service

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/samber/lo"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"Tunedeck/internal/apperr"
	"Tunedeck/internal/model"
	"Tunedeck/internal/repo"
	"Tunedeck/internal/storage"
)

const (
	featuredCount   = 6
	madeForYouCount = 4
	trendingCount   = 4
)

// UploadFile is a media file received from a multipart request.
type UploadFile struct {
	Name        string
	ContentType string
	Body        io.ReadSeeker
}

type CreateSongInput struct {
	Title    string
	Artist   string
	Duration int
	AlbumID  string
	Audio    UploadFile
	Image    UploadFile
}

type CreateAlbumInput struct {
	Title       string
	Artist      string
	ReleaseYear int
	Image       UploadFile
}

type CatalogService interface {
	AllSongs(ctx context.Context) ([]model.Song, error)
	FeaturedSongs(ctx context.Context) ([]model.Song, error)
	MadeForYouSongs(ctx context.Context) ([]model.Song, error)
	TrendingSongs(ctx context.Context) ([]model.Song, error)
	CreateSong(ctx context.Context, in CreateSongInput) (*model.Song, error)
	DeleteSong(ctx context.Context, id string) error
	Albums(ctx context.Context) ([]model.Album, error)
	AlbumByID(ctx context.Context, id string) (*model.AlbumDetail, error)
	CreateAlbum(ctx context.Context, in CreateAlbumInput) (*model.Album, error)
	DeleteAlbum(ctx context.Context, id string) error
}

type catalogService struct {
	songs    repo.SongRepository
	albums   repo.AlbumRepository
	uploader storage.Uploader
	logger   *zap.Logger
}

func NewCatalogService(songs repo.SongRepository, albums repo.AlbumRepository, uploader storage.Uploader, logger *zap.Logger) CatalogService {
	return &catalogService{
		songs:    songs,
		albums:   albums,
		uploader: uploader,
		logger:   logger,
	}
}

func (s *catalogService) AllSongs(ctx context.Context) ([]model.Song, error) {
	return s.songs.All(ctx)
}

func (s *catalogService) FeaturedSongs(ctx context.Context) ([]model.Song, error) {
	return s.songs.Sample(ctx, featuredCount)
}

func (s *catalogService) MadeForYouSongs(ctx context.Context) ([]model.Song, error) {
	return s.songs.Sample(ctx, madeForYouCount)
}

func (s *catalogService) TrendingSongs(ctx context.Context) ([]model.Song, error) {
	return s.songs.Sample(ctx, trendingCount)
}

// CreateSong uploads both media files, persists the song, and links it to
// its album when one is given. The album link is maintained on the album
// document's songs array.
func (s *catalogService) CreateSong(ctx context.Context, in CreateSongInput) (*model.Song, error) {
	if err := validateCreateSong(in); err != nil {
		return nil, err
	}

	var album *model.Album
	if in.AlbumID != "" {
		found, err := s.albums.ByID(ctx, in.AlbumID)
		if err != nil {
			return nil, err
		}
		album = found
	}

	audioURL, err := s.uploader.Upload(ctx, in.Audio.Name, in.Audio.ContentType, in.Audio.Body)
	if err != nil {
		return nil, err
	}
	imageURL, err := s.uploader.Upload(ctx, in.Image.Name, in.Image.ContentType, in.Image.Body)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	song := &model.Song{
		Title:     in.Title,
		Artist:    in.Artist,
		ImageURL:  imageURL,
		AudioURL:  audioURL,
		Duration:  in.Duration,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if album != nil {
		song.AlbumID = &album.ID
	}

	stored, err := s.songs.Insert(ctx, song)
	if err != nil {
		return nil, err
	}

	if album != nil {
		if err := s.albums.PushSong(ctx, album.ID, stored.ID); err != nil {
			return nil, err
		}
	}

	s.logger.Info("song created",
		zap.String("id", stored.ID.Hex()),
		zap.String("title", stored.Title),
		zap.String("artist", stored.Artist),
	)
	return stored, nil
}

func (s *catalogService) DeleteSong(ctx context.Context, id string) error {
	song, err := s.songs.ByID(ctx, id)
	if err != nil {
		return err
	}

	if song.AlbumID != nil {
		if err := s.albums.PullSong(ctx, *song.AlbumID, song.ID); err != nil {
			return err
		}
	}

	if err := s.songs.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("song deleted", zap.String("id", id))
	return nil
}

func (s *catalogService) Albums(ctx context.Context) ([]model.Album, error) {
	return s.albums.All(ctx)
}

func (s *catalogService) AlbumByID(ctx context.Context, id string) (*model.AlbumDetail, error) {
	album, err := s.albums.ByID(ctx, id)
	if err != nil {
		return nil, err
	}

	songs, err := s.songs.ByAlbum(ctx, album.ID)
	if err != nil {
		return nil, err
	}
	if songs == nil {
		songs = []model.Song{}
	}

	return &model.AlbumDetail{Album: *album, Songs: songs}, nil
}

func (s *catalogService) CreateAlbum(ctx context.Context, in CreateAlbumInput) (*model.Album, error) {
	if err := validateCreateAlbum(in); err != nil {
		return nil, err
	}

	imageURL, err := s.uploader.Upload(ctx, in.Image.Name, in.Image.ContentType, in.Image.Body)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	album := &model.Album{
		Title:       in.Title,
		Artist:      in.Artist,
		ImageURL:    imageURL,
		ReleaseYear: in.ReleaseYear,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	stored, err := s.albums.Insert(ctx, album)
	if err != nil {
		return nil, err
	}

	s.logger.Info("album created", zap.String("id", stored.ID.Hex()), zap.String("title", stored.Title))
	return stored, nil
}

// DeleteAlbum cascades: the album's songs go first, then the album itself.
func (s *catalogService) DeleteAlbum(ctx context.Context, id string) error {
	album, err := s.albums.ByID(ctx, id)
	if err != nil {
		return err
	}

	deleted, err := s.songs.DeleteByAlbum(ctx, album.ID)
	if err != nil {
		return err
	}

	if err := s.albums.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("album deleted",
		zap.String("id", id),
		zap.Int64("songs_deleted", deleted),
		zap.Strings("song_ids", lo.Map(album.Songs, func(sid primitive.ObjectID, _ int) string { return sid.Hex() })),
	)
	return nil
}

func validateCreateSong(in CreateSongInput) error {
	if in.Title == "" {
		return apperr.Validation("title", "is required")
	}
	if in.Artist == "" {
		return apperr.Validation("artist", "is required")
	}
	if in.Duration <= 0 {
		return apperr.Validation("duration", "must be a positive number of seconds")
	}
	if in.Audio.Body == nil {
		return apperr.Validation("audioFile", "is required")
	}
	if in.Image.Body == nil {
		return apperr.Validation("imageFile", "is required")
	}
	return nil
}

func validateCreateAlbum(in CreateAlbumInput) error {
	if in.Title == "" {
		return apperr.Validation("title", "is required")
	}
	if in.Artist == "" {
		return apperr.Validation("artist", "is required")
	}
	year := in.ReleaseYear
	if year < 1900 || year > time.Now().Year() {
		return apperr.Validation("releaseYear", fmt.Sprintf("must be between 1900 and %d", time.Now().Year()))
	}
	if in.Image.Body == nil {
		return apperr.Validation("imageFile", "is required")
	}
	return nil
}
