package service

import (
	"context"

	"go.uber.org/zap"

	"Tunedeck/internal/model"
	"Tunedeck/internal/repo"
)

// Presence exposes the hub's view of who is online.
type Presence interface {
	OnlineCount() int
}

type StatService interface {
	Stats(ctx context.Context) (*model.Stats, error)
}

type statService struct {
	songs    repo.SongRepository
	albums   repo.AlbumRepository
	users    repo.UserRepository
	presence Presence
	logger   *zap.Logger
}

func NewStatService(songs repo.SongRepository, albums repo.AlbumRepository, users repo.UserRepository, presence Presence, logger *zap.Logger) StatService {
	return &statService{
		songs:    songs,
		albums:   albums,
		users:    users,
		presence: presence,
		logger:   logger,
	}
}

func (s *statService) Stats(ctx context.Context) (*model.Stats, error) {
	totalSongs, err := s.songs.Count(ctx)
	if err != nil {
		return nil, err
	}
	totalAlbums, err := s.albums.Count(ctx)
	if err != nil {
		return nil, err
	}
	totalUsers, err := s.users.Count(ctx)
	if err != nil {
		return nil, err
	}
	artists, err := s.songs.DistinctArtists(ctx)
	if err != nil {
		return nil, err
	}

	return &model.Stats{
		TotalSongs:   totalSongs,
		TotalAlbums:  totalAlbums,
		TotalUsers:   totalUsers,
		TotalArtists: int64(len(artists)),
		OnlineUsers:  s.presence.OnlineCount(),
	}, nil
}
