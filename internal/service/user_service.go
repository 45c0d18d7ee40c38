package service

import (
	"context"

	"go.uber.org/zap"

	"Tunedeck/internal/model"
	"Tunedeck/internal/repo"
)

type UserService interface {
	// Sync mirrors the identity-provider profile after sign-in.
	Sync(ctx context.Context, externalID, fullName, imageURL string) (*model.User, error)
	// All lists every user except the caller, for the chat directory.
	All(ctx context.Context, exceptExternalID string) ([]model.User, error)
}

type userService struct {
	users  repo.UserRepository
	logger *zap.Logger
}

func NewUserService(users repo.UserRepository, logger *zap.Logger) UserService {
	return &userService{users: users, logger: logger}
}

func (s *userService) Sync(ctx context.Context, externalID, fullName, imageURL string) (*model.User, error) {
	user, err := s.users.Upsert(ctx, externalID, fullName, imageURL)
	if err != nil {
		return nil, err
	}

	s.logger.Debug("user synced", zap.String("external_id", externalID))
	return user, nil
}

func (s *userService) All(ctx context.Context, exceptExternalID string) ([]model.User, error) {
	return s.users.AllExcept(ctx, exceptExternalID)
}
