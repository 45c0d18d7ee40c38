package auth

import (
	"context"

	"Tunedeck/internal/apperr"
)

// MockProvider treats the token itself as the user identifier and serves
// profiles from a fixed map. Used in tests and local development.
type MockProvider struct {
	Profiles map[string]*Profile
}

func (m *MockProvider) Verify(ctx context.Context, token string) (string, error) {
	if token == "" {
		return "", apperr.ErrUnauthenticated
	}
	return token, nil
}

func (m *MockProvider) User(ctx context.Context, userID string) (*Profile, error) {
	if p, ok := m.Profiles[userID]; ok {
		return p, nil
	}
	return nil, apperr.ErrNotFound
}
