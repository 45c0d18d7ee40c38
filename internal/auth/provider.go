package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"Tunedeck/internal/apperr"
)

// Profile carries the identity-provider-owned fields the application reads
// on demand. The application never stores email; it is only consulted for
// the admin check.
type Profile struct {
	ID       string `json:"id"`
	FullName string `json:"fullName"`
	ImageURL string `json:"imageUrl"`
	Email    string `json:"email"`
}

// Provider is the boundary to the external identity provider. Verify checks
// a session token and returns the verified user identifier; User fetches
// profile fields for an identifier.
type Provider interface {
	Verify(ctx context.Context, token string) (string, error)
	User(ctx context.Context, userID string) (*Profile, error)
}

// HTTPProvider verifies provider-issued session tokens locally (HMAC-signed
// JWT with the provider's shared secret) and fetches profiles from the
// provider's management API.
type HTTPProvider struct {
	apiURL string
	apiKey string
	secret []byte
	issuer string
	client *http.Client
	logger *zap.Logger
}

func NewHTTPProvider(apiURL, apiKey, secret, issuer string, logger *zap.Logger) *HTTPProvider {
	return &HTTPProvider{
		apiURL: strings.TrimRight(apiURL, "/"),
		apiKey: apiKey,
		secret: []byte(secret),
		issuer: issuer,
		client: &http.Client{Timeout: 10 * time.Second},
		logger: logger,
	}
}

func (p *HTTPProvider) Verify(ctx context.Context, token string) (string, error) {
	if token == "" {
		return "", apperr.ErrUnauthenticated
	}

	parsed, err := jwt.Parse(token, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return p.secret, nil
	}, jwt.WithIssuer(p.issuer), jwt.WithExpirationRequired())
	if err != nil {
		p.logger.Debug("token verification failed", zap.Error(err))
		return "", apperr.ErrUnauthenticated
	}

	sub, err := parsed.Claims.GetSubject()
	if err != nil || sub == "" {
		return "", apperr.ErrUnauthenticated
	}
	return sub, nil
}

// providerUser is the provider API's user representation.
type providerUser struct {
	ID           string `json:"id"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	ImageURL     string `json:"image_url"`
	PrimaryEmail string `json:"primary_email_address"`
}

func (p *HTTPProvider) User(ctx context.Context, userID string) (*Profile, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.apiURL+"/users/"+userID, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: build profile request: %v", apperr.ErrUpstream, err)
	}
	req.Header.Set("Authorization", "Bearer "+p.apiKey)

	resp, err := p.client.Do(req)
	if err != nil {
		p.logger.Error("identity provider unreachable", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", apperr.ErrUpstream, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, apperr.ErrNotFound
	}
	if resp.StatusCode != http.StatusOK {
		p.logger.Error("identity provider error", zap.Int("status", resp.StatusCode))
		return nil, fmt.Errorf("%w: provider returned status %d", apperr.ErrUpstream, resp.StatusCode)
	}

	var pu providerUser
	if err := json.NewDecoder(resp.Body).Decode(&pu); err != nil {
		return nil, fmt.Errorf("%w: decode profile: %v", apperr.ErrUpstream, err)
	}

	return &Profile{
		ID:       pu.ID,
		FullName: strings.TrimSpace(pu.FirstName + " " + pu.LastName),
		ImageURL: pu.ImageURL,
		Email:    pu.PrimaryEmail,
	}, nil
}
