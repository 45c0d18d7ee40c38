package configuration

import (
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Environment string `envconfig:"ENVIRONMENT" default:"development"`

	AppPort        int      `envconfig:"PORT" default:"5000"`
	SocketPort     int      `envconfig:"SOCKET_PORT" default:"5001"`
	AllowedOrigins []string `envconfig:"ALLOWED_ORIGINS" default:"http://localhost:3000"`

	MongoURI      string `envconfig:"MONGODB_URI" required:"true"`
	MongoDatabase string `envconfig:"MONGODB_DATABASE" default:"tunedeck"`

	// The single administrator identity, matched exactly against the
	// identity-provider primary email.
	AdminEmail string `envconfig:"ADMIN_EMAIL" required:"true"`

	AuthAPIURL    string `envconfig:"AUTH_API_URL" required:"true"`
	AuthAPIKey    string `envconfig:"AUTH_API_KEY" required:"true"`
	AuthJWTSecret string `envconfig:"AUTH_JWT_SECRET" required:"true"`
	AuthIssuer    string `envconfig:"AUTH_ISSUER" default:"tunedeck-auth"`

	MediaBucket    string `envconfig:"MEDIA_BUCKET" required:"true"`
	MediaRegion    string `envconfig:"MEDIA_REGION" default:"us-east-1"`
	MediaEndpoint  string `envconfig:"MEDIA_ENDPOINT"`
	MediaAccessKey string `envconfig:"MEDIA_ACCESS_KEY"`
	MediaSecretKey string `envconfig:"MEDIA_SECRET_KEY"`
	MediaBaseURL   string `envconfig:"MEDIA_BASE_URL" required:"true"`
	MediaFolder    string `envconfig:"MEDIA_FOLDER" default:"tunedeck"`
}

// LoadConfig reads configuration from the environment, with an optional
// .env file for local development.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}
