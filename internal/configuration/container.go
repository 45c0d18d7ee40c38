package configuration

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"Tunedeck/internal/auth"
	"Tunedeck/internal/db"
	"Tunedeck/internal/handler"
	"Tunedeck/internal/hub"
	"Tunedeck/internal/model"
	"Tunedeck/internal/repo"
	"Tunedeck/internal/service"
	"Tunedeck/internal/storage"
)

type Container struct {
	Config *Config
	Logger *zap.Logger
	Hub    *hub.Hub

	Provider     auth.Provider
	Policy       auth.Policy
	UserHandler  handler.UserHandler
	SongHandler  handler.SongHandler
	AlbumHandler handler.AlbumHandler
	AdminHandler handler.AdminHandler
	StatHandler  handler.StatHandler
	AuthHandler  handler.AuthHandler

	// private - for cleanup
	mongoDB *mongo.Database
}

func BuildContainer() (*Container, error) {
	cfg, err := LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	var logger *zap.Logger
	if cfg.IsDevelopment() {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}

	con, err := db.OpenConnection(cfg.MongoURI, cfg.MongoDatabase)
	if err != nil {
		return nil, fmt.Errorf("open mongo connection: %w", err)
	}

	messageRepo := repo.NewMessageRepository(con, db.NewRepository[model.Message](con, "messages"), logger)
	userRepo := repo.NewUserRepository(con, db.NewRepository[model.User](con, "users"), logger)
	songRepo := repo.NewSongRepository(con, db.NewRepository[model.Song](con, "songs"), logger)
	albumRepo := repo.NewAlbumRepository(con, db.NewRepository[model.Album](con, "albums"), logger)

	uploader, err := buildUploader(cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("build media uploader: %w", err)
	}

	provider := auth.NewHTTPProvider(cfg.AuthAPIURL, cfg.AuthAPIKey, cfg.AuthJWTSecret, cfg.AuthIssuer, logger)
	policy := auth.SingleAdminEmail(cfg.AdminEmail)

	h := hub.NewHub(cfg.AllowedOrigins, logger)

	chatService := service.NewChatService(messageRepo, h, logger)
	userService := service.NewUserService(userRepo, logger)
	catalogService := service.NewCatalogService(songRepo, albumRepo, uploader, logger)
	statService := service.NewStatService(songRepo, albumRepo, userRepo, h, logger)

	return &Container{
		Config:       cfg,
		Logger:       logger,
		Hub:          h,
		Provider:     provider,
		Policy:       policy,
		UserHandler:  handler.NewUserHandler(userService, chatService, logger),
		SongHandler:  handler.NewSongHandler(catalogService, logger),
		AlbumHandler: handler.NewAlbumHandler(catalogService, logger),
		AdminHandler: handler.NewAdminHandler(catalogService, logger),
		StatHandler:  handler.NewStatHandler(statService, logger),
		AuthHandler:  handler.NewAuthHandler(userService, logger),
		mongoDB:      con,
	}, nil
}

func buildUploader(cfg *Config, logger *zap.Logger) (storage.Uploader, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.MediaRegion),
	}
	if cfg.MediaAccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.MediaAccessKey, cfg.MediaSecretKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, err
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.MediaEndpoint != "" {
			o.BaseEndpoint = aws.String(cfg.MediaEndpoint)
			o.UsePathStyle = true
		}
	})

	return storage.NewS3Uploader(client, cfg.MediaBucket, cfg.MediaFolder, cfg.MediaBaseURL, logger), nil
}

// Close gracefully shuts down all connections.
func (c *Container) Close() error {
	if c.Hub != nil {
		c.Hub.Stop()
	}

	if c.Logger != nil {
		_ = c.Logger.Sync()
	}

	if c.mongoDB != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := c.mongoDB.Client().Disconnect(ctx); err != nil {
			return fmt.Errorf("failed to close MongoDB connection: %w", err)
		}
	}

	return nil
}
