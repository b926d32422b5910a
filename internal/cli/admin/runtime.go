package admin

import (
	"context"
	"fmt"

	"github.com/cloo-solutions/lexsearch/internal/config"
	"github.com/cloo-solutions/lexsearch/internal/database"
	"github.com/cloo-solutions/lexsearch/internal/logger"
	"github.com/cloo-solutions/lexsearch/internal/storage"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// loadRuntime reads configuration and builds the process logger.
func loadRuntime() (*config.Config, *zap.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	log, err := logger.NewLogger(cfg.Environment, cfg.LogLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create logger: %w", err)
	}
	return cfg, log, nil
}

func openPool(ctx context.Context, cfg *config.Config) (*pgxpool.Pool, error) {
	pool, err := database.NewPool(ctx, database.Config{
		URL:      cfg.DatabaseURL,
		MaxConns: cfg.DBMaxConns,
		MinConns: cfg.DBMinConns,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return pool, nil
}

// newObjectStore returns nil when S3 is not configured.
func newObjectStore(ctx context.Context, cfg *config.Config) (*storage.S3Client, error) {
	if !cfg.HasS3() {
		return nil, nil
	}
	client, err := storage.NewS3Client(ctx, storage.S3ClientConfig{
		Endpoint:        cfg.S3Endpoint,
		Region:          cfg.S3Region,
		AccessKeyID:     cfg.S3AccessKey,
		SecretAccessKey: cfg.S3SecretKey,
		Bucket:          cfg.S3Bucket,
		UsePathStyle:    cfg.S3Endpoint != "",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create S3 client: %w", err)
	}
	return client, nil
}
