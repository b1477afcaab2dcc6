// Package admin holds the aifaqd subcommands.
package admin

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/media-confidence/aifaq/internal/config"
	"github.com/media-confidence/aifaq/internal/database"
	"github.com/media-confidence/aifaq/internal/logging"
	"github.com/media-confidence/aifaq/internal/storage"
	"github.com/rs/zerolog"
)

// env is what every subcommand needs before touching the store.
type env struct {
	cfg    *config.Config
	logger zerolog.Logger
}

// loadEnv reads configuration and installs the logger. Command output goes
// to stdout, so log lines go to stderr.
func loadEnv(logOutput io.Writer) (*env, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if logOutput == nil {
		logOutput = os.Stderr
	}
	logger := logging.New(logging.Config{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
		Output: logOutput,
	})
	return &env{cfg: cfg, logger: logger}, nil
}

func (e *env) openPool(ctx context.Context) (*pgxpool.Pool, error) {
	pool, err := database.NewPool(ctx, database.Config{
		URL:      e.cfg.DatabaseURL,
		MaxConns: e.cfg.DBMaxConns,
		MinConns: e.cfg.DBMinConns,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return pool, nil
}

func (e *env) s3Client(ctx context.Context) (*storage.S3Client, error) {
	if !e.cfg.HasS3() {
		return nil, fmt.Errorf("S3 is not configured: set %s_S3_ENDPOINT, %s_S3_ACCESS_KEY_ID and %s_S3_SECRET_ACCESS_KEY",
			config.Prefix, config.Prefix, config.Prefix)
	}
	client, err := storage.NewS3Client(ctx, storage.S3ClientConfig{
		Endpoint:        e.cfg.S3Endpoint,
		Region:          e.cfg.S3Region,
		AccessKeyID:     e.cfg.S3AccessKey,
		SecretAccessKey: e.cfg.S3SecretKey,
		Bucket:          e.cfg.S3Bucket,
		UsePathStyle:    true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create S3 client: %w", err)
	}
	return client, nil
}
