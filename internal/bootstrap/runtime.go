// Package bootstrap wires the process-level runtime shared by the server and
// the command line tools.
package bootstrap

import (
	"context"
	"fmt"

	"commons/internal/cache"
	"commons/internal/config"
	"commons/internal/database"
	"commons/internal/seed"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Options control runtime initialization behavior.
type Options struct {
	// SeedBuiltIns loads the built-in admin and catalog even when
	// SEED_ON_START is off.
	SeedBuiltIns bool
}

// InitRuntime connects to DB and Redis and optionally runs built-in seeding.
func InitRuntime(cfg *config.Config, opts Options) (*gorm.DB, *redis.Client, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("database connection failed: %w", err)
	}

	// Redis may be nil here; the server decides whether that is fatal.
	cache.InitRedis(cfg.RedisURL)

	if err := Prepare(context.Background(), cfg, db, opts); err != nil {
		return nil, nil, err
	}
	return db, cache.GetClient(), nil
}

// Prepare runs the post-connect steps against an open database.
func Prepare(ctx context.Context, cfg *config.Config, db *gorm.DB, opts Options) error {
	if !opts.SeedBuiltIns && !cfg.SeedOnStart {
		return nil
	}
	if _, err := seed.Apply(ctx, db); err != nil {
		return fmt.Errorf("failed to seed built-in catalog: %w", err)
	}
	return nil
}
