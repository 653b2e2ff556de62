// Package bootstrap wires the database and Redis connections shared by the
// server and the command line tools.
package bootstrap

import (
	"context"
	"fmt"

	"holocron/internal/cache"
	"holocron/internal/config"
	"holocron/internal/database"
	"holocron/internal/identity"
	"holocron/internal/repository"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Options control runtime initialization behavior.
type Options struct {
	// EnsureCurrentUser inserts the configured acting user when it is missing.
	EnsureCurrentUser bool
}

// InitRuntime connects to the database and Redis.
func InitRuntime(cfg *config.Config, opts Options) (*gorm.DB, *redis.Client, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("database connection failed: %w", err)
	}

	// Init Redis (may result in nil client if unreachable)
	cache.InitRedis(cfg.RedisURL)
	r := cache.GetClient()

	if opts.EnsureCurrentUser {
		if err := EnsureCurrentUser(context.Background(), cfg, db); err != nil {
			return nil, nil, fmt.Errorf("failed to bootstrap current user: %w", err)
		}
	}

	return db, r, nil
}

// EnsureCurrentUser materializes the configured acting user.
func EnsureCurrentUser(ctx context.Context, cfg *config.Config, db *gorm.DB) error {
	if cfg == nil || db == nil {
		return nil
	}
	id := identity.NewFixed(repository.NewUserRepository(db), cfg.CurrentUserID, cfg.CurrentUsername, cfg.CurrentUserEmail)
	_, err := id.Materialize(ctx, cfg.CurrentUserID)
	return err
}
