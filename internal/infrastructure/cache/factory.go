package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/campmanager/backend/internal/domain/shared"
	"github.com/campmanager/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

// NewIdempotencyStore builds the de-duplication store named by
// queue.dedupe_store. A redis store that cannot connect falls back to
// memory outside production.
func NewIdempotencyStore(ctx context.Context, cfg *config.Config, logger *zap.Logger) (shared.IdempotencyStore, error) {
	sweep := cfg.Queue.DedupeTTL
	if sweep > 5*time.Minute {
		sweep = 5 * time.Minute
	}

	if cfg.Queue.DedupeStore != "redis" {
		logger.Info("using in-memory task de-duplication store")
		return NewInMemoryIdempotencyStore(sweep), nil
	}

	store, err := NewRedisIdempotencyStore(ctx, cfg.Redis)
	if err == nil {
		logger.Info("using Redis task de-duplication store", zap.String("addr", cfg.Redis.Addr()))
		return store, nil
	}
	if cfg.App.Env == "production" {
		return nil, fmt.Errorf("redis required for task de-duplication: %w", err)
	}

	logger.Warn("Redis unavailable, falling back to in-memory task de-duplication store",
		zap.Error(err),
	)
	return NewInMemoryIdempotencyStore(sweep), nil
}
