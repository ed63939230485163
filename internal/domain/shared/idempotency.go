package shared

import (
	"context"
	"time"
)

// IdempotencyStore remembers keys that were already handled, used to
// de-duplicate background task submissions
type IdempotencyStore interface {
	// MarkProcessed marks a key as processed with a TTL
	// Returns true if the key was newly marked, false if it was already present
	MarkProcessed(ctx context.Context, key string, ttl time.Duration) (bool, error)

	// IsProcessed checks if a key has already been marked
	IsProcessed(ctx context.Context, key string) (bool, error)

	// Release forgets a key so it can be marked again
	Release(ctx context.Context, key string) error

	// Close closes the store and releases resources
	Close() error
}
