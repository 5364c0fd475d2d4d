// Package cache provides the key-value store used for city codes and final answers.
package cache

import (
	"context"
	"time"
)

// Store is a key-value store with an explicit TTL per entry.
type Store interface {
	// Get returns the value for key. The second return value reports
	// whether the key was present and unexpired.
	Get(ctx context.Context, key string) (string, bool, error)

	// Set stores value under key for the given TTL.
	Set(ctx context.Context, key string, value string, ttl time.Duration) error
}
