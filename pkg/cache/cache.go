// Package cache stores computed layouts and rendered artifacts between runs.
//
// Force layouts are deterministic for a given graph, seed, step count and
// physics setting, so the CLI can skip the simulation entirely when the
// same input is rendered twice. Keys come from a [Keyer]; values are opaque
// bytes with an optional TTL.
//
//	c, _ := cache.NewFileCache(cache.DefaultDir())
//	key := cache.NewDefaultKeyer().LayoutKey(graphHash, opts)
//	data, hit, err := c.Get(ctx, key)
package cache

import (
	"context"
	"os"
	"path/filepath"
	"time"
)

// Entry lifetimes.
const (
	TTLLayout   = 7 * 24 * time.Hour
	TTLArtifact = 24 * time.Hour
)

// Cache is a byte store keyed by string.
type Cache interface {
	// Get returns the value and true on a hit. A miss is not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data. A zero ttl never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// DefaultDir returns the per-user cache directory, falling back to the
// system temp dir when the user cache dir is unknown.
func DefaultDir() string {
	if dir, err := os.UserCacheDir(); err == nil {
		return filepath.Join(dir, "forcegraph")
	}
	return filepath.Join(os.TempDir(), "forcegraph-cache")
}
