// Package cache stores rendered artifacts keyed by the content they were
// rendered from.
//
// Three backends implement [Cache]:
//
//   - [FileCache]: one file per entry under a directory, for CLI use
//   - [RedisCache]: a shared Redis instance, selected by a redis:// URL
//   - [NullCache]: stores nothing, for --no-cache runs and tests
//
// Keys come from a [Keyer]. [DefaultKeyer] hashes the data digest together
// with every option that affects the output, so a changed data file or a
// different focus never returns a stale artifact.
package cache

import (
	"context"
	"errors"
	"strings"
	"time"
)

var (
	// ErrUnsupportedURL is returned by Open for a URL it cannot map to a backend.
	ErrUnsupportedURL = errors.New("unsupported cache url")
	// ErrNetwork marks a failed round trip to a remote backend.
	ErrNetwork = errors.New("network error")
)

// Cache is a byte store with optional expiry.
type Cache interface {
	// Get returns the value for key. A miss is (nil, false, nil).
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data under key. A ttl of zero means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Clearer is implemented by caches that can drop every entry they own.
type Clearer interface {
	Clear(ctx context.Context) error
}

// Open returns the cache for url. An empty url opens a FileCache in dir,
// "none" disables caching and redis:// or rediss:// URLs connect to Redis.
func Open(ctx context.Context, url, dir string) (Cache, error) {
	switch {
	case url == "":
		return NewFileCache(dir)
	case url == "none":
		return NewNullCache(), nil
	case strings.HasPrefix(url, "redis://"), strings.HasPrefix(url, "rediss://"):
		return NewRedisCache(ctx, url)
	default:
		return nil, ErrUnsupportedURL
	}
}

// NullCache misses on every Get and discards every Set.
type NullCache struct{}

// NewNullCache returns a cache that keeps nothing.
func NewNullCache() *NullCache { return &NullCache{} }

func (*NullCache) Get(context.Context, string) ([]byte, bool, error) { return nil, false, nil }

func (*NullCache) Set(context.Context, string, []byte, time.Duration) error { return nil }

func (*NullCache) Delete(context.Context, string) error { return nil }

func (*NullCache) Close() error { return nil }

var _ Cache = (*NullCache)(nil)
