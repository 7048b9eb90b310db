// Copyright (c) 2026 Rafaela Botelho
// SPDX-License-Identifier: MIT

// Package cache provides a small []byte cache used to front the public
// list endpoints. Two implementations exist: an in-process memory cache
// and a Redis cache for multi-instance deployments.
package cache

import (
	"context"
	"time"
)

// Cache is the contract shared by both implementations. All
// implementations are safe for concurrent use.
type Cache interface {
	// Get retrieves a value. Returns ErrCacheMiss if absent or expired.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores a value with the given TTL; 0 uses the default TTL.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete removes a key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases any resources held by the cache.
	Close() error
}

// Error is the error type for cache operations.
type Error string

func (e Error) Error() string { return string(e) }

const (
	// ErrCacheMiss indicates the key was not found or has expired.
	ErrCacheMiss Error = "cache miss"

	// ErrCacheClosed indicates the cache has been closed.
	ErrCacheClosed Error = "cache closed"
)

// Config selects and sizes the cache backend.
type Config struct {
	// RedisURL switches to the Redis backend when non-empty.
	RedisURL string

	// Prefix is prepended to all keys in Redis.
	Prefix string

	// DefaultTTL applies when Set is called with ttl 0.
	DefaultTTL time.Duration

	// MaxEntries caps the memory cache (0 = unlimited).
	MaxEntries int
}

// New creates a cache from the configuration.
func New(cfg Config) (Cache, error) {
	if cfg.DefaultTTL <= 0 {
		cfg.DefaultTTL = 5 * time.Minute
	}
	if cfg.RedisURL != "" {
		return NewRedisCache(cfg.RedisURL, cfg.Prefix, cfg.DefaultTTL)
	}
	return NewMemoryCache(cfg.DefaultTTL, cfg.MaxEntries), nil
}
