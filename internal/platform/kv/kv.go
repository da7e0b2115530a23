// Package kv provides the key-value drivers the dashboard snapshot is
// persisted to. Every driver stores opaque byte values under string keys.
package kv

import (
	"context"
	"errors"
)

var (
	ErrNotFound   = errors.New("kv: key not found")
	ErrInvalidKey = errors.New("kv: invalid key")
)

type Store interface {
	// Get returns ErrNotFound when the key is absent.
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	// Delete is a no-op for absent keys.
	Delete(ctx context.Context, key string) error
	Ping(ctx context.Context) error
	Close() error
}
