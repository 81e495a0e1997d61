// Package store provides the persistent key-value medium the ledger keeps
// its collections in. A Backend is a durable byte store; the Adapter layers
// typed JSON access on top with recovery semantics: reads fall back to a
// caller default, failed writes are logged and never surfaced.
package store

import (
	"context"
	"encoding/json"
	"errors"

	"go.uber.org/zap"
)

// ErrKeyNotFound is returned by backends for keys that were never written.
var ErrKeyNotFound = errors.New("key not found")

// Backend is a durable key-value medium.
type Backend interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
}

type Adapter struct {
	backend Backend
	logger  *zap.Logger
}

func NewAdapter(backend Backend, logger *zap.Logger) *Adapter {
	return &Adapter{
		backend: backend,
		logger:  logger,
	}
}

// Read returns the value stored under key, or def on a missing key, a
// malformed stored payload, or any backend failure. It never fails the
// caller.
func Read[T any](ctx context.Context, a *Adapter, key string, def T) T {
	data, err := a.backend.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, ErrKeyNotFound) {
			a.logger.Warn("failed to read stored value, using default",
				zap.String("key", key),
				zap.Error(err),
			)
		}
		return def
	}

	var value T
	if err := json.Unmarshal(data, &value); err != nil {
		a.logger.Warn("malformed stored value, using default",
			zap.String("key", key),
			zap.Error(err),
		)
		return def
	}
	return value
}

// Write serializes value under key. A persistence failure is logged as a
// warning and otherwise swallowed: the in-memory value stays authoritative
// for the session.
func Write[T any](ctx context.Context, a *Adapter, key string, value T) {
	data, err := json.Marshal(value)
	if err != nil {
		a.logger.Warn("failed to serialize value",
			zap.String("key", key),
			zap.Error(err),
		)
		return
	}

	if err := a.backend.Set(ctx, key, data); err != nil {
		a.logger.Warn("failed to persist value, keeping in-memory state",
			zap.String("key", key),
			zap.Error(err),
		)
	}
}
