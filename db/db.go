// Package db persists opaque values under string keys. The invoice store keeps
// its whole collection in one key, so any backend only needs Get and Set.
package db

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/satheeshds/invoicetrack/config"
)

// KV is a minimal key-value backend.
type KV interface {
	// Get returns the value for key. ok is false when the key was never set.
	Get(ctx context.Context, key string) (value []byte, ok bool, err error)
	// Set replaces the value for key.
	Set(ctx context.Context, key string, value []byte) error
	Close() error
}

// Open creates the backend selected by cfg.Driver and applies migrations
// where the backend needs them.
func Open(ctx context.Context, cfg config.StoreConfig, logger *slog.Logger) (KV, error) {
	if logger == nil {
		logger = slog.Default()
	}

	switch cfg.Driver {
	case config.DriverSQLite:
		return OpenSQLite(ctx, cfg.Path, logger)
	case config.DriverPostgres:
		return OpenPostgres(ctx, cfg.DatabaseURL, cfg.MaxConns, logger)
	case config.DriverMemory:
		logger.Info("using in-memory store; data will not survive a restart")
		return NewMemoryKV(), nil
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.Driver)
	}
}
