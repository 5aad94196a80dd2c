// Package app assembles the storage stack shared by the API server and the
// admin CLI, so both read and write the collection the same way.
package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/pkordes/travel-planner/internal/config"
	"github.com/pkordes/travel-planner/internal/repo"
	"github.com/pkordes/travel-planner/internal/storage"
)

// OpenStorage opens the backend selected by cfg, wraps it with retries and a
// circuit breaker, and seals values when a passphrase is configured.
// onRetry may be nil.
func OpenStorage(ctx context.Context, cfg config.Config, log *slog.Logger, onRetry func(op string, attempt int, err error)) (storage.Storage, error) {
	backend, err := storage.Open(ctx, cfg.Storage)
	if err != nil {
		return nil, fmt.Errorf("app.OpenStorage: %w", err)
	}

	rc := storage.DefaultResilienceConfig(string(cfg.Storage.Driver))
	rc.MaxRetries = cfg.SaveMaxRetries
	rc.OnRetry = onRetry
	var kv storage.Storage = storage.NewResilient(backend, rc, log)

	if cfg.StoragePassphrase != "" {
		sealed, err := storage.NewSealed(kv, cfg.StoragePassphrase)
		if err != nil {
			backend.Close()
			return nil, fmt.Errorf("app.OpenStorage: %w", err)
		}
		kv = sealed
	}
	return kv, nil
}

// OpenRepo is OpenStorage plus the itinerary repo over it. The returned
// storage must be closed by the caller.
func OpenRepo(ctx context.Context, cfg config.Config, log *slog.Logger, onRetry func(op string, attempt int, err error)) (repo.ItineraryRepo, storage.Storage, error) {
	kv, err := OpenStorage(ctx, cfg, log, onRetry)
	if err != nil {
		return nil, nil, err
	}
	return repo.NewItineraryRepo(kv, cfg.StorageKey, log), kv, nil
}
