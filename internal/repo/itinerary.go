// Package repo is the persistence adapter for the itinerary collection.
// It owns serialisation: the whole collection is encoded as one JSON array and
// stored under a single well-known key. No business logic lives here.
package repo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/pkordes/travel-planner/internal/domain"
	"github.com/pkordes/travel-planner/internal/storage"
)

// DefaultKey is the storage key the collection lives under.
const DefaultKey = "@travel_planner:itineraries"

// ItineraryRepo loads and saves the full itinerary collection.
// The store depends on this interface, not on the storage backends, which
// lets store tests substitute a scripted fake.
type ItineraryRepo interface {
	// Load returns the previously saved collection. found is false when nothing
	// was ever saved or the stored value cannot be decoded; decode failures are
	// logged and never returned as errors. err reports an unreachable backend.
	Load(ctx context.Context) (items []domain.Itinerary, found bool, err error)

	// Save encodes the full collection and overwrites the stored value.
	Save(ctx context.Context, items []domain.Itinerary) error
}

// kvItineraryRepo is the storage-backed implementation of ItineraryRepo.
type kvItineraryRepo struct {
	kv  storage.Storage
	key string
	log *slog.Logger
}

// NewItineraryRepo constructs an ItineraryRepo that keeps the collection
// under key in kv. An empty key means DefaultKey.
func NewItineraryRepo(kv storage.Storage, key string, log *slog.Logger) ItineraryRepo {
	if key == "" {
		key = DefaultKey
	}
	return &kvItineraryRepo{kv: kv, key: key, log: log}
}

// Load reads and decodes the collection.
func (r *kvItineraryRepo) Load(ctx context.Context) ([]domain.Itinerary, bool, error) {
	raw, err := r.kv.Get(ctx, r.key)
	switch {
	case errors.Is(err, storage.ErrKeyNotFound):
		return nil, false, nil
	case errors.Is(err, storage.ErrSealed):
		r.log.WarnContext(ctx, "stored itineraries cannot be opened; treating as absent", "key", r.key)
		return nil, false, nil
	case err != nil:
		return nil, false, fmt.Errorf("repo.ItineraryRepo.Load: %w", err)
	}

	items, err := decode(raw)
	if err != nil {
		r.log.WarnContext(ctx, "stored itineraries are not valid; treating as absent",
			"key", r.key, "error", err)
		return nil, false, nil
	}
	return items, true, nil
}

// Save encodes items and overwrites the stored value.
func (r *kvItineraryRepo) Save(ctx context.Context, items []domain.Itinerary) error {
	if items == nil {
		items = []domain.Itinerary{}
	}
	raw, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("repo.ItineraryRepo.Save: encode: %w", err)
	}
	if err := r.kv.Set(ctx, r.key, raw); err != nil {
		return fmt.Errorf("repo.ItineraryRepo.Save: %w", err)
	}
	return nil
}

// decode parses a stored value. Anything other than a JSON array of objects
// (including "null") is rejected so the caller falls back to its defaults.
func decode(raw []byte) ([]domain.Itinerary, error) {
	var items []domain.Itinerary
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, err
	}
	if items == nil {
		return nil, errors.New("stored value is not an array")
	}
	return items, nil
}
