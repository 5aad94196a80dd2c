// Package storage provides the durable key-value backends the itinerary
// collection is persisted to. Each backend stores opaque byte values under
// string keys; serialisation belongs to the repo layer.
//
// Backends: in-memory, local file (the on-device default), Postgres, Redis,
// MongoDB, and DynamoDB. Sealed and Resilient wrap any backend with at-rest
// encryption and retry/circuit-breaking respectively.
package storage

import (
	"context"
	"errors"
)

// ErrKeyNotFound is returned by Get when nothing has ever been stored under
// the key. Callers treat it as "absent", not as a failure.
var ErrKeyNotFound = errors.New("storage: key not found")

// Storage is the minimal contract every backend satisfies.
// Set overwrites the whole value; there are no partial writes.
type Storage interface {
	// Get returns the value stored under key, or ErrKeyNotFound.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key string, value []byte) error

	// Close releases connections held by the backend.
	Close() error
}
