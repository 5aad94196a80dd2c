package storage_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/sony/gobreaker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/travel-planner/internal/storage"
)

// flakyStorage fails the first failures calls to Set and Get, then delegates.
type flakyStorage struct {
	*storage.Memory

	mu       sync.Mutex
	failures int
	calls    int
}

var errUnavailable = errors.New("backend unavailable")

func (f *flakyStorage) fail() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.failures > 0 {
		f.failures--
		return true
	}
	return false
}

func (f *flakyStorage) Get(ctx context.Context, key string) ([]byte, error) {
	if f.fail() {
		return nil, errUnavailable
	}
	return f.Memory.Get(ctx, key)
}

func (f *flakyStorage) Set(ctx context.Context, key string, value []byte) error {
	if f.fail() {
		return errUnavailable
	}
	return f.Memory.Set(ctx, key, value)
}

func fastConfig() storage.ResilienceConfig {
	cfg := storage.DefaultResilienceConfig("test")
	cfg.BaseDelay = time.Millisecond
	cfg.MaxDelay = 5 * time.Millisecond
	return cfg
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestResilient_Contract(t *testing.T) {
	r := storage.NewResilient(storage.NewMemory(), fastConfig(), discardLogger())

	exerciseContract(t, r, "k")
}

func TestResilient_RetriesTransientFailures(t *testing.T) {
	inner := &flakyStorage{Memory: storage.NewMemory(), failures: 2}
	var retries []int
	cfg := fastConfig()
	cfg.OnRetry = func(op string, attempt int, err error) {
		assert.Equal(t, "set", op)
		assert.ErrorIs(t, err, errUnavailable)
		retries = append(retries, attempt)
	}
	r := storage.NewResilient(inner, cfg, discardLogger())

	err := r.Set(context.Background(), "k", []byte("v"))

	require.NoError(t, err)
	assert.Equal(t, 3, inner.calls)
	assert.Equal(t, []int{2, 3}, retries)
}

func TestResilient_GivesUpAfterMaxRetries(t *testing.T) {
	inner := &flakyStorage{Memory: storage.NewMemory(), failures: 100}
	cfg := fastConfig()
	cfg.MaxRetries = 2
	cfg.ConsecutiveFailures = 100
	r := storage.NewResilient(inner, cfg, discardLogger())

	err := r.Set(context.Background(), "k", []byte("v"))

	assert.ErrorIs(t, err, errUnavailable)
	assert.Equal(t, 3, inner.calls, "first attempt plus two retries")
}

func TestResilient_KeyNotFoundIsNotRetried(t *testing.T) {
	inner := &flakyStorage{Memory: storage.NewMemory()}
	r := storage.NewResilient(inner, fastConfig(), discardLogger())

	_, err := r.Get(context.Background(), "missing")

	assert.ErrorIs(t, err, storage.ErrKeyNotFound)
	assert.Equal(t, 1, inner.calls)
	assert.Equal(t, "closed", r.State())
}

func TestResilient_BreakerOpensAndFailsFast(t *testing.T) {
	inner := &flakyStorage{Memory: storage.NewMemory(), failures: 100}
	cfg := fastConfig()
	cfg.MaxRetries = 0
	cfg.ConsecutiveFailures = 2
	cfg.OpenTimeout = time.Hour
	r := storage.NewResilient(inner, cfg, discardLogger())
	ctx := context.Background()

	for range 2 {
		require.Error(t, r.Set(ctx, "k", []byte("v")))
	}
	assert.Equal(t, "open", r.State())

	err := r.Set(ctx, "k", []byte("v"))
	assert.ErrorIs(t, err, gobreaker.ErrOpenState)
	assert.Equal(t, 2, inner.calls, "open breaker must not reach the backend")
}
