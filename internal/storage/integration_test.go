package storage_test

import (
	"context"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/travel-planner/internal/storage"
	"github.com/pkordes/travel-planner/testutil"
)

// uniqueKey keeps tests that share a real backend from seeing each other's data.
func uniqueKey(t *testing.T) string {
	t.Helper()
	return "test:" + t.Name() + ":" + uuid.NewString()
}

func TestPostgres_Contract(t *testing.T) {
	pool := testutil.NewPool(t)

	tx, err := pool.Begin(context.Background())
	require.NoError(t, err, "begin transaction")
	t.Cleanup(func() {
		// Rollback discards everything the test wrote.
		_ = tx.Rollback(context.Background())
	})

	exerciseContract(t, storage.NewPostgres(tx), uniqueKey(t))
}

func TestRedis_Contract(t *testing.T) {
	addr := testutil.RequireEnv(t, "TEST_REDIS_URL")

	s, err := storage.OpenRedis(context.Background(), addr, os.Getenv("TEST_REDIS_PASSWORD"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	exerciseContract(t, s, uniqueKey(t))
}

func TestMongo_Contract(t *testing.T) {
	uri := testutil.RequireEnv(t, "TEST_MONGO_URI")

	s, err := storage.OpenMongo(context.Background(), uri, "travel_planner_test")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	exerciseContract(t, s, uniqueKey(t))
}
