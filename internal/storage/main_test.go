package storage_test

import (
	"context"
	"log"
	"os"
	"testing"

	"github.com/pkordes/travel-planner/migrations"
	"github.com/pkordes/travel-planner/testutil"
)

// TestMain applies all pending migrations to the test database, when one is
// configured, so the Postgres tests never need to think about schema state.
// Tests for other backends run regardless.
func TestMain(m *testing.M) {
	if dsn := os.Getenv("TEST_DATABASE_URL"); dsn != "" {
		db := testutil.MustOpenSQLDB(dsn)
		if _, err := migrations.Up(context.Background(), db); err != nil {
			log.Fatalf("TestMain: run migrations: %v", err)
		}
		db.Close()
	}

	os.Exit(m.Run())
}
