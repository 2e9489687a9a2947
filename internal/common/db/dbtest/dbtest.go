// Package dbtest prepares a migrated Postgres database for integration tests.
// Tests are skipped unless TEST_DATABASE_URL is set.
package dbtest

import (
	"bytes"
	"context"
	"os"
	"testing"

	"github.com/jackc/pgx/v4/pgxpool"

	"github.com/AlibekovAA/account-hub/internal/common/db"
	"github.com/AlibekovAA/account-hub/internal/common/logger"
)

const envKey = "TEST_DATABASE_URL"

// NewPool returns a pool on an empty, migrated schema and skips the test when
// no database is configured.
func NewPool(t *testing.T) *pgxpool.Pool {
	t.Helper()

	pool := MaybePool(t)
	if pool == nil {
		t.Skipf("%s not set, skipping integration test", envKey)
	}
	return pool
}

// MaybePool is NewPool returning nil instead of skipping. The pool is closed
// when the test ends.
func MaybePool(t *testing.T) *pgxpool.Pool {
	t.Helper()

	url := os.Getenv(envKey)
	if url == "" {
		return nil
	}

	ctx := context.Background()
	log := logger.NewWriter(&bytes.Buffer{}, "dbtest", "error")

	pool, err := db.NewPool(ctx, log, url)
	if err != nil {
		t.Fatalf("failed to connect: %v", err)
	}
	t.Cleanup(pool.Close)

	if err := db.Migrate(ctx, pool, log); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	if _, err := pool.Exec(ctx, `TRUNCATE posts, users RESTART IDENTITY CASCADE`); err != nil {
		t.Fatalf("failed to truncate: %v", err)
	}

	return pool
}
