// Package testutil builds throwaway databases and stores for tests.
package testutil

import (
	"context"
	"testing"

	"github.com/dogao/cardapio/internal/config"
	"github.com/dogao/cardapio/internal/repository"
	"github.com/dogao/cardapio/internal/storage"
	"github.com/dogao/cardapio/pkg/logger"
	"gorm.io/gorm"
)

// SessionSecret is a valid secret for test session managers
const SessionSecret = "test-secret-test-secret-test-secret"

// NewDB returns a migrated and seeded in-memory sqlite database
func NewDB(t testing.TB) *gorm.DB {
	t.Helper()
	db, err := repository.Open(config.DatabaseConfig{Driver: config.DriverSQLite, URL: ":memory:"}, logger.Discard())
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { _ = repository.Close(db) })

	ctx := context.Background()
	if err := repository.Migrate(ctx, db); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	if _, err := repository.Seed(ctx, db); err != nil {
		t.Fatalf("seed test db: %v", err)
	}
	return db
}

// NewStore returns a local upload store in a temporary directory
func NewStore(t testing.TB) *storage.LocalStore {
	t.Helper()
	store, err := storage.NewLocalStore(t.TempDir())
	if err != nil {
		t.Fatalf("create test store: %v", err)
	}
	return store
}
