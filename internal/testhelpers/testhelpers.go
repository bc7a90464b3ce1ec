package testhelpers

import (
	"context"
	"database/sql"
	"testing"

	"github.com/johnwards/colombomap/internal/catalog"
	"github.com/johnwards/colombomap/internal/database"
	"github.com/johnwards/colombomap/internal/seed"
	"github.com/johnwards/colombomap/internal/store"
)

// NewTestDB returns an in-memory SQLite database configured the same way as
// production. The database is automatically closed when the test completes.
func NewTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := database.Open(context.Background(), ":memory:")
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}

	t.Cleanup(func() {
		_ = db.Close()
	})

	return db
}

// NewMigratedDB returns a test database with the schema applied.
func NewMigratedDB(t *testing.T) *sql.DB {
	t.Helper()

	db := NewTestDB(t)
	if err := database.Migrate(context.Background(), db); err != nil {
		t.Fatalf("migrate test database: %v", err)
	}
	return db
}

// NewSeededStore returns a store loaded with the embedded fixtures.
func NewSeededStore(t *testing.T) *store.SQLitePropertyStore {
	t.Helper()

	db := NewMigratedDB(t)
	if _, err := seed.Seed(context.Background(), db, seed.Embedded()); err != nil {
		t.Fatalf("seed test database: %v", err)
	}
	return store.NewSQLitePropertyStore(db)
}

// NewCatalog returns a catalog over the embedded fixtures.
func NewCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()

	c, err := catalog.Load(context.Background(), NewSeededStore(t))
	if err != nil {
		t.Fatalf("load catalog: %v", err)
	}
	return c
}
