package database_test

import (
	"context"
	"testing"

	"github.com/johnwards/colombomap/internal/database"
	"github.com/johnwards/colombomap/internal/testhelpers"
)

func TestMigrationsCreateAllTables(t *testing.T) {
	db := testhelpers.NewMigratedDB(t)

	for _, table := range []string{"schema_migrations", "properties", "seed_runs"} {
		var name string
		err := db.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name=?", table).Scan(&name)
		if err != nil {
			t.Errorf("table %q not found: %v", table, err)
		}
	}
}

func TestMigrationsVersion(t *testing.T) {
	db := testhelpers.NewMigratedDB(t)

	var version int
	err := db.QueryRow("SELECT version FROM schema_migrations ORDER BY version DESC LIMIT 1").Scan(&version)
	if err != nil {
		t.Fatalf("query version: %v", err)
	}
	if version != 2 {
		t.Errorf("version = %d, want 2", version)
	}
	if database.Latest() != 2 {
		t.Errorf("Latest() = %d, want 2", database.Latest())
	}
}

func TestMigrationsIndexes(t *testing.T) {
	db := testhelpers.NewMigratedDB(t)

	var name string
	err := db.QueryRow("SELECT name FROM sqlite_master WHERE type='index' AND name=?", "idx_properties_geohash").Scan(&name)
	if err != nil {
		t.Errorf("index idx_properties_geohash not found: %v", err)
	}
}

func TestPropertiesConstraints(t *testing.T) {
	db := testhelpers.NewMigratedDB(t)
	ctx := context.Background()

	insert := `INSERT INTO properties (dataset, ordinal, id, slug, name, status, lat, lng, geohash, doc)
		VALUES (?, ?, ?, ?, 'Test', 'Completed', 6.9, 79.8, 'tc0z3', ?)`

	if _, err := db.ExecContext(ctx, insert, "condos", 0, "c-1", "a", `{}`); err != nil {
		t.Fatalf("insert: %v", err)
	}

	tests := []struct {
		name    string
		dataset string
		ordinal int
		id      string
		slug    string
		doc     string
	}{
		{"unknown dataset", "villas", 1, "c-2", "b", `{}`},
		{"duplicate id", "condos", 1, "c-1", "b", `{}`},
		{"duplicate slug", "condos", 1, "c-2", "a", `{}`},
		{"duplicate ordinal", "condos", 0, "c-2", "b", `{}`},
		{"invalid json", "condos", 1, "c-2", "b", `{`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := db.ExecContext(ctx, insert, tt.dataset, tt.ordinal, tt.id, tt.slug, tt.doc); err == nil {
				t.Error("expected constraint error, got nil")
			}
		})
	}

	// The same id is allowed in the other dataset.
	if _, err := db.ExecContext(ctx, insert, "launches", 0, "c-1", "a", `{}`); err != nil {
		t.Errorf("insert into launches: %v", err)
	}
}
