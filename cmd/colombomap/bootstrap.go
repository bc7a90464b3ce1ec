package main

import (
	"context"
	"log/slog"

	"github.com/rotisserie/eris"

	"github.com/johnwards/colombomap/internal/catalog"
	"github.com/johnwards/colombomap/internal/config"
	"github.com/johnwards/colombomap/internal/database"
	"github.com/johnwards/colombomap/internal/seed"
	"github.com/johnwards/colombomap/internal/store"
)

// app is the opened store plus the catalog loaded from it.
type app struct {
	store   *store.Store
	catalog *catalog.Catalog
}

// openApp opens and migrates the database, seeds any empty dataset from the
// configured fixtures and loads the catalog.
func openApp(ctx context.Context, c *config.Config) (*app, error) {
	db, err := database.Open(ctx, c.Store.DBPath)
	if err != nil {
		return nil, eris.Wrap(err, "open database")
	}

	if err := database.Migrate(ctx, db); err != nil {
		_ = db.Close()
		return nil, eris.Wrap(err, "run migrations")
	}

	results, err := seed.Seed(ctx, db, seed.Source(c.Data.Dir))
	if err != nil {
		_ = db.Close()
		return nil, eris.Wrap(err, "seed data")
	}
	for _, r := range results {
		if r.Skipped {
			slog.Debug("dataset already seeded", "dataset", r.Dataset)
		}
	}

	s := store.New(db)
	cat, err := catalog.Load(ctx, s.Properties)
	if err != nil {
		_ = db.Close()
		return nil, eris.Wrap(err, "load catalog")
	}
	return &app{store: s, catalog: cat}, nil
}

func (a *app) Close() error {
	return a.store.DB.Close()
}
