// Package seed loads the listing fixtures into the store. Fixtures are JSON
// arrays validated against an embedded JSON Schema and the domain rules
// before anything is written.
package seed

import (
	"bytes"
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"io/fs"
	"log/slog"
	"os"
	"sync"

	"github.com/rotisserie/eris"
	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/johnwards/colombomap/internal/domain"
	"github.com/johnwards/colombomap/internal/geo"
)

//go:embed data/*.json
var dataFS embed.FS

//go:embed schema/property.schema.json
var schemaJSON []byte

const schemaURL = "property.schema.json"

// files maps each dataset to its fixture file name.
var files = map[domain.Dataset]string{
	domain.DatasetCondos:   "condos.json",
	domain.DatasetLaunches: "launches.json",
}

var compileSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	c := jsonschema.NewCompiler()
	c.Draft = jsonschema.Draft2020
	if err := c.AddResource(schemaURL, bytes.NewReader(schemaJSON)); err != nil {
		return nil, eris.Wrap(err, "add fixture schema")
	}
	s, err := c.Compile(schemaURL)
	if err != nil {
		return nil, eris.Wrap(err, "compile fixture schema")
	}
	return s, nil
})

// Embedded returns the fixtures compiled into the binary.
func Embedded() fs.FS {
	sub, err := fs.Sub(dataFS, "data")
	if err != nil {
		panic(err)
	}
	return sub
}

// Source returns the fixtures in dir, or the embedded ones when dir is empty.
func Source(dir string) fs.FS {
	if dir == "" {
		return Embedded()
	}
	return os.DirFS(dir)
}

// Result reports what Seed did for one dataset.
type Result struct {
	Dataset  domain.Dataset
	Inserted int
	Skipped  bool
}

// Seed loads every dataset from src into db. A dataset that already has rows
// is left untouched, so Seed is safe to run on every start.
func Seed(ctx context.Context, db *sql.DB, src fs.FS) ([]Result, error) {
	results := make([]Result, 0, len(files))
	for _, d := range domain.Datasets() {
		res, err := seedDataset(ctx, db, src, d)
		if err != nil {
			return nil, eris.Wrapf(err, "seed %s", d)
		}
		results = append(results, res)
	}
	return results, nil
}

func seedDataset(ctx context.Context, db *sql.DB, src fs.FS, d domain.Dataset) (Result, error) {
	res := Result{Dataset: d}

	var existing int
	if err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM properties WHERE dataset = ?", d).Scan(&existing); err != nil {
		return res, eris.Wrap(err, "count existing rows")
	}
	if existing > 0 {
		res.Skipped = true
		slog.Debug("dataset already seeded", "dataset", d, "records", existing)
		return res, nil
	}

	records, err := Load(src, d)
	if err != nil {
		return res, err
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return res, eris.Wrap(err, "begin")
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO properties
		(dataset, ordinal, id, slug, name, area, status, lat, lng, geohash, doc)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return res, eris.Wrap(err, "prepare insert")
	}
	defer func() { _ = stmt.Close() }()

	for i, p := range records {
		doc, err := json.Marshal(p)
		if err != nil {
			return res, eris.Wrapf(err, "encode %s", p.ID)
		}
		if _, err := stmt.ExecContext(ctx, d, i, p.ID, p.Slug, p.Name, p.Area, p.Status,
			p.Position.Lat, p.Position.Lng, geo.Geohash(p.Position), string(doc)); err != nil {
			return res, eris.Wrapf(err, "insert %s", p.ID)
		}
	}

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO seed_runs (dataset, source, records) VALUES (?, ?, ?)
		 ON CONFLICT (dataset) DO UPDATE SET source = excluded.source, records = excluded.records, seeded_at = CURRENT_TIMESTAMP`,
		d, files[d], len(records)); err != nil {
		return res, eris.Wrap(err, "record seed run")
	}
	if err := tx.Commit(); err != nil {
		return res, eris.Wrap(err, "commit")
	}

	res.Inserted = len(records)
	slog.Info("seeded dataset", "dataset", d, "records", res.Inserted)
	return res, nil
}

// Load reads, validates and decodes one dataset's fixture file from src.
// Records keep file order.
func Load(src fs.FS, d domain.Dataset) ([]*domain.Property, error) {
	name, ok := files[d]
	if !ok {
		return nil, eris.Errorf("no fixture file for dataset %q", d)
	}
	raw, err := fs.ReadFile(src, name)
	if err != nil {
		return nil, eris.Wrapf(err, "read %s", name)
	}
	return Decode(raw, d)
}

// Decode validates raw against the fixture schema and the domain rules for
// d, and rejects repeated ids or slugs.
func Decode(raw []byte, d domain.Dataset) ([]*domain.Property, error) {
	schema, err := compileSchema()
	if err != nil {
		return nil, err
	}
	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, eris.Wrap(err, "fixture is not valid JSON")
	}
	if err := schema.Validate(doc); err != nil {
		return nil, eris.Wrap(err, "fixture schema validation failed")
	}

	var records []*domain.Property
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, eris.Wrap(err, "decode fixture")
	}

	ids := make(map[string]bool, len(records))
	slugs := make(map[string]bool, len(records))
	for _, p := range records {
		if err := p.Validate(d); err != nil {
			return nil, eris.Wrap(err, "invalid record")
		}
		if ids[p.ID] {
			return nil, eris.Errorf("duplicate id %q", p.ID)
		}
		if slugs[p.Slug] {
			return nil, eris.Errorf("duplicate slug %q", p.Slug)
		}
		ids[p.ID] = true
		slugs[p.Slug] = true
	}
	if records == nil {
		records = []*domain.Property{}
	}
	return records, nil
}
