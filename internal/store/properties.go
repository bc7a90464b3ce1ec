package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/johnwards/colombomap/internal/domain"
)

// PropertyStore reads listings. Records come back in fixture order.
type PropertyStore interface {
	List(ctx context.Context, dataset domain.Dataset) ([]*domain.Property, error)
	GetBySlug(ctx context.Context, dataset domain.Dataset, slug string) (*domain.Property, error)
	GetByID(ctx context.Context, dataset domain.Dataset, id string) (*domain.Property, error)
	NearGeohash(ctx context.Context, dataset domain.Dataset, prefix string) ([]*domain.Property, error)
	Count(ctx context.Context, dataset domain.Dataset) (int, error)
}

// SQLitePropertyStore implements PropertyStore using SQLite. Each row keeps
// the full record as a JSON document next to its indexed columns.
type SQLitePropertyStore struct {
	db *sql.DB
}

// NewSQLitePropertyStore creates a new SQLitePropertyStore.
func NewSQLitePropertyStore(db *sql.DB) *SQLitePropertyStore {
	return &SQLitePropertyStore{db: db}
}

// List returns every record of dataset ordered by fixture position.
func (s *SQLitePropertyStore) List(ctx context.Context, dataset domain.Dataset) ([]*domain.Property, error) {
	return s.query(ctx, `SELECT doc FROM properties WHERE dataset = ? ORDER BY ordinal`, dataset)
}

// GetBySlug returns the record with slug, or ErrNotFound.
func (s *SQLitePropertyStore) GetBySlug(ctx context.Context, dataset domain.Dataset, slug string) (*domain.Property, error) {
	return s.get(ctx, `SELECT doc FROM properties WHERE dataset = ? AND slug = ?`, dataset, slug)
}

// GetByID returns the record with id, or ErrNotFound.
func (s *SQLitePropertyStore) GetByID(ctx context.Context, dataset domain.Dataset, id string) (*domain.Property, error) {
	return s.get(ctx, `SELECT doc FROM properties WHERE dataset = ? AND id = ?`, dataset, id)
}

// NearGeohash returns the records whose geohash starts with prefix, in
// fixture order. An empty prefix matches nothing.
func (s *SQLitePropertyStore) NearGeohash(ctx context.Context, dataset domain.Dataset, prefix string) ([]*domain.Property, error) {
	if prefix == "" {
		return []*domain.Property{}, nil
	}
	// Geohash characters never include LIKE wildcards.
	return s.query(ctx,
		`SELECT doc FROM properties WHERE dataset = ? AND geohash LIKE ? || '%' ORDER BY ordinal`,
		dataset, prefix)
}

// Count returns the number of records in dataset.
func (s *SQLitePropertyStore) Count(ctx context.Context, dataset domain.Dataset) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM properties WHERE dataset = ?`, dataset).Scan(&n); err != nil {
		return 0, fmt.Errorf("count %s: %w", dataset, err)
	}
	return n, nil
}

func (s *SQLitePropertyStore) get(ctx context.Context, query string, args ...any) (*domain.Property, error) {
	var doc string
	err := s.db.QueryRowContext(ctx, query, args...).Scan(&doc)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get listing: %w", err)
	}
	return decode(doc)
}

func (s *SQLitePropertyStore) query(ctx context.Context, query string, args ...any) ([]*domain.Property, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list listings: %w", err)
	}
	defer func() { _ = rows.Close() }()

	out := []*domain.Property{}
	for rows.Next() {
		var doc string
		if err := rows.Scan(&doc); err != nil {
			return nil, fmt.Errorf("scan listing: %w", err)
		}
		p, err := decode(doc)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration: %w", err)
	}
	return out, nil
}

func decode(doc string) (*domain.Property, error) {
	var p domain.Property
	if err := json.Unmarshal([]byte(doc), &p); err != nil {
		return nil, fmt.Errorf("decode listing: %w", err)
	}
	return &p, nil
}
