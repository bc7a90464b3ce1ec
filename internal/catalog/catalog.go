// Package catalog holds the immutable in-memory datasets every page and API
// call filters over. It is loaded once at startup and never mutated, so it is
// safe to share between goroutines.
package catalog

import (
	"context"
	"slices"

	"github.com/rotisserie/eris"

	"github.com/johnwards/colombomap/internal/domain"
	"github.com/johnwards/colombomap/internal/store"
)

type dataset struct {
	records []*domain.Property
	bySlug  map[string]*domain.Property
	byID    map[string]*domain.Property
}

// Catalog is the set of loaded datasets.
type Catalog struct {
	sets map[domain.Dataset]*dataset
}

// Load reads every dataset from s.
func Load(ctx context.Context, s store.PropertyStore) (*Catalog, error) {
	c := &Catalog{sets: make(map[domain.Dataset]*dataset)}
	for _, d := range domain.Datasets() {
		records, err := s.List(ctx, d)
		if err != nil {
			return nil, eris.Wrapf(err, "load %s", d)
		}
		c.sets[d] = index(records)
	}
	return c, nil
}

// New builds a catalog from records already in memory.
func New(sets map[domain.Dataset][]*domain.Property) *Catalog {
	c := &Catalog{sets: make(map[domain.Dataset]*dataset)}
	for _, d := range domain.Datasets() {
		c.sets[d] = index(sets[d])
	}
	return c
}

func index(records []*domain.Property) *dataset {
	ds := &dataset{
		records: slices.Clip(slices.Clone(records)),
		bySlug:  make(map[string]*domain.Property, len(records)),
		byID:    make(map[string]*domain.Property, len(records)),
	}
	if ds.records == nil {
		ds.records = []*domain.Property{}
	}
	for _, p := range ds.records {
		ds.bySlug[p.Slug] = p
		ds.byID[p.ID] = p
	}
	return ds
}

// Records returns the dataset in fixture order. The slice is clipped, so
// appending to it never writes into the catalog.
func (c *Catalog) Records(d domain.Dataset) []*domain.Property {
	if ds, ok := c.sets[d]; ok {
		return ds.records
	}
	return []*domain.Property{}
}

// BySlug looks up a record by slug.
func (c *Catalog) BySlug(d domain.Dataset, slug string) (*domain.Property, bool) {
	ds, ok := c.sets[d]
	if !ok {
		return nil, false
	}
	p, ok := ds.bySlug[slug]
	return p, ok
}

// ByID looks up a record by id.
func (c *Catalog) ByID(d domain.Dataset, id string) (*domain.Property, bool) {
	ds, ok := c.sets[d]
	if !ok {
		return nil, false
	}
	p, ok := ds.byID[id]
	return p, ok
}

// Len returns the number of records in d.
func (c *Catalog) Len(d domain.Dataset) int {
	return len(c.Records(d))
}
