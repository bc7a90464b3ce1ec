package store

import (
	"database/sql"
	"errors"
)

// ErrNotFound is returned when a listing does not exist.
var ErrNotFound = errors.New("listing not found")

// Store holds the sub-stores used by the application.
type Store struct {
	DB         *sql.DB
	Properties PropertyStore
}

// New creates a Store with all sub-stores initialized.
func New(db *sql.DB) *Store {
	return &Store{
		DB:         db,
		Properties: NewSQLitePropertyStore(db),
	}
}
