package admin

import (
	"database/sql"

	"github.com/go-chi/chi/v5"

	"github.com/johnwards/colombomap/internal/catalog"
)

// RegisterRoutes registers the admin endpoints on r.
func RegisterRoutes(r chi.Router, db *sql.DB, cat *catalog.Catalog) {
	h := &Handler{db: db, catalog: cat}

	r.Get("/_admin/status", h.Status)
}
