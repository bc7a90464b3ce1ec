// Package admin serves operational endpoints that report what the running
// process loaded.
package admin

import (
	"database/sql"
	"net/http"

	"github.com/johnwards/colombomap/internal/api"
	"github.com/johnwards/colombomap/internal/catalog"
	"github.com/johnwards/colombomap/internal/database"
	"github.com/johnwards/colombomap/internal/domain"
)

// Handler serves the admin API at /_admin/.
type Handler struct {
	db      *sql.DB
	catalog *catalog.Catalog
}

// SeedRun is one row of the seed bookkeeping table.
type SeedRun struct {
	Dataset  string `json:"dataset"`
	Source   string `json:"source"`
	Records  int    `json:"records"`
	SeededAt string `json:"seededAt"`
}

// Status describes the schema, the seed history and the in-memory catalog.
type Status struct {
	SchemaVersion int            `json:"schemaVersion"`
	LatestVersion int            `json:"latestVersion"`
	SeedRuns      []SeedRun      `json:"seedRuns"`
	Loaded        map[string]int `json:"loaded"`
}

// Status reports the applied schema version, seed runs and loaded counts.
func (h *Handler) Status(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	version, err := database.Version(ctx, h.db)
	if err != nil {
		h.internal(w, r, err)
		return
	}

	runs, err := h.seedRuns(r)
	if err != nil {
		h.internal(w, r, err)
		return
	}

	loaded := make(map[string]int, len(domain.Datasets()))
	for _, d := range domain.Datasets() {
		loaded[string(d)] = h.catalog.Len(d)
	}

	api.WriteJSON(w, http.StatusOK, Status{
		SchemaVersion: version,
		LatestVersion: database.Latest(),
		SeedRuns:      runs,
		Loaded:        loaded,
	})
}

func (h *Handler) seedRuns(r *http.Request) ([]SeedRun, error) {
	rows, err := h.db.QueryContext(r.Context(),
		`SELECT dataset, source, records, seeded_at FROM seed_runs ORDER BY dataset`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	runs := []SeedRun{}
	for rows.Next() {
		var run SeedRun
		if err := rows.Scan(&run.Dataset, &run.Source, &run.Records, &run.SeededAt); err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

func (h *Handler) internal(w http.ResponseWriter, r *http.Request, err error) {
	corrID := api.CorrelationID(r.Context())
	api.WriteError(w, http.StatusInternalServerError, &api.Error{
		Status:        "error",
		Message:       "admin status: " + err.Error(),
		CorrelationID: corrID,
		Category:      api.CategoryInternalError,
	})
}
