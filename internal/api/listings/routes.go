package listings

import (
	"github.com/go-chi/chi/v5"

	"github.com/johnwards/colombomap/internal/catalog"
	"github.com/johnwards/colombomap/internal/store"
)

// RegisterRoutes registers the listing endpoints on r, which is expected to
// be mounted at /api/v1.
func RegisterRoutes(r chi.Router, cat *catalog.Catalog, st store.PropertyStore) {
	h := &Handler{catalog: cat, store: st}

	r.Route("/{dataset}", func(r chi.Router) {
		r.Get("/", h.List)
		r.Get("/filters", h.Filters)
		r.Get("/geojson", h.GeoJSON)
		r.Get("/viewport", h.Viewport)
		r.Get("/clusters/{clusterId}/expansion-zoom", h.ExpansionZoom)
		r.Get("/near/{slug}", h.Near)
		r.Get("/items/{slug}", h.Get)
	})
}
