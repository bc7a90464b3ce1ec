// Package listings serves the condominium and launch datasets as JSON,
// GeoJSON and headless map plans.
package listings

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/johnwards/colombomap/internal/api"
	"github.com/johnwards/colombomap/internal/catalog"
	"github.com/johnwards/colombomap/internal/cluster"
	"github.com/johnwards/colombomap/internal/domain"
	"github.com/johnwards/colombomap/internal/filter"
	"github.com/johnwards/colombomap/internal/geo"
	"github.com/johnwards/colombomap/internal/mapview"
	"github.com/johnwards/colombomap/internal/store"
)

const (
	defaultNearPrecision = 5
	defaultViewportW     = 1024
	defaultViewportH     = 768
	maxViewportSide      = 4096
)

// Handler serves the listings API endpoints.
type Handler struct {
	catalog *catalog.Catalog
	store   store.PropertyStore
}

// ExpansionZoomResponse is returned by the cluster expansion endpoint.
type ExpansionZoomResponse struct {
	ClusterID     int64   `json:"clusterId"`
	ExpansionZoom float64 `json:"expansionZoom"`
	PointCount    int     `json:"pointCount"`
}

// List returns the filtered records of a dataset.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	d, records, ok := h.filtered(w, r)
	if !ok {
		return
	}
	slog.Debug("listed records", "dataset", d, "total", len(records))
	api.WriteJSON(w, http.StatusOK, api.NewCollection(records))
}

// Filters returns the facet values offered for a dataset. Facets always
// cover the whole dataset, never the filtered subset.
func (h *Handler) Filters(w http.ResponseWriter, r *http.Request) {
	d, ok := h.dataset(w, r)
	if !ok {
		return
	}
	api.WriteJSON(w, http.StatusOK, filter.Options(h.catalog.Records(d)))
}

// GeoJSON returns the filtered records as a FeatureCollection.
func (h *Handler) GeoJSON(w http.ResponseWriter, r *http.Request) {
	_, records, ok := h.filtered(w, r)
	if !ok {
		return
	}
	api.WriteGeoJSON(w, http.StatusOK, geo.ToFeatureCollection(records))
}

// Viewport runs a headless map session over the filtered records and returns
// what it would show.
func (h *Handler) Viewport(w http.ResponseWriter, r *http.Request) {
	d, records, ok := h.filtered(w, r)
	if !ok {
		return
	}
	vp, err := parseViewport(r, mapview.ConfigFor(d))
	if err != nil {
		writeParamError(w, r, err)
		return
	}
	api.WriteJSON(w, http.StatusOK, mapview.Render(mapview.ConfigFor(d), records, vp))
}

// ExpansionZoom returns the zoom at which a cluster splits. Cluster ids are
// only meaningful for the same filter parameters that produced them.
func (h *Handler) ExpansionZoom(w http.ResponseWriter, r *http.Request) {
	d, records, ok := h.filtered(w, r)
	if !ok {
		return
	}
	corrID := api.CorrelationID(r.Context())

	raw := chi.URLParam(r, "clusterId")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		api.WriteError(w, http.StatusBadRequest, api.NewValidationError(
			fmt.Sprintf("invalid cluster id %q", raw), corrID,
			[]api.ErrorDetail{{Message: "must be a positive integer", In: "clusterId"}}))
		return
	}

	idx := cluster.NewIndex(points(records), mapview.ConfigFor(d).ClusterOptions())
	zoom, err := idx.ExpansionZoom(id)
	if errors.Is(err, cluster.ErrUnknownCluster) {
		api.WriteError(w, http.StatusNotFound, api.NewNotFoundError(
			fmt.Sprintf("cluster %d not found", id), corrID))
		return
	}
	if err != nil {
		writeInternal(w, r, err)
		return
	}
	leaves, err := idx.Leaves(id)
	if err != nil {
		writeInternal(w, r, err)
		return
	}
	api.WriteJSON(w, http.StatusOK, ExpansionZoomResponse{ClusterID: id, ExpansionZoom: zoom, PointCount: len(leaves)})
}

// Near returns the records sharing a geohash cell with the given record,
// excluding the record itself.
func (h *Handler) Near(w http.ResponseWriter, r *http.Request) {
	d, ok := h.dataset(w, r)
	if !ok {
		return
	}
	p, ok := h.bySlug(w, r, d)
	if !ok {
		return
	}

	precision := defaultNearPrecision
	if raw := r.URL.Query().Get("precision"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > geo.GeohashPrecision {
			writeParamError(w, r, &filter.ParamError{Param: "precision", Value: raw,
				Err: fmt.Errorf("must be between 1 and %d", geo.GeohashPrecision)})
			return
		}
		precision = n
	}

	prefix := geo.Geohash(p.Position)[:precision]
	near, err := h.store.NearGeohash(r.Context(), d, prefix)
	if err != nil {
		writeInternal(w, r, err)
		return
	}
	out := make([]*domain.Property, 0, len(near))
	for _, n := range near {
		if n.ID != p.ID {
			out = append(out, n)
		}
	}
	api.WriteJSON(w, http.StatusOK, api.NewCollection(out))
}

// Get returns one record by slug.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	d, ok := h.dataset(w, r)
	if !ok {
		return
	}
	if p, ok := h.bySlug(w, r, d); ok {
		api.WriteJSON(w, http.StatusOK, p)
	}
}

func (h *Handler) dataset(w http.ResponseWriter, r *http.Request) (domain.Dataset, bool) {
	d, err := domain.ParseDataset(chi.URLParam(r, "dataset"))
	if err != nil {
		api.WriteError(w, http.StatusNotFound, api.NewNotFoundError(err.Error(), api.CorrelationID(r.Context())))
		return "", false
	}
	return d, true
}

func (h *Handler) filtered(w http.ResponseWriter, r *http.Request) (domain.Dataset, []*domain.Property, bool) {
	d, ok := h.dataset(w, r)
	if !ok {
		return "", nil, false
	}
	c, err := filter.ParseQuery(r.URL.Query(), d)
	if err != nil {
		writeParamError(w, r, err)
		return "", nil, false
	}
	return d, filter.Apply(h.catalog.Records(d), c), true
}

func (h *Handler) bySlug(w http.ResponseWriter, r *http.Request, d domain.Dataset) (*domain.Property, bool) {
	slug := chi.URLParam(r, "slug")
	p, ok := h.catalog.BySlug(d, slug)
	if !ok {
		api.WriteError(w, http.StatusNotFound, api.NewNotFoundError(
			fmt.Sprintf("%s: %s %q", store.ErrNotFound, d, slug), api.CorrelationID(r.Context())))
		return nil, false
	}
	return p, true
}

func points(records []*domain.Property) []cluster.Point {
	pts := make([]cluster.Point, len(records))
	for i, p := range records {
		pts[i] = cluster.Point{ID: p.ID, Lng: p.Position.Lng, Lat: p.Position.Lat}
	}
	return pts
}

func parseViewport(r *http.Request, def mapview.MapConfig) (mapview.Viewport, error) {
	q := r.URL.Query()
	vp := mapview.Viewport{
		Width:    defaultViewportW,
		Height:   defaultViewportH,
		Focus:    q.Get("focus"),
		Selected: q.Get("selected"),
	}

	var err error
	if vp.Width, err = floatParam(q.Get("w"), "w", defaultViewportW, 1, maxViewportSide); err != nil {
		return vp, err
	}
	if vp.Height, err = floatParam(q.Get("h"), "h", defaultViewportH, 1, maxViewportSide); err != nil {
		return vp, err
	}

	if q.Get("zoom") == "" && q.Get("lat") == "" && q.Get("lng") == "" {
		return vp, nil
	}
	cam := mapview.Camera{Center: def.DefaultCenter, Zoom: def.DefaultZoom}
	if cam.Zoom, err = floatParam(q.Get("zoom"), "zoom", def.DefaultZoom, 0, 22); err != nil {
		return vp, err
	}
	if cam.Center.Lat, err = floatParam(q.Get("lat"), "lat", def.DefaultCenter.Lat, -85, 85); err != nil {
		return vp, err
	}
	if cam.Center.Lng, err = floatParam(q.Get("lng"), "lng", def.DefaultCenter.Lng, -180, 180); err != nil {
		return vp, err
	}
	vp.Camera = &cam
	return vp, nil
}

func floatParam(raw, name string, def, lo, hi float64) (float64, error) {
	if raw == "" {
		return def, nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, &filter.ParamError{Param: name, Value: raw, Err: err}
	}
	if f < lo || f > hi {
		return 0, &filter.ParamError{Param: name, Value: raw, Err: fmt.Errorf("out of range [%g, %g]", lo, hi)}
	}
	return f, nil
}

func writeParamError(w http.ResponseWriter, r *http.Request, err error) {
	var details []api.ErrorDetail
	var pe *filter.ParamError
	if errors.As(err, &pe) {
		details = []api.ErrorDetail{{Message: pe.Err.Error(), In: pe.Param}}
	}
	api.WriteError(w, http.StatusBadRequest, api.NewValidationError(err.Error(), api.CorrelationID(r.Context()), details))
}

func writeInternal(w http.ResponseWriter, r *http.Request, err error) {
	corrID := api.CorrelationID(r.Context())
	slog.Error("listings request failed", "error", err, "path", r.URL.Path, "correlation_id", corrID)
	api.WriteError(w, http.StatusInternalServerError, api.NewInternalError(corrID))
}
