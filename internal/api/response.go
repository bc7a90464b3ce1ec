package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// GeoJSONContentType is the media type of FeatureCollection responses.
const GeoJSONContentType = "application/geo+json"

// WriteJSON marshals v as JSON and writes it to w with the given status code.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	write(w, "application/json", status, v)
}

// WriteGeoJSON is WriteJSON with the GeoJSON media type.
func WriteGeoJSON(w http.ResponseWriter, status int, v any) {
	write(w, GeoJSONContentType, status, v)
}

func write(w http.ResponseWriter, contentType string, status int, v any) {
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to write JSON response", "error", err)
	}
}

// Collection is a complete (unpaged) list response.
type Collection[T any] struct {
	Total   int `json:"total"`
	Results []T `json:"results"`
}

// NewCollection wraps results, never encoding a null array.
func NewCollection[T any](results []T) Collection[T] {
	if results == nil {
		results = []T{}
	}
	return Collection[T]{Total: len(results), Results: results}
}
