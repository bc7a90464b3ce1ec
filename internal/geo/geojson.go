// Package geo projects listings into GeoJSON point features for the map's
// clustered data source.
package geo

import (
	"github.com/mmcloughlin/geohash"
	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/geojson"

	"github.com/johnwards/colombomap/internal/domain"
)

// GeohashPrecision is the length of the geohash attached to each feature
// (about 150m cells).
const GeohashPrecision = 7

// Geohash encodes a position at GeohashPrecision.
func Geohash(p domain.Position) string {
	return geohash.EncodeWithPrecision(p.Lat, p.Lng, GeohashPrecision)
}

// ToFeatureCollection returns a new collection with exactly one point feature
// per record, in record order. Coordinates are [lng, lat]. The result shares
// no state with earlier calls, so it can be handed to a renderer as a
// wholesale replacement of its source data.
func ToFeatureCollection(records []*domain.Property) *geojson.FeatureCollection {
	fc := &geojson.FeatureCollection{Features: make([]*geojson.Feature, 0, len(records))}
	for _, p := range records {
		fc.Features = append(fc.Features, ToFeature(p))
	}
	return fc
}

// ToFeature projects a single record.
func ToFeature(p *domain.Property) *geojson.Feature {
	props := map[string]any{
		"id":      p.ID,
		"slug":    p.Slug,
		"name":    p.Name,
		"area":    p.Area,
		"status":  string(p.Status),
		"geohash": Geohash(p.Position),
	}
	if n, ok := p.Floors.Get(); ok {
		props["floors"] = n
	}
	if n, ok := p.Units.Get(); ok {
		props["units"] = n
	}
	if p.Developer != "" {
		props["developer"] = p.Developer
	}
	if img := p.PinImage(); img != "" {
		props["pinImageUrl"] = img
	}
	return &geojson.Feature{
		ID:         p.ID,
		Geometry:   geom.NewPointFlat(geom.XY, []float64{p.Position.Lng, p.Position.Lat}),
		Properties: props,
	}
}

// Bounds returns the extent of records, or nil when there are none.
func Bounds(records []*domain.Property) *geom.Bounds {
	if len(records) == 0 {
		return nil
	}
	b := geom.NewBounds(geom.XY)
	for _, p := range records {
		b.Extend(geom.NewPointFlat(geom.XY, []float64{p.Position.Lng, p.Position.Lat}))
	}
	return b
}

// PointOf extracts the [lng, lat] of a point feature. ok is false for any
// other geometry.
func PointOf(f *geojson.Feature) (lng, lat float64, ok bool) {
	pt, isPoint := f.Geometry.(*geom.Point)
	if !isPoint || pt.Empty() {
		return 0, 0, false
	}
	return pt.X(), pt.Y(), true
}

// FeatureID returns the record id carried by a feature.
func FeatureID(f *geojson.Feature) string {
	if f.ID != "" {
		return f.ID
	}
	id, _ := f.Properties["id"].(string)
	return id
}
