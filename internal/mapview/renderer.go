// Package mapview holds the map session engine shared by the map pages and
// the viewport API: the renderer port, the photo-pin synchronizer, the
// selection/drawer state and the Session that ties them to renderer events.
//
// A Session is a single logical actor. Renderer callbacks are its only
// suspension points, and it is not safe for concurrent use.
package mapview

import "github.com/twpayne/go-geom/encoding/geojson"

// Event names a renderer lifecycle or interaction event.
type Event string

const (
	EventLoad    Event = "load"
	EventZoomEnd Event = "zoomend"
	EventMoveEnd Event = "moveend"
	EventClick   Event = "click"
)

// Layers rendered from the clustered source.
const (
	LayerClusters = "clusters"
	LayerPoints   = "unclustered-point"
)

// LngLat is a geographic coordinate in renderer order.
type LngLat struct {
	Lng float64 `json:"lng"`
	Lat float64 `json:"lat"`
}

// ScreenPoint is a pixel offset from the top-left of the map container.
type ScreenPoint struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Camera is a target for EaseTo and FlyTo.
type Camera struct {
	Center LngLat  `json:"center"`
	Zoom   float64 `json:"zoom"`
}

// RenderedFeature is a feature under a screen point. ClusterID is zero for
// single points.
type RenderedFeature struct {
	ClusterID  int64  `json:"clusterId,omitempty"`
	RecordID   string `json:"recordId,omitempty"`
	PointCount int    `json:"pointCount"`
}

// MapEvent is delivered to handlers registered with Renderer.On.
type MapEvent struct {
	Type     Event
	Layer    string
	Point    ScreenPoint
	LngLat   LngLat
	Features []RenderedFeature
}

// Handler receives renderer events.
type Handler func(MapEvent)

// MarkerSpec describes a photo pin.
type MarkerSpec struct {
	RecordID string
	Slug     string
	Title    string
	ImageURL string
	Position LngLat
	OnClick  func()
}

// Marker is a live photo pin owned by whoever added it.
type Marker interface {
	Remove()
}

// Renderer is the port to an interactive map. Implementations deliver events
// on the caller's goroutine.
type Renderer interface {
	Loaded() bool
	Zoom() float64
	Center() LngLat

	// SetData replaces the clustered source wholesale.
	SetData(fc *geojson.FeatureCollection) error

	EaseTo(c Camera)
	FlyTo(c Camera)

	AddMarker(spec MarkerSpec) Marker

	// ClusterExpansionZoom reports the zoom at which a cluster splits. The
	// callback may run after the call returns.
	ClusterExpansionZoom(clusterID int64, cb func(zoom float64, err error))

	QueryRenderedFeatures(p ScreenPoint, layer string) []RenderedFeature

	// On subscribes h to ev, optionally restricted to a layer. The returned
	// func unsubscribes.
	On(ev Event, layer string, h Handler) (off func())

	Resize()
	Remove()
}
