package mapview

import (
	"errors"
	"math"
	"slices"

	"github.com/twpayne/go-geom/encoding/geojson"

	"github.com/johnwards/colombomap/internal/cluster"
	"github.com/johnwards/colombomap/internal/geo"
)

// ErrRemoved is returned by a Headless renderer after Remove.
var ErrRemoved = errors.New("renderer removed")

const (
	tileSize      = 512
	pointHitPx    = 9
	defaultWidth  = 1024
	defaultHeight = 768
)

// clusterHitPx matches the stepped circle radius of the cluster layer.
func clusterHitPx(count int) float64 {
	switch {
	case count < 10:
		return 18
	case count < 30:
		return 22
	}
	return 28
}

type subscription struct {
	ev    Event
	layer string
	h     Handler
}

type headlessMarker struct {
	spec    MarkerSpec
	removed bool
}

func (m *headlessMarker) Remove() { m.removed = true }

// Headless is an in-process Renderer. It clusters its source with
// cluster.Index, projects with Web-Mercator at 512px tiles and fires events
// synchronously. The viewport API renders through it, and tests drive it
// with Load, SetCamera and Click.
type Headless struct {
	cfg    MapConfig
	width  float64
	height float64

	zoom   float64
	center LngLat

	loaded  bool
	removed bool

	index   *cluster.Index
	subs    []*subscription
	markers []*headlessMarker
	moves   []Camera
	resizes int

	deferCallbacks bool
	pending        []func()
	expansionErr   error
}

// NewHeadless returns an unloaded renderer at the config's default camera.
// Non-positive sizes fall back to 1024x768.
func NewHeadless(cfg MapConfig, width, height float64) *Headless {
	if width <= 0 {
		width = defaultWidth
	}
	if height <= 0 {
		height = defaultHeight
	}
	return &Headless{
		cfg:    cfg,
		width:  width,
		height: height,
		zoom:   cfg.DefaultZoom,
		center: cfg.DefaultCenter,
		index:  cluster.NewIndex(nil, cfg.ClusterOptions()),
	}
}

// Load marks the renderer ready and fires the load event once.
func (h *Headless) Load() {
	if h.loaded || h.removed {
		return
	}
	h.loaded = true
	h.emit(MapEvent{Type: EventLoad})
}

// SetCamera moves the camera as a user gesture would, firing zoomend when
// the zoom changed and then moveend.
func (h *Headless) SetCamera(c Camera) {
	h.move(c)
}

// Click fires a map click at p. Layer handlers receive the features of their
// layer under p, and only fire when there are some.
func (h *Headless) Click(p ScreenPoint) {
	if h.removed {
		return
	}
	ll := h.Unproject(p)
	h.emit(MapEvent{Type: EventClick, Point: p, LngLat: ll})
	for _, layer := range []string{LayerClusters, LayerPoints} {
		if fs := h.QueryRenderedFeatures(p, layer); len(fs) > 0 {
			h.emit(MapEvent{Type: EventClick, Layer: layer, Point: p, LngLat: ll, Features: fs})
		}
	}
}

// ClickMarker invokes the click handler of the live pin for recordID.
func (h *Headless) ClickMarker(recordID string) bool {
	for _, m := range h.markers {
		if !m.removed && m.spec.RecordID == recordID && m.spec.OnClick != nil {
			m.spec.OnClick()
			return true
		}
	}
	return false
}

// DeferCallbacks makes ClusterExpansionZoom queue its callback until
// RunPending, the way an asynchronous map source would.
func (h *Headless) DeferCallbacks(on bool) {
	h.deferCallbacks = on
}

// RunPending runs queued callbacks.
func (h *Headless) RunPending() {
	q := h.pending
	h.pending = nil
	for _, f := range q {
		f()
	}
}

// FailExpansion makes subsequent expansion lookups report err.
func (h *Headless) FailExpansion(err error) {
	h.expansionErr = err
}

func (h *Headless) Loaded() bool   { return h.loaded && !h.removed }
func (h *Headless) Zoom() float64  { return h.zoom }
func (h *Headless) Center() LngLat { return h.center }

func (h *Headless) SetData(fc *geojson.FeatureCollection) error {
	if h.removed {
		return ErrRemoved
	}
	points := make([]cluster.Point, 0, len(fc.Features))
	for _, f := range fc.Features {
		lng, lat, ok := geo.PointOf(f)
		if !ok {
			continue
		}
		points = append(points, cluster.Point{ID: geo.FeatureID(f), Lng: lng, Lat: lat})
	}
	h.index = cluster.NewIndex(points, h.cfg.ClusterOptions())
	return nil
}

func (h *Headless) EaseTo(c Camera) { h.move(c) }
func (h *Headless) FlyTo(c Camera)  { h.move(c) }

func (h *Headless) move(c Camera) {
	if h.removed {
		return
	}
	h.moves = append(h.moves, c)
	zoomed := c.Zoom != h.zoom
	h.center = c.Center
	h.zoom = c.Zoom
	if zoomed {
		h.emit(MapEvent{Type: EventZoomEnd})
	}
	h.emit(MapEvent{Type: EventMoveEnd})
}

func (h *Headless) AddMarker(spec MarkerSpec) Marker {
	m := &headlessMarker{spec: spec, removed: h.removed}
	h.markers = append(h.markers, m)
	return m
}

func (h *Headless) ClusterExpansionZoom(clusterID int64, cb func(float64, error)) {
	run := func() {
		if h.expansionErr != nil {
			cb(0, h.expansionErr)
			return
		}
		cb(h.index.ExpansionZoom(clusterID))
	}
	if h.deferCallbacks {
		h.pending = append(h.pending, run)
		return
	}
	run()
}

func (h *Headless) QueryRenderedFeatures(p ScreenPoint, layer string) []RenderedFeature {
	var out []RenderedFeature
	for _, n := range h.Visible() {
		if (layer == LayerClusters) != n.IsCluster() {
			continue
		}
		hit := float64(pointHitPx)
		if n.IsCluster() {
			hit = clusterHitPx(n.PointCount)
		}
		sp := h.Project(LngLat{Lng: n.Lng, Lat: n.Lat})
		if math.Hypot(sp.X-p.X, sp.Y-p.Y) <= hit {
			out = append(out, RenderedFeature{ClusterID: n.ClusterID, RecordID: n.RecordID, PointCount: n.PointCount})
		}
	}
	return out
}

func (h *Headless) On(ev Event, layer string, handler Handler) func() {
	sub := &subscription{ev: ev, layer: layer, h: handler}
	h.subs = append(h.subs, sub)
	return func() {
		h.subs = slices.DeleteFunc(h.subs, func(s *subscription) bool { return s == sub })
	}
}

func (h *Headless) Resize() { h.resizes++ }

// Remove drops every subscription and pin. It is safe to call twice.
func (h *Headless) Remove() {
	h.removed = true
	h.subs = nil
	for _, m := range h.markers {
		m.removed = true
	}
}

func (h *Headless) emit(e MapEvent) {
	for _, s := range slices.Clone(h.subs) {
		if s.ev != e.Type || s.layer != e.Layer {
			continue
		}
		s.h(e)
	}
}

func (h *Headless) worldSize() float64 {
	return tileSize * math.Pow(2, h.zoom)
}

// Project converts a coordinate to a screen point for the current camera.
func (h *Headless) Project(ll LngLat) ScreenPoint {
	ws := h.worldSize()
	return ScreenPoint{
		X: (cluster.LngX(ll.Lng)-cluster.LngX(h.center.Lng))*ws + h.width/2,
		Y: (cluster.LatY(ll.Lat)-cluster.LatY(h.center.Lat))*ws + h.height/2,
	}
}

// Unproject is the inverse of Project.
func (h *Headless) Unproject(p ScreenPoint) LngLat {
	ws := h.worldSize()
	return LngLat{
		Lng: cluster.XLng(cluster.LngX(h.center.Lng) + (p.X-h.width/2)/ws),
		Lat: cluster.YLat(cluster.LatY(h.center.Lat) + (p.Y-h.height/2)/ws),
	}
}

// BBox is the geographic extent of the viewport.
func (h *Headless) BBox() cluster.BBox {
	nw := h.Unproject(ScreenPoint{})
	se := h.Unproject(ScreenPoint{X: h.width, Y: h.height})
	return cluster.BBox{West: nw.Lng, South: se.Lat, East: se.Lng, North: nw.Lat}
}

// Visible returns the clusters and points drawn in the viewport.
func (h *Headless) Visible() []cluster.Node {
	return h.index.Clusters(h.BBox(), h.zoom)
}

// LiveMarkers returns the pins not yet removed, in creation order.
func (h *Headless) LiveMarkers() []MarkerSpec {
	var out []MarkerSpec
	for _, m := range h.markers {
		if !m.removed {
			out = append(out, m.spec)
		}
	}
	return out
}

// MarkersCreated counts every pin ever added.
func (h *Headless) MarkersCreated() int { return len(h.markers) }

// Moves returns every camera transition in order.
func (h *Headless) Moves() []Camera { return slices.Clone(h.moves) }

func (h *Headless) Resizes() int       { return h.resizes }
func (h *Headless) Removed() bool      { return h.removed }
func (h *Headless) Subscriptions() int { return len(h.subs) }

// Index exposes the clustered source.
func (h *Headless) Index() *cluster.Index { return h.index }
