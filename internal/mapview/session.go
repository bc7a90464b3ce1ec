package mapview

import (
	"log/slog"

	"github.com/johnwards/colombomap/internal/domain"
	"github.com/johnwards/colombomap/internal/geo"
)

// ViewMode is the presentation a page shows.
type ViewMode string

const (
	ViewGrid ViewMode = "grid"
	ViewMap  ViewMode = "map"
)

// ParseViewMode maps a query value to a ViewMode, defaulting to def.
func ParseViewMode(s string, def ViewMode) ViewMode {
	switch ViewMode(s) {
	case ViewGrid, ViewMap:
		return ViewMode(s)
	}
	return def
}

// SessionOption configures a Session.
type SessionOption func(*Session)

// WithViewMode sets the initial view mode. The default is ViewMap.
func WithViewMode(v ViewMode) SessionOption {
	return func(s *Session) { s.view = v }
}

// Session owns one renderer for the lifetime of a page. Updates issued before
// the renderer is ready are queued and applied once on load; the latest
// record set wins. Dispose releases everything the session created.
type Session struct {
	r        Renderer
	cfg      MapConfig
	sync     *Synchronizer
	throttle *Throttle
	sel      Selection

	records []*domain.Property
	stale   bool   // records not yet pushed to the renderer
	focus   string // pending focus id

	view     ViewMode
	ready    bool
	disposed bool
	offs     []func()
}

// NewSession subscribes to r and takes ownership of it.
func NewSession(r Renderer, cfg MapConfig, records []*domain.Property, opts ...SessionOption) *Session {
	s := &Session{
		r:       r,
		cfg:     cfg,
		records: records,
		stale:   true,
		view:    ViewMap,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.sync = NewSynchronizer(cfg.PhotoPinZoom, s.show)
	if cfg.Throttle {
		s.throttle = NewThrottle(cfg.PhotoPinZoom)
	}

	s.offs = append(s.offs,
		r.On(EventLoad, "", s.onLoad),
		r.On(EventZoomEnd, "", s.onViewport),
		r.On(EventMoveEnd, "", s.onViewport),
		r.On(EventClick, LayerClusters, s.onClusterClick),
		r.On(EventClick, LayerPoints, s.onPointClick),
	)
	if r.Loaded() {
		s.onLoad(MapEvent{Type: EventLoad})
	}
	return s
}

// SetRecords replaces the visible records. Before load only the last call
// takes effect.
func (s *Session) SetRecords(records []*domain.Property) {
	if s.disposed {
		return
	}
	s.records = records
	s.stale = true
	if s.ready {
		s.flush()
	}
}

// Focus flies to the record with id and opens it in the drawer, once the map
// is ready. Ids not among the current records are ignored.
func (s *Session) Focus(id string) {
	if s.disposed || id == "" {
		return
	}
	s.focus = id
	if s.ready {
		s.flush()
	}
}

// SetViewMode switches between grid and map. Becoming visible resizes the
// renderer to its container and re-syncs pins.
func (s *Session) SetViewMode(v ViewMode) {
	if s.disposed {
		return
	}
	prev := s.view
	s.view = v
	if v != ViewMap || prev == ViewMap {
		return
	}
	s.r.Resize()
	if s.ready {
		s.resync()
	}
}

// Dispose unsubscribes from the renderer, removes all pins and removes the
// renderer. Further calls do nothing.
func (s *Session) Dispose() {
	if s.disposed {
		return
	}
	s.disposed = true
	for _, off := range s.offs {
		off()
	}
	s.offs = nil
	s.sync.Teardown()
	s.r.Remove()
}

// Selection returns the page's drawer state.
func (s *Session) Selection() *Selection { return &s.sel }

// Records returns the records currently shown.
func (s *Session) Records() []*domain.Property { return s.records }

func (s *Session) Mode() Mode { return s.sync.Mode() }

func (s *Session) LivePins() []string { return s.sync.LivePins() }

func (s *Session) ViewMode() ViewMode { return s.view }

func (s *Session) Ready() bool { return s.ready }

func (s *Session) Disposed() bool { return s.disposed }

func (s *Session) show(p *domain.Property) {
	if s.disposed {
		return
	}
	s.sel.Show(p)
}

func (s *Session) find(id string) *domain.Property {
	for _, p := range s.records {
		if p.ID == id {
			return p
		}
	}
	return nil
}

func (s *Session) onLoad(MapEvent) {
	if s.disposed || s.ready {
		return
	}
	s.ready = true
	s.flush()
}

// flush applies queued updates in arrival order: data first, then focus.
func (s *Session) flush() {
	if s.stale {
		s.stale = false
		if err := s.r.SetData(geo.ToFeatureCollection(s.records)); err != nil {
			slog.Warn("map source update failed", "error", err)
		}
		s.resync()
	}
	if s.focus != "" {
		id := s.focus
		s.focus = ""
		s.applyFocus(id)
	}
}

func (s *Session) applyFocus(id string) {
	p := s.find(id)
	if p == nil {
		slog.Debug("focus target not visible", "id", id)
		return
	}
	s.r.FlyTo(Camera{
		Center: LngLat{Lng: p.Position.Lng, Lat: p.Position.Lat},
		Zoom:   max(s.r.Zoom(), s.cfg.FocusMinZoom),
	})
	s.show(p)
}

func (s *Session) resync() {
	s.sync.Sync(s.r, s.records)
	if s.throttle != nil {
		s.throttle.Mark(s.r.Zoom())
	}
}

func (s *Session) onViewport(MapEvent) {
	if s.disposed || !s.ready {
		return
	}
	if s.throttle != nil && !s.throttle.ShouldSync(s.r.Zoom()) {
		return
	}
	s.resync()
}

func (s *Session) onClusterClick(e MapEvent) {
	if s.disposed {
		return
	}
	features := s.r.QueryRenderedFeatures(e.Point, LayerClusters)
	if len(features) == 0 || features[0].ClusterID == 0 {
		return
	}
	center := e.LngLat
	s.r.ClusterExpansionZoom(features[0].ClusterID, func(zoom float64, err error) {
		if err != nil {
			slog.Debug("cluster expansion skipped", "cluster_id", features[0].ClusterID, "error", err)
			return
		}
		if s.disposed {
			return
		}
		s.r.EaseTo(Camera{Center: center, Zoom: zoom})
	})
}

func (s *Session) onPointClick(e MapEvent) {
	if s.disposed || len(e.Features) == 0 {
		return
	}
	if p := s.find(e.Features[0].RecordID); p != nil {
		s.show(p)
	}
}
