package mapview

import (
	"github.com/johnwards/colombomap/internal/cluster"
	"github.com/johnwards/colombomap/internal/domain"
)

// Pin is a photo pin as rendered.
type Pin struct {
	RecordID string  `json:"recordId"`
	Slug     string  `json:"slug"`
	Name     string  `json:"name"`
	ImageURL string  `json:"imageUrl,omitempty"`
	Lng      float64 `json:"lng"`
	Lat      float64 `json:"lat"`
}

// Plan is a snapshot of what a map session shows.
type Plan struct {
	Mode       Mode             `json:"mode"`
	Zoom       float64          `json:"zoom"`
	Center     LngLat           `json:"center"`
	Total      int              `json:"total"`
	Clusters   []cluster.Node   `json:"clusters"`
	Pins       []Pin            `json:"pins"`
	Selected   *domain.Property `json:"selected"`
	DrawerOpen bool             `json:"drawerOpen"`
}

// Snapshot captures the state of s rendered through h.
func Snapshot(s *Session, h *Headless) Plan {
	p := Plan{
		Mode:       s.Mode(),
		Zoom:       h.Zoom(),
		Center:     h.Center(),
		Total:      len(s.Records()),
		Clusters:   h.Visible(),
		Pins:       []Pin{},
		Selected:   s.Selection().Selected(),
		DrawerOpen: s.Selection().IsOpen(),
	}
	if p.Clusters == nil {
		p.Clusters = []cluster.Node{}
	}
	for _, m := range h.LiveMarkers() {
		p.Pins = append(p.Pins, Pin{
			RecordID: m.RecordID,
			Slug:     m.Slug,
			Name:     m.Title,
			ImageURL: m.ImageURL,
			Lng:      m.Position.Lng,
			Lat:      m.Position.Lat,
		})
	}
	return p
}

// Viewport describes a headless render request. A nil Camera keeps the
// config's default view. Focus is a record id; Selected is a slug or id shown
// in the drawer after load.
type Viewport struct {
	Camera   *Camera
	Width    float64
	Height   float64
	Focus    string
	Selected string
}

// Render runs a full session lifecycle over records and returns what the map
// would show once loaded: the data is queued, the camera placed, focus
// applied on load, then the session is disposed.
func Render(cfg MapConfig, records []*domain.Property, vp Viewport) Plan {
	h := NewHeadless(cfg, vp.Width, vp.Height)
	if vp.Camera != nil {
		h.SetCamera(*vp.Camera)
	}
	s := NewSession(h, cfg, records)
	defer s.Dispose()

	s.Focus(vp.Focus)
	h.Load()
	if vp.Selected != "" {
		for _, p := range records {
			if p.Slug == vp.Selected || p.ID == vp.Selected {
				s.Selection().Show(p)
				break
			}
		}
	}
	return Snapshot(s, h)
}
