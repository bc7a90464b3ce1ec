package mapview

import "github.com/johnwards/colombomap/internal/domain"

// Mode is the marker presentation currently shown.
type Mode string

const (
	ModeClustered   Mode = "clustered"
	ModePhotoPinned Mode = "photo-pinned"
)

type pin struct {
	id     string
	marker Marker
}

// Synchronizer reconciles photo pins with the visible records. Every Sync
// removes the pins it created before adding new ones, so pins never go stale
// or duplicate.
type Synchronizer struct {
	threshold float64
	onSelect  func(*domain.Property)
	pins      []pin
	mode      Mode
}

// NewSynchronizer returns a synchronizer that shows pins at zoom >= threshold
// and calls onSelect when one is clicked.
func NewSynchronizer(threshold float64, onSelect func(*domain.Property)) *Synchronizer {
	return &Synchronizer{threshold: threshold, onSelect: onSelect, mode: ModeClustered}
}

// Sync tears down existing pins and, when r is zoomed in far enough, adds one
// pin per record. Records repeating an id get a single pin.
func (s *Synchronizer) Sync(r Renderer, records []*domain.Property) {
	s.Teardown()
	if r.Zoom() < s.threshold {
		s.mode = ModeClustered
		return
	}
	s.mode = ModePhotoPinned

	seen := make(map[string]bool, len(records))
	for _, p := range records {
		if seen[p.ID] {
			continue
		}
		seen[p.ID] = true
		m := r.AddMarker(MarkerSpec{
			RecordID: p.ID,
			Slug:     p.Slug,
			Title:    p.Name,
			ImageURL: p.PinImage(),
			Position: LngLat{Lng: p.Position.Lng, Lat: p.Position.Lat},
			OnClick: func() {
				if s.onSelect != nil {
					s.onSelect(p)
				}
			},
		})
		s.pins = append(s.pins, pin{id: p.ID, marker: m})
	}
}

// Teardown removes every pin created by s.
func (s *Synchronizer) Teardown() {
	for _, p := range s.pins {
		p.marker.Remove()
	}
	s.pins = nil
}

// Mode reports the presentation chosen by the last Sync.
func (s *Synchronizer) Mode() Mode {
	return s.mode
}

// LivePins returns the record ids of the pins currently shown.
func (s *Synchronizer) LivePins() []string {
	ids := make([]string, len(s.pins))
	for i, p := range s.pins {
		ids[i] = p.id
	}
	return ids
}
