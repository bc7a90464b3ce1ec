package mapview

import "github.com/johnwards/colombomap/internal/domain"

// Selection is the drawer state of a page: at most one selected record and
// whether the drawer is open. The selected record is borrowed from the
// catalog.
type Selection struct {
	selected *domain.Property
	open     bool
	observer func(selected *domain.Property, open bool)
}

// Observe registers f to be called after every state change.
func (s *Selection) Observe(f func(selected *domain.Property, open bool)) {
	s.observer = f
}

func (s *Selection) changed() {
	if s.observer != nil {
		s.observer(s.selected, s.open)
	}
}

// Select replaces the selected record without touching the drawer.
func (s *Selection) Select(p *domain.Property) {
	s.selected = p
	s.changed()
}

// Show selects p and opens the drawer. Showing a record while the drawer is
// open swaps its contents in place.
func (s *Selection) Show(p *domain.Property) {
	s.selected = p
	s.open = true
	s.changed()
}

func (s *Selection) Open() {
	s.open = true
	s.changed()
}

// Close hides the drawer and keeps the selection.
func (s *Selection) Close() {
	s.open = false
	s.changed()
}

func (s *Selection) Selected() *domain.Property {
	return s.selected
}

func (s *Selection) IsOpen() bool {
	return s.open
}
