// Package filter selects listings from a dataset. Every view (map, grid and
// table) filters through Apply, so the same criteria always yield the same
// ordered result.
package filter

import (
	"slices"
	"strings"

	"golang.org/x/text/cases"

	"github.com/johnwards/colombomap/internal/domain"
)

// All is the sentinel meaning "no constraint" for single-choice filters.
const All = "All"

// StatusFilter constrains records to a subset of statuses. The zero value
// leaves status unconstrained; an active filter with no statuses matches
// nothing.
type StatusFilter struct {
	active  bool
	allowed []domain.Status
}

// AnyStatus returns an unconstrained status filter.
func AnyStatus() StatusFilter {
	return StatusFilter{}
}

// OnlyStatuses returns a filter admitting exactly the given statuses.
func OnlyStatuses(statuses ...domain.Status) StatusFilter {
	return StatusFilter{active: true, allowed: slices.Clone(statuses)}
}

// Active reports whether the filter constrains anything.
func (f StatusFilter) Active() bool { return f.active }

// Allowed returns the admitted statuses.
func (f StatusFilter) Allowed() []domain.Status { return slices.Clone(f.allowed) }

// Allows reports whether s passes the filter.
func (f StatusFilter) Allows(s domain.Status) bool {
	return !f.active || slices.Contains(f.allowed, s)
}

// Criteria is the full set of filters a page can apply. String fields equal
// to "" or All are unconstrained.
type Criteria struct {
	Query          string
	Area           string
	Statuses       StatusFilter
	Developer      string
	PropertyType   string
	Tenure         string
	Bedroom        domain.Optional[int]
	CompletionYear domain.Optional[int]
	PriceBand      PriceBand
}

// DefaultCriteria returns the criteria a page starts with: condominium pages
// tick every status, launch pages have no status control.
func DefaultCriteria(d domain.Dataset) Criteria {
	c := Criteria{
		Area:         All,
		Developer:    All,
		PropertyType: All,
		Tenure:       All,
		PriceBand:    PriceBandAll,
	}
	if d == domain.DatasetCondos {
		c.Statuses = OnlyStatuses(domain.CondoStatuses()...)
	}
	return c
}

// Apply returns the records of ds that satisfy every active constraint in c,
// preserving dataset order. The input is never modified.
func Apply(ds []*domain.Property, c Criteria) []*domain.Property {
	m := newMatcher(c)
	out := make([]*domain.Property, 0, len(ds))
	for _, p := range ds {
		if m.match(p) {
			out = append(out, p)
		}
	}
	return out
}

// Match reports whether a single record satisfies c.
func Match(p *domain.Property, c Criteria) bool {
	return newMatcher(c).match(p)
}

type matcher struct {
	c     Criteria
	fold  cases.Caser
	query string
}

func newMatcher(c Criteria) *matcher {
	m := &matcher{c: c, fold: cases.Fold()}
	m.query = m.fold.String(strings.TrimSpace(c.Query))
	return m
}

func (m *matcher) match(p *domain.Property) bool {
	c := m.c
	if m.query != "" {
		text := m.fold.String(p.Name + " " + p.Area + " " + p.Address)
		if !strings.Contains(text, m.query) {
			return false
		}
	}
	if !equalOrAll(c.Area, p.Area) ||
		!equalOrAll(c.Developer, p.Developer) ||
		!equalOrAll(c.PropertyType, p.PropertyType) ||
		!equalOrAll(c.Tenure, p.Tenure) {
		return false
	}
	if !c.Statuses.Allows(p.Status) {
		return false
	}
	if want, ok := c.CompletionYear.Get(); ok {
		got, has := p.CompletionYearOrExpected().Get()
		if !has || got != want {
			return false
		}
	}
	if want, ok := c.Bedroom.Get(); ok && !p.HasBedroom(want) {
		return false
	}
	return c.PriceBand.Contains(p.PriceFromLkr)
}

func equalOrAll(want, got string) bool {
	return want == "" || want == All || want == got
}
