package filter

import (
	"cmp"
	"slices"

	"github.com/johnwards/colombomap/internal/domain"
)

// Facets lists the distinct values a page offers in its filter menus.
type Facets struct {
	Areas           []string        `json:"areas"`
	Developers      []string        `json:"developers"`
	PropertyTypes   []string        `json:"propertyTypes"`
	Tenures         []string        `json:"tenures"`
	CompletionYears []int           `json:"completionYears"`
	Bedrooms        []int           `json:"bedrooms"`
	Statuses        []domain.Status `json:"statuses"`
	PriceBands      []BandOption    `json:"priceBands"`
}

// Options collects sorted, de-duplicated facet values from records. Empty
// strings and absent numbers are skipped.
func Options(records []*domain.Property) Facets {
	var f Facets
	var statuses []domain.Status
	for _, p := range records {
		f.Areas = appendNonEmpty(f.Areas, p.Area)
		f.Developers = appendNonEmpty(f.Developers, p.Developer)
		f.PropertyTypes = appendNonEmpty(f.PropertyTypes, p.PropertyType)
		f.Tenures = appendNonEmpty(f.Tenures, p.Tenure)
		if y, ok := p.CompletionYearOrExpected().Get(); ok {
			f.CompletionYears = append(f.CompletionYears, y)
		}
		if beds, ok := p.Bedrooms.Get(); ok {
			f.Bedrooms = append(f.Bedrooms, beds...)
		}
		statuses = append(statuses, p.Status)
	}
	f.Areas = uniqSorted(f.Areas)
	f.Developers = uniqSorted(f.Developers)
	f.PropertyTypes = uniqSorted(f.PropertyTypes)
	f.Tenures = uniqSorted(f.Tenures)
	f.CompletionYears = uniqSorted(f.CompletionYears)
	f.Bedrooms = uniqSorted(f.Bedrooms)
	f.Statuses = uniqSorted(statuses)
	f.PriceBands = PriceBands()
	return f
}

func appendNonEmpty(dst []string, s string) []string {
	if s == "" {
		return dst
	}
	return append(dst, s)
}

func uniqSorted[T cmp.Ordered](in []T) []T {
	out := slices.Clone(in)
	slices.Sort(out)
	out = slices.Compact(out)
	if out == nil {
		out = []T{}
	}
	return out
}
