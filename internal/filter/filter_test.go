package filter_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/johnwards/colombomap/internal/domain"
	"github.com/johnwards/colombomap/internal/filter"
)

func ids(records []*domain.Property) []string {
	out := make([]string, len(records))
	for i, p := range records {
		out[i] = p.ID
	}
	return out
}

func condos() []*domain.Property {
	return []*domain.Property{
		{ID: "c-1", Name: "Altair", Area: "Colombo 02", Address: "Sir James Peiris Mawatha", Status: domain.StatusCompleted, Developer: "Indocean"},
		{ID: "c-2", Name: "Lake Crest", Area: "Rajagiriya", Address: "Obeysekera Town", Status: domain.StatusPlanned, Developer: "Urban Towers PLC"},
		{ID: "c-3", Name: "Cinnamon Life", Area: "Colombo 02", Address: "Justice Akbar Mawatha", Status: domain.StatusUnderConstruction, Developer: "John Keells Properties"},
		{ID: "c-4", Name: "Krrish Square", Area: "Colombo 01", Address: "Galle Face", Status: domain.StatusStalled},
	}
}

func launches() []*domain.Property {
	return []*domain.Property{
		{
			ID: "nl-001", Name: "Harbor One", Area: "Colombo 03", Address: "Colombo 03, Sri Lanka",
			Status: domain.StatusPreSelling, PropertyType: "Condominium", Tenure: "Freehold",
			PriceFromLkr: domain.Some[int64](65_000_000), Bedrooms: domain.Some([]int{1, 2, 3}),
			CompletionYear: domain.Some(2029), ExpectedCompletionYear: domain.Some(2027),
		},
		{
			ID: "nl-002", Name: "City Gardens", Area: "Rajagiriya", Address: "Rajagiriya, Sri Lanka",
			Status: domain.StatusPreSelling, PropertyType: "Apartment", Tenure: "Leasehold",
			PriceFromLkr: domain.Some[int64](100_000_000), Bedrooms: domain.Some([]int{0, 2}),
			ExpectedCompletionYear: domain.Some(2028),
		},
		{
			ID: "nl-003", Name: "VIMAN Ja-Ela", Area: "Ja-Ela", Address: "525, Colombo-Negombo Road, Ja-Ela",
			Status: domain.StatusPreSelling, PropertyType: "Condominium", Tenure: "Freehold",
			PriceFromLkr: domain.Some[int64](32_800_000), Bedrooms: domain.Some([]int{1, 2}),
			CompletionYear: domain.Some(2028),
		},
		{
			ID: "nl-004", Name: "Marine Point", Area: "Colombo 03", Address: "Marine Drive",
			Status: domain.StatusPreSelling,
		},
	}
}

func TestApplyStatusExample(t *testing.T) {
	ds := []*domain.Property{
		{ID: "planned", Status: domain.StatusPlanned},
		{ID: "done", Status: domain.StatusCompleted},
	}
	got := filter.Apply(ds, filter.Criteria{Statuses: filter.OnlyStatuses(domain.StatusCompleted)})
	assert.Equal(t, []string{"done"}, ids(got))
}

func TestApplyEmptyStatusSubsetMatchesNothing(t *testing.T) {
	got := filter.Apply(condos(), filter.Criteria{Statuses: filter.OnlyStatuses()})
	assert.Empty(t, got)

	got = filter.Apply(condos(), filter.Criteria{Statuses: filter.AnyStatus()})
	assert.Len(t, got, 4)
}

func TestApplyQuery(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{"blank matches all", "   ", []string{"c-1", "c-2", "c-3", "c-4"}},
		{"name case-insensitive", "ALTAIR", []string{"c-1"}},
		{"area", "colombo 02", []string{"c-1", "c-3"}},
		{"address", "galle face", []string{"c-4"}},
		{"trimmed", "  lake ", []string{"c-2"}},
		{"no match", "kandy", []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := filter.Apply(condos(), filter.Criteria{Query: tt.query})
			assert.Equal(t, tt.want, ids(got))
		})
	}
}

func TestApplyExactMatchFilters(t *testing.T) {
	got := filter.Apply(condos(), filter.Criteria{Area: "Colombo 02"})
	assert.Equal(t, []string{"c-1", "c-3"}, ids(got))

	got = filter.Apply(condos(), filter.Criteria{Area: filter.All, Developer: "Indocean"})
	assert.Equal(t, []string{"c-1"}, ids(got))

	got = filter.Apply(launches(), filter.Criteria{PropertyType: "Condominium"})
	assert.Equal(t, []string{"nl-001", "nl-003"}, ids(got))

	got = filter.Apply(launches(), filter.Criteria{Tenure: "Leasehold"})
	assert.Equal(t, []string{"nl-002"}, ids(got))
}

func TestApplyCompletionYearFallsBackToExpected(t *testing.T) {
	got := filter.Apply(launches(), filter.Criteria{CompletionYear: domain.Some(2028)})
	assert.Equal(t, []string{"nl-002", "nl-003"}, ids(got))

	// nl-001 has completionYear 2029, so its expected 2027 is ignored.
	got = filter.Apply(launches(), filter.Criteria{CompletionYear: domain.Some(2027)})
	assert.Empty(t, got)
}

func TestApplyBedroom(t *testing.T) {
	got := filter.Apply(launches(), filter.Criteria{Bedroom: domain.Some(0)})
	assert.Equal(t, []string{"nl-002"}, ids(got))

	got = filter.Apply(launches(), filter.Criteria{Bedroom: domain.Some(2)})
	assert.Equal(t, []string{"nl-001", "nl-002", "nl-003"}, ids(got), "nl-004 has no bedrooms field")
}

func TestApplyPriceBand(t *testing.T) {
	got := filter.Apply(launches(), filter.Criteria{PriceBand: filter.PriceBandUnder50M})
	assert.Equal(t, []string{"nl-003"}, ids(got))

	got = filter.Apply(launches(), filter.Criteria{PriceBand: filter.PriceBand50To100M})
	assert.Equal(t, []string{"nl-001", "nl-002"}, ids(got), "100M sits on the inclusive upper bound")

	got = filter.Apply(launches(), filter.Criteria{PriceBand: filter.PriceBandOver100M})
	assert.Equal(t, []string{"nl-002"}, ids(got))

	got = filter.Apply(launches(), filter.Criteria{PriceBand: filter.PriceBandAll})
	assert.Len(t, got, 4)
}

func TestPriceBandContainsBoundaries(t *testing.T) {
	assert.True(t, filter.PriceBandUnder50M.Contains(domain.Some[int64](50_000_000)))
	assert.True(t, filter.PriceBand50To100M.Contains(domain.Some[int64](50_000_000)))
	assert.True(t, filter.PriceBandOver100M.Contains(domain.Some[int64](100_000_000)))
	assert.False(t, filter.PriceBandUnder50M.Contains(domain.None[int64]()))
	assert.True(t, filter.PriceBandAll.Contains(domain.None[int64]()))
}

func TestApplyCombinesWithAnd(t *testing.T) {
	c := filter.Criteria{
		Query:        "colombo",
		PropertyType: "Condominium",
		Bedroom:      domain.Some(3),
		PriceBand:    filter.PriceBand50To100M,
	}
	got := filter.Apply(launches(), c)
	require.Equal(t, []string{"nl-001"}, ids(got))

	// Each record in the result satisfies every predicate on its own, and
	// every excluded record fails at least one.
	for _, p := range launches() {
		in := filter.Match(p, c)
		all := filter.Match(p, filter.Criteria{Query: c.Query}) &&
			filter.Match(p, filter.Criteria{PropertyType: c.PropertyType}) &&
			filter.Match(p, filter.Criteria{Bedroom: c.Bedroom}) &&
			filter.Match(p, filter.Criteria{PriceBand: c.PriceBand})
		assert.Equal(t, all, in, p.ID)
	}
}

func TestApplyIsIdempotentAndPure(t *testing.T) {
	ds := launches()
	c := filter.Criteria{Query: "a", Tenure: "Freehold"}

	once := filter.Apply(ds, c)
	twice := filter.Apply(once, c)
	assert.Equal(t, ids(once), ids(twice))
	assert.Equal(t, ids(once), ids(filter.Apply(ds, c)))
	assert.Len(t, ds, 4, "input is untouched")
}

func TestDefaultCriteria(t *testing.T) {
	c := filter.DefaultCriteria(domain.DatasetCondos)
	assert.True(t, c.Statuses.Active())
	assert.Len(t, filter.Apply(condos(), c), 4)

	c = filter.DefaultCriteria(domain.DatasetLaunches)
	assert.False(t, c.Statuses.Active())
	assert.Len(t, filter.Apply(launches(), c), 4)
}
