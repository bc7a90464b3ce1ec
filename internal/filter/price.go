package filter

import (
	"fmt"

	"github.com/johnwards/colombomap/internal/domain"
)

// PriceBand is one of the fixed starting-price bands offered on the launch
// page. Bounds are inclusive.
type PriceBand string

const (
	PriceBandAll      PriceBand = All
	PriceBandUnder50M PriceBand = "lt50"
	PriceBand50To100M PriceBand = "50to100"
	PriceBandOver100M PriceBand = "gt100"
)

const (
	fiftyMillion   int64 = 50_000_000
	hundredMillion int64 = 100_000_000
)

// BandOption is a price band with its menu label.
type BandOption struct {
	Band  PriceBand `json:"value"`
	Label string    `json:"label"`
}

// PriceBands returns the selectable bands in menu order.
func PriceBands() []BandOption {
	return []BandOption{
		{PriceBandUnder50M, "< LKR 50M"},
		{PriceBand50To100M, "LKR 50M – 100M"},
		{PriceBandOver100M, "> LKR 100M"},
	}
}

// ParsePriceBand validates a band value; "" maps to PriceBandAll.
func ParsePriceBand(s string) (PriceBand, error) {
	switch PriceBand(s) {
	case "", PriceBandAll:
		return PriceBandAll, nil
	case PriceBandUnder50M, PriceBand50To100M, PriceBandOver100M:
		return PriceBand(s), nil
	}
	return "", fmt.Errorf("unknown price band %q", s)
}

// Range returns the inclusive bounds of the band. A missing bound is absent.
func (b PriceBand) Range() (lo, hi domain.Optional[int64]) {
	switch b {
	case PriceBandUnder50M:
		return domain.None[int64](), domain.Some(fiftyMillion)
	case PriceBand50To100M:
		return domain.Some(fiftyMillion), domain.Some(hundredMillion)
	case PriceBandOver100M:
		return domain.Some(hundredMillion), domain.None[int64]()
	}
	return domain.None[int64](), domain.None[int64]()
}

// Active reports whether the band constrains prices.
func (b PriceBand) Active() bool {
	return b != "" && b != PriceBandAll
}

// Contains reports whether a starting price falls in the band. An absent
// price never matches an active band.
func (b PriceBand) Contains(price domain.Optional[int64]) bool {
	if !b.Active() {
		return true
	}
	v, ok := price.Get()
	if !ok {
		return false
	}
	lo, hi := b.Range()
	if lower, ok := lo.Get(); ok && v < lower {
		return false
	}
	if upper, ok := hi.Get(); ok && v > upper {
		return false
	}
	return true
}
