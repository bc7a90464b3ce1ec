package domain

import (
	"errors"
	"fmt"
	"net/url"
	"slices"
)

// Position is a WGS84 coordinate.
type Position struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Valid reports whether the coordinate is within WGS84 bounds.
func (p Position) Valid() bool {
	return p.Lat >= -90 && p.Lat <= 90 && p.Lng >= -180 && p.Lng <= 180
}

// Pricing is the free-form pricing block shown on launch detail pages.
type Pricing struct {
	FromLkr Optional[int64] `json:"fromLkr,omitzero"`
	ToLkr   Optional[int64] `json:"toLkr,omitzero"`
	Notes   string          `json:"notes,omitempty"`
}

// IsZero reports whether the block carries nothing to show.
func (p Pricing) IsZero() bool {
	return !p.FromLkr.IsSet() && !p.ToLkr.IsSet() && p.Notes == ""
}

// Enquiry holds the prefilled WhatsApp message for a launch.
type Enquiry struct {
	WhatsappPrefill string `json:"whatsappPrefill,omitempty"`
}

// Property is a single condominium or new-launch record. Records are loaded
// once at startup and never mutated; callers share pointers into the catalog.
type Property struct {
	ID        string   `json:"id"`
	Slug      string   `json:"slug"`
	Name      string   `json:"name"`
	City      string   `json:"city,omitempty"`
	Area      string   `json:"area"`
	Address   string   `json:"address"`
	Position  Position `json:"position"`
	Status    Status   `json:"status"`
	Developer string   `json:"developer,omitempty"`

	Floors  Optional[int] `json:"floors,omitzero"`
	Units   Optional[int] `json:"units,omitzero"`
	UnitMix []string      `json:"unitMix,omitempty"`

	Gallery       []string `json:"gallery,omitempty"`
	Amenities     []string `json:"amenities,omitempty"`
	KeyHighlights []string `json:"keyHighlights,omitempty"`

	Pricing                Pricing         `json:"pricing,omitzero"`
	PriceFromLkr           Optional[int64] `json:"priceFromLkr,omitzero"`
	PriceToLkr             Optional[int64] `json:"priceToLkr,omitzero"`
	Bedrooms               Optional[[]int] `json:"bedrooms,omitzero"`
	Tenure                 string          `json:"tenure,omitempty"`
	PropertyType           string          `json:"propertyType,omitempty"`
	CompletionYear         Optional[int]   `json:"completionYear,omitzero"`
	ExpectedCompletionYear Optional[int]   `json:"expectedCompletionYear,omitzero"`

	PinImageURL   string  `json:"pinImageUrl,omitempty"`
	CoverImageURL string  `json:"coverImageUrl,omitempty"`
	BrochureURL   string  `json:"brochureUrl,omitempty"`
	WebsiteURL    string  `json:"websiteUrl,omitempty"`
	Enquiry       Enquiry `json:"enquiry,omitzero"`
}

// CoverImage returns the cover image, falling back to the first gallery entry.
func (p *Property) CoverImage() string {
	if p.CoverImageURL != "" {
		return p.CoverImageURL
	}
	if len(p.Gallery) > 0 {
		return p.Gallery[0]
	}
	return ""
}

// PinImage returns the thumbnail used for photo pins.
func (p *Property) PinImage() string {
	if p.PinImageURL != "" {
		return p.PinImageURL
	}
	return p.CoverImage()
}

// CompletionYearOrExpected returns completionYear, falling back to
// expectedCompletionYear.
func (p *Property) CompletionYearOrExpected() Optional[int] {
	if p.CompletionYear.IsSet() {
		return p.CompletionYear
	}
	return p.ExpectedCompletionYear
}

// HasBedroom reports whether the record lists n among its bedroom counts.
// Records without a bedrooms field never match.
func (p *Property) HasBedroom(n int) bool {
	beds, ok := p.Bedrooms.Get()
	if !ok {
		return false
	}
	return slices.Contains(beds, n)
}

// EnquiryURL returns the WhatsApp deep link for an enquiry about p.
func (p *Property) EnquiryURL() string {
	msg := p.Enquiry.WhatsappPrefill
	if msg == "" {
		msg = fmt.Sprintf("Hi, I'm interested in %s. Please share more details.", p.Name)
	}
	return "https://wa.me/?text=" + url.QueryEscape(msg)
}

// Validate checks the record invariants for a member of dataset d.
func (p *Property) Validate(d Dataset) error {
	var errs []error
	if p.ID == "" {
		errs = append(errs, errors.New("id is required"))
	}
	if p.Slug == "" {
		errs = append(errs, errors.New("slug is required"))
	}
	if p.Name == "" {
		errs = append(errs, errors.New("name is required"))
	}
	if !p.Position.Valid() {
		errs = append(errs, fmt.Errorf("position %v is out of range", p.Position))
	}
	if !p.Status.ValidFor(d) {
		errs = append(errs, fmt.Errorf("status %q is not valid for %s", p.Status, d))
	}
	for name, v := range map[string]Optional[int]{"floors": p.Floors, "units": p.Units} {
		if n, ok := v.Get(); ok && n < 0 {
			errs = append(errs, fmt.Errorf("%s must be non-negative", name))
		}
	}
	from, hasFrom := p.PriceFromLkr.Get()
	to, hasTo := p.PriceToLkr.Get()
	if hasFrom && from < 0 || hasTo && to < 0 {
		errs = append(errs, errors.New("prices must be non-negative"))
	}
	if hasFrom && hasTo && to < from {
		errs = append(errs, fmt.Errorf("priceToLkr %d is below priceFromLkr %d", to, from))
	}
	if beds, ok := p.Bedrooms.Get(); ok {
		for _, b := range beds {
			if b < 0 {
				errs = append(errs, fmt.Errorf("bedroom count %d must be non-negative", b))
			}
		}
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("property %q: %w", p.ID, err)
	}
	return nil
}
