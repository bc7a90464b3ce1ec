package domain_test

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/johnwards/colombomap/internal/domain"
)

func TestOptionalJSONPresence(t *testing.T) {
	var rec struct {
		Floors domain.Optional[int]   `json:"floors,omitzero"`
		Beds   domain.Optional[[]int] `json:"bedrooms,omitzero"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"floors":0}`), &rec))

	floors, ok := rec.Floors.Get()
	assert.True(t, ok, "explicit zero is present")
	assert.Equal(t, 0, floors)
	assert.False(t, rec.Beds.IsSet())

	out, err := json.Marshal(rec)
	require.NoError(t, err)
	assert.JSONEq(t, `{"floors":0}`, string(out))

	require.NoError(t, json.Unmarshal([]byte(`{"floors":null}`), &rec))
	assert.False(t, rec.Floors.IsSet())
}

func TestCoverAndPinImageFallbacks(t *testing.T) {
	p := &domain.Property{Gallery: []string{"g1.jpg", "g2.jpg"}}
	assert.Equal(t, "g1.jpg", p.CoverImage())
	assert.Equal(t, "g1.jpg", p.PinImage())

	p.CoverImageURL = "cover.jpg"
	assert.Equal(t, "cover.jpg", p.CoverImage())
	assert.Equal(t, "cover.jpg", p.PinImage())

	p.PinImageURL = "pin.webp"
	assert.Equal(t, "pin.webp", p.PinImage())

	assert.Empty(t, (&domain.Property{}).PinImage())
}

func TestCompletionYearFallback(t *testing.T) {
	p := &domain.Property{ExpectedCompletionYear: domain.Some(2028)}
	y, ok := p.CompletionYearOrExpected().Get()
	require.True(t, ok)
	assert.Equal(t, 2028, y)

	p.CompletionYear = domain.Some(2029)
	y, _ = p.CompletionYearOrExpected().Get()
	assert.Equal(t, 2029, y)

	assert.False(t, (&domain.Property{}).CompletionYearOrExpected().IsSet())
}

func TestHasBedroom(t *testing.T) {
	p := &domain.Property{Bedrooms: domain.Some([]int{0, 2})}
	assert.True(t, p.HasBedroom(0))
	assert.True(t, p.HasBedroom(2))
	assert.False(t, p.HasBedroom(1))
	assert.False(t, (&domain.Property{}).HasBedroom(0))
}

func TestEnquiryURL(t *testing.T) {
	p := &domain.Property{Name: "Harbor One", Enquiry: domain.Enquiry{WhatsappPrefill: "Hi & hello"}}
	assert.Equal(t, "https://wa.me/?text=Hi+%26+hello", p.EnquiryURL())

	p.Enquiry = domain.Enquiry{}
	assert.True(t, strings.HasPrefix(p.EnquiryURL(), "https://wa.me/?text=Hi%2C+I%27m+interested+in+Harbor+One"))
}

func validLaunch() *domain.Property {
	return &domain.Property{
		ID:       "nl-001",
		Slug:     "harbor-one",
		Name:     "Harbor One",
		Position: domain.Position{Lat: 6.91, Lng: 79.85},
		Status:   domain.StatusPreSelling,
	}
}

func TestValidate(t *testing.T) {
	require.NoError(t, validLaunch().Validate(domain.DatasetLaunches))

	p := validLaunch()
	assert.Error(t, p.Validate(domain.DatasetCondos), "Pre-Selling is not a condo status")

	p = validLaunch()
	p.PriceFromLkr = domain.Some[int64](85_000_000)
	p.PriceToLkr = domain.Some[int64](45_000_000)
	assert.ErrorContains(t, p.Validate(domain.DatasetLaunches), "below priceFromLkr")

	p = validLaunch()
	p.Position = domain.Position{Lat: 120}
	p.Slug = ""
	err := p.Validate(domain.DatasetLaunches)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "slug is required")
	assert.Contains(t, err.Error(), "out of range")

	p = validLaunch()
	p.Bedrooms = domain.Some([]int{-1})
	assert.Error(t, p.Validate(domain.DatasetLaunches))
}

func TestParseDataset(t *testing.T) {
	d, err := domain.ParseDataset("launches")
	require.NoError(t, err)
	assert.Equal(t, domain.DatasetLaunches, d)

	_, err = domain.ParseDataset("villas")
	assert.Error(t, err)
}
