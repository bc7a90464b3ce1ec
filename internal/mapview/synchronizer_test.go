package mapview_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/johnwards/colombomap/internal/domain"
	"github.com/johnwards/colombomap/internal/mapview"
)

func TestSynchronizerPinsOnlyAtOrAboveThreshold(t *testing.T) {
	records := launches()
	cfg := mapview.CondoMapConfig()

	tests := []struct {
		zoom float64
		want int
		mode mapview.Mode
	}{
		{12, 0, mapview.ModeClustered},
		{12.99, 0, mapview.ModeClustered},
		{13, 3, mapview.ModePhotoPinned},
		{16, 3, mapview.ModePhotoPinned},
	}
	for _, tt := range tests {
		h := mapview.NewHeadless(cfg, 0, 0)
		h.SetCamera(mapview.Camera{Center: cfg.DefaultCenter, Zoom: tt.zoom})

		s := mapview.NewSynchronizer(cfg.PhotoPinZoom, nil)
		s.Sync(h, records)

		assert.Len(t, h.LiveMarkers(), tt.want, "zoom %v", tt.zoom)
		assert.Len(t, s.LivePins(), tt.want, "zoom %v", tt.zoom)
		assert.Equal(t, tt.mode, s.Mode(), "zoom %v", tt.zoom)
	}
}

func TestSynchronizerNeverLeavesStalePins(t *testing.T) {
	records := launches()
	h := mapview.NewHeadless(mapview.LaunchMapConfig(), 0, 0)
	h.SetCamera(cameraAt(records[0], 14))

	s := mapview.NewSynchronizer(12.8, nil)
	s.Sync(h, records)
	s.Sync(h, records)
	assert.Equal(t, []string{"nl-001", "nl-002", "nl-003"}, pinIDs(h.LiveMarkers()))
	assert.Equal(t, 6, h.MarkersCreated())

	s.Sync(h, records[:1])
	assert.Equal(t, []string{"nl-001"}, pinIDs(h.LiveMarkers()))

	h.SetCamera(cameraAt(records[0], 10))
	s.Sync(h, records)
	assert.Empty(t, h.LiveMarkers())
	assert.Equal(t, mapview.ModeClustered, s.Mode())
}

func TestSynchronizerDeduplicatesByID(t *testing.T) {
	records := launches()
	dup := append(launches(), records[1])
	h := mapview.NewHeadless(mapview.LaunchMapConfig(), 0, 0)
	h.SetCamera(cameraAt(records[0], 13))

	s := mapview.NewSynchronizer(12.8, nil)
	s.Sync(h, dup)
	assert.Equal(t, []string{"nl-001", "nl-002", "nl-003"}, s.LivePins())
}

func TestSynchronizerTeardown(t *testing.T) {
	h := mapview.NewHeadless(mapview.LaunchMapConfig(), 0, 0)
	h.SetCamera(mapview.Camera{Center: mapview.ColomboCenter, Zoom: 13})

	s := mapview.NewSynchronizer(12.8, nil)
	s.Sync(h, launches())
	s.Teardown()
	assert.Empty(t, h.LiveMarkers())
	assert.Empty(t, s.LivePins())
}

func TestSynchronizerPinClickSelects(t *testing.T) {
	records := launches()
	h := mapview.NewHeadless(mapview.LaunchMapConfig(), 0, 0)
	h.SetCamera(cameraAt(records[0], 13))

	var got *domain.Property
	s := mapview.NewSynchronizer(12.8, func(p *domain.Property) { got = p })
	s.Sync(h, records)

	require.True(t, h.ClickMarker("nl-002"))
	assert.Same(t, records[1], got)

	pins := h.LiveMarkers()
	assert.Equal(t, "/img/harbor.jpg", pins[0].ImageURL)
	assert.Equal(t, "harbor-one", pins[0].Slug)
}

func TestThrottle(t *testing.T) {
	th := mapview.NewThrottle(13)
	assert.True(t, th.ShouldSync(12), "first sync always runs")

	th.Mark(12)
	assert.False(t, th.ShouldSync(12.9), "below threshold, no crossing")
	assert.True(t, th.ShouldSync(13), "crossing up")

	th.Mark(13.2)
	assert.False(t, th.ShouldSync(13.5))
	assert.False(t, th.ShouldSync(13.65))
	assert.True(t, th.ShouldSync(13.75), "more than half a level above threshold")
	assert.True(t, th.ShouldSync(12.9), "crossing down")
}
