package mapview

import "math"

// zoomStep is the zoom change above the threshold that warrants a re-sync.
const zoomStep = 0.5

// Throttle decides whether a viewport change needs a pin re-sync.
type Throttle struct {
	threshold float64
	last      float64
	above     bool
	marked    bool
}

func NewThrottle(threshold float64) *Throttle {
	return &Throttle{threshold: threshold}
}

// ShouldSync reports whether zoom crossed the threshold since the last Mark,
// or stayed above it and moved by more than half a level.
func (t *Throttle) ShouldSync(zoom float64) bool {
	if !t.marked {
		return true
	}
	above := zoom >= t.threshold
	if above != t.above {
		return true
	}
	return above && math.Abs(zoom-t.last) > zoomStep
}

// Mark records the zoom of a completed sync.
func (t *Throttle) Mark(zoom float64) {
	t.marked = true
	t.last = zoom
	t.above = zoom >= t.threshold
}
