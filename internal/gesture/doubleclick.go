package gesture

import (
	"time"

	"github.com/luoshushi/oxyplot/internal/geometry"
)

// Double-click detection defaults.
const (
	DefaultClickWindow   = 500 * time.Millisecond
	DefaultClickDistance = 4.0
)

// DoubleClickDetector turns a stream of click positions into click
// counts: two clicks within the timing window and distance limit count
// as a double-click. Not safe for concurrent use; drive it from the
// input thread.
type DoubleClickDetector struct {
	window   time.Duration
	distance float64
	now      func() time.Time

	lastClick time.Time
	lastPos   geometry.ScreenPoint
	count     int
}

// NewDoubleClickDetector creates a detector with the given window and
// distance limit; zero values select the defaults.
func NewDoubleClickDetector(window time.Duration, distance float64) *DoubleClickDetector {
	if window <= 0 {
		window = DefaultClickWindow
	}
	if distance <= 0 {
		distance = DefaultClickDistance
	}
	return &DoubleClickDetector{
		window:   window,
		distance: distance,
		now:      time.Now,
	}
}

// SetClock substitutes the time source. Used for testing.
func (d *DoubleClickDetector) SetClock(now func() time.Time) {
	d.now = now
}

// Click records a click at p and returns the click count (1 or 2).
// A third rapid click starts a new sequence.
func (d *DoubleClickDetector) Click(p geometry.ScreenPoint) int {
	t := d.now()
	if d.count == 1 &&
		t.Sub(d.lastClick) <= d.window &&
		p.DistanceTo(d.lastPos) <= d.distance {
		d.count = 0
		d.lastClick = t
		return 2
	}
	d.count = 1
	d.lastClick = t
	d.lastPos = p
	return 1
}
