// Package axis implements the one-dimensional axis contract: a visible
// data range, the transform between data values and screen pixels along
// one orientation, and the pan/zoom/reset operations that mutate the
// range. Operations never trigger a redraw; callers request
// invalidation explicitly.
package axis

import (
	"math"

	"github.com/luoshushi/oxyplot/internal/geometry"
)

// Orientation is fixed at axis construction and never changes.
type Orientation int

const (
	Horizontal Orientation = iota
	Vertical
)

func (o Orientation) String() string {
	if o == Vertical {
		return "vertical"
	}
	return "horizontal"
}

// MinDataRange is the smallest visible range an axis will accept.
// Zoom and ZoomAt calls that would produce a smaller (or inverted)
// range are no-ops, which is what makes a zoom rectangle collapsed to
// zero extent on one axis skip that axis.
const MinDataRange = 1e-6

// Axis is the transform contract consumed by manipulators and the
// surface. All operations are synchronous and side-effect only the
// axis's own range.
type Axis interface {
	// Orientation reports whether the axis runs horizontally or
	// vertically on screen.
	Orientation() Orientation

	// ActualMin returns the lower bound of the visible range.
	ActualMin() float64
	// ActualMax returns the upper bound of the visible range.
	ActualMax() float64

	// Transform maps a data value to a screen coordinate along the
	// axis orientation.
	Transform(value float64) float64
	// InverseTransform maps a screen coordinate back to a data value.
	InverseTransform(screen float64) float64

	// Pan shifts the visible range by a screen-space delta converted
	// through the inverse transform. Zoom level is unchanged.
	Pan(screenDelta float64)
	// PanPoints pans by the motion between two screen points,
	// considering only the component along the axis orientation.
	PanPoints(previous, current geometry.ScreenPoint)

	// Zoom replaces the visible range wholesale. Calls with
	// newMax - newMin < MinDataRange are no-ops.
	Zoom(newMin, newMax float64)
	// ZoomAt rescales the visible range around an anchor data value.
	// Factor > 1 zooms in, 0 < factor < 1 zooms out. Non-positive
	// factors and degenerate results are no-ops.
	ZoomAt(factor, anchor float64)
	// ZoomAtCenter rescales around the data value at the geometric
	// center of the current screen range.
	ZoomAtCenter(factor float64)

	// Reset restores the range to the configured default, or to the
	// construction range when no default is set.
	Reset()

	// IsPanEnabled reports whether pan operations are honored.
	IsPanEnabled() bool
	// IsZoomEnabled reports whether zoom operations are honored.
	IsZoomEnabled() bool
}

// LinearAxis is a linearly scaled axis.
//
// The screen range is assigned by the surface during layout via
// SetScreenRange; for vertical axes the surface passes the bottom pixel
// first so that increasing data values render upward.
type LinearAxis struct {
	orientation Orientation

	min float64
	max float64

	// Construction range, used by Reset when no default is set.
	initialMin float64
	initialMax float64

	// Optional configured default range (NaN when unset).
	defaultMin float64
	defaultMax float64

	// userRange is set once a pan or zoom fixes the visible range.
	// Until then the axis follows its default range as data arrives.
	userRange bool

	// Screen coordinates that min and max map to.
	screenMin float64
	screenMax float64

	panEnabled  bool
	zoomEnabled bool

	title string
}

// NewLinear creates a linear axis with the given orientation and
// initial visible range. The range is normalized so min < max.
func NewLinear(orientation Orientation, min, max float64) *LinearAxis {
	if max < min {
		min, max = max, min
	}
	if max-min < MinDataRange {
		max = min + 1
	}
	return &LinearAxis{
		orientation: orientation,
		min:         min,
		max:         max,
		initialMin:  min,
		initialMax:  max,
		defaultMin:  math.NaN(),
		defaultMax:  math.NaN(),
		screenMin:   0,
		screenMax:   1,
		panEnabled:  true,
		zoomEnabled: true,
	}
}

func (a *LinearAxis) Orientation() Orientation { return a.orientation }

func (a *LinearAxis) ActualMin() float64 { return a.min }
func (a *LinearAxis) ActualMax() float64 { return a.max }

// Title returns the axis title.
func (a *LinearAxis) Title() string { return a.title }

// SetTitle sets the axis title.
func (a *LinearAxis) SetTitle(title string) { a.title = title }

// SetDefaultRange configures the range Reset restores. An axis the
// user has not panned or zoomed adopts the new default immediately, so
// the view tracks the data until the user takes over.
func (a *LinearAxis) SetDefaultRange(min, max float64) {
	if max < min {
		min, max = max, min
	}
	a.defaultMin = min
	a.defaultMax = max
	if !a.userRange && max-min >= MinDataRange {
		a.min = min
		a.max = max
	}
}

// SetPanEnabled toggles pan operations on this axis.
func (a *LinearAxis) SetPanEnabled(enabled bool) { a.panEnabled = enabled }

// SetZoomEnabled toggles zoom operations on this axis.
func (a *LinearAxis) SetZoomEnabled(enabled bool) { a.zoomEnabled = enabled }

func (a *LinearAxis) IsPanEnabled() bool  { return a.panEnabled }
func (a *LinearAxis) IsZoomEnabled() bool { return a.zoomEnabled }

// SetScreenRange assigns the pixel coordinates the visible range maps
// to. start maps to ActualMin, end to ActualMax.
func (a *LinearAxis) SetScreenRange(start, end float64) {
	if math.Abs(end-start) < MinDataRange {
		return
	}
	a.screenMin = start
	a.screenMax = end
}

// ScreenRange returns the pixel coordinates assigned by SetScreenRange.
func (a *LinearAxis) ScreenRange() (start, end float64) {
	return a.screenMin, a.screenMax
}

func (a *LinearAxis) Transform(value float64) float64 {
	return a.screenMin + (value-a.min)/(a.max-a.min)*(a.screenMax-a.screenMin)
}

func (a *LinearAxis) InverseTransform(screen float64) float64 {
	return a.min + (screen-a.screenMin)/(a.screenMax-a.screenMin)*(a.max-a.min)
}

func (a *LinearAxis) Pan(screenDelta float64) {
	if !a.panEnabled || screenDelta == 0 {
		return
	}
	dataDelta := a.InverseTransform(a.screenMin+screenDelta) - a.min
	a.min -= dataDelta
	a.max -= dataDelta
	a.userRange = true
}

func (a *LinearAxis) PanPoints(previous, current geometry.ScreenPoint) {
	if a.orientation == Horizontal {
		a.Pan(current.X - previous.X)
		return
	}
	a.Pan(current.Y - previous.Y)
}

func (a *LinearAxis) Zoom(newMin, newMax float64) {
	if !a.zoomEnabled {
		return
	}
	if !isFinite(newMin) || !isFinite(newMax) || newMax-newMin < MinDataRange {
		return
	}
	a.min = newMin
	a.max = newMax
	a.userRange = true
}

func (a *LinearAxis) ZoomAt(factor, anchor float64) {
	if !a.zoomEnabled || factor <= 0 || !isFinite(anchor) {
		return
	}
	newMin := anchor + (a.min-anchor)/factor
	newMax := anchor + (a.max-anchor)/factor
	if !isFinite(newMin) || !isFinite(newMax) || newMax-newMin < MinDataRange {
		return
	}
	a.min = newMin
	a.max = newMax
	a.userRange = true
}

func (a *LinearAxis) ZoomAtCenter(factor float64) {
	// Anchor at the data value under the screen midpoint rather than
	// the arithmetic range center, so nonuniform screen mappings stay
	// anchored where the user sees the middle of the axis.
	mid := (a.Transform(a.min) + a.Transform(a.max)) / 2
	a.ZoomAt(factor, a.InverseTransform(mid))
}

// Reset restores the default (or construction) range and hands the
// axis back to data-driven ranging.
func (a *LinearAxis) Reset() {
	a.userRange = false
	if isFinite(a.defaultMin) && isFinite(a.defaultMax) &&
		a.defaultMax-a.defaultMin >= MinDataRange {
		a.min = a.defaultMin
		a.max = a.defaultMax
		return
	}
	a.min = a.initialMin
	a.max = a.initialMax
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
