// Package manipulator implements the gesture state machines that
// translate screen-space input into axis transforms and overlay
// feedback. Every manipulator shares the Started/Delta/Completed
// lifecycle; instances are transient, owned by the dispatch site for
// the duration of one gesture, and are not safe for concurrent use.
package manipulator

import (
	"github.com/luoshushi/oxyplot/internal/axis"
	"github.com/luoshushi/oxyplot/internal/geometry"
	"github.com/luoshushi/oxyplot/internal/series"
)

// Event carries the input state for one lifecycle call.
type Event struct {
	// Position is the pointer or touch-centroid position.
	Position geometry.ScreenPoint

	// Translation is the centroid motion since the previous touch
	// event. Touch gestures only.
	Translation geometry.ScreenVector

	// ScaleX and ScaleY are the pinch scale change since the previous
	// touch event (1 = unchanged). Touch gestures only.
	ScaleX float64
	ScaleY float64
}

// View is what a manipulator needs from its owning surface: axis and
// series lookup, overlay feedback, and invalidation. The surface
// implements it; tests substitute fakes.
type View interface {
	// AxesFromPoint returns the axes under a screen point, nil when
	// the point hits no axis of that orientation.
	AxesFromPoint(p geometry.ScreenPoint) (x, y axis.Axis)

	// AllAxes returns every axis of the bound model.
	AllAxes() []axis.Axis

	// SeriesFromPoint returns the nearest series hit within limit
	// pixels, nil for no hit.
	SeriesFromPoint(p geometry.ScreenPoint, limit float64, interpolate bool) *series.TrackerHit

	// ShowTracker and HideTracker control the tracker overlay.
	ShowTracker(hit *series.TrackerHit)
	HideTracker()

	// ShowZoomRectangle and HideZoomRectangle control the
	// drag-to-zoom overlay.
	ShowZoomRectangle(r geometry.Rect)
	HideZoomRectangle()

	// Invalidate requests a redraw; see the invalidation package.
	Invalidate(updateData bool)
}

// Manipulator is the uniform gesture lifecycle. Started is called
// once, Delta zero or more times, Completed at most once. Teardown may
// drop a manipulator without calling Completed.
type Manipulator interface {
	Started(e Event)
	Delta(e Event)
	Completed(e Event)
}

// base carries the state every manipulator shares: the owning view
// (back-reference, not ownership), the gesture origin, and the axes
// captured when the gesture started.
type base struct {
	view   View
	origin geometry.ScreenPoint

	xAxis axis.Axis
	yAxis axis.Axis
}

// start records the origin and captures the axes under it.
func (b *base) start(e Event) {
	b.origin = e.Position
	b.xAxis, b.yAxis = b.view.AxesFromPoint(e.Position)
}

// axes returns the captured axes, or all axes when the gesture did not
// hit a specific pair.
func (b *base) axes() []axis.Axis {
	if b.xAxis == nil && b.yAxis == nil {
		return b.view.AllAxes()
	}
	out := make([]axis.Axis, 0, 2)
	if b.xAxis != nil {
		out = append(out, b.xAxis)
	}
	if b.yAxis != nil {
		out = append(out, b.yAxis)
	}
	return out
}

// anchorFor returns the data value under a screen point along ax's
// orientation.
func anchorFor(ax axis.Axis, p geometry.ScreenPoint) float64 {
	if ax.Orientation() == axis.Horizontal {
		return ax.InverseTransform(p.X)
	}
	return ax.InverseTransform(p.Y)
}
