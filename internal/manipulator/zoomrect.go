package manipulator

import (
	"math"

	"github.com/luoshushi/oxyplot/internal/axis"
	"github.com/luoshushi/oxyplot/internal/geometry"
)

// MinRectExtent is the smallest screen extent, in pixels, a zoom
// rectangle must span along an axis for that axis to be zoomed.
// A rectangle collapsed below this on one axis skips that axis
// instead of attempting a degenerate zoom.
const MinRectExtent = 1e-6

// ZoomRectangle is the drag-to-zoom gesture: an overlay rectangle
// grows from the origin to the pointer, and on completion the spanned
// axes zoom to the rectangle's bounds.
type ZoomRectangle struct {
	base
	rect geometry.Rect
}

// NewZoomRectangle creates a zoom-rectangle manipulator for the view.
func NewZoomRectangle(view View) *ZoomRectangle {
	return &ZoomRectangle{base: base{view: view}}
}

func (z *ZoomRectangle) Started(e Event) {
	z.start(e)
	z.rect = geometry.NewRect(e.Position.X, e.Position.Y, 0, 0)
	z.view.ShowZoomRectangle(z.rect)
}

func (z *ZoomRectangle) Delta(e Event) {
	z.rect = geometry.FromPoints(z.origin, e.Position)
	z.view.ShowZoomRectangle(z.rect)
	z.view.Invalidate(false)
}

func (z *ZoomRectangle) Completed(e Event) {
	z.rect = geometry.FromPoints(z.origin, e.Position)
	z.view.HideZoomRectangle()

	for _, ax := range z.axes() {
		zoomAxisToRect(ax, z.rect)
	}
	z.view.Invalidate(false)
}

// zoomAxisToRect zooms one axis to the rectangle's extent along its
// orientation, skipping collapsed extents.
func zoomAxisToRect(ax axis.Axis, r geometry.Rect) {
	var lo, hi float64
	if ax.Orientation() == axis.Horizontal {
		if r.Width < MinRectExtent {
			return
		}
		lo = ax.InverseTransform(r.Left)
		hi = ax.InverseTransform(r.Right())
	} else {
		if r.Height < MinRectExtent {
			return
		}
		lo = ax.InverseTransform(r.Bottom())
		hi = ax.InverseTransform(r.Top)
	}
	ax.Zoom(math.Min(lo, hi), math.Max(lo, hi))
}
