package manipulator

import "github.com/luoshushi/oxyplot/internal/axis"

// Touch fuses a pan manipulator and a pinch-zoom component over the
// same gesture: every Delta applies the centroid translation and the
// scale change in one coordinated update, so a two-finger drag-pinch
// both pans and zooms without intermediate redraws.
type Touch struct {
	pan  *Pan
	zoom *touchZoom
}

// NewTouch creates the fused touch manipulator for the view.
func NewTouch(view View) *Touch {
	return &Touch{
		pan:  NewPan(view),
		zoom: &touchZoom{base: base{view: view}},
	}
}

func (t *Touch) Started(e Event) {
	t.pan.Started(e)
	t.zoom.Started(e)
}

func (t *Touch) Delta(e Event) {
	// Pan first so the zoom anchor tracks the moved centroid.
	t.pan.Delta(e)
	t.zoom.Delta(e)
}

func (t *Touch) Completed(e Event) {
	t.pan.Completed(e)
	t.zoom.Completed(e)
}

// touchZoom applies per-event pinch scale deltas around the centroid.
type touchZoom struct {
	base
}

func (z *touchZoom) Started(e Event) {
	z.start(e)
}

func (z *touchZoom) Delta(e Event) {
	if e.ScaleX == 0 && e.ScaleY == 0 {
		return
	}
	changed := false
	for _, ax := range z.axes() {
		factor := e.ScaleX
		if ax.Orientation() == axis.Vertical {
			factor = e.ScaleY
		}
		if factor <= 0 || factor == 1 {
			continue
		}
		ax.ZoomAt(factor, anchorFor(ax, e.Position))
		changed = true
	}
	if changed {
		z.view.Invalidate(false)
	}
}

func (z *touchZoom) Completed(e Event) {}
