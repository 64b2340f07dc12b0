package manipulator

import "github.com/luoshushi/oxyplot/internal/geometry"

// Pan drags the visible ranges with the pointer. Each Delta pans the
// captured axes by the motion since the previous event; axes filter
// the motion to their own orientation.
type Pan struct {
	base
	previous geometry.ScreenPoint
}

// NewPan creates a pan manipulator for the view.
func NewPan(view View) *Pan {
	return &Pan{base: base{view: view}}
}

func (p *Pan) Started(e Event) {
	p.start(e)
	p.previous = e.Position
}

func (p *Pan) Delta(e Event) {
	if e.Position == p.previous {
		return
	}
	for _, ax := range p.axes() {
		ax.PanPoints(p.previous, e.Position)
	}
	p.previous = e.Position
	p.view.Invalidate(false)
}

// Completed applies any final motion; there is no other terminal work.
func (p *Pan) Completed(e Event) {
	p.Delta(e)
}
