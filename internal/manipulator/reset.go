package manipulator

// Reset restores the captured axes (or all axes) to their default
// ranges. It fires once on Started.
type Reset struct {
	base
}

// NewReset creates a reset manipulator for the view.
func NewReset(view View) *Reset {
	return &Reset{base: base{view: view}}
}

func (r *Reset) Started(e Event) {
	r.start(e)
	for _, ax := range r.axes() {
		ax.Reset()
	}
	r.view.Invalidate(false)
}

func (r *Reset) Delta(e Event)     {}
func (r *Reset) Completed(e Event) {}
