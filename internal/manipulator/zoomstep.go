package manipulator

// ZoomStepOptions configures a single-shot zoom step.
type ZoomStepOptions struct {
	// Step is the signed zoom step: the applied factor is 1 + Step,
	// so positive steps zoom in and negative steps zoom out.
	Step float64

	// Accelerate multiplies the step, for modified wheel or button
	// input.
	Accelerate bool
}

// AccelerationFactor is how much Accelerate scales a zoom step.
const AccelerationFactor = 5.0

// ZoomStep applies one zoom increment anchored at the event position.
// It fires on Started; Delta and Completed are no-ops, which makes it
// suitable for fire-and-forget wheel gestures.
type ZoomStep struct {
	base
	opts ZoomStepOptions
}

// NewZoomStep creates a zoom-step manipulator for the view.
func NewZoomStep(view View, opts ZoomStepOptions) *ZoomStep {
	return &ZoomStep{base: base{view: view}, opts: opts}
}

func (z *ZoomStep) Started(e Event) {
	z.start(e)

	step := z.opts.Step
	if z.opts.Accelerate {
		step *= AccelerationFactor
	}
	factor := 1 + step
	if factor <= 0 {
		return
	}

	for _, ax := range z.axes() {
		ax.ZoomAt(factor, anchorFor(ax, e.Position))
	}
	z.view.Invalidate(false)
}

func (z *ZoomStep) Delta(e Event)     {}
func (z *ZoomStep) Completed(e Event) {}
