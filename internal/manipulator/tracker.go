package manipulator

// TrackerOptions configures the tracker gesture.
type TrackerOptions struct {
	// Snap snaps the tracker to the nearest sample; without it the
	// tracker follows the cursor along series segments.
	Snap bool

	// PointsOnly restricts hits to actual samples even when Snap is
	// off.
	PointsOnly bool

	// HitLimit is the hit-test distance limit in pixels.
	HitLimit float64
}

// DefaultHitLimit is the tracker hit-test distance when the caller
// does not supply one.
const DefaultHitLimit = 20.0

// Tracker shows the data values nearest the cursor while the gesture
// is held. "No series within the limit" is a legitimate negative
// result that hides the overlay, never an error.
type Tracker struct {
	base
	opts TrackerOptions
}

// NewTracker creates a tracker manipulator for the view.
func NewTracker(view View, opts TrackerOptions) *Tracker {
	if opts.HitLimit <= 0 {
		opts.HitLimit = DefaultHitLimit
	}
	return &Tracker{base: base{view: view}, opts: opts}
}

func (t *Tracker) Started(e Event) {
	t.start(e)
	t.update(e)
}

func (t *Tracker) Delta(e Event) {
	t.update(e)
}

func (t *Tracker) Completed(e Event) {
	t.view.HideTracker()
}

func (t *Tracker) update(e Event) {
	interpolate := !t.opts.Snap && !t.opts.PointsOnly
	hit := t.view.SeriesFromPoint(e.Position, t.opts.HitLimit, interpolate)
	if hit == nil {
		t.view.HideTracker()
		return
	}
	t.view.ShowTracker(hit)
}
