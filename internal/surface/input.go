package surface

import (
	"github.com/luoshushi/oxyplot/internal/axis"
	"github.com/luoshushi/oxyplot/internal/geometry"
	"github.com/luoshushi/oxyplot/internal/gesture"
	"github.com/luoshushi/oxyplot/internal/manipulator"
)

// Input entry points. All of these must be called from the single
// input thread; the active manipulator is deliberately unsynchronized.

// PointerDown starts the manipulator the pressed button resolves to.
// It reports whether the event was consumed. While a gesture is in
// flight further presses are refused so the active manipulator keeps
// exclusive use of its captured axes.
func (s *Surface) PointerDown(
	btn gesture.Button, mods gesture.Modifiers, p geometry.ScreenPoint,
) bool {
	if s.current != nil {
		return false
	}

	clicks := s.doubleClick.Click(p)
	binding := gesture.Resolve(btn, mods, clicks)
	e := manipulator.Event{Position: p}

	switch binding.Action {
	case gesture.ActionPan:
		s.current = manipulator.NewPan(s)
	case gesture.ActionZoomRectangle:
		s.current = manipulator.NewZoomRectangle(s)
	case gesture.ActionTracker:
		opts := binding.Tracker
		opts.HitLimit = s.opts.TrackerHitLimit
		s.current = manipulator.NewTracker(s, opts)
	case gesture.ActionZoomStep:
		// Applies its full effect on Started; nothing to track.
		manipulator.NewZoomStep(s, binding.Step).Started(e)
		return true
	case gesture.ActionReset:
		manipulator.NewReset(s).Started(e)
		return true
	default:
		return false
	}

	s.current.Started(e)
	return true
}

// PointerMove forwards motion to the active manipulator, if any.
func (s *Surface) PointerMove(p geometry.ScreenPoint) bool {
	if s.current == nil {
		return false
	}
	s.current.Delta(manipulator.Event{Position: p})
	return true
}

// PointerUp completes and releases the active manipulator, if any.
func (s *Surface) PointerUp(p geometry.ScreenPoint) bool {
	if s.current == nil {
		return false
	}
	s.current.Completed(manipulator.Event{Position: p})
	s.current = nil
	return true
}

// Wheel applies a fire-and-forget zoom step anchored under the
// pointer. Disabled surfaces ignore the event.
func (s *Surface) Wheel(
	delta float64, mods gesture.Modifiers, p geometry.ScreenPoint,
) bool {
	if !s.opts.WheelZoomEnabled || delta == 0 {
		return false
	}
	step := manipulator.NewZoomStep(s, gesture.ResolveWheel(delta, mods))
	step.Started(manipulator.Event{Position: p})
	return true
}

// TouchStarted begins a fused pan/pinch session at the touch centroid.
// A second session while one is in flight is refused.
func (s *Surface) TouchStarted(p geometry.ScreenPoint) bool {
	if s.touch != nil {
		return false
	}
	s.touch = manipulator.NewTouch(s)
	s.touch.Started(manipulator.Event{Position: p})
	return true
}

// TouchDelta applies one step of centroid translation and pinch scale.
func (s *Surface) TouchDelta(e manipulator.Event) bool {
	if s.touch == nil {
		return false
	}
	s.touch.Delta(e)
	return true
}

// TouchCompleted ends the touch session.
func (s *Surface) TouchCompleted(p geometry.ScreenPoint) bool {
	if s.touch == nil {
		return false
	}
	s.touch.Completed(manipulator.Event{Position: p})
	s.touch = nil
	return true
}

// KeyDown applies keyboard navigation: arrows pan all axes by a
// fraction of the plot area, +/- and page up/down zoom all axes at
// their centers, Home resets. Control selects fine steps.
func (s *Surface) KeyDown(key gesture.Key, mods gesture.Modifiers) bool {
	cmd := gesture.ResolveKey(key, mods)
	switch cmd.Kind {
	case gesture.KeyKindPan:
		area := s.activeModel().PlotArea()
		if !area.HasArea() {
			return false
		}
		dx := area.Width * cmd.PanXFraction
		dy := area.Height * cmd.PanYFraction
		for _, ax := range s.AllAxes() {
			if ax.Orientation() == axis.Horizontal {
				ax.Pan(-dx)
			} else {
				ax.Pan(-dy)
			}
		}
		s.RequestInvalidate(false)
		return true

	case gesture.KeyKindZoom:
		s.ZoomAllAxes(cmd.ZoomFactor)
		return true

	case gesture.KeyKindReset:
		s.ResetAllAxes()
		return true
	}
	return false
}
