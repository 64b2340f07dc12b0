// Package gesture maps physical input — button, modifiers, click
// count, wheel delta, key — to the manipulator that should handle it.
// The mapping is a stateless decision table; the only stateful piece
// is the double-click detector.
package gesture

import (
	"github.com/luoshushi/oxyplot/internal/manipulator"
)

// Button is a logical pointer button.
type Button int

const (
	ButtonNone Button = iota
	ButtonLeft
	ButtonMiddle
	ButtonRight
	ButtonX1
	ButtonX2
)

// Modifiers is the set of held modifier keys.
type Modifiers uint8

const (
	ModControl Modifiers = 1 << iota
	ModShift
	ModAlt
)

// Has reports whether all of m2's bits are held.
func (m Modifiers) Has(m2 Modifiers) bool { return m&m2 == m2 }

// Action identifies the manipulator variant a gesture resolves to.
type Action int

const (
	ActionNone Action = iota
	ActionPan
	ActionZoomRectangle
	ActionZoomStep
	ActionTracker
	ActionReset
)

// Binding is a resolved gesture: the action plus variant options.
type Binding struct {
	Action  Action
	Tracker manipulator.TrackerOptions
	Step    manipulator.ZoomStepOptions
}

// Zoom step magnitudes per input source.
const (
	// ButtonStep is the fixed step applied by the extra mouse buttons.
	ButtonStep = 0.12
	// WheelStep is the step per wheel notch.
	WheelStep = 0.12
)

// Resolve maps a button press to its binding. clicks is 1 or 2.
//
// The table:
//   - middle, control+right, or control+alt+left: zoom rectangle;
//     double-click resets instead.
//   - right alone or alt+left: pan.
//   - left alone: tracker (control disables snapping, shift restricts
//     to points).
//   - extra buttons: a fixed zoom step in (X1) or out (X2), control
//     accelerates.
func Resolve(btn Button, mods Modifiers, clicks int) Binding {
	switch {
	case btn == ButtonMiddle,
		btn == ButtonRight && mods.Has(ModControl),
		btn == ButtonLeft && mods.Has(ModControl|ModAlt):
		if clicks >= 2 {
			return Binding{Action: ActionReset}
		}
		return Binding{Action: ActionZoomRectangle}

	case btn == ButtonRight && mods == 0,
		btn == ButtonLeft && mods == ModAlt:
		return Binding{Action: ActionPan}

	case btn == ButtonLeft:
		return Binding{
			Action: ActionTracker,
			Tracker: manipulator.TrackerOptions{
				Snap:       !mods.Has(ModControl),
				PointsOnly: mods.Has(ModShift),
			},
		}

	case btn == ButtonX1:
		return Binding{
			Action: ActionZoomStep,
			Step: manipulator.ZoomStepOptions{
				Step: ButtonStep, Accelerate: mods.Has(ModControl),
			},
		}

	case btn == ButtonX2:
		return Binding{
			Action: ActionZoomStep,
			Step: manipulator.ZoomStepOptions{
				Step: -ButtonStep, Accelerate: mods.Has(ModControl),
			},
		}
	}

	return Binding{Action: ActionNone}
}

// ResolveWheel maps a wheel notch delta to a fire-and-forget zoom
// step. Positive deltas (wheel up) zoom in. The caller is responsible
// for checking whether wheel zoom is enabled.
func ResolveWheel(delta float64, mods Modifiers) manipulator.ZoomStepOptions {
	return manipulator.ZoomStepOptions{
		Step:       WheelStep * delta,
		Accelerate: mods.Has(ModControl),
	}
}
