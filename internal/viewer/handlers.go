package viewer

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/luoshushi/oxyplot/internal/geometry"
	"github.com/luoshushi/oxyplot/internal/gesture"
)

// statusBarHeight is the single line below the canvas.
const statusBarHeight = 1

func (m *Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width = msg.Width
	m.height = msg.Height

	rows := msg.Height - statusBarHeight
	if rows < 1 {
		rows = 1
	}
	m.host.ctx.Resize(msg.Width, rows)
	m.surface.RequestInvalidate(false)
	return m, nil
}

func (m *Model) handleKeyMsg(msg tea.KeyMsg) (*Model, tea.Cmd) {
	if handler, ok := m.keyMap[msg.String()]; ok {
		return handler(m, msg)
	}

	if key, mods, ok := navigationKey(msg); ok {
		m.surface.KeyDown(key, mods)
	}
	return m, nil
}

// handleMouseMsg translates terminal mouse events into surface entry
// points. Cell coordinates map to the center of the cell's device
// pixels.
func (m *Model) handleMouseMsg(msg tea.MouseMsg) (*Model, tea.Cmd) {
	ev := tea.MouseEvent(msg)
	p := pixelPoint(ev.X, ev.Y)
	mods := mouseModifiers(ev)

	if ev.IsWheel() {
		delta := 0.0
		switch ev.Button {
		case tea.MouseButtonWheelUp:
			delta = 1
		case tea.MouseButtonWheelDown:
			delta = -1
		default:
			return m, nil
		}
		m.surface.Wheel(delta, mods, p)
		return m, nil
	}

	switch ev.Action {
	case tea.MouseActionPress:
		if btn, ok := pointerButton(ev.Button); ok {
			m.surface.PointerDown(btn, mods, p)
		}
	case tea.MouseActionMotion:
		m.surface.PointerMove(p)
	case tea.MouseActionRelease:
		m.surface.PointerUp(p)
	}
	return m, nil
}

// pixelPoint maps a terminal cell to the center of its device pixels.
func pixelPoint(x, y int) geometry.ScreenPoint {
	return geometry.NewScreenPoint(
		float64(x*2)+1,
		float64(y*4)+2,
	)
}

func pointerButton(b tea.MouseButton) (gesture.Button, bool) {
	switch b {
	case tea.MouseButtonLeft:
		return gesture.ButtonLeft, true
	case tea.MouseButtonMiddle:
		return gesture.ButtonMiddle, true
	case tea.MouseButtonRight:
		return gesture.ButtonRight, true
	case tea.MouseButtonBackward:
		return gesture.ButtonX1, true
	case tea.MouseButtonForward:
		return gesture.ButtonX2, true
	}
	return gesture.ButtonNone, false
}

func mouseModifiers(ev tea.MouseEvent) gesture.Modifiers {
	var mods gesture.Modifiers
	if ev.Ctrl {
		mods |= gesture.ModControl
	}
	if ev.Shift {
		mods |= gesture.ModShift
	}
	if ev.Alt {
		mods |= gesture.ModAlt
	}
	return mods
}
