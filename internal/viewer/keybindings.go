package viewer

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/luoshushi/oxyplot/internal/gesture"
)

// defaultKeyMap holds the application-level bindings. Chart
// navigation keys are resolved separately by navigationKey.
func defaultKeyMap() map[string]func(*Model, tea.KeyMsg) (*Model, tea.Cmd) {
	return map[string]func(*Model, tea.KeyMsg) (*Model, tea.Cmd){
		"q":      (*Model).handleQuit,
		"ctrl+c": (*Model).handleQuit,
		"w":      (*Model).handleToggleWheelZoom,
	}
}

func (m *Model) handleQuit(tea.KeyMsg) (*Model, tea.Cmd) {
	m.quitting = true
	m.Close()
	return m, tea.Quit
}

func (m *Model) handleToggleWheelZoom(tea.KeyMsg) (*Model, tea.Cmd) {
	enabled := !m.cfg.WheelZoomEnabled()
	if err := m.cfg.SetWheelZoomEnabled(enabled); err != nil {
		m.logger.CaptureError(err)
		return m, nil
	}
	m.surface.SetWheelZoomEnabled(enabled)
	if enabled {
		m.statusMsg = "wheel zoom enabled"
	} else {
		m.statusMsg = "wheel zoom disabled"
	}
	return m, nil
}

// navigationKey maps a key message to a chart navigation key plus
// modifiers. A "ctrl+" prefix selects fine steps.
func navigationKey(msg tea.KeyMsg) (gesture.Key, gesture.Modifiers, bool) {
	name := msg.String()

	var mods gesture.Modifiers
	if strings.HasPrefix(name, "ctrl+") {
		mods |= gesture.ModControl
		name = strings.TrimPrefix(name, "ctrl+")
	}
	if strings.HasPrefix(name, "shift+") {
		mods |= gesture.ModShift
		name = strings.TrimPrefix(name, "shift+")
	}

	switch name {
	case "up":
		return gesture.KeyUp, mods, true
	case "down":
		return gesture.KeyDown, mods, true
	case "left":
		return gesture.KeyLeft, mods, true
	case "right":
		return gesture.KeyRight, mods, true
	case "+", "=":
		return gesture.KeyPlus, mods, true
	case "-":
		return gesture.KeyMinus, mods, true
	case "pgup":
		return gesture.KeyPageUp, mods, true
	case "pgdown":
		return gesture.KeyPageDown, mods, true
	case "home":
		return gesture.KeyHome, mods, true
	}
	return gesture.KeyNone, 0, false
}
