package gesture

// Key is a logical keyboard key relevant to chart navigation.
type Key int

const (
	KeyNone Key = iota
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyPlus
	KeyMinus
	KeyPageUp
	KeyPageDown
	KeyHome
)

// KeyKind classifies what a key command does.
type KeyKind int

const (
	KeyKindNone KeyKind = iota
	KeyKindPan
	KeyKindZoom
	KeyKindReset
)

// Keyboard navigation tuning. Control switches to fine steps.
const (
	// PanFraction is the fraction of the plot-area extent one arrow
	// press pans.
	PanFraction = 0.1
	// FineControlDivisor reduces pan and zoom steps while control is
	// held.
	FineControlDivisor = 5.0
	// KeyZoomFactor is the zoom applied by +/- and page up/down.
	KeyZoomFactor = 1.12
)

// KeyCommand is a resolved keyboard gesture. Pan commands carry the
// fraction of the plot area to move in each direction; zoom commands
// carry the factor for ZoomAtCenter on all axes.
type KeyCommand struct {
	Kind KeyKind

	// PanXFraction and PanYFraction are fractions of the plot-area
	// extent, positive meaning the view moves right/down.
	PanXFraction float64
	PanYFraction float64

	// ZoomFactor is > 1 to zoom in, < 1 to zoom out.
	ZoomFactor float64
}

// ResolveKey maps a key press to its command. Arrow keys pan all axes,
// +/page-up and -/page-down zoom all axes, Home resets. Control
// reduces pan and zoom steps by FineControlDivisor.
func ResolveKey(key Key, mods Modifiers) KeyCommand {
	fraction := PanFraction
	factor := KeyZoomFactor
	if mods.Has(ModControl) {
		fraction /= FineControlDivisor
		factor = 1 + (factor-1)/FineControlDivisor
	}

	switch key {
	case KeyLeft:
		return KeyCommand{Kind: KeyKindPan, PanXFraction: -fraction}
	case KeyRight:
		return KeyCommand{Kind: KeyKindPan, PanXFraction: fraction}
	case KeyUp:
		return KeyCommand{Kind: KeyKindPan, PanYFraction: -fraction}
	case KeyDown:
		return KeyCommand{Kind: KeyKindPan, PanYFraction: fraction}
	case KeyPlus, KeyPageUp:
		return KeyCommand{Kind: KeyKindZoom, ZoomFactor: factor}
	case KeyMinus, KeyPageDown:
		return KeyCommand{Kind: KeyKindZoom, ZoomFactor: 1 / factor}
	case KeyHome:
		return KeyCommand{Kind: KeyKindReset}
	}
	return KeyCommand{Kind: KeyKindNone}
}
