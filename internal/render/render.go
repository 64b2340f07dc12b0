// Package render defines the drawing-context contract the plot model
// renders into. The engine never rasterizes anything itself; a hosting
// layer supplies a Context implementation (the braille subpackage is
// the terminal one).
package render

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/luoshushi/oxyplot/internal/geometry"
)

// Context receives drawing primitives for one render pass. A fresh,
// cleared context is handed to the model on every pass.
type Context interface {
	// Size returns the drawable area in device pixels.
	Size() (width, height float64)

	// DrawPolyline strokes connected line segments through the points.
	DrawPolyline(points []geometry.ScreenPoint, style lipgloss.Style)

	// DrawRect strokes a rectangle outline.
	DrawRect(r geometry.Rect, style lipgloss.Style)

	// DrawText places a text label with its top-left corner at p.
	DrawText(p geometry.ScreenPoint, text string, style lipgloss.Style)
}
