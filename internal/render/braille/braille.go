// Package braille renders chart draw calls onto a terminal cell
// canvas, using braille patterns for sub-cell line resolution. Each
// terminal cell is 2 device pixels wide and 4 tall.
package braille

import (
	"math"

	"github.com/NimbleMarkets/ntcharts/canvas"
	"github.com/NimbleMarkets/ntcharts/canvas/graph"
	"github.com/charmbracelet/lipgloss"

	"github.com/luoshushi/oxyplot/internal/geometry"
)

// Device pixels per terminal cell.
const (
	CellPixelsX = 2
	CellPixelsY = 4
)

// Context draws onto an ntcharts canvas. It satisfies the drawing
// contract the plot model renders through; the hosting layer calls
// View to obtain the frame.
type Context struct {
	cols, rows int
	canvas     canvas.Model
}

// NewContext creates a context for a cols x rows cell canvas.
func NewContext(cols, rows int) *Context {
	return &Context{
		cols:   cols,
		rows:   rows,
		canvas: canvas.New(cols, rows),
	}
}

// Resize replaces the canvas with one of the new cell dimensions.
func (c *Context) Resize(cols, rows int) {
	c.cols = cols
	c.rows = rows
	c.canvas = canvas.New(cols, rows)
}

// Clear erases the canvas content.
func (c *Context) Clear() {
	c.canvas.Clear()
}

// Size returns the drawable area in device pixels.
func (c *Context) Size() (float64, float64) {
	return float64(c.cols * CellPixelsX), float64(c.rows * CellPixelsY)
}

// View returns the rendered frame.
func (c *Context) View() string {
	return c.canvas.View()
}

// DrawPolyline rasterizes connected segments into braille dots.
// Braille runes combine across calls, so overlapping polylines in
// different styles merge rather than overwrite.
func (c *Context) DrawPolyline(pts []geometry.ScreenPoint, style lipgloss.Style) {
	if len(pts) == 0 {
		return
	}

	w, h := c.Size()
	grid := graph.NewBrailleGrid(c.cols, c.rows, 0, w, 0, h)

	prev := c.gridPoint(grid, pts[0])
	grid.Set(prev)
	for _, p := range pts[1:] {
		cur := c.gridPoint(grid, p)
		rasterize(prev.X, prev.Y, cur.X, cur.Y, func(x, y int) {
			grid.Set(canvas.Point{X: x, Y: y})
		})
		prev = cur
	}

	graph.DrawBraillePatterns(&c.canvas,
		canvas.Point{X: 0, Y: 0},
		grid.BraillePatterns(),
		style)
}

// DrawRect draws the rectangle's border with box-drawing runes,
// snapped to cell boundaries.
func (c *Context) DrawRect(r geometry.Rect, style lipgloss.Style) {
	left := c.cellX(r.Left)
	right := c.cellX(r.Right())
	top := c.cellY(r.Top)
	bottom := c.cellY(r.Bottom())
	if right <= left || bottom <= top {
		return
	}

	for x := left + 1; x < right; x++ {
		c.canvas.SetRuneWithStyle(canvas.Point{X: x, Y: top}, '─', style)
		c.canvas.SetRuneWithStyle(canvas.Point{X: x, Y: bottom}, '─', style)
	}
	for y := top + 1; y < bottom; y++ {
		c.canvas.SetRuneWithStyle(canvas.Point{X: left, Y: y}, '│', style)
		c.canvas.SetRuneWithStyle(canvas.Point{X: right, Y: y}, '│', style)
	}
	c.canvas.SetRuneWithStyle(canvas.Point{X: left, Y: top}, '┌', style)
	c.canvas.SetRuneWithStyle(canvas.Point{X: right, Y: top}, '┐', style)
	c.canvas.SetRuneWithStyle(canvas.Point{X: left, Y: bottom}, '└', style)
	c.canvas.SetRuneWithStyle(canvas.Point{X: right, Y: bottom}, '┘', style)
}

// DrawText writes a string starting at the cell containing p.
func (c *Context) DrawText(p geometry.ScreenPoint, text string, style lipgloss.Style) {
	c.canvas.SetStringWithStyle(
		canvas.Point{X: c.cellX(p.X), Y: c.cellY(p.Y)},
		text,
		style,
	)
}

// gridPoint converts a top-down screen point to the grid's Cartesian
// coordinates.
func (c *Context) gridPoint(grid *graph.BrailleGrid, p geometry.ScreenPoint) canvas.Point {
	_, h := c.Size()
	return grid.GridPoint(canvas.Float64Point{X: p.X, Y: h - p.Y})
}

func (c *Context) cellX(px float64) int {
	return clampInt(int(math.Round(px/CellPixelsX)), 0, c.cols-1)
}

func (c *Context) cellY(px float64) int {
	return clampInt(int(math.Round(px/CellPixelsY)), 0, c.rows-1)
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// rasterize visits every integer position on the segment from
// (x0, y0) to (x1, y1), Bresenham-stepping along the major axis.
// Steep segments are walked transposed so each step advances exactly
// one position on the major axis.
func rasterize(x0, y0, x1, y1 int, set func(x, y int)) {
	steep := absInt(y1-y0) > absInt(x1-x0)
	if steep {
		x0, y0 = y0, x0
		x1, y1 = y1, x1
	}
	if x0 > x1 {
		x0, x1 = x1, x0
		y0, y1 = y1, y0
	}

	dx := x1 - x0
	dy := absInt(y1 - y0)
	yStep := -1
	if y0 < y1 {
		yStep = 1
	}

	residual := dx / 2
	y := y0
	for x := x0; x <= x1; x++ {
		if steep {
			set(y, x)
		} else {
			set(x, y)
		}
		residual -= dy
		if residual < 0 {
			y += yStep
			residual += dx
		}
	}
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
