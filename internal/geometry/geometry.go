// Package geometry provides the screen-space value types used by the
// chart engine: points, vectors and rectangles in device pixels.
package geometry

import "math"

// ScreenPoint is an immutable 2D coordinate in device pixels.
type ScreenPoint struct {
	X float64
	Y float64
}

// NewScreenPoint creates a screen point at (x, y).
func NewScreenPoint(x, y float64) ScreenPoint {
	return ScreenPoint{X: x, Y: y}
}

// IsValid reports whether both coordinates are finite.
func (p ScreenPoint) IsValid() bool {
	return isFinite(p.X) && isFinite(p.Y)
}

// DistanceTo returns the Euclidean distance to another point.
func (p ScreenPoint) DistanceTo(other ScreenPoint) float64 {
	dx := other.X - p.X
	dy := other.Y - p.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// Minus returns the vector from other to p.
func (p ScreenPoint) Minus(other ScreenPoint) ScreenVector {
	return ScreenVector{DX: p.X - other.X, DY: p.Y - other.Y}
}

// Plus returns the point translated by v.
func (p ScreenPoint) Plus(v ScreenVector) ScreenPoint {
	return ScreenPoint{X: p.X + v.DX, Y: p.Y + v.DY}
}

// ScreenVector is a 2D displacement in device pixels.
type ScreenVector struct {
	DX float64
	DY float64
}

// Length returns the vector's Euclidean length.
func (v ScreenVector) Length() float64 {
	return math.Sqrt(v.DX*v.DX + v.DY*v.DY)
}

// Rect is a screen-space rectangle. Width and Height are never
// negative for rectangles built through FromPoints.
type Rect struct {
	Left   float64
	Top    float64
	Width  float64
	Height float64
}

// NewRect creates a rectangle from its left/top corner and size.
// Negative sizes are clamped to zero.
func NewRect(left, top, width, height float64) Rect {
	return Rect{Left: left, Top: top, Width: max(width, 0), Height: max(height, 0)}
}

// FromPoints returns the normalized rectangle spanning p0 and p1.
func FromPoints(p0, p1 ScreenPoint) Rect {
	return Rect{
		Left:   math.Min(p0.X, p1.X),
		Top:    math.Min(p0.Y, p1.Y),
		Width:  math.Abs(p1.X - p0.X),
		Height: math.Abs(p1.Y - p0.Y),
	}
}

// Right returns the right edge coordinate.
func (r Rect) Right() float64 { return r.Left + r.Width }

// Bottom returns the bottom edge coordinate.
func (r Rect) Bottom() float64 { return r.Top + r.Height }

// Center returns the center point of the rectangle.
func (r Rect) Center() ScreenPoint {
	return ScreenPoint{X: r.Left + r.Width/2, Y: r.Top + r.Height/2}
}

// Contains reports whether p lies inside the rectangle (edges included).
func (r Rect) Contains(p ScreenPoint) bool {
	return p.X >= r.Left && p.X <= r.Right() && p.Y >= r.Top && p.Y <= r.Bottom()
}

// HasArea reports whether the rectangle has a strictly positive area.
func (r Rect) HasArea() bool {
	return r.Width > 0 && r.Height > 0
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
