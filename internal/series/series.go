// Package series holds plottable data series and the nearest-point hit
// testing the tracker manipulator relies on.
package series

import (
	"fmt"
	"math"
	"sort"

	"github.com/charmbracelet/lipgloss"
	"github.com/luoshushi/oxyplot/internal/axis"
	"github.com/luoshushi/oxyplot/internal/geometry"
)

// DataPoint is a sample in data space.
type DataPoint struct {
	X float64
	Y float64
}

// TrackerHit describes the series point nearest a query position.
type TrackerHit struct {
	Series   *LineSeries
	Point    DataPoint
	Index    int
	Position geometry.ScreenPoint
}

// Text returns the tracker overlay text for the hit.
func (h *TrackerHit) Text() string {
	title := h.Series.Title()
	if title == "" {
		title = "series"
	}
	return fmt.Sprintf("%s: (%g, %g)", title, h.Point.X, h.Point.Y)
}

// LineSeries is an X-sorted polyline.
type LineSeries struct {
	title string
	style lipgloss.Style

	// points are kept sorted by X so visibility and hit scans can
	// binary search.
	points []DataPoint

	xMin, xMax float64
	yMin, yMax float64
}

// NewLine creates an empty line series.
func NewLine(title string) *LineSeries {
	return &LineSeries{
		title: title,
		xMin:  math.Inf(1),
		xMax:  math.Inf(-1),
		yMin:  math.Inf(1),
		yMax:  math.Inf(-1),
	}
}

// Title returns the series title.
func (s *LineSeries) Title() string { return s.title }

// Style returns the stroke style used when rendering.
func (s *LineSeries) Style() lipgloss.Style { return s.style }

// SetStyle sets the stroke style used when rendering.
func (s *LineSeries) SetStyle(style lipgloss.Style) { s.style = style }

// Len returns the number of points.
func (s *LineSeries) Len() int { return len(s.points) }

// PointAt returns the i-th point.
func (s *LineSeries) PointAt(i int) DataPoint { return s.points[i] }

// AddPoint appends a sample, keeping the series sorted by X.
// Non-finite samples are dropped.
func (s *LineSeries) AddPoint(x, y float64) {
	if !isFinite(x) || !isFinite(y) {
		return
	}
	p := DataPoint{X: x, Y: y}
	if n := len(s.points); n > 0 && x < s.points[n-1].X {
		i := sort.Search(n, func(i int) bool { return s.points[i].X >= x })
		s.points = append(s.points, DataPoint{})
		copy(s.points[i+1:], s.points[i:])
		s.points[i] = p
	} else {
		s.points = append(s.points, p)
	}

	s.xMin = math.Min(s.xMin, x)
	s.xMax = math.Max(s.xMax, x)
	s.yMin = math.Min(s.yMin, y)
	s.yMax = math.Max(s.yMax, y)
}

// Clear removes all points.
func (s *LineSeries) Clear() {
	s.points = s.points[:0]
	s.xMin, s.xMax = math.Inf(1), math.Inf(-1)
	s.yMin, s.yMax = math.Inf(1), math.Inf(-1)
}

// Extent returns the data bounding box. ok is false for an empty series.
func (s *LineSeries) Extent() (xMin, xMax, yMin, yMax float64, ok bool) {
	if len(s.points) == 0 {
		return 0, 0, 0, 0, false
	}
	return s.xMin, s.xMax, s.yMin, s.yMax, true
}

// VisibleRange returns the index range [lo, hi) of points whose X lies
// within [from, to], widened by one point on each side so connecting
// segments reach the view edge.
func (s *LineSeries) VisibleRange(from, to float64) (lo, hi int) {
	lo = sort.Search(len(s.points), func(i int) bool { return s.points[i].X >= from })
	hi = sort.Search(len(s.points), func(i int) bool { return s.points[i].X > to })
	if lo > 0 {
		lo--
	}
	if hi < len(s.points) {
		hi++
	}
	return lo, hi
}

// NearestPoint finds the series point closest to sp on screen, within
// limit pixels. When interpolate is true the scan also considers the
// projection onto each segment, snapping to a position between samples.
// A nil result is a legitimate "no hit within limit", not an error.
func (s *LineSeries) NearestPoint(
	xAxis, yAxis axis.Axis,
	sp geometry.ScreenPoint,
	limit float64,
	interpolate bool,
) *TrackerHit {
	if len(s.points) == 0 || limit <= 0 {
		return nil
	}

	best := math.Inf(1)
	var hit *TrackerHit

	for i, p := range s.points {
		pos := geometry.NewScreenPoint(xAxis.Transform(p.X), yAxis.Transform(p.Y))
		if d := pos.DistanceTo(sp); d < best {
			best = d
			hit = &TrackerHit{Series: s, Point: p, Index: i, Position: pos}
		}
	}

	if interpolate {
		for i := 0; i+1 < len(s.points); i++ {
			p0 := geometry.NewScreenPoint(
				xAxis.Transform(s.points[i].X), yAxis.Transform(s.points[i].Y))
			p1 := geometry.NewScreenPoint(
				xAxis.Transform(s.points[i+1].X), yAxis.Transform(s.points[i+1].Y))
			proj, t := projectOnSegment(sp, p0, p1)
			if d := proj.DistanceTo(sp); d < best {
				best = d
				hit = &TrackerHit{
					Series: s,
					Point: DataPoint{
						X: s.points[i].X + t*(s.points[i+1].X-s.points[i].X),
						Y: s.points[i].Y + t*(s.points[i+1].Y-s.points[i].Y),
					},
					Index:    i,
					Position: proj,
				}
			}
		}
	}

	if hit == nil || best > limit {
		return nil
	}
	return hit
}

// projectOnSegment returns the point on segment p0-p1 closest to sp and
// the interpolation parameter t in [0, 1].
func projectOnSegment(sp, p0, p1 geometry.ScreenPoint) (geometry.ScreenPoint, float64) {
	dx := p1.X - p0.X
	dy := p1.Y - p0.Y
	lenSq := dx*dx + dy*dy
	if lenSq == 0 {
		return p0, 0
	}
	t := ((sp.X-p0.X)*dx + (sp.Y-p0.Y)*dy) / lenSq
	t = math.Max(0, math.Min(1, t))
	return geometry.NewScreenPoint(p0.X+t*dx, p0.Y+t*dy), t
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
