// Package model implements the plot model: the axes and series being
// plotted, the update/render entry points the surface drives, and the
// single-owner attachment guard.
package model

import (
	"errors"
	"fmt"
	"math"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/luoshushi/oxyplot/internal/axis"
	"github.com/luoshushi/oxyplot/internal/geometry"
	"github.com/luoshushi/oxyplot/internal/render"
	"github.com/luoshushi/oxyplot/internal/series"
)

// ErrAttached is returned when binding a model that is already owned
// by a surface. Ownership violations are never silently resolved.
var ErrAttached = errors.New("plot model is already attached to a surface")

// SurfaceID identifies the surface owning a model. It is a weak
// handle: holding one does not keep any surface alive.
type SurfaceID string

// Padding around the plot area, in device pixels.
const (
	plotMarginLeft   = 8.0
	plotMarginRight  = 2.0
	plotMarginTop    = 1.0
	plotMarginBottom = 2.0
)

// titleInset shifts the title right of the plot frame's top-left
// corner so it overwrites the top border run, not the corner itself.
const titleInset = 4.0

// PlotModel is the mutable description of a chart.
//
// The model is rendered and mutated from the surface's render pass and
// input handlers; only attachment state carries its own lock.
type PlotModel struct {
	title string

	axes   []*axis.LinearAxis
	series []*series.LineSeries

	// plotArea is the region computed during the last layout.
	plotArea geometry.Rect

	// attachMu guards the owner back-reference.
	attachMu sync.Mutex
	owner    SurfaceID
}

// New creates a model with a default horizontal and vertical axis.
func New(title string) *PlotModel {
	return &PlotModel{
		title: title,
		axes: []*axis.LinearAxis{
			axis.NewLinear(axis.Horizontal, 0, 100),
			axis.NewLinear(axis.Vertical, 0, 1),
		},
	}
}

// NewEmpty creates a model with no axes or series.
func NewEmpty(title string) *PlotModel {
	return &PlotModel{title: title}
}

// Title returns the model title.
func (m *PlotModel) Title() string { return m.title }

// AddAxis adds an axis to the model.
func (m *PlotModel) AddAxis(a *axis.LinearAxis) {
	m.axes = append(m.axes, a)
}

// AddSeries adds a series to the model.
func (m *PlotModel) AddSeries(s *series.LineSeries) {
	m.series = append(m.series, s)
}

// Axes returns all axes.
func (m *PlotModel) Axes() []axis.Axis {
	out := make([]axis.Axis, len(m.axes))
	for i, a := range m.axes {
		out[i] = a
	}
	return out
}

// Series returns all series.
func (m *PlotModel) Series() []*series.LineSeries {
	return m.series
}

// PlotArea returns the plot region computed during the last layout.
func (m *PlotModel) PlotArea() geometry.Rect { return m.plotArea }

// --- Attachment guard (surface back-reference) ---

// Attach records the owning surface. It fails with ErrAttached if the
// model is already owned, including by the same surface.
func (m *PlotModel) Attach(id SurfaceID) error {
	m.attachMu.Lock()
	defer m.attachMu.Unlock()
	if m.owner != "" {
		return fmt.Errorf("attach to surface %s: %w (owner %s)", id, ErrAttached, m.owner)
	}
	m.owner = id
	return nil
}

// Detach clears the owner back-reference unconditionally.
func (m *PlotModel) Detach() {
	m.attachMu.Lock()
	defer m.attachMu.Unlock()
	m.owner = ""
}

// Owner returns the current owner, or "" when unattached.
func (m *PlotModel) Owner() SurfaceID {
	m.attachMu.Lock()
	defer m.attachMu.Unlock()
	return m.owner
}

// --- Update / render entry points ---

// Update recomputes model state before a render pass. When updateData
// is true all data-derived state is refreshed: axis default ranges are
// re-derived from the series extents, and axes that were never zoomed
// away from their defaults follow the data.
func (m *PlotModel) Update(updateData bool) {
	if !updateData {
		return
	}

	xMin, xMax := math.Inf(1), math.Inf(-1)
	yMin, yMax := math.Inf(1), math.Inf(-1)
	any := false
	for _, s := range m.series {
		sxMin, sxMax, syMin, syMax, ok := s.Extent()
		if !ok {
			continue
		}
		any = true
		xMin = math.Min(xMin, sxMin)
		xMax = math.Max(xMax, sxMax)
		yMin = math.Min(yMin, syMin)
		yMax = math.Max(yMax, syMax)
	}
	if !any {
		return
	}

	for _, a := range m.axes {
		if a.Orientation() == axis.Horizontal {
			lo, hi := padRange(xMin, xMax)
			a.SetDefaultRange(lo, hi)
		} else {
			lo, hi := padRange(yMin, yMax)
			a.SetDefaultRange(lo, hi)
		}
	}
}

// padRange widens a data extent by 10% so samples don't sit on the
// plot border, with a floor for flat data.
func padRange(lo, hi float64) (float64, float64) {
	pad := (hi - lo) * 0.1
	if pad < 1e-6 {
		pad = math.Max(math.Abs(hi)*0.1, 0.5)
	}
	min := lo - pad
	if lo >= 0 && min < 0 {
		min = 0
	}
	return min, hi + pad
}

// Layout assigns axis screen ranges for a surface of the given size
// and records the plot area. It is a no-op for zero-area surfaces.
func (m *PlotModel) Layout(width, height float64) {
	if width <= 0 || height <= 0 {
		return
	}
	area := geometry.NewRect(
		plotMarginLeft,
		plotMarginTop,
		width-plotMarginLeft-plotMarginRight,
		height-plotMarginTop-plotMarginBottom,
	)
	if !area.HasArea() {
		return
	}
	m.plotArea = area
	for _, a := range m.axes {
		if a.Orientation() == axis.Horizontal {
			a.SetScreenRange(area.Left, area.Right())
		} else {
			// Bottom pixel first so increasing values render upward.
			a.SetScreenRange(area.Bottom(), area.Top)
		}
	}
}

// Render lays out the axes for the context size and draws every series
// into rc. The engine contract is that rc arrives cleared.
func (m *PlotModel) Render(rc render.Context) {
	w, h := rc.Size()
	m.Layout(w, h)
	if !m.plotArea.HasArea() {
		return
	}

	xAxis, yAxis := m.defaultAxes()
	if xAxis == nil || yAxis == nil {
		return
	}

	rc.DrawRect(m.plotArea, lipgloss.NewStyle())
	if m.title != "" {
		rc.DrawText(
			geometry.NewScreenPoint(m.plotArea.Left+titleInset, 0),
			m.title,
			lipgloss.NewStyle(),
		)
	}

	for _, s := range m.series {
		lo, hi := s.VisibleRange(xAxis.ActualMin(), xAxis.ActualMax())
		if hi-lo < 1 {
			continue
		}
		pts := make([]geometry.ScreenPoint, 0, hi-lo)
		for i := lo; i < hi; i++ {
			p := s.PointAt(i)
			pts = append(pts, geometry.NewScreenPoint(
				xAxis.Transform(p.X),
				yAxis.Transform(p.Y),
			))
		}
		rc.DrawPolyline(pts, s.Style())
	}
}

// --- Hit testing ---

// AxesFromPoint returns the horizontal and vertical axis a screen
// point falls on. Outside the plot area both results are nil; an axis
// kind the model lacks is nil.
func (m *PlotModel) AxesFromPoint(p geometry.ScreenPoint) (x, y axis.Axis) {
	if !m.plotArea.HasArea() || !m.plotArea.Contains(p) {
		return nil, nil
	}
	hx, vy := m.defaultAxes()
	if hx == nil {
		return nil, vy
	}
	if vy == nil {
		return hx, nil
	}
	return hx, vy
}

// SeriesFromPoint returns the nearest series hit within limit pixels,
// or nil when nothing qualifies.
func (m *PlotModel) SeriesFromPoint(
	p geometry.ScreenPoint,
	limit float64,
	interpolate bool,
) *series.TrackerHit {
	xAxis, yAxis := m.defaultAxes()
	if xAxis == nil || yAxis == nil {
		return nil
	}

	var best *series.TrackerHit
	bestDist := math.Inf(1)
	for _, s := range m.series {
		hit := s.NearestPoint(xAxis, yAxis, p, limit, interpolate)
		if hit == nil {
			continue
		}
		if d := hit.Position.DistanceTo(p); d < bestDist {
			bestDist = d
			best = hit
		}
	}
	return best
}

// defaultAxes returns the first horizontal and first vertical axis.
func (m *PlotModel) defaultAxes() (x, y axis.Axis) {
	for _, a := range m.axes {
		if a.Orientation() == axis.Horizontal && x == nil {
			x = a
		}
		if a.Orientation() == axis.Vertical && y == nil {
			y = a
		}
	}
	return x, y
}
