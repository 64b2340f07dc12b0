// Package surface implements the hosting-side controller of a chart:
// it owns the invalidation flag, the model binding, the update/render
// cycle, and the translation of pointer, wheel, touch and keyboard
// input into manipulators.
//
// Locking: the invalidation flag, the model binding and the render
// pass are guarded independently. The flag lock is never held while a
// pass runs, so invalidations recorded during a pass are served by the
// next tick. Input entry points and manipulators must be driven from a
// single input thread; everything else tolerates concurrent callers.
package surface

import (
	"math"
	"sync"

	"github.com/google/uuid"
	"github.com/luoshushi/oxyplot/internal/axis"
	"github.com/luoshushi/oxyplot/internal/geometry"
	"github.com/luoshushi/oxyplot/internal/gesture"
	"github.com/luoshushi/oxyplot/internal/invalidation"
	"github.com/luoshushi/oxyplot/internal/manipulator"
	"github.com/luoshushi/oxyplot/internal/model"
	"github.com/luoshushi/oxyplot/internal/observability"
	"github.com/luoshushi/oxyplot/internal/render"
	"github.com/luoshushi/oxyplot/internal/series"
)

// Host is the narrow contract the hosting layer provides: a drawing
// surface, its size, and the overlay feedback widgets.
type Host interface {
	// Size returns the rendered width and height in device pixels.
	// Either may be zero before layout completes.
	Size() (width, height float64)

	// BeginDraw clears the previous visual content and returns a
	// fresh drawing context bound to the surface.
	BeginDraw() render.Context

	// Overlay feedback, called by manipulators through the surface.
	ShowTracker(hit *series.TrackerHit)
	HideTracker()
	ShowZoomRectangle(r geometry.Rect)
	HideZoomRectangle()
}

// Options tunes input behavior. The zero value selects defaults.
type Options struct {
	// WheelZoomEnabled gates wheel-driven zoom steps.
	WheelZoomEnabled bool

	// TrackerHitLimit is the tracker hit-test distance in pixels;
	// zero selects manipulator.DefaultHitLimit.
	TrackerHitLimit float64

	// DoubleClick configures click-count detection; nil selects the
	// defaults.
	DoubleClick *gesture.DoubleClickDetector
}

// Surface drives one chart: at most one bound model, one pending
// invalidation, one render pass in flight, one active pointer gesture.
type Surface struct {
	id   model.SurfaceID
	host Host
	opts Options

	logger *observability.CoreLogger

	// flag has its own internal lock; it is never held during a pass.
	flag invalidation.Flag

	// modelMu guards the binding and the lazy internal model.
	modelMu       sync.Mutex
	boundModel    *model.PlotModel
	internalModel *model.PlotModel

	// renderMu excludes overlapping update/render passes.
	renderMu sync.Mutex

	// Input-thread state. Manipulators are not thread-safe and are
	// only touched from the thread delivering input events.
	current     manipulator.Manipulator
	touch       *manipulator.Touch
	doubleClick *gesture.DoubleClickDetector
}

// New creates a surface bound to a host.
func New(host Host, opts Options, logger *observability.CoreLogger) *Surface {
	if logger == nil {
		logger = observability.NewNoOpLogger()
	}
	dc := opts.DoubleClick
	if dc == nil {
		dc = gesture.NewDoubleClickDetector(0, 0)
	}
	return &Surface{
		id:          model.SurfaceID(uuid.NewString()),
		host:        host,
		opts:        opts,
		logger:      logger,
		doubleClick: dc,
	}
}

// SetWheelZoomEnabled toggles wheel-driven zoom at runtime. Like the
// input entry points it must be called from the input thread.
func (s *Surface) SetWheelZoomEnabled(enabled bool) {
	s.opts.WheelZoomEnabled = enabled
}

// WheelZoomEnabled reports whether wheel-driven zoom is active.
func (s *Surface) WheelZoomEnabled() bool {
	return s.opts.WheelZoomEnabled
}

// ID returns the surface's identity used for model back-references.
func (s *Surface) ID() model.SurfaceID { return s.id }

// --- Invalidation & render cycle ---

// RequestInvalidate marks the visual state stale. Non-blocking and
// safe from any goroutine. updateData additionally refreshes all
// data-derived state on the next pass.
func (s *Surface) RequestInvalidate(updateData bool) {
	s.flag.Request(updateData)
}

// InvalidationPending reports whether a pass is wanted, without
// consuming the request. Hosting layers use it to rate-limit ticks.
func (s *Surface) InvalidationPending() bool {
	invalidated, _ := s.flag.Peek()
	return invalidated
}

// RenderTick is the per-frame entry point, called by the hosting
// layer's tick source. It drains the invalidation flag and performs at
// most one update/render pass. A tick on a zero-area surface drops the
// pending work and leaves the flag clean; callers re-request once
// layout completes.
func (s *Surface) RenderTick() {
	invalidated, updateData := s.flag.Consume()
	if !invalidated {
		return
	}

	w, h := s.host.Size()
	if w <= 0 || h <= 0 {
		s.logger.Debug("surface: dropping render pass on zero-area surface")
		return
	}

	s.renderMu.Lock()
	defer s.renderMu.Unlock()

	m := s.activeModel()
	m.Update(updateData)
	rc := s.host.BeginDraw()
	m.Render(rc)
}

// --- Model binding ---

// SetModel rebinds the surface's model. Any previously bound model is
// detached unconditionally. Binding a model that is already owned
// (by any surface, including this one) fails with model.ErrAttached;
// on failure the surface is left with no bound model. A successful
// bind requests a data-refreshing invalidation.
func (s *Surface) SetModel(m *model.PlotModel) error {
	s.modelMu.Lock()
	defer s.modelMu.Unlock()

	if s.boundModel != nil {
		s.boundModel.Detach()
		s.boundModel = nil
	}
	if m == nil {
		return nil
	}
	if err := m.Attach(s.id); err != nil {
		return err
	}
	s.boundModel = m
	s.RequestInvalidate(true)
	return nil
}

// Model returns the explicitly bound model, or nil.
func (s *Surface) Model() *model.PlotModel {
	s.modelMu.Lock()
	defer s.modelMu.Unlock()
	return s.boundModel
}

// activeModel resolves the model a pass renders: the bound model, or
// a lazily constructed internal one.
func (s *Surface) activeModel() *model.PlotModel {
	s.modelMu.Lock()
	defer s.modelMu.Unlock()
	if s.boundModel != nil {
		return s.boundModel
	}
	if s.internalModel == nil {
		s.internalModel = model.NewEmpty("")
	}
	return s.internalModel
}

// Close releases the surface's gesture and model references. Held
// manipulators are dropped without their Completed logic, and a bound
// model is detached so it can be reused elsewhere.
func (s *Surface) Close() {
	s.current = nil
	s.touch = nil

	s.modelMu.Lock()
	defer s.modelMu.Unlock()
	if s.boundModel != nil {
		s.boundModel.Detach()
		s.boundModel = nil
	}
}

// --- manipulator.View ---

// AxesFromPoint returns the axes under a screen point. With no bound
// model (and an unrendered internal model) both are nil.
func (s *Surface) AxesFromPoint(p geometry.ScreenPoint) (axis.Axis, axis.Axis) {
	return s.activeModel().AxesFromPoint(p)
}

// AllAxes returns every axis of the active model.
func (s *Surface) AllAxes() []axis.Axis {
	return s.activeModel().Axes()
}

// SeriesFromPoint returns the nearest series hit within limit pixels,
// or nil for no hit or no bound model.
func (s *Surface) SeriesFromPoint(
	p geometry.ScreenPoint, limit float64, interpolate bool,
) *series.TrackerHit {
	return s.activeModel().SeriesFromPoint(p, limit, interpolate)
}

func (s *Surface) ShowTracker(hit *series.TrackerHit) { s.host.ShowTracker(hit) }
func (s *Surface) HideTracker()                       { s.host.HideTracker() }

func (s *Surface) ShowZoomRectangle(r geometry.Rect) { s.host.ShowZoomRectangle(r) }
func (s *Surface) HideZoomRectangle()                { s.host.HideZoomRectangle() }

// Invalidate implements manipulator.View.
func (s *Surface) Invalidate(updateData bool) { s.RequestInvalidate(updateData) }

// --- Programmatic equivalents of gesture outcomes ---

// Pan pans one axis by the motion between two screen points and
// requests a non-data invalidation.
func (s *Surface) Pan(ax axis.Axis, from, to geometry.ScreenPoint) {
	ax.PanPoints(from, to)
	s.RequestInvalidate(false)
}

// Zoom replaces one axis's visible range and requests a non-data
// invalidation.
func (s *Surface) Zoom(ax axis.Axis, min, max float64) {
	ax.Zoom(min, max)
	s.RequestInvalidate(false)
}

// ZoomAt rescales one axis around anchor; pass NaN to anchor at the
// screen center. Requests a non-data invalidation.
func (s *Surface) ZoomAt(ax axis.Axis, factor, anchor float64) {
	if math.IsNaN(anchor) {
		ax.ZoomAtCenter(factor)
	} else {
		ax.ZoomAt(factor, anchor)
	}
	s.RequestInvalidate(false)
}

// Reset restores one axis to its default range and requests a
// non-data invalidation.
func (s *Surface) Reset(ax axis.Axis) {
	ax.Reset()
	s.RequestInvalidate(false)
}

// ResetAllAxes resets every axis of the active model.
func (s *Surface) ResetAllAxes() {
	for _, ax := range s.AllAxes() {
		ax.Reset()
	}
	s.RequestInvalidate(false)
}

// ZoomAllAxes zooms every axis of the active model around its screen
// center. With no model this is a no-op beyond the invalidation.
func (s *Surface) ZoomAllAxes(factor float64) {
	for _, ax := range s.AllAxes() {
		ax.ZoomAtCenter(factor)
	}
	s.RequestInvalidate(false)
}
