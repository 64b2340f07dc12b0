package surface_test

import (
	"testing"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/luoshushi/oxyplot/internal/geometry"
	"github.com/luoshushi/oxyplot/internal/gesture"
	"github.com/luoshushi/oxyplot/internal/manipulator"
	"github.com/luoshushi/oxyplot/internal/model"
	"github.com/luoshushi/oxyplot/internal/render"
	"github.com/luoshushi/oxyplot/internal/series"
	"github.com/luoshushi/oxyplot/internal/surface"
)

// nullContext satisfies render.Context without recording anything.
type nullContext struct {
	w, h float64
}

func (c *nullContext) Size() (float64, float64)                              { return c.w, c.h }
func (c *nullContext) DrawPolyline([]geometry.ScreenPoint, lipgloss.Style)   {}
func (c *nullContext) DrawRect(geometry.Rect, lipgloss.Style)                {}
func (c *nullContext) DrawText(geometry.ScreenPoint, string, lipgloss.Style) {}

// fakeHost is a host with a settable size that counts render passes
// and records overlay calls.
type fakeHost struct {
	width, height float64

	draws int

	tracker       *series.TrackerHit
	trackerHidden int
	zoomRect      *geometry.Rect
	rectHidden    int
}

func (h *fakeHost) Size() (float64, float64) { return h.width, h.height }

func (h *fakeHost) BeginDraw() render.Context {
	h.draws++
	return &nullContext{w: h.width, h: h.height}
}

func (h *fakeHost) ShowTracker(hit *series.TrackerHit) { h.tracker = hit }
func (h *fakeHost) HideTracker()                       { h.tracker = nil; h.trackerHidden++ }

func (h *fakeHost) ShowZoomRectangle(r geometry.Rect) { h.zoomRect = &r }
func (h *fakeHost) HideZoomRectangle()                { h.zoomRect = nil; h.rectHidden++ }

// newTestSurface builds a 110x103 surface whose plot area is a
// 100x100 square at (8, 1), with a model whose x axis maps [0,100]
// one-to-one onto pixels. A first tick runs so the axes are laid out.
func newTestSurface(t *testing.T, opts surface.Options) (*surface.Surface, *fakeHost, *model.PlotModel) {
	t.Helper()
	host := &fakeHost{width: 110, height: 103}
	s := surface.New(host, opts, nil)
	m := model.New("test")
	require.NoError(t, s.SetModel(m))
	s.RenderTick()
	require.Equal(t, 1, host.draws)
	return s, host, m
}

func TestRenderTickZeroAreaLeavesClean(t *testing.T) {
	host := &fakeHost{}
	s := surface.New(host, surface.Options{}, nil)

	s.RequestInvalidate(true)
	s.RenderTick()
	assert.Zero(t, host.draws, "zero-area surface must not render")

	// The pending work was dropped, not deferred: a later tick with a
	// real size stays idle until a new request arrives.
	host.width, host.height = 110, 103
	s.RenderTick()
	assert.Zero(t, host.draws)

	s.RequestInvalidate(false)
	s.RenderTick()
	assert.Equal(t, 1, host.draws)
}

func TestRenderTickDrainsFlagOnce(t *testing.T) {
	s, host, _ := newTestSurface(t, surface.Options{})

	s.RequestInvalidate(false)
	s.RenderTick()
	s.RenderTick()
	assert.Equal(t, 2, host.draws, "second tick must be a no-op")
}

func TestRenderTickIdleWithoutRequest(t *testing.T) {
	_, host, _ := newTestSurface(t, surface.Options{})
	host.draws = 0

	s := surface.New(host, surface.Options{}, nil)
	s.RenderTick()
	assert.Zero(t, host.draws)
}

func TestSetModelOwnership(t *testing.T) {
	hostA := &fakeHost{width: 110, height: 103}
	hostB := &fakeHost{width: 110, height: 103}
	a := surface.New(hostA, surface.Options{}, nil)
	b := surface.New(hostB, surface.Options{}, nil)

	m := model.New("shared")
	require.NoError(t, a.SetModel(m))
	assert.Equal(t, a.ID(), m.Owner())

	err := b.SetModel(m)
	require.ErrorIs(t, err, model.ErrAttached)
	assert.Nil(t, b.Model(), "failed bind must leave no binding")
	assert.Equal(t, a.ID(), m.Owner(), "failed bind must not reparent")

	// Releasing the first binding makes the model bindable again.
	require.NoError(t, a.SetModel(nil))
	assert.Empty(t, m.Owner())
	require.NoError(t, b.SetModel(m))
	assert.Equal(t, b.ID(), m.Owner())

	// The successful bind requested a data-refreshing pass.
	b.RenderTick()
	assert.Equal(t, 1, hostB.draws)
}

func TestSetModelRefreshesData(t *testing.T) {
	s, _, m := newTestSurface(t, surface.Options{})

	ln := series.NewLine("v")
	ln.AddPoint(0, 0)
	ln.AddPoint(10, 5)
	m.AddSeries(ln)

	s.RequestInvalidate(true)
	s.RenderTick()

	// The pass derived default ranges from the series extent; Reset
	// now lands on the padded data range instead of the construction
	// range.
	x, _ := m.AxesFromPoint(geometry.ScreenPoint{X: 58, Y: 51})
	require.NotNil(t, x)
	x.Reset()
	assert.InDelta(t, 0, x.ActualMin(), 1e-9)
	assert.InDelta(t, 11, x.ActualMax(), 1e-9)
}

func TestPointerPanGesture(t *testing.T) {
	s, _, m := newTestSurface(t, surface.Options{})

	consumed := s.PointerDown(gesture.ButtonRight, 0, geometry.ScreenPoint{X: 50, Y: 50})
	require.True(t, consumed)

	// A second press while a gesture is in flight is refused.
	assert.False(t, s.PointerDown(gesture.ButtonLeft, 0, geometry.ScreenPoint{X: 60, Y: 60}))

	s.PointerMove(geometry.ScreenPoint{X: 60, Y: 50})
	x, _ := m.AxesFromPoint(geometry.ScreenPoint{X: 50, Y: 50})
	require.NotNil(t, x)
	assert.InDelta(t, -10, x.ActualMin(), 1e-9, "drag right moves data with the cursor")
	assert.InDelta(t, 90, x.ActualMax(), 1e-9)

	require.True(t, s.PointerUp(geometry.ScreenPoint{X: 60, Y: 50}))
	assert.False(t, s.PointerMove(geometry.ScreenPoint{X: 70, Y: 50}), "gesture released on up")
}

func TestPointerTrackerGesture(t *testing.T) {
	s, host, m := newTestSurface(t, surface.Options{})

	ln := series.NewLine("v")
	ln.AddPoint(0, 0)
	ln.AddPoint(100, 100)
	m.AddSeries(ln)
	s.RequestInvalidate(true)
	s.RenderTick()

	// Both axes auto-ranged to the padded extent [0,110], so pixel
	// (58,51) sits exactly on the line at data (55,55). Control
	// selects interpolation between samples.
	s.PointerDown(gesture.ButtonLeft, gesture.ModControl, geometry.ScreenPoint{X: 58, Y: 51})
	require.NotNil(t, host.tracker)
	assert.InDelta(t, 55, host.tracker.Point.X, 1e-6)
	s.PointerUp(geometry.ScreenPoint{X: 58, Y: 51})
	assert.Nil(t, host.tracker, "tracker hides when the gesture ends")
}

func TestDoubleClickResetsAxes(t *testing.T) {
	now := time.Unix(0, 0)
	dc := gesture.NewDoubleClickDetector(0, 0)
	dc.SetClock(func() time.Time { return now })

	s, host, m := newTestSurface(t, surface.Options{DoubleClick: dc})
	x, y := m.AxesFromPoint(geometry.ScreenPoint{X: 58, Y: 51})
	require.NotNil(t, x)
	require.NotNil(t, y)

	// Disturb the view first.
	x.Pan(25)
	require.InDelta(t, -25, x.ActualMin(), 1e-9)

	p := geometry.ScreenPoint{X: 58, Y: 51}
	s.PointerDown(gesture.ButtonMiddle, 0, p)
	s.PointerUp(p)
	assert.Equal(t, 1, host.rectHidden, "collapsed rectangle still hides the overlay")

	now = now.Add(100 * time.Millisecond)
	s.PointerDown(gesture.ButtonMiddle, 0, p)
	assert.InDelta(t, 0, x.ActualMin(), 1e-9, "double-click restores the default range")
	assert.InDelta(t, 100, x.ActualMax(), 1e-9)
}

func TestZoomRectangleGesture(t *testing.T) {
	s, host, m := newTestSurface(t, surface.Options{})

	s.PointerDown(gesture.ButtonMiddle, 0, geometry.ScreenPoint{X: 28, Y: 21})
	s.PointerMove(geometry.ScreenPoint{X: 58, Y: 51})
	require.NotNil(t, host.zoomRect)
	assert.InDelta(t, 28, host.zoomRect.Left, 1e-9)
	assert.InDelta(t, 30, host.zoomRect.Width, 1e-9)

	s.PointerUp(geometry.ScreenPoint{X: 58, Y: 51})
	assert.Nil(t, host.zoomRect)

	// Pixels 28..58 on a [0,100] axis mapped to [8,108].
	x, _ := m.AxesFromPoint(geometry.ScreenPoint{X: 58, Y: 51})
	require.NotNil(t, x)
	assert.InDelta(t, 20, x.ActualMin(), 1e-9)
	assert.InDelta(t, 50, x.ActualMax(), 1e-9)
}

func TestWheelZoom(t *testing.T) {
	s, _, m := newTestSurface(t, surface.Options{WheelZoomEnabled: true})

	consumed := s.Wheel(1, 0, geometry.ScreenPoint{X: 58, Y: 51})
	require.True(t, consumed)

	// Anchor under the cursor: pixel 58 is data 50 on [0,100]→[8,108].
	x, _ := m.AxesFromPoint(geometry.ScreenPoint{X: 58, Y: 51})
	require.NotNil(t, x)
	assert.InDelta(t, 50+(0-50)/1.12, x.ActualMin(), 1e-9)
	assert.InDelta(t, 50+(100-50)/1.12, x.ActualMax(), 1e-9)
}

func TestWheelDisabled(t *testing.T) {
	s, _, m := newTestSurface(t, surface.Options{})

	assert.False(t, s.Wheel(1, 0, geometry.ScreenPoint{X: 58, Y: 51}))
	x, _ := m.AxesFromPoint(geometry.ScreenPoint{X: 58, Y: 51})
	require.NotNil(t, x)
	assert.InDelta(t, 0, x.ActualMin(), 1e-9)
	assert.InDelta(t, 100, x.ActualMax(), 1e-9)
}

func TestWheelRuntimeToggle(t *testing.T) {
	s, _, m := newTestSurface(t, surface.Options{WheelZoomEnabled: true})

	s.SetWheelZoomEnabled(false)
	assert.False(t, s.WheelZoomEnabled())
	assert.False(t, s.Wheel(1, 0, geometry.ScreenPoint{X: 58, Y: 51}))

	x, _ := m.AxesFromPoint(geometry.ScreenPoint{X: 58, Y: 51})
	require.NotNil(t, x)
	assert.InDelta(t, 0, x.ActualMin(), 1e-9)
	assert.InDelta(t, 100, x.ActualMax(), 1e-9)

	s.SetWheelZoomEnabled(true)
	require.True(t, s.Wheel(1, 0, geometry.ScreenPoint{X: 58, Y: 51}))
	assert.InDelta(t, 50+(0-50)/1.12, x.ActualMin(), 1e-9)
}

func TestTouchSession(t *testing.T) {
	s, _, m := newTestSurface(t, surface.Options{})

	require.True(t, s.TouchStarted(geometry.ScreenPoint{X: 58, Y: 51}))
	assert.False(t, s.TouchStarted(geometry.ScreenPoint{X: 60, Y: 60}))

	s.TouchDelta(manipulator.Event{
		Position:    geometry.ScreenPoint{X: 68, Y: 51},
		Translation: geometry.ScreenVector{DX: 10},
		ScaleX:      1,
		ScaleY:      1,
	})
	x, _ := m.AxesFromPoint(geometry.ScreenPoint{X: 58, Y: 51})
	require.NotNil(t, x)
	assert.InDelta(t, -10, x.ActualMin(), 1e-9)

	require.True(t, s.TouchCompleted(geometry.ScreenPoint{X: 68, Y: 51}))
	assert.False(t, s.TouchDelta(manipulator.Event{ScaleX: 1, ScaleY: 1}))
}

func TestKeyboardNavigation(t *testing.T) {
	s, _, m := newTestSurface(t, surface.Options{})
	x, _ := m.AxesFromPoint(geometry.ScreenPoint{X: 58, Y: 51})
	require.NotNil(t, x)

	// Plot area is 100px wide; one arrow press pans a tenth of it.
	require.True(t, s.KeyDown(gesture.KeyRight, 0))
	assert.InDelta(t, 10, x.ActualMin(), 1e-9)
	assert.InDelta(t, 110, x.ActualMax(), 1e-9)

	require.True(t, s.KeyDown(gesture.KeyHome, 0))
	assert.InDelta(t, 0, x.ActualMin(), 1e-9)

	require.True(t, s.KeyDown(gesture.KeyPlus, 0))
	assert.InDelta(t, 50-50/1.12, x.ActualMin(), 1e-9)
	assert.InDelta(t, 50+50/1.12, x.ActualMax(), 1e-9)
}

func TestProgrammaticAPI(t *testing.T) {
	s, _, m := newTestSurface(t, surface.Options{})
	x, _ := m.AxesFromPoint(geometry.ScreenPoint{X: 58, Y: 51})
	require.NotNil(t, x)

	s.Zoom(x, 20, 40)
	assert.InDelta(t, 20, x.ActualMin(), 1e-9)
	assert.InDelta(t, 40, x.ActualMax(), 1e-9)

	s.ResetAllAxes()
	assert.InDelta(t, 0, x.ActualMin(), 1e-9)
	assert.InDelta(t, 100, x.ActualMax(), 1e-9)

	s.Pan(x, geometry.ScreenPoint{X: 8, Y: 0}, geometry.ScreenPoint{X: 18, Y: 0})
	assert.InDelta(t, -10, x.ActualMin(), 1e-9)
}

func TestCloseDropsGestureAndBinding(t *testing.T) {
	s, _, m := newTestSurface(t, surface.Options{})

	s.PointerDown(gesture.ButtonRight, 0, geometry.ScreenPoint{X: 50, Y: 50})
	s.Close()
	assert.Empty(t, m.Owner(), "close releases the model")
	assert.False(t, s.PointerMove(geometry.ScreenPoint{X: 60, Y: 50}),
		"close drops the active gesture without completing it")
}
