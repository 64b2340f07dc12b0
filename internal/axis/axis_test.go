package axis_test

import (
	"math"
	"testing"

	"github.com/luoshushi/oxyplot/internal/axis"
	"github.com/luoshushi/oxyplot/internal/geometry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newHorizontal(min, max float64) *axis.LinearAxis {
	a := axis.NewLinear(axis.Horizontal, min, max)
	a.SetScreenRange(0, 100)
	return a
}

func TestTransform_RoundTrip(t *testing.T) {
	t.Parallel()

	a := newHorizontal(0, 10)
	for _, v := range []float64{0, 2.5, 5, 9.99, 10} {
		assert.InDelta(t, v, a.InverseTransform(a.Transform(v)), 1e-9)
	}

	// Vertical axes map min to the bottom pixel (larger Y).
	b := axis.NewLinear(axis.Vertical, 0, 1)
	b.SetScreenRange(50, 0)
	assert.InDelta(t, 50, b.Transform(0), 1e-9)
	assert.InDelta(t, 0, b.Transform(1), 1e-9)
	assert.InDelta(t, 0.5, b.InverseTransform(25), 1e-9)
}

func TestPan_ScreenDeltaConvertsThroughInverse(t *testing.T) {
	t.Parallel()

	// 100 px spans 10 data units, so 10 px is 1 data unit. Dragging
	// right moves the data with the cursor, shifting the range down.
	a := newHorizontal(0, 10)
	a.Pan(10)
	assert.InDelta(t, -1, a.ActualMin(), 1e-9)
	assert.InDelta(t, 9, a.ActualMax(), 1e-9)
}

func TestPanPoints_FiltersByOrientation(t *testing.T) {
	t.Parallel()

	h := newHorizontal(0, 10)
	v := axis.NewLinear(axis.Vertical, 0, 10)
	v.SetScreenRange(100, 0)

	from := geometry.NewScreenPoint(0, 0)
	to := geometry.NewScreenPoint(10, 0)

	h.PanPoints(from, to)
	assert.InDelta(t, -1, h.ActualMin(), 1e-9)
	assert.InDelta(t, 9, h.ActualMax(), 1e-9)

	// Purely horizontal motion leaves a vertical axis untouched.
	v.PanPoints(from, to)
	assert.Equal(t, 0.0, v.ActualMin())
	assert.Equal(t, 10.0, v.ActualMax())
}

func TestPan_DisabledIsNoOp(t *testing.T) {
	t.Parallel()

	a := newHorizontal(0, 10)
	a.SetPanEnabled(false)
	a.Pan(10)
	assert.Equal(t, 0.0, a.ActualMin())
	assert.Equal(t, 10.0, a.ActualMax())
}

func TestZoom_ReplacesRange(t *testing.T) {
	t.Parallel()

	a := newHorizontal(0, 10)
	a.Zoom(2, 4)
	assert.Equal(t, 2.0, a.ActualMin())
	assert.Equal(t, 4.0, a.ActualMax())
}

func TestZoom_DegenerateRangeIsNoOp(t *testing.T) {
	t.Parallel()

	a := newHorizontal(0, 10)

	a.Zoom(5, 5)
	assert.Equal(t, 0.0, a.ActualMin())
	assert.Equal(t, 10.0, a.ActualMax())

	a.Zoom(7, 3) // inverted
	assert.Equal(t, 0.0, a.ActualMin())
	assert.Equal(t, 10.0, a.ActualMax())

	a.Zoom(1, 1+axis.MinDataRange/2) // below the epsilon
	assert.Equal(t, 0.0, a.ActualMin())
	assert.Equal(t, 10.0, a.ActualMax())

	a.Zoom(math.NaN(), 5)
	assert.Equal(t, 0.0, a.ActualMin())
}

func TestZoomAt_FactorOneIsIdentity(t *testing.T) {
	t.Parallel()

	a := newHorizontal(-3, 17)
	mid := a.InverseTransform((a.Transform(a.ActualMin()) + a.Transform(a.ActualMax())) / 2)
	a.ZoomAt(1.0, mid)
	assert.Equal(t, -3.0, a.ActualMin())
	assert.Equal(t, 17.0, a.ActualMax())

	a.ZoomAtCenter(1.0)
	assert.Equal(t, -3.0, a.ActualMin())
	assert.Equal(t, 17.0, a.ActualMax())
}

func TestZoomAt_ShrinksAroundAnchor(t *testing.T) {
	t.Parallel()

	a := newHorizontal(0, 10)
	a.ZoomAt(2, 5)
	assert.InDelta(t, 2.5, a.ActualMin(), 1e-9)
	assert.InDelta(t, 7.5, a.ActualMax(), 1e-9)

	// The anchor's screen position is unchanged by the zoom.
	assert.InDelta(t, 50, a.Transform(5), 1e-9)
}

func TestZoomAt_ZoomOutGrowsRange(t *testing.T) {
	t.Parallel()

	a := newHorizontal(0, 10)
	a.ZoomAt(0.5, 0)
	assert.InDelta(t, 0, a.ActualMin(), 1e-9)
	assert.InDelta(t, 20, a.ActualMax(), 1e-9)
}

func TestZoomAt_InvalidInputsAreNoOps(t *testing.T) {
	t.Parallel()

	a := newHorizontal(0, 10)
	a.ZoomAt(-1, 5)
	a.ZoomAt(0, 5)
	a.ZoomAt(2, math.NaN())
	assert.Equal(t, 0.0, a.ActualMin())
	assert.Equal(t, 10.0, a.ActualMax())

	a.SetZoomEnabled(false)
	a.ZoomAt(2, 5)
	assert.Equal(t, 0.0, a.ActualMin())
}

func TestReset_UsesDefaultRangeWhenSet(t *testing.T) {
	t.Parallel()

	a := newHorizontal(0, 10)
	a.Zoom(3, 4)
	a.Reset()
	assert.Equal(t, 0.0, a.ActualMin())
	assert.Equal(t, 10.0, a.ActualMax())

	a.SetDefaultRange(-5, 5)
	a.Zoom(3, 4)
	a.Reset()
	assert.Equal(t, -5.0, a.ActualMin())
	assert.Equal(t, 5.0, a.ActualMax())
}

func TestNewLinear_NormalizesConstruction(t *testing.T) {
	t.Parallel()

	a := axis.NewLinear(axis.Horizontal, 10, 0)
	require.Less(t, a.ActualMin(), a.ActualMax())
	assert.Equal(t, 0.0, a.ActualMin())

	b := axis.NewLinear(axis.Horizontal, 5, 5)
	require.Less(t, b.ActualMin(), b.ActualMax())
}

func TestSetDefaultRange_FollowsDataUntilUserTakesOver(t *testing.T) {
	t.Parallel()

	a := newHorizontal(0, 10)
	a.SetDefaultRange(0, 50)
	assert.Equal(t, 50.0, a.ActualMax(), "untouched axis adopts the new default")

	a.Pan(3)
	a.SetDefaultRange(0, 80)
	assert.NotEqual(t, 80.0, a.ActualMax(), "panned axis keeps the user's range")

	a.Reset()
	assert.Equal(t, 80.0, a.ActualMax())
	a.SetDefaultRange(0, 90)
	assert.Equal(t, 90.0, a.ActualMax(), "reset re-enables data-driven ranging")
}
