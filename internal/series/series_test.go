package series_test

import (
	"math"
	"testing"

	"github.com/luoshushi/oxyplot/internal/axis"
	"github.com/luoshushi/oxyplot/internal/geometry"
	"github.com/luoshushi/oxyplot/internal/series"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedAxes() (*axis.LinearAxis, *axis.LinearAxis) {
	// Identity-ish mapping: x in [0,100] -> [0,100] px,
	// y in [0,100] -> [100,0] px (screen Y grows downward).
	x := axis.NewLinear(axis.Horizontal, 0, 100)
	x.SetScreenRange(0, 100)
	y := axis.NewLinear(axis.Vertical, 0, 100)
	y.SetScreenRange(100, 0)
	return x, y
}

func TestAddPoint_KeepsSortedAndTracksExtent(t *testing.T) {
	t.Parallel()

	s := series.NewLine("loss")
	s.AddPoint(5, 50)
	s.AddPoint(1, 10)
	s.AddPoint(3, 30)

	require.Equal(t, 3, s.Len())
	assert.Equal(t, 1.0, s.PointAt(0).X)
	assert.Equal(t, 3.0, s.PointAt(1).X)
	assert.Equal(t, 5.0, s.PointAt(2).X)

	xMin, xMax, yMin, yMax, ok := s.Extent()
	require.True(t, ok)
	assert.Equal(t, 1.0, xMin)
	assert.Equal(t, 5.0, xMax)
	assert.Equal(t, 10.0, yMin)
	assert.Equal(t, 50.0, yMax)
}

func TestVisibleRange_WidensByOnePoint(t *testing.T) {
	t.Parallel()

	s := series.NewLine("acc")
	for i := 0; i < 10; i++ {
		s.AddPoint(float64(i), 0)
	}

	lo, hi := s.VisibleRange(3, 6)
	assert.Equal(t, 2, lo)
	assert.Equal(t, 8, hi)

	lo, hi = s.VisibleRange(-10, 100)
	assert.Equal(t, 0, lo)
	assert.Equal(t, 10, hi)
}

func TestNearestPoint_SnapsToSample(t *testing.T) {
	t.Parallel()

	x, y := fixedAxes()
	s := series.NewLine("loss")
	s.AddPoint(10, 10)
	s.AddPoint(50, 50)
	s.AddPoint(90, 90)

	hit := s.NearestPoint(x, y, geometry.NewScreenPoint(52, 49), 20, false)
	require.NotNil(t, hit)
	assert.Equal(t, 1, hit.Index)
	assert.Equal(t, 50.0, hit.Point.X)
	assert.Contains(t, hit.Text(), "loss")
}

func TestNearestPoint_NoHitBeyondLimit(t *testing.T) {
	t.Parallel()

	x, y := fixedAxes()
	s := series.NewLine("loss")
	s.AddPoint(10, 10)

	// (90,90) data is ~113 px away from the only sample.
	hit := s.NearestPoint(x, y, geometry.NewScreenPoint(90, 10), 20, false)
	assert.Nil(t, hit)
}

func TestNearestPoint_InterpolateSnapsToSegment(t *testing.T) {
	t.Parallel()

	x, y := fixedAxes()
	s := series.NewLine("loss")
	s.AddPoint(0, 0)
	s.AddPoint(100, 0)

	// Querying far from both endpoints but directly above the segment.
	hit := s.NearestPoint(x, y, geometry.NewScreenPoint(50, 95), 10, true)
	require.NotNil(t, hit)
	assert.InDelta(t, 50, hit.Point.X, 1e-9)
	assert.InDelta(t, 0, hit.Point.Y, 1e-9)

	// Without interpolation the nearest sample is 50 px away.
	assert.Nil(t, s.NearestPoint(x, y, geometry.NewScreenPoint(50, 95), 10, false))
}

func TestAddPoint_DropsNonFinite(t *testing.T) {
	t.Parallel()

	s := series.NewLine("nanny")
	s.AddPoint(1, 1)
	s.AddPoint(math.NaN(), 2)
	s.AddPoint(3, math.Inf(1))
	assert.Equal(t, 1, s.Len())
}
