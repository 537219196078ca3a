package track

import (
	"math"
	"math/rand"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theoremus-urban-solutions/geotrack/geo"
)

func TestFix_HasCoordinate(t *testing.T) {
	assert.False(t, Fix{}.HasCoordinate())
	assert.False(t, NewFix(orb.Point{math.NaN(), 1}, time.Time{}).HasCoordinate())
	assert.False(t, NewFix(orb.Point{math.Inf(1), 1}, time.Time{}).HasCoordinate())
	assert.True(t, NewFix(orb.Point{0, 0}, time.Time{}).HasCoordinate())
}

func TestFix_Position(t *testing.T) {
	ts := time.Date(2024, 3, 1, 10, 0, 0, 500_000_000, time.UTC)
	f := NewFix(orb.Point{3, 4}, ts)
	f.Accuracy = 12

	p, ok := f.Position()
	require.True(t, ok)
	assert.Equal(t, orb.Point{3, 4}, p.Point())
	assert.Equal(t, 0.0, p.Elevation)
	assert.True(t, p.HasAccuracy())
	assert.False(t, p.HasHeading())
	assert.False(t, p.HasSpeed())
	assert.InDelta(t, float64(ts.Unix())+0.5, p.M(), 1e-6)

	_, ok = Fix{}.Position()
	assert.False(t, ok)
}

func TestStore(t *testing.T) {
	s := NewStore()
	_, ok := s.Last()
	assert.False(t, ok)

	for i := 0; i < 5; i++ {
		s.Append(Position{X: float64(i)})
	}
	assert.Equal(t, 5, s.Len())
	last, ok := s.Last()
	require.True(t, ok)
	assert.Equal(t, 4.0, last.X)

	snap := s.Snapshot()
	snap[0].X = 99
	assert.Equal(t, 0.0, s.Snapshot()[0].X, "snapshot must be a copy")

	s.Reset()
	assert.Equal(t, 0, s.Len())
	assert.Nil(t, s.Snapshot())
	_, ok = s.Last()
	assert.False(t, ok)
}

func lat(values ...float64) []Position {
	pts := make([]orb.Point, len(values))
	for i, v := range values {
		pts[i] = orb.Point{0, v}
	}
	return FromPoints(pts)
}

func TestSimplify_ExampleTrack(t *testing.T) {
	path := lat(0, 0.0001, 0.0005, 0.001)
	got := Simplify(path, 50)

	want := []orb.Point{{0, 0}, {0, 0.0005}, {0, 0.001}}
	if diff := cmp.Diff(want, Points(got)); diff != "" {
		t.Errorf("Simplify() mismatch (-want +got):\n%s", diff)
	}
}

func TestSimplify_ZeroToleranceIsIdentity(t *testing.T) {
	path := lat(0, 0.00001, 0.00002, 0.00003)
	got := Simplify(path, 0)
	assert.Equal(t, Points(path), Points(got))

	got[0].X = 42
	assert.Equal(t, 0.0, path[0].X, "Simplify must not alias its input")
}

func TestSimplify_ForceKeepsLastPoint(t *testing.T) {
	path := lat(0, 0.001, 0.00101)
	got := Simplify(path, 50)
	require.Len(t, got, 3)
	assert.Equal(t, 0.00101, got[2].Y)
}

func TestSimplify_EmptyAndSingle(t *testing.T) {
	assert.Nil(t, Simplify(nil, 10))
	assert.Len(t, Simplify(lat(1), 10), 1)
	assert.Len(t, Simplify(lat(1, 1), 10), 2)
}

func TestSimplify_Properties(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for run := 0; run < 50; run++ {
		n := 2 + rng.Intn(60)
		pts := make([]orb.Point, n)
		x, y := 5.0, 45.0
		for i := range pts {
			x += (rng.Float64() - 0.5) * 0.001
			y += (rng.Float64() - 0.5) * 0.001
			pts[i] = orb.Point{x, y}
		}
		path := FromPoints(pts)
		tol := 5 + rng.Float64()*40

		got := Simplify(path, tol)
		require.NotEmpty(t, got)
		assert.Equal(t, pts[0], got[0].Point())
		assert.Equal(t, pts[n-1], got[len(got)-1].Point())
		for i := 1; i < len(got)-1; i++ {
			d := geo.Distance(got[i-1].Point(), got[i].Point())
			assert.GreaterOrEqual(t, d, tol, "run %d pair %d", run, i)
		}
	}
}

func TestSimplifyIn_ProjectedFrame(t *testing.T) {
	geographic := []orb.Point{{0, 0}, {0, 0.0001}, {0, 0.0005}, {0, 0.001}}
	projected := FromPoints(geo.FromGeographic(geo.WebMercator, geographic))

	got := SimplifyIn(geo.WebMercator, projected, 50)
	require.Len(t, got, 3)
	// Retained points are the original projected values, not re-projected copies.
	assert.Equal(t, projected[0], got[0])
	assert.Equal(t, projected[2], got[1])
	assert.Equal(t, projected[3], got[2])

	// A naive planar test on mercator meters would keep far more at high latitude.
	north := FromPoints(geo.FromGeographic(geo.WebMercator, []orb.Point{{0, 70}, {0, 70.0002}, {0, 70.0004}}))
	assert.Len(t, SimplifyIn(geo.WebMercator, north, 30), 2)
}
