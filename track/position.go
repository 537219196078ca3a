package track

import (
	"math"
	"time"

	"github.com/paulmach/orb"
)

// Position is a single recorded fix. Accuracy, Heading and Speed are NaN
// when the sensor did not report them.
type Position struct {
	X         float64
	Y         float64
	Elevation float64
	Time      time.Time
	Accuracy  float64 // meters
	Heading   float64 // degrees clockwise from north
	Speed     float64 // meters per second
}

// Point returns the XY coordinate.
func (p Position) Point() orb.Point { return orb.Point{p.X, p.Y} }

// M returns the timestamp as fractional Unix seconds.
func (p Position) M() float64 {
	if p.Time.IsZero() {
		return 0
	}
	return float64(p.Time.UnixNano()) / float64(time.Second)
}

func (p Position) HasAccuracy() bool { return !math.IsNaN(p.Accuracy) }
func (p Position) HasHeading() bool  { return !math.IsNaN(p.Heading) }
func (p Position) HasSpeed() bool    { return !math.IsNaN(p.Speed) }

// Points extracts the XY coordinates of a path.
func Points(path []Position) []orb.Point {
	out := make([]orb.Point, len(path))
	for i, p := range path {
		out[i] = p.Point()
	}
	return out
}

// FromPoints builds positions with unknown metadata from bare coordinates.
func FromPoints(points []orb.Point) []Position {
	out := make([]Position, len(points))
	for i, pt := range points {
		out[i] = Position{
			X:        pt[0],
			Y:        pt[1],
			Accuracy: math.NaN(),
			Heading:  math.NaN(),
			Speed:    math.NaN(),
		}
	}
	return out
}

// Fix is one report from a location sensor. A nil Coordinate marks a
// malformed fix.
type Fix struct {
	Coordinate *orb.Point
	Elevation  float64 // NaN when unknown
	Time       time.Time
	Accuracy   float64
	Heading    float64
	Speed      float64

	// AccuracyGeometry optionally carries the sensor's own accuracy extent.
	AccuracyGeometry orb.Polygon

	// Sensor is the raw object the fix was read from. Custom acceptance
	// predicates inspect it for fields Position does not model.
	Sensor any
}

// NewFix returns a fix at c with every optional field unknown.
func NewFix(c orb.Point, t time.Time) Fix {
	return Fix{
		Coordinate: &c,
		Elevation:  math.NaN(),
		Time:       t,
		Accuracy:   math.NaN(),
		Heading:    math.NaN(),
		Speed:      math.NaN(),
	}
}

// HasCoordinate reports whether the fix carries a usable coordinate.
func (f Fix) HasCoordinate() bool {
	if f.Coordinate == nil {
		return false
	}
	for _, v := range f.Coordinate {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// Position converts the fix to a path record. Unknown elevation becomes 0.
func (f Fix) Position() (Position, bool) {
	if !f.HasCoordinate() {
		return Position{}, false
	}
	elev := f.Elevation
	if math.IsNaN(elev) {
		elev = 0
	}
	return Position{
		X:         f.Coordinate[0],
		Y:         f.Coordinate[1],
		Elevation: elev,
		Time:      f.Time,
		Accuracy:  f.Accuracy,
		Heading:   f.Heading,
		Speed:     f.Speed,
	}, true
}
