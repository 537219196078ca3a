package geo

import (
	"math"

	"github.com/paulmach/orb"
	orbgeo "github.com/paulmach/orb/geo"
)

// circleSegments is the number of vertices used to approximate an accuracy circle.
const circleSegments = 32

// Distance returns the haversine distance in meters between two
// geographic points.
func Distance(a, b orb.Point) float64 {
	return orbgeo.DistanceHaversine(a, b)
}

// DistanceIn returns the real-world distance in meters between two points
// expressed in proj.
func DistanceIn(proj Projection, a, b orb.Point) float64 {
	return Distance(proj.ToGeographic(a), proj.ToGeographic(b))
}

// Bearing returns the initial bearing in degrees [0, 360) from a to b,
// both points expressed in proj.
func Bearing(proj Projection, a, b orb.Point) float64 {
	deg := orbgeo.Bearing(proj.ToGeographic(a), proj.ToGeographic(b))
	return math.Mod(deg+360, 360)
}

// AccuracyCircle returns a closed polygon in proj approximating a circle of
// radiusMeters around center. A non-positive radius yields nil.
func AccuracyCircle(proj Projection, center orb.Point, radiusMeters float64) orb.Polygon {
	if radiusMeters <= 0 || math.IsNaN(radiusMeters) {
		return nil
	}
	c := proj.ToGeographic(center)
	ring := make(orb.Ring, 0, circleSegments+1)
	for i := 0; i < circleSegments; i++ {
		bearing := float64(i) * 360 / circleSegments
		p := orbgeo.PointAtBearingAndDistance(c, bearing, radiusMeters)
		ring = append(ring, proj.FromGeographic(p))
	}
	ring = append(ring, ring[0])
	return orb.Polygon{ring}
}
