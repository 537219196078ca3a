package track

import (
	"github.com/paulmach/orb"

	"github.com/theoremus-urban-solutions/geotrack/geo"
)

// DistanceFunc measures the distance in meters between two points.
type DistanceFunc func(a, b orb.Point) float64

// SimplifyIndices walks points once and returns the indices to keep: the
// first point, every point farther than tolerance from the last kept one,
// and always the final point. A non-positive tolerance keeps everything.
func SimplifyIndices(points []orb.Point, tolerance float64, dist DistanceFunc) []int {
	n := len(points)
	if n == 0 {
		return nil
	}
	keep := make([]int, 0, n)
	if tolerance <= 0 || n <= 2 {
		for i := range points {
			keep = append(keep, i)
		}
		return keep
	}

	keep = append(keep, 0)
	last := points[0]
	for i := 1; i < n; i++ {
		if dist(last, points[i]) > tolerance {
			keep = append(keep, i)
			last = points[i]
		}
	}
	if keep[len(keep)-1] != n-1 {
		keep = append(keep, n-1)
	}
	return keep
}

// Simplify applies SimplifyIndices to a path whose coordinates are already
// geographic. The input is never modified.
func Simplify(path []Position, tolerance float64) []Position {
	return pick(path, SimplifyIndices(Points(path), tolerance, geo.Distance))
}

// SimplifyIn simplifies a path expressed in proj. Coordinates are converted
// to EPSG:4326 for the distance test, and the retained positions are
// returned in their original frame.
func SimplifyIn(proj geo.Projection, path []Position, tolerance float64) []Position {
	geographic := geo.ToGeographic(proj, Points(path))
	return pick(path, SimplifyIndices(geographic, tolerance, geo.Distance))
}

func pick(path []Position, idx []int) []Position {
	if len(idx) == 0 {
		return nil
	}
	out := make([]Position, len(idx))
	for i, k := range idx {
		out[i] = path[k]
	}
	return out
}
