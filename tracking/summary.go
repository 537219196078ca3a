package tracking

import (
	"time"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/theoremus-urban-solutions/geotrack/geo"
	"github.com/theoremus-urban-solutions/geotrack/track"
)

// Summary describes the recorded path.
type Summary struct {
	Points       int
	LengthMeters float64
	// MeanAccuracy over positions that report one; NaN when none do.
	MeanAccuracy float64
	Duration     time.Duration
}

func summarize(proj geo.Projection, path []track.Position) Summary {
	s := Summary{Points: len(path)}
	if len(path) == 0 {
		s.MeanAccuracy = stat.Mean(nil, nil)
		return s
	}

	legs := make([]float64, 0, len(path))
	accuracies := make([]float64, 0, len(path))
	for i, p := range path {
		if i > 0 {
			legs = append(legs, geo.DistanceIn(proj, path[i-1].Point(), p.Point()))
		}
		if p.HasAccuracy() {
			accuracies = append(accuracies, p.Accuracy)
		}
	}
	s.LengthMeters = floats.Sum(legs)
	s.MeanAccuracy = stat.Mean(accuracies, nil)

	first, last := path[0].Time, path[len(path)-1].Time
	if !first.IsZero() && !last.IsZero() {
		s.Duration = last.Sub(first)
	}
	return s
}
