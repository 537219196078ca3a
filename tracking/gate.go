package tracking

import (
	"math"

	"github.com/theoremus-urban-solutions/geotrack/track"
)

// AccuracyBand classifies a fix's accuracy for the indicator style.
type AccuracyBand int

const (
	BandOK AccuracyBand = iota
	BandWarn
	BandError
)

func (b AccuracyBand) String() string {
	switch b {
	case BandOK:
		return "ok"
	case BandWarn:
		return "warn"
	default:
		return "error"
	}
}

// AccuracyGate decides whether a fix is good enough to record.
type AccuracyGate struct {
	// Threshold in meters; fixes must be strictly more accurate.
	Threshold float64

	// Predicate, when set, replaces the threshold test. It receives the raw
	// sensor object of the fix (track.Fix.Sensor).
	Predicate func(sensor any) bool
}

// Accept reports whether fix may be appended to the path. Fixes with no
// reported accuracy fail the default test.
func (g AccuracyGate) Accept(fix track.Fix) bool {
	if g.Predicate != nil {
		return g.Predicate(fix.Sensor)
	}
	return fix.Accuracy < g.Threshold
}

// Band classifies accuracy against the gate threshold: ok below it, warn
// below twice it, error otherwise.
func (g AccuracyGate) Band(accuracy float64) AccuracyBand {
	return ClassifyAccuracy(accuracy, g.Threshold)
}

func ClassifyAccuracy(accuracy, threshold float64) AccuracyBand {
	switch {
	case math.IsNaN(accuracy):
		return BandError
	case accuracy < threshold:
		return BandOK
	case accuracy < 2*threshold:
		return BandWarn
	default:
		return BandError
	}
}
