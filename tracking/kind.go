package tracking

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrUnknownKind       = errors.New("unknown drawing kind")
	ErrUnknownFollowMode = errors.New("unknown follow mode")
)

// DrawingKind selects how the recorded path becomes a geometry.
type DrawingKind int

const (
	KindLineString DrawingKind = iota
	KindPoint
	KindPolygon
)

func (k DrawingKind) String() string {
	switch k {
	case KindPoint:
		return "Point"
	case KindPolygon:
		return "Polygon"
	default:
		return "LineString"
	}
}

// minPoints is the path length below which no geometry is emitted.
func (k DrawingKind) minPoints() int {
	switch k {
	case KindPoint:
		return 1
	case KindPolygon:
		return 3
	default:
		return 2
	}
}

func ParseDrawingKind(s string) (DrawingKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "point":
		return KindPoint, nil
	case "linestring", "":
		return KindLineString, nil
	case "polygon":
		return KindPolygon, nil
	}
	return KindLineString, fmt.Errorf("%w: %q", ErrUnknownKind, s)
}

// TrackingState is the recording lifecycle of a Tracker.
type TrackingState int

const (
	Inactive TrackingState = iota
	Recording
	Paused
)

func (s TrackingState) String() string {
	switch s {
	case Recording:
		return "recording"
	case Paused:
		return "paused"
	default:
		return "inactive"
	}
}

// Active reports whether fixes are being received.
func (s TrackingState) Active() bool { return s != Inactive }
