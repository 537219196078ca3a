package tracking

import (
	"fmt"
	"math"
	"strings"

	"github.com/paulmach/orb"

	"github.com/theoremus-urban-solutions/geotrack/track"
)

// Attribute selects a fix property copied onto the drawn feature.
type Attribute uint8

const (
	AttrHeading Attribute = 1 << iota
	AttrAccuracy
	AttrElevation
	AttrSpeed

	AllAttributes = AttrHeading | AttrAccuracy | AttrElevation | AttrSpeed
)

var attributeNames = []struct {
	a    Attribute
	name string
}{
	{AttrHeading, "heading"},
	{AttrAccuracy, "accuracy"},
	{AttrElevation, "elevation"},
	{AttrSpeed, "speed"},
}

func ParseAttributes(names []string) (Attribute, error) {
	var set Attribute
next:
	for _, n := range names {
		n = strings.ToLower(strings.TrimSpace(n))
		for _, an := range attributeNames {
			if an.name == n {
				set |= an.a
				continue next
			}
		}
		return 0, fmt.Errorf("unknown recorded attribute %q", n)
	}
	return set, nil
}

// properties returns the selected, known values of p.
func (a Attribute) properties(p track.Position) map[string]float64 {
	if a == 0 {
		return nil
	}
	values := map[Attribute]float64{
		AttrHeading:   p.Heading,
		AttrAccuracy:  p.Accuracy,
		AttrElevation: p.Elevation,
		AttrSpeed:     p.Speed,
	}
	props := map[string]float64{}
	for _, an := range attributeNames {
		if a&an.a == 0 || math.IsNaN(values[an.a]) {
			continue
		}
		props[an.name] = values[an.a]
	}
	return props
}

// AccuracyIndicator is the circle (or sensor-supplied polygon) drawn around
// the current position.
type AccuracyIndicator struct {
	Geometry orb.Polygon
	Accuracy float64
	Band     AccuracyBand
}

// Extent is the bound of the indicator, or of at alone when there is none.
func (a AccuracyIndicator) Extent(at orb.Point) orb.Bound {
	if len(a.Geometry) == 0 {
		return at.Bound()
	}
	return a.Geometry.Bound()
}

// Marker is the current-position marker. Heading is in degrees clockwise
// from north, NaN while unknown.
type Marker struct {
	Position track.Position
	Heading  float64
	Valid    bool
}

// Sketch is the live drawing: indicator, recorded path and marker. Values
// handed out by the Tracker are copies.
type Sketch struct {
	Kind       DrawingKind
	Accuracy   AccuracyIndicator
	Path       []track.Position
	Marker     Marker
	Attributes map[string]float64
}

// Geometry builds the kind's geometry from Path, or nil while the path is
// too short for it.
func (s Sketch) Geometry() orb.Geometry {
	return buildGeometry(s.Kind, s.Path)
}

func (s Sketch) clone() Sketch {
	c := s
	if s.Path != nil {
		c.Path = append([]track.Position(nil), s.Path...)
	}
	if s.Accuracy.Geometry != nil {
		c.Accuracy.Geometry = s.Accuracy.Geometry.Clone()
	}
	if s.Attributes != nil {
		c.Attributes = make(map[string]float64, len(s.Attributes))
		for k, v := range s.Attributes {
			c.Attributes[k] = v
		}
	}
	return c
}

// Feature is a completed drawing handed out with DrawEnd.
type Feature struct {
	ID         string
	Kind       DrawingKind
	Projection string
	Geometry   orb.Geometry
	Positions  []track.Position
	Attributes map[string]float64
}

func buildGeometry(kind DrawingKind, path []track.Position) orb.Geometry {
	if len(path) < kind.minPoints() {
		return nil
	}
	switch kind {
	case KindPoint:
		return path[len(path)-1].Point()
	case KindPolygon:
		ring := make(orb.Ring, 0, len(path)+1)
		for _, p := range path {
			ring = append(ring, p.Point())
		}
		ring = append(ring, ring[0])
		return orb.Polygon{ring}
	default:
		return orb.LineString(track.Points(path))
	}
}
