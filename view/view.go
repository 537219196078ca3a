// Package view defines the map-view surface the tracker drives and an
// in-memory implementation of it.
package view

import (
	"github.com/paulmach/orb"

	"github.com/theoremus-urban-solutions/geotrack/geo"
)

// View is the camera of an external map. All coordinates are in the frame
// returned by Projection.
type View interface {
	Projection() geo.Projection
	Center() (orb.Point, bool)
	SetCenter(c orb.Point)
	Zoom() float64
	SetZoom(z float64)
	Extent() orb.Bound
	FitExtent(b orb.Bound)
	PixelToCoordinate(px orb.Point) orb.Point
	CoordinateToPixel(c orb.Point) orb.Point
}

// ContainsBound reports whether inner lies entirely within outer.
func ContainsBound(outer, inner orb.Bound) bool {
	return outer.Contains(inner.Min) && outer.Contains(inner.Max)
}
