package geo

import (
	"errors"
	"fmt"
	"strings"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/project"
)

// ErrUnknownProjection is returned by Lookup for unsupported codes.
var ErrUnknownProjection = errors.New("unknown projection")

// Projection converts coordinates between a view frame and geographic
// longitude/latitude degrees.
type Projection interface {
	Code() string
	ToGeographic(p orb.Point) orb.Point
	FromGeographic(p orb.Point) orb.Point
}

type geographic struct{}

func (geographic) Code() string                         { return "EPSG:4326" }
func (geographic) ToGeographic(p orb.Point) orb.Point   { return p }
func (geographic) FromGeographic(p orb.Point) orb.Point { return p }

type webMercator struct{}

func (webMercator) Code() string { return "EPSG:3857" }

func (webMercator) ToGeographic(p orb.Point) orb.Point {
	return project.Point(p, project.Mercator.ToWGS84)
}

func (webMercator) FromGeographic(p orb.Point) orb.Point {
	return project.Point(p, project.WGS84.ToMercator)
}

var (
	// WGS84 is the geographic frame; coordinates are lon/lat degrees.
	WGS84 Projection = geographic{}
	// WebMercator is the spherical mercator frame used by most web maps.
	WebMercator Projection = webMercator{}
)

// Lookup returns the projection registered for code.
func Lookup(code string) (Projection, error) {
	switch strings.ToUpper(strings.TrimSpace(code)) {
	case "EPSG:4326", "CRS:84", "WGS84":
		return WGS84, nil
	case "EPSG:3857", "EPSG:900913", "EPSG:102100":
		return WebMercator, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownProjection, code)
}

// ToGeographic converts points from proj to EPSG:4326 into a new slice.
func ToGeographic(proj Projection, points []orb.Point) []orb.Point {
	out := make([]orb.Point, len(points))
	for i, p := range points {
		out[i] = proj.ToGeographic(p)
	}
	return out
}

// FromGeographic converts points from EPSG:4326 to proj into a new slice.
func FromGeographic(proj Projection, points []orb.Point) []orb.Point {
	out := make([]orb.Point, len(points))
	for i, p := range points {
		out[i] = proj.FromGeographic(p)
	}
	return out
}
