package view

import (
	"math"
	"sync"

	"github.com/paulmach/orb"

	"github.com/theoremus-urban-solutions/geotrack/geo"
)

// Resolution at zoom 0 for a 256px tile pyramid, per frame.
const (
	mercatorMaxResolution   = 2 * math.Pi * 6378137 / 256
	geographicMaxResolution = 360.0 / 256
)

// Headless is a View with no rendering: it keeps a centre, a zoom level and
// a pixel size, and derives extents from them. It is used by the CLI and in
// tests.
type Headless struct {
	mu        sync.Mutex
	proj      geo.Projection
	width     float64
	height    float64
	center    orb.Point
	hasCenter bool
	zoom      float64
	maxRes    float64
	minZoom   float64
	maxZoom   float64
}

// NewHeadless creates a view of width x height pixels in proj.
func NewHeadless(proj geo.Projection, width, height int) *Headless {
	maxRes := mercatorMaxResolution
	if proj.Code() == geo.WGS84.Code() {
		maxRes = geographicMaxResolution
	}
	return &Headless{
		proj:    proj,
		width:   float64(width),
		height:  float64(height),
		maxRes:  maxRes,
		minZoom: 0,
		maxZoom: 28,
	}
}

func (v *Headless) Projection() geo.Projection { return v.proj }

func (v *Headless) Center() (orb.Point, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.center, v.hasCenter
}

func (v *Headless) SetCenter(c orb.Point) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.center = c
	v.hasCenter = true
}

func (v *Headless) Zoom() float64 {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.zoom
}

func (v *Headless) SetZoom(z float64) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.zoom = v.clampZoom(z)
}

// Resolution returns map units per pixel at the current zoom.
func (v *Headless) Resolution() float64 {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.resolution()
}

func (v *Headless) resolution() float64 {
	return v.maxRes / math.Pow(2, v.zoom)
}

func (v *Headless) clampZoom(z float64) float64 {
	return math.Max(v.minZoom, math.Min(v.maxZoom, z))
}

func (v *Headless) Extent() orb.Bound {
	v.mu.Lock()
	defer v.mu.Unlock()
	res := v.resolution()
	hw, hh := v.width*res/2, v.height*res/2
	return orb.Bound{
		Min: orb.Point{v.center[0] - hw, v.center[1] - hh},
		Max: orb.Point{v.center[0] + hw, v.center[1] + hh},
	}
}

// FitExtent centres on b and picks the largest zoom at which b is fully
// visible.
func (v *Headless) FitExtent(b orb.Bound) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.center = b.Center()
	v.hasCenter = true

	w, h := b.Max[0]-b.Min[0], b.Max[1]-b.Min[1]
	res := math.Max(w/v.width, h/v.height)
	if res <= 0 {
		return
	}
	v.zoom = v.clampZoom(math.Log2(v.maxRes / res))
}

// PixelToCoordinate maps a pixel (origin top-left, y down) to map units.
func (v *Headless) PixelToCoordinate(px orb.Point) orb.Point {
	v.mu.Lock()
	defer v.mu.Unlock()
	res := v.resolution()
	return orb.Point{
		v.center[0] + (px[0]-v.width/2)*res,
		v.center[1] - (px[1]-v.height/2)*res,
	}
}

// CoordinateToPixel is the inverse of PixelToCoordinate.
func (v *Headless) CoordinateToPixel(c orb.Point) orb.Point {
	v.mu.Lock()
	defer v.mu.Unlock()
	res := v.resolution()
	return orb.Point{
		v.width/2 + (c[0]-v.center[0])/res,
		v.height/2 - (c[1]-v.center[1])/res,
	}
}
