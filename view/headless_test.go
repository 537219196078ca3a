package view

import (
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theoremus-urban-solutions/geotrack/geo"
)

func TestHeadless_CenterAndExtent(t *testing.T) {
	v := NewHeadless(geo.WGS84, 256, 128)
	_, ok := v.Center()
	assert.False(t, ok)

	v.SetCenter(orb.Point{10, 20})
	c, ok := v.Center()
	require.True(t, ok)
	assert.Equal(t, orb.Point{10, 20}, c)

	// zoom 0 on EPSG:4326 is 360/256 degrees per pixel
	ext := v.Extent()
	assert.InDelta(t, 10-180, ext.Min[0], 1e-9)
	assert.InDelta(t, 10+180, ext.Max[0], 1e-9)
	assert.InDelta(t, 20-90, ext.Min[1], 1e-9)
	assert.InDelta(t, 20+90, ext.Max[1], 1e-9)

	v.SetZoom(1)
	ext = v.Extent()
	assert.InDelta(t, 10-90, ext.Min[0], 1e-9)
}

func TestHeadless_SetZoomClamps(t *testing.T) {
	v := NewHeadless(geo.WebMercator, 100, 100)
	v.SetZoom(-3)
	assert.Equal(t, 0.0, v.Zoom())
	v.SetZoom(40)
	assert.Equal(t, 28.0, v.Zoom())
}

func TestHeadless_FitExtent(t *testing.T) {
	v := NewHeadless(geo.WebMercator, 800, 600)
	b := orb.Bound{Min: orb.Point{1000, 2000}, Max: orb.Point{1400, 2200}}
	v.FitExtent(b)

	c, ok := v.Center()
	require.True(t, ok)
	assert.Equal(t, orb.Point{1200, 2100}, c)
	assert.InDelta(t, 0.5, v.Resolution(), 1e-9)
	inner := orb.Bound{Min: orb.Point{1000.001, 2000.001}, Max: orb.Point{1399.999, 2199.999}}
	assert.True(t, ContainsBound(v.Extent(), inner))
}

func TestHeadless_PixelRoundTrip(t *testing.T) {
	v := NewHeadless(geo.WebMercator, 800, 600)
	v.SetCenter(orb.Point{5000, -3000})
	v.SetZoom(15)

	assert.Equal(t, orb.Point{5000, -3000}, v.PixelToCoordinate(orb.Point{400, 300}))

	c := orb.Point{5100, -2950}
	px := v.CoordinateToPixel(c)
	back := v.PixelToCoordinate(px)
	assert.InDelta(t, c[0], back[0], 1e-6)
	assert.InDelta(t, c[1], back[1], 1e-6)

	// y grows downwards in pixel space
	assert.Less(t, px[1], 300.0)
}

func TestContainsBound(t *testing.T) {
	outer := orb.Bound{Min: orb.Point{0, 0}, Max: orb.Point{10, 10}}
	assert.True(t, ContainsBound(outer, orb.Bound{Min: orb.Point{1, 1}, Max: orb.Point{9, 9}}))
	assert.False(t, ContainsBound(outer, orb.Bound{Min: orb.Point{1, 1}, Max: orb.Point{11, 9}}))
}
