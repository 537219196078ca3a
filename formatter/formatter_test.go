package formatter

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theoremus-urban-solutions/geotrack/geo"
	"github.com/theoremus-urban-solutions/geotrack/track"
	"github.com/theoremus-urban-solutions/geotrack/tracking"
)

var t0 = time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)

func mercatorFeature(kind tracking.DrawingKind, lonlat ...orb.Point) tracking.Feature {
	positions := track.FromPoints(geo.FromGeographic(geo.WebMercator, lonlat))
	for i := range positions {
		positions[i].Time = t0.Add(time.Duration(i) * time.Minute)
		positions[i].Elevation = 100 + float64(i)
	}
	f := tracking.Feature{
		ID:         "5d1c1c6e-3a57-4a0e-9d52-1b5f1e0b6a11",
		Kind:       kind,
		Projection: geo.WebMercator.Code(),
		Positions:  positions,
		Attributes: map[string]float64{"accuracy": 8},
	}
	switch kind {
	case tracking.KindPoint:
		f.Geometry = positions[len(positions)-1].Point()
	default:
		f.Geometry = orb.LineString(track.Points(positions))
	}
	return f
}

func TestFeatureGeoJSON(t *testing.T) {
	f := mercatorFeature(tracking.KindLineString, orb.Point{2.35, 48.85}, orb.Point{2.36, 48.86})
	original := orb.Clone(f.Geometry)

	data, err := FeatureGeoJSON(f)
	require.NoError(t, err)

	gf, err := geojson.UnmarshalFeature(data)
	require.NoError(t, err)
	assert.Equal(t, f.ID, gf.ID)
	assert.Equal(t, "LineString", gf.Properties["kind"])
	assert.Equal(t, 8.0, gf.Properties["accuracy"])
	assert.Equal(t, "2024-06-01T08:00:00Z", gf.Properties["start"])
	assert.Equal(t, "2024-06-01T08:01:00Z", gf.Properties["end"])

	ls, ok := gf.Geometry.(orb.LineString)
	require.True(t, ok)
	require.Len(t, ls, 2)
	assert.InDelta(t, 2.35, ls[0][0], 1e-9)
	assert.InDelta(t, 48.86, ls[1][1], 1e-9)

	assert.Equal(t, original, f.Geometry, "serializing must not reproject the feature in place")
}

func TestFeatureGeoJSON_Errors(t *testing.T) {
	_, err := FeatureGeoJSON(tracking.Feature{ID: "x", Projection: "EPSG:3857"})
	assert.Error(t, err)

	f := mercatorFeature(tracking.KindPoint, orb.Point{1, 1})
	f.Projection = "EPSG:2154"
	_, err = FeatureGeoJSON(f)
	assert.ErrorIs(t, err, geo.ErrUnknownProjection)
}

func TestSketchCollection(t *testing.T) {
	center := geo.WebMercator.FromGeographic(orb.Point{5, 45})
	pos := track.FromPoints([]orb.Point{center, geo.WebMercator.FromGeographic(orb.Point{5, 45.001})})
	s := tracking.Sketch{
		Kind: tracking.KindLineString,
		Accuracy: tracking.AccuracyIndicator{
			Geometry: geo.AccuracyCircle(geo.WebMercator, center, 25),
			Accuracy: 25,
			Band:     tracking.BandWarn,
		},
		Path:   pos,
		Marker: tracking.Marker{Position: pos[1], Heading: math.NaN(), Valid: true},
	}

	fc := SketchCollection(s, geo.WebMercator)
	require.Len(t, fc.Features, 3)
	roles := []any{fc.Features[0].Properties["role"], fc.Features[1].Properties["role"], fc.Features[2].Properties["role"]}
	assert.Equal(t, []any{"accuracy", "path", "position"}, roles)
	assert.Equal(t, "warn", fc.Features[0].Properties["band"])
	_, hasHeading := fc.Features[2].Properties["heading"]
	assert.False(t, hasHeading)

	marker := fc.Features[2].Geometry.(orb.Point)
	assert.InDelta(t, 45.001, marker[1], 1e-9)

	// an empty sketch renders an empty collection
	empty, err := SketchGeoJSON(tracking.Sketch{Marker: tracking.Marker{Heading: math.NaN()}}, geo.WebMercator)
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"FeatureCollection","features":[]}`, string(empty))
}

func TestFeatureGPX_RoundTrip(t *testing.T) {
	f := mercatorFeature(tracking.KindLineString, orb.Point{2.35, 48.85}, orb.Point{2.36, 48.86}, orb.Point{2.37, 48.87})

	data, err := FeatureGPX(f, "morning walk")
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(data), "morning walk"))

	back, err := ParseGPX(data, geo.WGS84)
	require.NoError(t, err)
	require.Len(t, back, 3)
	assert.InDelta(t, 2.36, back[1].X, 1e-6)
	assert.InDelta(t, 48.86, back[1].Y, 1e-6)
	assert.InDelta(t, 101, back[1].Elevation, 1e-6)
	assert.True(t, t0.Add(2*time.Minute).Equal(back[2].Time))
}

func TestFeatureGPX_PointIsWaypoint(t *testing.T) {
	f := mercatorFeature(tracking.KindPoint, orb.Point{7, 46})
	doc, err := NewGPX(f, "pin")
	require.NoError(t, err)
	assert.Empty(t, doc.Tracks)
	require.Len(t, doc.Waypoints, 1)
	assert.InDelta(t, 46, doc.Waypoints[0].Latitude, 1e-9)

	_, err = NewGPX(tracking.Feature{ID: "empty", Projection: "EPSG:3857"}, "x")
	assert.Error(t, err)
}

const sampleGPX = `<?xml version="1.0" encoding="UTF-8"?>
<gpx version="1.1" creator="test" xmlns="http://www.topografix.com/GPX/1/1">
  <trk><name>t</name><trkseg>
    <trkpt lat="45.0" lon="5.0"><ele>210</ele><time>2024-06-01T08:00:00Z</time></trkpt>
    <trkpt lat="45.001" lon="5.0"><time>2024-06-01T08:00:10Z</time></trkpt>
  </trkseg></trk>
</gpx>`

func TestLoadTrack(t *testing.T) {
	dir := t.TempDir()

	gpxPath := filepath.Join(dir, "walk.gpx")
	require.NoError(t, os.WriteFile(gpxPath, []byte(sampleGPX), 0644))
	got, err := LoadTrack(gpxPath, geo.WebMercator)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, 210.0, got[0].Elevation)
	assert.Equal(t, 0.0, got[1].Elevation)
	assert.True(t, math.IsNaN(got[0].Accuracy))
	ll := geo.WebMercator.ToGeographic(got[1].Point())
	assert.InDelta(t, 45.001, ll[1], 1e-9)

	jsonPath := filepath.Join(dir, "walk.geojson")
	require.NoError(t, os.WriteFile(jsonPath, []byte(`{"type":"LineString","coordinates":[[5,45],[5,45.001],[5,45.002]]}`), 0644))
	got, err = LoadTrack(jsonPath, geo.WGS84)
	require.NoError(t, err)
	assert.Equal(t, []orb.Point{{5, 45}, {5, 45.001}, {5, 45.002}}, track.Points(got))

	_, err = LoadTrack(filepath.Join(dir, "walk.kml"), geo.WGS84)
	assert.Error(t, err)
}

func TestParseGeoJSON(t *testing.T) {
	tests := []struct {
		name string
		data string
		want []orb.Point
	}{
		{
			"feature collection",
			`{"type":"FeatureCollection","features":[
				{"type":"Feature","properties":{},"geometry":{"type":"Point","coordinates":[1,2]}},
				{"type":"Feature","properties":{},"geometry":{"type":"LineString","coordinates":[[3,4],[5,6]]}}]}`,
			[]orb.Point{{1, 2}, {3, 4}, {5, 6}},
		},
		{
			"feature with polygon",
			`{"type":"Feature","properties":{},"geometry":{"type":"Polygon","coordinates":[[[0,0],[1,0],[1,1],[0,0]]]}}`,
			[]orb.Point{{0, 0}, {1, 0}, {1, 1}},
		},
		{
			"multipoint geometry",
			`{"type":"MultiPoint","coordinates":[[9,9],[8,8]]}`,
			[]orb.Point{{9, 9}, {8, 8}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseGeoJSON([]byte(tt.data), geo.WGS84)
			require.NoError(t, err)
			assert.Equal(t, tt.want, track.Points(got))
		})
	}

	_, err := ParseGeoJSON([]byte(`{"type":"FeatureCollection","features":[]}`), geo.WGS84)
	assert.ErrorIs(t, err, ErrNoPositions)
	_, err = ParseGeoJSON([]byte(`not json`), geo.WGS84)
	assert.Error(t, err)
}
