package formatter

import (
	"fmt"

	"github.com/tkrajina/gpxgo/gpx"

	"github.com/theoremus-urban-solutions/geotrack/geo"
	"github.com/theoremus-urban-solutions/geotrack/track"
	"github.com/theoremus-urban-solutions/geotrack/tracking"
)

const gpxCreator = "geotrack"

// NewGPX converts a completed drawing to a GPX document. A Point drawing
// becomes a waypoint, other kinds a single-segment track of the recorded
// positions.
func NewGPX(f tracking.Feature, name string) (*gpx.GPX, error) {
	if len(f.Positions) == 0 {
		return nil, fmt.Errorf("feature %s has no positions", f.ID)
	}
	proj, err := geo.Lookup(f.Projection)
	if err != nil {
		return nil, err
	}

	doc := &gpx.GPX{Version: "1.1", Creator: gpxCreator, Name: name}
	if f.Kind == tracking.KindPoint {
		doc.Waypoints = []gpx.GPXPoint{gpxPoint(proj, f.Positions[len(f.Positions)-1])}
		return doc, nil
	}

	seg := gpx.GPXTrackSegment{Points: make([]gpx.GPXPoint, 0, len(f.Positions))}
	for _, p := range f.Positions {
		seg.Points = append(seg.Points, gpxPoint(proj, p))
	}
	doc.Tracks = []gpx.GPXTrack{{
		Name:     name,
		Type:     f.Kind.String(),
		Segments: []gpx.GPXTrackSegment{seg},
	}}
	return doc, nil
}

// FeatureGPX serializes a completed drawing as indented GPX 1.1.
func FeatureGPX(f tracking.Feature, name string) ([]byte, error) {
	doc, err := NewGPX(f, name)
	if err != nil {
		return nil, err
	}
	return doc.ToXml(gpx.ToXmlParams{Version: "1.1", Indent: true})
}

func gpxPoint(proj geo.Projection, p track.Position) gpx.GPXPoint {
	ll := proj.ToGeographic(p.Point())
	pt := gpx.GPXPoint{
		Point: gpx.Point{
			Latitude:  ll[1],
			Longitude: ll[0],
			Elevation: *gpx.NewNullableFloat64(p.Elevation),
		},
		Timestamp: p.Time,
	}
	return pt
}
