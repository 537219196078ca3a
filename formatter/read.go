package formatter

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/tkrajina/gpxgo/gpx"

	"github.com/theoremus-urban-solutions/geotrack/geo"
	"github.com/theoremus-urban-solutions/geotrack/track"
)

var ErrNoPositions = errors.New("no positions in track file")

// LoadTrack reads a .gpx or .geojson/.json file into positions in proj.
func LoadTrack(path string, proj geo.Projection) ([]track.Position, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".gpx":
		doc, err := gpx.ParseFile(path)
		if err != nil {
			return nil, fmt.Errorf("read GPX file: %w", err)
		}
		return fromGPX(doc, proj)
	case ".geojson", ".json":
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		return ParseGeoJSON(data, proj)
	}
	return nil, fmt.Errorf("unsupported track file %q", path)
}

// ParseGPX returns every track point, then route points, then waypoints.
func ParseGPX(data []byte, proj geo.Projection) ([]track.Position, error) {
	doc, err := gpx.ParseBytes(data)
	if err != nil {
		return nil, fmt.Errorf("parse GPX: %w", err)
	}
	return fromGPX(doc, proj)
}

func fromGPX(doc *gpx.GPX, proj geo.Projection) ([]track.Position, error) {
	var out []track.Position
	add := func(p gpx.GPXPoint) {
		pos := track.Position{
			Time:     p.Timestamp,
			Accuracy: math.NaN(),
			Heading:  math.NaN(),
			Speed:    math.NaN(),
		}
		c := proj.FromGeographic(orb.Point{p.Longitude, p.Latitude})
		pos.X, pos.Y = c[0], c[1]
		if p.Elevation.NotNull() {
			pos.Elevation = p.Elevation.Value()
		}
		out = append(out, pos)
	}

	for _, trk := range doc.Tracks {
		for _, seg := range trk.Segments {
			for _, p := range seg.Points {
				add(p)
			}
		}
	}
	for _, rte := range doc.Routes {
		for _, p := range rte.Points {
			add(p)
		}
	}
	for _, p := range doc.Waypoints {
		add(p)
	}
	if len(out) == 0 {
		return nil, ErrNoPositions
	}
	return out, nil
}

// ParseGeoJSON accepts a FeatureCollection, a Feature or a bare geometry.
// Vertices of every supported geometry are concatenated in order; polygon
// rings lose their closing vertex.
func ParseGeoJSON(data []byte, proj geo.Projection) ([]track.Position, error) {
	var geoms []orb.Geometry
	if fc, err := geojson.UnmarshalFeatureCollection(data); err == nil {
		for _, f := range fc.Features {
			geoms = append(geoms, f.Geometry)
		}
	} else if f, err := geojson.UnmarshalFeature(data); err == nil {
		geoms = append(geoms, f.Geometry)
	} else {
		g, err := geojson.UnmarshalGeometry(data)
		if err != nil {
			return nil, fmt.Errorf("parse GeoJSON: %w", err)
		}
		geoms = append(geoms, g.Geometry())
	}

	var pts []orb.Point
	for _, g := range geoms {
		pts = append(pts, vertices(g)...)
	}
	if len(pts) == 0 {
		return nil, ErrNoPositions
	}
	return track.FromPoints(geo.FromGeographic(proj, pts)), nil
}

func vertices(g orb.Geometry) []orb.Point {
	switch g := g.(type) {
	case orb.Point:
		return []orb.Point{g}
	case orb.MultiPoint:
		return g
	case orb.LineString:
		return g
	case orb.MultiLineString:
		var out []orb.Point
		for _, ls := range g {
			out = append(out, ls...)
		}
		return out
	case orb.Polygon:
		if len(g) == 0 {
			return nil
		}
		ring := g[0]
		if len(ring) > 1 && ring[0] == ring[len(ring)-1] {
			ring = ring[:len(ring)-1]
		}
		return ring
	}
	return nil
}
