package formatter

import (
	"fmt"
	"math"
	"time"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/paulmach/orb/project"

	"github.com/theoremus-urban-solutions/geotrack/geo"
	"github.com/theoremus-urban-solutions/geotrack/track"
	"github.com/theoremus-urban-solutions/geotrack/tracking"
)

// toGeographic returns a geographic copy of g; g itself is left untouched.
func toGeographic(proj geo.Projection, g orb.Geometry) orb.Geometry {
	if g == nil {
		return nil
	}
	return project.Geometry(orb.Clone(g), proj.ToGeographic)
}

// NewFeature converts a completed drawing to a GeoJSON feature.
func NewFeature(f tracking.Feature) (*geojson.Feature, error) {
	if f.Geometry == nil {
		return nil, fmt.Errorf("feature %s has no geometry", f.ID)
	}
	proj, err := geo.Lookup(f.Projection)
	if err != nil {
		return nil, err
	}

	gf := geojson.NewFeature(toGeographic(proj, f.Geometry))
	gf.ID = f.ID
	gf.Properties["kind"] = f.Kind.String()
	for k, v := range f.Attributes {
		gf.Properties[k] = v
	}
	if start, end, ok := timeSpan(f.Positions); ok {
		gf.Properties["start"] = start.UTC().Format(time.RFC3339)
		gf.Properties["end"] = end.UTC().Format(time.RFC3339)
	}
	return gf, nil
}

// FeatureGeoJSON serializes a completed drawing.
func FeatureGeoJSON(f tracking.Feature) ([]byte, error) {
	gf, err := NewFeature(f)
	if err != nil {
		return nil, err
	}
	return gf.MarshalJSON()
}

// SketchCollection renders the live sketch as up to three features told
// apart by their "role" property: accuracy, path and position.
func SketchCollection(s tracking.Sketch, proj geo.Projection) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()

	if len(s.Accuracy.Geometry) > 0 {
		f := geojson.NewFeature(toGeographic(proj, s.Accuracy.Geometry))
		f.Properties["role"] = "accuracy"
		f.Properties["band"] = s.Accuracy.Band.String()
		if !math.IsNaN(s.Accuracy.Accuracy) {
			f.Properties["accuracy"] = s.Accuracy.Accuracy
		}
		fc.Append(f)
	}

	if g := s.Geometry(); g != nil {
		f := geojson.NewFeature(toGeographic(proj, g))
		f.Properties["role"] = "path"
		f.Properties["kind"] = s.Kind.String()
		for k, v := range s.Attributes {
			f.Properties[k] = v
		}
		fc.Append(f)
	}

	if s.Marker.Valid {
		f := geojson.NewFeature(toGeographic(proj, s.Marker.Position.Point()))
		f.Properties["role"] = "position"
		if !math.IsNaN(s.Marker.Heading) {
			f.Properties["heading"] = s.Marker.Heading
		}
		fc.Append(f)
	}
	return fc
}

func SketchGeoJSON(s tracking.Sketch, proj geo.Projection) ([]byte, error) {
	return SketchCollection(s, proj).MarshalJSON()
}

func timeSpan(path []track.Position) (start, end time.Time, ok bool) {
	for _, p := range path {
		if p.Time.IsZero() {
			continue
		}
		if !ok || p.Time.Before(start) {
			start = p.Time
		}
		if !ok || p.Time.After(end) {
			end = p.Time
		}
		ok = true
	}
	return start, end, ok
}
