package tracking

import (
	"fmt"

	"github.com/theoremus-urban-solutions/geotrack/config"
	"github.com/theoremus-urban-solutions/geotrack/geo"
	"github.com/theoremus-urban-solutions/geotrack/internal/timeutil"
)

// Options configures a Tracker.
type Options struct {
	DrawingKind DrawingKind

	// AccuracyThreshold in meters for the default gate and the indicator bands.
	AccuracyThreshold float64
	// Accept replaces the threshold test when set; see AccuracyGate.Predicate.
	Accept func(sensor any) bool

	// ToleranceMeters below which consecutive points are merged; 0 keeps all.
	ToleranceMeters float64

	FollowMode   FollowMode
	TrackingZoom float64
	MinZoom      float64

	RecordedAttributes Attribute

	// Projection of fix coordinates when the tracker has no view.
	Projection geo.Projection

	// Clock drives simulations; the real clock when nil.
	Clock timeutil.Clock
}

func DefaultOptions() Options {
	return Options{
		DrawingKind:        KindLineString,
		AccuracyThreshold:  20,
		ToleranceMeters:    5,
		FollowMode:         FollowLocked,
		MinZoom:            16,
		RecordedAttributes: AllAttributes,
		Projection:         geo.WebMercator,
	}
}

// OptionsFromConfig converts a validated tracker section.
func OptionsFromConfig(cfg config.TrackerConfig) (Options, error) {
	opts := DefaultOptions()

	kind, err := ParseDrawingKind(cfg.DrawingKind)
	if err != nil {
		return Options{}, fmt.Errorf("tracker config: %w", err)
	}
	mode, err := ParseFollowMode(cfg.FollowMode)
	if err != nil {
		return Options{}, fmt.Errorf("tracker config: %w", err)
	}
	attrs, err := ParseAttributes(cfg.RecordedAttributes)
	if err != nil {
		return Options{}, fmt.Errorf("tracker config: %w", err)
	}

	opts.DrawingKind = kind
	opts.FollowMode = mode
	opts.RecordedAttributes = attrs
	opts.AccuracyThreshold = cfg.AccuracyThreshold
	opts.ToleranceMeters = cfg.ToleranceMeters
	opts.TrackingZoom = cfg.TrackingZoom
	opts.MinZoom = cfg.MinZoom
	return opts, nil
}
