// Package geotrack wires configuration into a ready-to-use tracker, view
// and sensors, and serves a health endpoint for long-running sessions.
package geotrack

import (
	"fmt"
	"time"

	"github.com/theoremus-urban-solutions/geotrack/config"
	"github.com/theoremus-urban-solutions/geotrack/feed"
	"github.com/theoremus-urban-solutions/geotrack/geo"
	"github.com/theoremus-urban-solutions/geotrack/simulator"
	"github.com/theoremus-urban-solutions/geotrack/tracking"
	"github.com/theoremus-urban-solutions/geotrack/view"
)

// NewView builds a headless view from the view section.
func NewView(cfg config.ViewConfig) (*view.Headless, error) {
	proj, err := geo.Lookup(cfg.Projection)
	if err != nil {
		return nil, fmt.Errorf("view config: %w", err)
	}
	v := view.NewHeadless(proj, cfg.Width, cfg.Height)
	v.SetZoom(cfg.Zoom)
	return v, nil
}

// NewTracker builds a tracker for v from the tracker section of cfg.
// sensor may be nil.
func NewTracker(cfg config.AppConfig, v view.View, sensor tracking.Sensor) (*tracking.Tracker, error) {
	opts, err := tracking.OptionsFromConfig(cfg.Tracker)
	if err != nil {
		return nil, err
	}
	if v != nil {
		opts.Projection = v.Projection()
	} else {
		proj, err := geo.Lookup(cfg.View.Projection)
		if err != nil {
			return nil, fmt.Errorf("view config: %w", err)
		}
		opts.Projection = proj
	}
	return tracking.New(v, sensor, opts), nil
}

// NewFeedSource builds the GTFS-RT vehicle sensor, or returns nil when no
// feed is configured.
func NewFeedSource(cfg config.FeedConfig, proj geo.Projection) *feed.Source {
	if cfg.VehiclePositionsURL == "" {
		return nil
	}
	return feed.NewSource(cfg, proj, nil)
}

// SimulatorOptions converts the simulator section.
func SimulatorOptions(cfg config.SimulatorConfig) simulator.Options {
	opts := simulator.DefaultOptions()
	if cfg.DelayMS > 0 {
		opts.Delay = time.Duration(cfg.DelayMS) * time.Millisecond
	}
	if cfg.Accuracy > 0 {
		opts.Accuracy = cfg.Accuracy
	}
	opts.Repeat = cfg.RepeatOrDefault()
	return opts
}
