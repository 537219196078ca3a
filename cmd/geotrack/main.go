package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	lib "github.com/theoremus-urban-solutions/geotrack"
	"github.com/theoremus-urban-solutions/geotrack/config"
	"github.com/theoremus-urban-solutions/geotrack/formatter"
	"github.com/theoremus-urban-solutions/geotrack/tracking"
	"github.com/theoremus-urban-solutions/geotrack/view"
)

func main() {
	mode := flag.String("mode", "simulate", "simulate|feed")
	configPath := flag.String("config", "", "config file (default geotrack.yml or config.yml)")
	trackPath := flag.String("track", "", "GPX or GeoJSON track to replay (simulate mode)")
	instant := flag.Bool("instant", false, "replay without waiting between fixes (simulate mode)")
	format := flag.String("format", "geojson", "geojson|gpx")
	name := flag.String("name", "geotrack", "track name in GPX output")
	kind := flag.String("kind", "", "Point|LineString|Polygon (overrides config)")
	vehiclePositions := flag.String("vehiclePositions", "", "GTFS-RT VehiclePositions URL or file (overrides config)")
	vehicleID := flag.String("vehicle", "", "vehicle id to follow (overrides config)")
	duration := flag.Duration("duration", 0, "stop recording after this long (feed mode; 0 = until interrupted)")
	flag.Parse()

	lib.InitLogging()
	// stdout carries the drawn feature
	log.SetOutput(os.Stderr)
	var paths []string
	if *configPath != "" {
		paths = append(paths, *configPath)
	}
	if err := config.LoadAppConfig(paths...); err != nil {
		if !errors.Is(err, config.ErrNoConfig) || *configPath != "" {
			log.Fatalf("config: %v", err)
		}
		log.Printf("no config file found, using defaults")
	}
	cfg := config.Config
	if *kind != "" {
		cfg.Tracker.DrawingKind = *kind
	}
	if *vehiclePositions != "" {
		cfg.Feed.VehiclePositionsURL = *vehiclePositions
	}
	if *vehicleID != "" {
		cfg.Feed.VehicleID = *vehicleID
	}

	v, err := lib.NewView(cfg.View)
	if err != nil {
		log.Fatalf("%v", err)
	}

	var feature *tracking.Feature
	switch *mode {
	case "simulate":
		if *trackPath == "" {
			log.Fatalf("simulate mode needs -track")
		}
		feature, err = runSimulation(cfg, v, *trackPath, *instant)
	case "feed":
		feature, err = runFeed(cfg, v, *duration)
	default:
		err = fmt.Errorf("unknown mode %q", *mode)
	}
	if err != nil {
		log.Fatalf("%v", err)
	}
	if feature == nil {
		log.Printf("nothing was drawn")
		return
	}

	var buf []byte
	switch *format {
	case "gpx":
		buf, err = formatter.FeatureGPX(*feature, *name)
	case "geojson":
		buf, err = formatter.FeatureGeoJSON(*feature)
	default:
		err = fmt.Errorf("unknown format %q", *format)
	}
	if err != nil {
		log.Fatalf("%v", err)
	}
	fmt.Println(string(buf))
}

// collect logs tracking events and keeps the feature handed out by DrawEnd.
func collect(t *tracking.Tracker) func() *tracking.Feature {
	var feature *tracking.Feature
	t.On(func(e tracking.Event) {
		switch ev := e.(type) {
		case tracking.DrawStart:
			log.Printf("drawing %s", ev.DrawingKind)
		case tracking.Tracking:
			log.Printf("fix at %s accuracy=%s recorded=%t", ev.Position.Time.Format(time.RFC3339), ev.Band, ev.Recorded)
		case tracking.FollowModeChanged:
			log.Printf("follow mode %s (lost=%t)", ev.Mode, ev.Lost)
		case tracking.DrawEnd:
			f := ev.Feature
			feature = &f
		}
	})
	return func() *tracking.Feature { return feature }
}

func runSimulation(cfg config.AppConfig, v view.View, path string, instant bool) (*tracking.Feature, error) {
	positions, err := formatter.LoadTrack(path, v.Projection())
	if err != nil {
		return nil, err
	}
	t, err := lib.NewTracker(cfg, v, nil)
	if err != nil {
		return nil, err
	}
	result := collect(t)
	lib.StartServer(t)

	opts := lib.SimulatorOptions(cfg.Simulator)
	t.Start()
	if instant {
		opts.Repeat = false
		t.LoadSimulation(positions, opts)
		for t.StepSimulation() {
		}
	} else {
		ctx, cancel := context.WithCancel(context.Background())
		t.Simulate(positions, opts)
		go func() {
			<-t.SimulationDone()
			cancel()
		}()
		lib.WaitForShutdown(ctx)
	}
	t.Stop()

	sum := t.Summary()
	log.Printf("replayed %d positions, %.1f m", sum.Points, sum.LengthMeters)
	return result(), nil
}

func runFeed(cfg config.AppConfig, v view.View, duration time.Duration) (*tracking.Feature, error) {
	src := lib.NewFeedSource(cfg.Feed, v.Projection())
	if src == nil {
		return nil, errors.New("feed mode needs feed.vehiclePositionsURL or -vehiclePositions")
	}
	t, err := lib.NewTracker(cfg, v, src)
	if err != nil {
		return nil, err
	}
	result := collect(t)
	lib.StartServer(t)

	ctx := context.Background()
	if duration > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, duration)
		defer cancel()
	}
	t.Start()
	lib.WaitForShutdown(ctx)
	t.Stop()
	return result(), nil
}
