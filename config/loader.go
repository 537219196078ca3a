package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// ErrNoConfig is returned when none of the candidate files exist.
var ErrNoConfig = errors.New("no configuration file found")

// DefaultPaths are tried in order when LoadAppConfig gets no paths.
var DefaultPaths = []string{"geotrack.yml", "config.yml"}

// Config is the global application configuration
var Config = Default()

// Default returns the configuration used when a field is not set.
func Default() AppConfig {
	repeat := true
	return AppConfig{
		Tracker: TrackerConfig{
			DrawingKind:        "LineString",
			AccuracyThreshold:  20,
			ToleranceMeters:    5,
			FollowMode:         "locked",
			MinZoom:            16,
			RecordedAttributes: []string{"heading", "accuracy", "elevation", "speed"},
		},
		Simulator: SimulatorConfig{
			DelayMS:  1000,
			Accuracy: 10,
			Repeat:   &repeat,
		},
		View: ViewConfig{
			Projection: "EPSG:3857",
			Width:      800,
			Height:     600,
			Zoom:       12,
		},
		Feed: FeedConfig{
			ReadIntervalMS: 5000,
			TimeoutMS:      10000,
			Accuracy:       10,
		},
	}
}

// LoadAppConfig loads and validates the first readable file among paths
// (DefaultPaths when empty) into Config.
func LoadAppConfig(paths ...string) error {
	if len(paths) == 0 {
		paths = DefaultPaths
	}
	var data []byte
	var err error
	for _, p := range paths {
		data, err = os.ReadFile(p)
		if err == nil {
			break
		}
	}
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("%w: tried %v", ErrNoConfig, paths)
		}
		return err
	}
	cfg, err := Parse(data)
	if err != nil {
		return err
	}
	Config = cfg
	return nil
}

// Parse decodes YAML over the defaults and validates the result.
func Parse(data []byte) (AppConfig, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return AppConfig{}, fmt.Errorf("parse config: %w", err)
	}
	if err := Validate(cfg); err != nil {
		return AppConfig{}, err
	}
	return cfg, nil
}

// Validate checks every section against its struct tags.
func Validate(cfg AppConfig) error {
	v := validator.New()
	sections := []struct {
		name string
		s    any
	}{
		{"tracker", cfg.Tracker},
		{"simulator", cfg.Simulator},
		{"view", cfg.View},
		{"feed", cfg.Feed},
		{"server", cfg.Server},
	}
	for _, sec := range sections {
		if err := v.Struct(sec.s); err != nil {
			return fmt.Errorf("invalid %s config: %w", sec.name, err)
		}
	}
	return nil
}
