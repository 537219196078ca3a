package config

// TrackerConfig contains the drawing and follow options of the tracker
type TrackerConfig struct {
	DrawingKind        string   `yaml:"drawingKind" validate:"oneof=Point LineString Polygon"`
	AccuracyThreshold  float64  `yaml:"accuracyThreshold" validate:"gt=0"`
	ToleranceMeters    float64  `yaml:"toleranceMeters" validate:"gte=0"`
	FollowMode         string   `yaml:"followMode" validate:"oneof=off locked position auto visible"`
	TrackingZoom       float64  `yaml:"trackingZoom" validate:"gte=0,lte=28"`
	MinZoom            float64  `yaml:"minZoom" validate:"gte=0,lte=28"`
	RecordedAttributes []string `yaml:"recordedAttributes" validate:"dive,oneof=heading accuracy elevation speed"`
}

// SimulatorConfig contains track replay options
type SimulatorConfig struct {
	DelayMS  int     `yaml:"delayMS" validate:"gte=0"`
	Accuracy float64 `yaml:"accuracy" validate:"gte=0"`
	Repeat   *bool   `yaml:"repeat"`
}

// ViewConfig describes the headless map view used by the CLI
type ViewConfig struct {
	Projection string  `yaml:"projection" validate:"required"`
	Width      int     `yaml:"width" validate:"gt=0"`
	Height     int     `yaml:"height" validate:"gt=0"`
	Zoom       float64 `yaml:"zoom" validate:"gte=0,lte=28"`
}

// FeedConfig contains GTFS-Realtime vehicle position feed configuration
type FeedConfig struct {
	VehiclePositionsURL string  `yaml:"vehiclePositionsURL" validate:"omitempty"`
	VehicleID           string  `yaml:"vehicleID" validate:"required_with=VehiclePositionsURL"`
	ReadIntervalMS      int     `yaml:"readIntervalMS" validate:"gte=0"`
	TimeoutMS           int     `yaml:"timeoutMS" validate:"gte=0"`
	Accuracy            float64 `yaml:"accuracy" validate:"gte=0"`
}

// ServerConfig contains health endpoint configuration
type ServerConfig struct {
	Port int `yaml:"port" validate:"gte=0"`
}

// AppConfig is the root configuration structure
type AppConfig struct {
	Tracker   TrackerConfig   `yaml:"tracker"`
	Simulator SimulatorConfig `yaml:"simulator"`
	View      ViewConfig      `yaml:"view"`
	Feed      FeedConfig      `yaml:"feed"`
	Server    ServerConfig    `yaml:"server"`
}

// RepeatOrDefault reports whether simulated tracks loop; unset means true.
func (s SimulatorConfig) RepeatOrDefault() bool {
	return s.Repeat == nil || *s.Repeat
}
