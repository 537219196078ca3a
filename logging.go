package geotrack

import "github.com/theoremus-urban-solutions/geotrack/internal"

// InitLogging sends log output to stdout with microsecond timestamps.
func InitLogging() {
	internal.InitLogging()
}
