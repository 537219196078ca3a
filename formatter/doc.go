// Package formatter serializes drawn tracks and reads tracks to replay.
//
// This package is organized into:
// - geojson.go: completed feature and live sketch as GeoJSON (EPSG:4326)
// - gpx.go: completed feature as a GPX 1.1 track
// - read.go: GPX and GeoJSON files as replayable positions
//
// Output coordinates are always geographic; inputs are converted into the
// caller's map projection.
package formatter
