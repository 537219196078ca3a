// Package geo holds the coordinate-frame and distance helpers shared by the
// tracker.
//
// It contains:
//   - Projection: conversion between a view frame and EPSG:4326
//   - Distance: great-circle distance in meters between geographic points
//   - Accuracy circles: polygons approximating a fix's accuracy radius
//
// Projection math is delegated to github.com/paulmach/orb/project and the
// spherical formulas to github.com/paulmach/orb/geo.
package geo
