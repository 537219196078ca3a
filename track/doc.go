// Package track models positional fixes and the recorded path built from them.
//
// Position is an immutable XYZM record (coordinate, elevation, time) with
// optional accuracy, heading and speed. Store is the append-only path owned
// by the tracker, and Simplify reduces a path so that retained points are at
// least a real-world tolerance apart.
//
// Coordinates are kept in the view's frame. Simplification converts a copy
// to geographic degrees first (see SimplifyIn) because tolerances are given
// in meters.
package track
