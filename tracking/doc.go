// Package tracking turns a stream of location fixes into a drawn geometry
// and keeps a map view following the device.
//
// This package handles:
//   - Accuracy gating of incoming fixes (AccuracyGate)
//   - Recording accepted fixes into a Point, LineString or Polygon sketch
//   - Distance-tolerance simplification of the recorded path
//   - Camera follow policies (FollowController)
//   - Start/stop and pause/resume of recording (Tracker)
//   - Replaying tracks through the same pipeline (Tracker.Simulate)
//
// The Tracker owns the recorded path. Observers subscribe with On and
// receive DrawStart, Drawing, DrawEnd, Tracking and FollowModeChanged
// events after each state change; events carry snapshots, never live
// slices.
package tracking
