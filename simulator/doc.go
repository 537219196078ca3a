// Package simulator replays an ordered list of coordinates as synthetic
// fixes at a fixed cadence.
//
// A Simulator stands in for a live location sensor: every fix it produces
// goes through the same deliver callback a sensor subscription would use,
// so the downstream pipeline cannot tell the two apart.
//
//	sim := simulator.New(tracker.HandleFix, timeutil.RealClock{})
//	sim.Simulate(track.FromPoints(coords), simulator.Options{
//	    Delay:    time.Second,
//	    Accuracy: 10,
//	    Repeat:   false,
//	})
//	<-sim.Done()
//
// Step delivers the next fix synchronously and is what tests use to walk a
// run without a timer.
package simulator
