package tracking

import (
	"sync"
	"testing"
	"time"

	"github.com/paulmach/orb"

	"github.com/theoremus-urban-solutions/geotrack/geo"
	"github.com/theoremus-urban-solutions/geotrack/internal"
	"github.com/theoremus-urban-solutions/geotrack/track"
)

func init() {
	internal.SetLogger(nil)
}

var epoch = time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)

// fix returns a fix at x,y with the given accuracy, i seconds after epoch.
func fix(i int, x, y, accuracy float64) track.Fix {
	f := track.NewFix(orb.Point{x, y}, epoch.Add(time.Duration(i)*time.Second))
	f.Accuracy = accuracy
	return f
}

// geographicOptions draws in EPSG:4326 so test coordinates read as lon/lat.
func geographicOptions() Options {
	opts := DefaultOptions()
	opts.Projection = geo.WGS84
	opts.FollowMode = FollowOff
	return opts
}

type fakeSensor struct {
	mu     sync.Mutex
	cb     func(track.Fix)
	subs   int
	unsubs int
}

func (s *fakeSensor) Subscribe(cb func(track.Fix)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cb = cb
	s.subs++
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.cb = nil
		s.unsubs++
	}
}

func (s *fakeSensor) emit(f track.Fix) {
	s.mu.Lock()
	cb := s.cb
	s.mu.Unlock()
	if cb != nil {
		cb(f)
	}
}

type eventLog struct {
	mu     sync.Mutex
	events []Event
	ch     chan Event
}

func record(t *Tracker) *eventLog {
	l := &eventLog{ch: make(chan Event, 256)}
	t.On(func(e Event) {
		l.mu.Lock()
		l.events = append(l.events, e)
		l.mu.Unlock()
		l.ch <- e
	})
	return l
}

func (l *eventLog) kinds() []EventKind {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]EventKind, len(l.events))
	for i, e := range l.events {
		out[i] = e.Kind()
	}
	return out
}

func (l *eventLog) count(k EventKind) int {
	n := 0
	for _, got := range l.kinds() {
		if got == k {
			n++
		}
	}
	return n
}

// waitFor blocks until an event of kind k arrives.
func (l *eventLog) waitFor(t *testing.T, k EventKind) Event {
	t.Helper()
	deadline := time.After(2 * time.Second)
	for {
		select {
		case e := <-l.ch:
			if e.Kind() == k {
				return e
			}
		case <-deadline:
			t.Fatalf("timed out waiting for %s event", k)
			return nil
		}
	}
}
