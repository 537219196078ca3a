package simulator

import (
	"sync"
	"time"

	"github.com/paulmach/orb"

	"github.com/theoremus-urban-solutions/geotrack/internal/timeutil"
	"github.com/theoremus-urban-solutions/geotrack/track"
)

const (
	DefaultDelay    = time.Second
	DefaultAccuracy = 10.0
)

// Options controls a simulation run.
type Options struct {
	Delay    time.Duration // between fixes; DefaultDelay when zero
	Accuracy float64       // constant accuracy in meters; DefaultAccuracy when zero
	Repeat   bool          // wrap around instead of stopping after the last coordinate
}

// DefaultOptions loops forever at one fix per second.
func DefaultOptions() Options {
	return Options{Delay: DefaultDelay, Accuracy: DefaultAccuracy, Repeat: true}
}

// run is the state of one simulation; it is discarded when the run stops.
type run struct {
	coords []track.Position
	cursor int
	sent   int
	start  time.Time
	opts   Options
	timer  timeutil.Timer
	stop   chan struct{}
	done   chan struct{}
}

// Simulator schedules synthetic fixes. At most one run is active at a time.
type Simulator struct {
	deliver func(track.Fix)
	clock   timeutil.Clock

	mu  sync.Mutex
	cur *run
}

// New returns a simulator that hands every fix to deliver.
func New(deliver func(track.Fix), clock timeutil.Clock) *Simulator {
	if clock == nil {
		clock = timeutil.RealClock{}
	}
	return &Simulator{deliver: deliver, clock: clock}
}

// Simulate cancels any current run and, when coords is non-empty, starts a
// new one on the clock. The first fix is due immediately.
func (s *Simulator) Simulate(coords []track.Position, opts Options) {
	r := s.load(coords, opts)
	if r == nil {
		return
	}
	s.mu.Lock()
	r.timer = s.clock.NewTimer(0)
	s.mu.Unlock()

	go s.loop(r)
}

// Load replaces the current run like Simulate but arms no timer: the run
// only advances through Step.
func (s *Simulator) Load(coords []track.Position, opts Options) {
	s.load(coords, opts)
}

func (s *Simulator) load(coords []track.Position, opts Options) *run {
	s.Stop()
	if len(coords) == 0 {
		return nil
	}
	if opts.Delay <= 0 {
		opts.Delay = DefaultDelay
	}
	if opts.Accuracy <= 0 {
		opts.Accuracy = DefaultAccuracy
	}

	r := &run{
		coords: append([]track.Position(nil), coords...),
		start:  s.clock.Now(),
		opts:   opts,
		stop:   make(chan struct{}),
		done:   make(chan struct{}),
	}
	s.mu.Lock()
	s.cur = r
	s.mu.Unlock()
	return r
}

// SimulatePoints is Simulate for bare coordinates.
func (s *Simulator) SimulatePoints(coords []orb.Point, opts Options) {
	s.Simulate(track.FromPoints(coords), opts)
}

func (s *Simulator) loop(r *run) {
	for {
		select {
		case <-r.stop:
			return
		case <-r.timer.C():
		}
		if !s.tick(r, true) {
			return
		}
	}
}

// tick delivers the next fix of r. The next timer is armed before the fix
// is delivered so that observers of a delivery can advance a mock clock.
func (s *Simulator) tick(r *run, rearm bool) bool {
	s.mu.Lock()
	if s.cur != r {
		s.mu.Unlock()
		return false
	}
	fix := s.fixAt(r)
	r.cursor++
	r.sent++
	if r.opts.Repeat {
		r.cursor %= len(r.coords)
	}
	more := r.cursor < len(r.coords)
	if !more {
		s.finish(r, false)
	} else if rearm && r.timer != nil {
		r.timer.Reset(r.opts.Delay)
	}
	s.mu.Unlock()

	s.deliver(fix)
	if !more {
		close(r.done)
	}
	return more
}

// fixAt stamps the n-th fix of a run at start + n*Delay, whether it was
// delivered by the timer or by Step.
func (s *Simulator) fixAt(r *run) track.Fix {
	p := r.coords[r.cursor]
	fix := track.NewFix(p.Point(), r.start.Add(time.Duration(r.sent)*r.opts.Delay))
	fix.Elevation = p.Elevation
	fix.Accuracy = r.opts.Accuracy
	fix.Sensor = r
	return fix
}

// finish tears r down; callers hold s.mu. A run that ends on its own
// closes done only after its last fix has been delivered.
func (s *Simulator) finish(r *run, closeDone bool) {
	if r.timer != nil {
		r.timer.Stop()
	}
	select {
	case <-r.stop:
	default:
		close(r.stop)
	}
	if closeDone {
		close(r.done)
	}
	if s.cur == r {
		s.cur = nil
	}
}

// Step delivers the next fix of the current run synchronously, bypassing
// the timer. It reports whether the run has more fixes.
func (s *Simulator) Step() bool {
	s.mu.Lock()
	r := s.cur
	s.mu.Unlock()
	if r == nil {
		return false
	}
	return s.tick(r, false)
}

// Stop cancels the current run. No fix is delivered by that run once Stop
// has returned, except one whose delivery was already under way.
func (s *Simulator) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cur != nil {
		s.finish(s.cur, true)
	}
}

// Running reports whether a run is active.
func (s *Simulator) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cur != nil
}

// Done returns a channel closed when the current run ends, either by
// running out of coordinates or by Stop. With no run it is already closed.
func (s *Simulator) Done() <-chan struct{} {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cur == nil {
		ch := make(chan struct{})
		close(ch)
		return ch
	}
	return s.cur.done
}

// IsSimulated reports whether a fix was produced by a simulator.
func IsSimulated(f track.Fix) bool {
	_, ok := f.Sensor.(*run)
	return ok
}
