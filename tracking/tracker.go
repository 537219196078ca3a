package tracking

import (
	"math"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/theoremus-urban-solutions/geotrack/geo"
	"github.com/theoremus-urban-solutions/geotrack/internal"
	"github.com/theoremus-urban-solutions/geotrack/simulator"
	"github.com/theoremus-urban-solutions/geotrack/track"
	"github.com/theoremus-urban-solutions/geotrack/view"
)

// Sensor is a source of live fixes. The callback may be invoked from any
// goroutine. unsubscribe stops further callbacks but must not wait for one
// in progress: Stop may run inside that callback. A late callback is
// dropped by the tracker.
type Sensor interface {
	Subscribe(func(track.Fix)) (unsubscribe func())
}

type source int

const (
	fromSensor source = iota
	fromSimulator
)

// Tracker records fixes from a sensor or a simulation into a sketch and
// drives the view. All methods are safe for concurrent use.
type Tracker struct {
	view   view.View
	sensor Sensor
	opts   Options
	gate   AccuracyGate
	follow *FollowController

	mu          sync.Mutex
	state       TrackingState
	session     uint64 // bumped by Start and Stop
	simSession  uint64 // bumped whenever a simulation is replaced or cancelled
	sim         *simulator.Simulator
	path        *track.Store
	sketch      Sketch
	unsubscribe func()

	listeners  map[int]Listener
	listenerID int
}

// New returns an inactive tracker. v and sensor may be nil: without a view
// no camera is moved and coordinates are taken in opts.Projection.
func New(v view.View, sensor Sensor, opts Options) *Tracker {
	if opts.Projection == nil {
		opts.Projection = geo.WebMercator
	}
	t := &Tracker{
		view:   v,
		sensor: sensor,
		opts:   opts,
		gate:   AccuracyGate{Threshold: opts.AccuracyThreshold, Predicate: opts.Accept},
		follow: NewFollowController(opts.FollowMode, opts.TrackingZoom, opts.MinZoom),
		path:   track.NewStore(),
		sketch: Sketch{Kind: opts.DrawingKind},

		listeners: map[int]Listener{},
	}
	t.resetSketch()
	return t
}

// On registers l for every subsequent event and returns a func removing it.
func (t *Tracker) On(l Listener) (remove func()) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.listenerID++
	id := t.listenerID
	t.listeners[id] = l
	return func() {
		t.mu.Lock()
		delete(t.listeners, id)
		t.mu.Unlock()
	}
}

func (t *Tracker) projection() geo.Projection {
	if t.view != nil {
		return t.view.Projection()
	}
	return t.opts.Projection
}

// Start begins recording with an empty path. It is a no-op while active.
func (t *Tracker) Start() {
	t.mu.Lock()
	if t.state.Active() {
		t.mu.Unlock()
		return
	}
	t.state = Recording
	t.session++
	session := t.session
	t.path.Reset()
	t.resetSketch()
	t.follow.Reset()
	events := []Event{DrawStart{DrawingKind: t.opts.DrawingKind}}
	listeners := t.listenersLocked()
	t.mu.Unlock()

	internal.Logf("tracking: started recording %s", t.opts.DrawingKind)
	if t.sensor != nil {
		// subscribe unlocked: a sensor may deliver synchronously
		unsub := t.sensor.Subscribe(func(f track.Fix) {
			t.receive(f, fromSensor, session)
		})
		t.mu.Lock()
		if t.session == session && t.state.Active() {
			t.unsubscribe = unsub
			unsub = nil
		}
		t.mu.Unlock()
		if unsub != nil {
			unsub()
		}
	}
	dispatch(listeners, events)
}

// Stop ends recording, tears down the sensor subscription and any
// simulation, and emits DrawEnd when a geometry was drawn. No fix is
// processed after Stop returns.
func (t *Tracker) Stop() {
	t.mu.Lock()
	if !t.state.Active() {
		t.mu.Unlock()
		return
	}
	t.state = Inactive
	t.session++
	t.cancelSimulationLocked()
	unsub := t.unsubscribe
	t.unsubscribe = nil

	var events []Event
	if f, ok := t.featureLocked(); ok {
		events = append(events, DrawEnd{Feature: f})
	}
	t.resetSketch()
	t.follow.Reset()
	recorded := t.path.Len()
	listeners := t.listenersLocked()
	t.mu.Unlock()

	if unsub != nil {
		unsub()
	}
	internal.Logf("tracking: stopped, %d positions recorded", recorded)
	dispatch(listeners, events)
}

// Pause suspends or resumes recording. The marker and indicator keep
// tracking while paused. No-op while inactive.
func (t *Tracker) Pause(paused bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.state.Active() {
		return
	}
	if paused {
		t.state = Paused
	} else {
		t.state = Recording
	}
}

func (t *Tracker) IsPaused() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state == Paused
}

func (t *Tracker) State() TrackingState {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state
}

// HandleFix feeds a live fix, as a subscribed sensor would.
func (t *Tracker) HandleFix(f track.Fix) {
	t.mu.Lock()
	session := t.session
	t.mu.Unlock()
	t.receive(f, fromSensor, session)
}

func (t *Tracker) receive(f track.Fix, src source, token uint64) {
	t.mu.Lock()
	session := t.session
	events := t.processLocked(f, src, token)
	var listeners []Listener
	if len(events) > 0 {
		listeners = t.listenersLocked()
	}
	t.mu.Unlock()
	t.dispatchSession(session, listeners, events)
}

// dispatchSession is dispatch for the events of one fix. Delivery stops as
// soon as Stop or Start has ended the session the fix was processed in.
func (t *Tracker) dispatchSession(session uint64, listeners []Listener, events []Event) {
	for _, e := range events {
		for _, l := range listeners {
			if !t.inSession(session) {
				return
			}
			l(e)
		}
	}
}

func (t *Tracker) inSession(session uint64) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.session == session
}

func (t *Tracker) processLocked(f track.Fix, src source, token uint64) []Event {
	switch src {
	case fromSensor:
		if token != t.session || t.simulatingLocked() {
			return nil
		}
	case fromSimulator:
		if token != t.simSession {
			return nil
		}
	}
	if !t.state.Active() {
		return nil
	}
	pos, ok := f.Position()
	if !ok {
		internal.Logf("tracking: dropping fix without a valid coordinate")
		return nil
	}

	proj := t.projection()
	t.updateMarker(proj, pos)
	t.updateIndicator(proj, f, pos)

	var events []Event
	recorded := false
	if t.state == Recording && t.gate.Accept(f) {
		if t.opts.DrawingKind == KindPoint {
			t.path.Reset()
		}
		t.path.Append(pos)
		t.rebuildLocked(proj)
		t.sketch.Attributes = t.opts.RecordedAttributes.properties(pos)
		recorded = true
		events = append(events, Drawing{Sketch: t.sketch.clone()})
	}
	events = append(events, Tracking{Fix: f, Position: pos, Band: t.sketch.Accuracy.Band, Recorded: recorded})

	if t.follow.Follow(t.view, pos.Point(), t.sketch.Accuracy.Extent(pos.Point())) {
		internal.Logf("tracking: view moved by user, follow turned off")
		events = append(events, FollowModeChanged{Mode: FollowOff, Following: false, Lost: true})
	}
	return events
}

func (t *Tracker) updateMarker(proj geo.Projection, pos track.Position) {
	m := &t.sketch.Marker
	switch {
	case pos.HasHeading():
		m.Heading = pos.Heading
	case m.Valid && m.Position.Point() != pos.Point():
		m.Heading = geo.Bearing(proj, m.Position.Point(), pos.Point())
	}
	m.Position = pos
	m.Valid = true
}

func (t *Tracker) updateIndicator(proj geo.Projection, f track.Fix, pos track.Position) {
	ind := &t.sketch.Accuracy
	ind.Accuracy = f.Accuracy
	ind.Band = t.gate.Band(f.Accuracy)
	if len(f.AccuracyGeometry) > 0 {
		ind.Geometry = f.AccuracyGeometry
	} else {
		ind.Geometry = geo.AccuracyCircle(proj, pos.Point(), f.Accuracy)
	}
}

func (t *Tracker) rebuildLocked(proj geo.Projection) {
	raw := t.path.Snapshot()
	if t.opts.DrawingKind == KindPoint {
		t.sketch.Path = raw
		return
	}
	t.sketch.Path = track.SimplifyIn(proj, raw, t.opts.ToleranceMeters)
}

func (t *Tracker) resetSketch() {
	t.sketch = Sketch{
		Kind:   t.opts.DrawingKind,
		Marker: Marker{Heading: math.NaN()},
		Accuracy: AccuracyIndicator{
			Accuracy: math.NaN(),
			Band:     BandError,
		},
	}
}

func (t *Tracker) featureLocked() (Feature, bool) {
	g := t.sketch.Geometry()
	if g == nil {
		return Feature{}, false
	}
	s := t.sketch.clone()
	return Feature{
		ID:         uuid.NewString(),
		Kind:       s.Kind,
		Projection: t.projection().Code(),
		Geometry:   g,
		Positions:  s.Path,
		Attributes: s.Attributes,
	}, true
}

// SetDrawingKind changes the geometry being drawn. A different kind starts
// the path over.
func (t *Tracker) SetDrawingKind(k DrawingKind) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if k == t.opts.DrawingKind {
		return
	}
	t.opts.DrawingKind = k
	t.path.Reset()
	t.sketch.Kind = k
	t.sketch.Path = nil
	t.sketch.Attributes = nil
}

func (t *Tracker) DrawingKind() DrawingKind {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.opts.DrawingKind
}

// SetFollowMode switches the camera policy and always emits FollowModeChanged.
func (t *Tracker) SetFollowMode(m FollowMode) {
	t.mu.Lock()
	t.follow.SetMode(m)
	listeners := t.listenersLocked()
	t.mu.Unlock()
	dispatch(listeners, []Event{FollowModeChanged{Mode: m, Following: m != FollowOff}})
}

func (t *Tracker) FollowMode() FollowMode {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.follow.Mode()
}

// Sketch returns a copy of the live drawing.
func (t *Tracker) Sketch() Sketch {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.sketch.clone()
}

// Path returns the raw, unsimplified recorded positions.
func (t *Tracker) Path() []track.Position {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.path.Snapshot()
}

func (t *Tracker) Summary() Summary {
	t.mu.Lock()
	defer t.mu.Unlock()
	return summarize(t.projection(), t.path.Snapshot())
}

// Simulate replays coords through the fix pipeline on the tracker's clock,
// replacing any running simulation. Empty coords only cancel. Live sensor
// fixes are ignored while the simulation runs.
func (t *Tracker) Simulate(coords []track.Position, opts simulator.Options) {
	t.mu.Lock()
	defer t.mu.Unlock()
	sim := t.newSimulationLocked(len(coords))
	if sim != nil {
		sim.Simulate(coords, opts)
	}
}

// LoadSimulation prepares a simulation that advances only through
// StepSimulation.
func (t *Tracker) LoadSimulation(coords []track.Position, opts simulator.Options) {
	t.mu.Lock()
	defer t.mu.Unlock()
	sim := t.newSimulationLocked(len(coords))
	if sim != nil {
		sim.Load(coords, opts)
	}
}

// StepSimulation delivers the next simulated fix synchronously. It reports
// whether more fixes remain.
func (t *Tracker) StepSimulation() bool {
	t.mu.Lock()
	sim := t.sim
	t.mu.Unlock()
	if sim == nil {
		return false
	}
	return sim.Step()
}

// StopSimulation cancels the running simulation, if any.
func (t *Tracker) StopSimulation() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.cancelSimulationLocked()
}

// Simulating reports whether a simulation has fixes left to deliver.
func (t *Tracker) Simulating() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.simulatingLocked()
}

// SimulationDone is closed when the current simulation ends or is cancelled.
func (t *Tracker) SimulationDone() <-chan struct{} {
	t.mu.Lock()
	sim := t.sim
	t.mu.Unlock()
	if sim == nil {
		ch := make(chan struct{})
		close(ch)
		return ch
	}
	return sim.Done()
}

func (t *Tracker) newSimulationLocked(n int) *simulator.Simulator {
	t.cancelSimulationLocked()
	if n == 0 {
		return nil
	}
	token := t.simSession
	t.sim = simulator.New(func(f track.Fix) {
		t.receive(f, fromSimulator, token)
	}, t.opts.Clock)
	return t.sim
}

func (t *Tracker) cancelSimulationLocked() {
	t.simSession++
	if t.sim != nil {
		t.sim.Stop()
	}
}

func (t *Tracker) simulatingLocked() bool {
	return t.sim != nil && t.sim.Running()
}

func (t *Tracker) listenersLocked() []Listener {
	if len(t.listeners) == 0 {
		return nil
	}
	ids := make([]int, 0, len(t.listeners))
	for id := range t.listeners {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	out := make([]Listener, len(ids))
	for i, id := range ids {
		out[i] = t.listeners[id]
	}
	return out
}

func dispatch(listeners []Listener, events []Event) {
	for _, e := range events {
		for _, l := range listeners {
			l(e)
		}
	}
}
