package tracking

import "github.com/theoremus-urban-solutions/geotrack/track"

type EventKind int

const (
	EventDrawStart EventKind = iota
	EventDrawing
	EventDrawEnd
	EventTracking
	EventFollowModeChanged
)

func (k EventKind) String() string {
	switch k {
	case EventDrawStart:
		return "drawstart"
	case EventDrawing:
		return "drawing"
	case EventDrawEnd:
		return "drawend"
	case EventTracking:
		return "tracking"
	default:
		return "follow"
	}
}

// Event is one of DrawStart, Drawing, DrawEnd, Tracking or FollowModeChanged.
type Event interface {
	Kind() EventKind
}

// Listener receives events on the goroutine that caused them. It may call
// back into the Tracker, Stop included. Drawing and Tracking events of a fix
// are not delivered once Stop has begun, but a listener that was already
// running on another goroutine may still return after Stop does.
type Listener func(Event)

// DrawStart is emitted when recording starts.
type DrawStart struct {
	DrawingKind DrawingKind
}

// Drawing is emitted after an accepted fix changed the recorded geometry.
type Drawing struct {
	Sketch Sketch
}

// DrawEnd carries the completed feature when recording stops with a
// non-empty geometry.
type DrawEnd struct {
	Feature Feature
}

// Tracking is emitted for every fix processed while active, accepted or not.
type Tracking struct {
	Fix      track.Fix
	Position track.Position
	Band     AccuracyBand
	Recorded bool
}

// FollowModeChanged is emitted by SetFollowMode and when Auto loses the
// device after a manual pan (Lost).
type FollowModeChanged struct {
	Mode      FollowMode
	Following bool
	Lost      bool
}

func (DrawStart) Kind() EventKind         { return EventDrawStart }
func (Drawing) Kind() EventKind           { return EventDrawing }
func (DrawEnd) Kind() EventKind           { return EventDrawEnd }
func (Tracking) Kind() EventKind          { return EventTracking }
func (FollowModeChanged) Kind() EventKind { return EventFollowModeChanged }
