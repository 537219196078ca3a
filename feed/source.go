package feed

import (
	"context"
	"sync"
	"time"

	"github.com/theoremus-urban-solutions/geotrack/config"
	"github.com/theoremus-urban-solutions/geotrack/geo"
	"github.com/theoremus-urban-solutions/geotrack/internal"
	"github.com/theoremus-urban-solutions/geotrack/internal/timeutil"
	"github.com/theoremus-urban-solutions/geotrack/track"
)

const DefaultReadInterval = 5 * time.Second

// Source polls a VehiclePositions feed and emits a fix whenever the
// vehicle's timestamp advances. Fetch and decode failures are logged and
// produce no fix.
type Source struct {
	client    *Client
	location  string
	vehicleID string
	interval  time.Duration
	accuracy  float64
	proj      geo.Projection
	clock     timeutil.Clock

	mu   sync.Mutex
	last time.Time
}

// NewSource builds a source from the feed section of the configuration.
func NewSource(cfg config.FeedConfig, proj geo.Projection, clock timeutil.Clock) *Source {
	if clock == nil {
		clock = timeutil.RealClock{}
	}
	interval := time.Duration(cfg.ReadIntervalMS) * time.Millisecond
	if interval <= 0 {
		interval = DefaultReadInterval
	}
	return &Source{
		client:    NewClient(time.Duration(cfg.TimeoutMS) * time.Millisecond),
		location:  cfg.VehiclePositionsURL,
		vehicleID: cfg.VehicleID,
		interval:  interval,
		accuracy:  cfg.Accuracy,
		proj:      proj,
		clock:     clock,
	}
}

// Poll fetches the feed once and returns the vehicle's fix. ok is false
// when the position is not newer than the last one returned.
func (s *Source) Poll(ctx context.Context) (fix track.Fix, ok bool, err error) {
	data, err := s.client.Fetch(ctx, s.location)
	if err != nil {
		return track.Fix{}, false, err
	}
	fix, err = DecodeVehicleFix(data, s.vehicleID, s.proj, s.accuracy)
	if err != nil {
		return track.Fix{}, false, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if !fix.Time.After(s.last) {
		return fix, false, nil
	}
	s.last = fix.Time
	return fix, true, nil
}

// Subscribe starts polling and hands every new fix to cb until the returned
// func is called. The first poll happens immediately.
//
// unsubscribe cancels polling without waiting for the poller to exit, so it
// may be called from within cb. A callback already running when it is
// called still completes.
func (s *Source) Subscribe(cb func(track.Fix)) (unsubscribe func()) {
	ctx, cancel := context.WithCancel(context.Background())
	go s.run(ctx, cb)
	return cancel
}

func (s *Source) run(ctx context.Context, cb func(track.Fix)) {
	timer := s.clock.NewTimer(0)
	defer timer.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-timer.C():
		}

		fix, ok, err := s.Poll(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			internal.Logf("feed: vehicle %s: %v", s.vehicleID, err)
		} else if ok && ctx.Err() == nil {
			cb(fix)
		}
		timer.Reset(s.interval)
	}
}
