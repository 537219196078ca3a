package geotrack

import (
	"encoding/json"
	"net/http"

	"github.com/theoremus-urban-solutions/geotrack/tracking"
)

type healthResponse struct {
	Status       string  `json:"status"`
	State        string  `json:"state"`
	DrawingKind  string  `json:"drawing_kind"`
	FollowMode   string  `json:"follow_mode"`
	Simulating   bool    `json:"simulating"`
	Points       int     `json:"points"`
	LengthMeters float64 `json:"length_m"`
	LastFixEpoch int64   `json:"last_fix_epoch"`
}

// healthHandler reports the tracker's state. Coordinates are never exposed.
func healthHandler(t *tracking.Tracker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		sum := t.Summary()
		resp := healthResponse{
			Status:       "ok",
			State:        t.State().String(),
			DrawingKind:  t.DrawingKind().String(),
			FollowMode:   t.FollowMode().String(),
			Simulating:   t.Simulating(),
			Points:       sum.Points,
			LengthMeters: sum.LengthMeters,
		}
		if m := t.Sketch().Marker; m.Valid && !m.Position.Time.IsZero() {
			resp.LastFixEpoch = m.Position.Time.Unix()
		}
		_ = json.NewEncoder(w).Encode(resp)
	}
}
