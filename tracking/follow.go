package tracking

import (
	"fmt"
	"strings"

	"github.com/paulmach/orb"

	"github.com/theoremus-urban-solutions/geotrack/view"
)

// FollowMode is the camera policy applied on every fix.
type FollowMode int

const (
	FollowOff FollowMode = iota
	FollowLocked
	FollowPosition
	FollowAuto
	FollowVisible
)

var followModeNames = map[FollowMode]string{
	FollowOff:      "off",
	FollowLocked:   "locked",
	FollowPosition: "position",
	FollowAuto:     "auto",
	FollowVisible:  "visible",
}

func (m FollowMode) String() string {
	if s, ok := followModeNames[m]; ok {
		return s
	}
	return fmt.Sprintf("FollowMode(%d)", int(m))
}

func ParseFollowMode(s string) (FollowMode, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for m, name := range followModeNames {
		if name == s {
			return m, nil
		}
	}
	return FollowOff, fmt.Errorf("%w: %q", ErrUnknownFollowMode, s)
}

// FollowController moves a view according to the follow mode. It is not
// safe for concurrent use; the Tracker serializes calls.
type FollowController struct {
	mode         FollowMode
	trackingZoom float64
	minZoom      float64

	// last centre set by Auto; nil until the first fix after (re)activation
	last *orb.Point
}

// NewFollowController returns a controller. A trackingZoom of zero means the
// zoom is only raised to minZoom.
func NewFollowController(mode FollowMode, trackingZoom, minZoom float64) *FollowController {
	return &FollowController{mode: mode, trackingZoom: trackingZoom, minZoom: minZoom}
}

func (c *FollowController) Mode() FollowMode { return c.mode }

func (c *FollowController) SetMode(m FollowMode) {
	if m != c.mode {
		c.last = nil
	}
	c.mode = m
}

// Reset forgets the last centred position.
func (c *FollowController) Reset() { c.last = nil }

// Follow applies the current mode for a fix at p whose accuracy indicator
// covers accuracy. It reports true when Auto detected a manual pan and
// demoted itself to Off.
func (c *FollowController) Follow(v view.View, p orb.Point, accuracy orb.Bound) (lost bool) {
	if v == nil {
		return false
	}
	switch c.mode {
	case FollowLocked:
		c.applyZoom(v)
		if !fitsAround(v, p, accuracy) {
			v.FitExtent(accuracy)
		}
		v.SetCenter(p)

	case FollowPosition:
		v.SetCenter(p)

	case FollowAuto:
		if c.last != nil {
			if center, ok := v.Center(); !ok || center != *c.last {
				c.mode = FollowOff
				c.last = nil
				return true
			}
		} else {
			c.applyZoom(v)
		}
		v.SetCenter(p)
		// read back so a view that snaps its centre is not mistaken for a pan
		if center, ok := v.Center(); ok {
			c.last = &center
		} else {
			c.last = &p
		}

	case FollowVisible:
		if !v.Extent().Contains(p) {
			v.SetCenter(p)
		}
	}
	return false
}

func (c *FollowController) applyZoom(v view.View) {
	if c.trackingZoom > 0 {
		if v.Zoom() != c.trackingZoom {
			v.SetZoom(c.trackingZoom)
		}
		return
	}
	if v.Zoom() < c.minZoom {
		v.SetZoom(c.minZoom)
	}
}

// fitsAround reports whether accuracy would be fully visible once the
// current viewport is centred on p.
func fitsAround(v view.View, p orb.Point, accuracy orb.Bound) bool {
	ext := v.Extent()
	halfW := (ext.Max[0] - ext.Min[0]) / 2
	halfH := (ext.Max[1] - ext.Min[1]) / 2
	around := orb.Bound{
		Min: orb.Point{p[0] - halfW, p[1] - halfH},
		Max: orb.Point{p[0] + halfW, p[1] + halfH},
	}
	return view.ContainsBound(around, accuracy)
}
