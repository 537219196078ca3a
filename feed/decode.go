package feed

import (
	"errors"
	"fmt"
	"math"
	"time"

	gtfsrtpb "github.com/MobilityData/gtfs-realtime-bindings/golang/gtfs"
	"github.com/paulmach/orb"
	"google.golang.org/protobuf/proto"

	"github.com/theoremus-urban-solutions/geotrack/geo"
	"github.com/theoremus-urban-solutions/geotrack/track"
)

// ErrVehicleNotFound is returned when the feed has no position for the vehicle.
var ErrVehicleNotFound = errors.New("vehicle not in feed")

// ParseFeed decodes a GTFS-RT FeedMessage.
func ParseFeed(data []byte) (*gtfsrtpb.FeedMessage, error) {
	var fm gtfsrtpb.FeedMessage
	if err := proto.Unmarshal(data, &fm); err != nil {
		return nil, fmt.Errorf("decode feed message: %w", err)
	}
	return &fm, nil
}

// FindVehicle returns the position entity whose vehicle descriptor id (or,
// failing that, entity id) equals vehicleID.
func FindVehicle(fm *gtfsrtpb.FeedMessage, vehicleID string) (*gtfsrtpb.VehiclePosition, bool) {
	for _, e := range fm.GetEntity() {
		vp := e.GetVehicle()
		if vp == nil || e.GetIsDeleted() {
			continue
		}
		if vp.GetVehicle().GetId() == vehicleID || e.GetId() == vehicleID {
			return vp, true
		}
	}
	return nil, false
}

// VehicleFix converts a vehicle position to a fix in proj. The feed carries
// no accuracy, so the configured constant is used. Sensor is vp itself.
func VehicleFix(fm *gtfsrtpb.FeedMessage, vp *gtfsrtpb.VehiclePosition, proj geo.Projection, accuracy float64) (track.Fix, error) {
	pos := vp.GetPosition()
	if pos == nil || pos.Latitude == nil || pos.Longitude == nil {
		return track.Fix{}, fmt.Errorf("vehicle %q has no position", vp.GetVehicle().GetId())
	}

	ts := time.Now()
	if vp.Timestamp != nil {
		ts = time.Unix(int64(*vp.Timestamp), 0)
	} else if hts := fm.GetHeader().GetTimestamp(); hts != 0 {
		ts = time.Unix(int64(hts), 0)
	}

	lonlat := orb.Point{float64(*pos.Longitude), float64(*pos.Latitude)}
	f := track.NewFix(proj.FromGeographic(lonlat), ts)
	f.Accuracy = accuracy
	if accuracy <= 0 {
		f.Accuracy = math.NaN()
	}
	if pos.Bearing != nil {
		f.Heading = float64(*pos.Bearing)
	}
	if pos.Speed != nil {
		f.Speed = float64(*pos.Speed)
	}
	f.Sensor = vp
	return f, nil
}

// DecodeVehicleFix parses data and returns the fix for vehicleID.
func DecodeVehicleFix(data []byte, vehicleID string, proj geo.Projection, accuracy float64) (track.Fix, error) {
	fm, err := ParseFeed(data)
	if err != nil {
		return track.Fix{}, err
	}
	vp, ok := FindVehicle(fm, vehicleID)
	if !ok {
		return track.Fix{}, fmt.Errorf("%w: %q", ErrVehicleNotFound, vehicleID)
	}
	return VehicleFix(fm, vp, proj, accuracy)
}
