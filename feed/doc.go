// Package feed turns a GTFS-Realtime VehiclePositions feed into a live
// location sensor for one vehicle.
//
// The feed is fetched over HTTP or read from a local file, decoded with the
// MobilityData bindings and the matching vehicle's position is converted
// into a track.Fix in the map projection. Source polls the feed and
// implements the tracker's Sensor interface.
package feed
