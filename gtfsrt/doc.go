// Package gtfsrt handles fetching and decoding GTFS-Realtime TripUpdates
// protobuf feeds as an alternate departure source.
//
// The main type is Source, which flattens a TripUpdates feed into per-stop
// departure observations.
package gtfsrt
