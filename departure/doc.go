// Package departure defines the boundary types shared by feed sources and
// the alert engine: a strongly-typed departure observation and its composite
// (route, trip, stop) key.
package departure
