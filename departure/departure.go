package departure

import (
	"errors"
	"fmt"
	"time"
)

// ErrMissingDepartureTime marks a feed record without a parseable departure
// instant. Such records are rejected at the boundary and never reach the
// decision layer.
var ErrMissingDepartureTime = errors.New("departure record has no parseable departure time")

// Observation is one predicted departure at a stop, as reported by a feed in
// a single poll. Feeds may report a different Time for the same Key between
// polls; the tracking store is what remembers the first-observed value.
type Observation struct {
	RouteID string
	TripID  string
	StopID  string

	// Time is the predicted departure instant (absolute, UTC). Required.
	Time time.Time
	// EpochTime is the raw feed-reported timestamp backing Time. It is kept
	// verbatim so the orchestrator can deduplicate repeated feed rows that
	// describe the same logical departure.
	EpochTime int64

	RouteShortName string
	Description    string
	DepartureText  string
	// Actual reports whether the prediction is real-time rather than
	// schedule-derived.
	Actual bool
}

// Key identifies the departure across polls.
func (o Observation) Key() Key {
	return Key{RouteID: o.RouteID, TripID: o.TripID, StopID: o.StopID}
}

// Key is the composite identity of a tracked departure.
type Key struct {
	RouteID string
	TripID  string
	StopID  string
}

// String returns the canonical persisted form of the key.
func (k Key) String() string {
	return fmt.Sprintf("%s_%s_%s", k.RouteID, k.TripID, k.StopID)
}

// FilterByRoute keeps only observations for the given route.
func FilterByRoute(obs []Observation, routeID string) []Observation {
	filtered := make([]Observation, 0, len(obs))
	for _, o := range obs {
		if o.RouteID == routeID {
			filtered = append(filtered, o)
		}
	}
	return filtered
}
