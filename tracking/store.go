package tracking

import (
	"encoding/json"
	"log"
	"os"
	"time"

	"github.com/theoremus-urban-solutions/transit-pings/departure"
)

// DefaultMaxAge is the retention cutoff for tracked departures.
const DefaultMaxAge = 2 * time.Hour

// TrackedDeparture is the persisted record for one (route, trip, stop) key.
// A record exists only after an initial alert has been recorded for the key.
type TrackedDeparture struct {
	Key     string `json:"key"`
	RouteID string `json:"route_id"`
	TripID  string `json:"trip_id"`
	StopID  string `json:"stop_id"`

	// OriginalDepartureTime is the first-observed prediction, immutable once
	// set. Delay magnitudes are computed against it.
	OriginalDepartureTime time.Time `json:"original_departure_time"`
	// CurrentDepartureTime is the latest observed prediction.
	CurrentDepartureTime time.Time `json:"current_departure_time"`

	InitialAlertSent bool      `json:"initial_alert_sent"`
	InitialAlertTime time.Time `json:"initial_alert_time"`

	DelayUpdateSent bool       `json:"delay_update_sent"`
	DelayUpdateTime *time.Time `json:"delay_update_time,omitempty"`
}

// state is the persisted file layout.
type state struct {
	LastRun           *time.Time         `json:"last_run"`
	TrackedDepartures []TrackedDeparture `json:"tracked_departures"`
}

// Store tracks which departures have already triggered alerts or delay
// updates. It assumes a single active run; every mutation synchronously
// rewrites the backing file.
type Store struct {
	path  string
	state state
}

// Load opens the store at path. A missing file starts empty; an unreadable
// or corrupt file logs a warning and also starts empty, since losing
// tracking state causes at most a duplicate alert.
func Load(path string) *Store {
	s := &Store{path: path}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return s
	}
	if err != nil {
		log.Printf("tracking: could not read %s, starting fresh: %v", path, err)
		return s
	}
	if err := json.Unmarshal(data, &s.state); err != nil {
		log.Printf("tracking: could not parse %s, starting fresh: %v", path, err)
		s.state = state{}
	}
	return s
}

// LastRun returns the most recent run instant, if any was recorded.
func (s *Store) LastRun() (time.Time, bool) {
	if s.state.LastRun == nil {
		return time.Time{}, false
	}
	return *s.state.LastRun, true
}

// UpdateLastRun records the run instant. Observability only; no decision
// logic reads it.
func (s *Store) UpdateLastRun(runTime time.Time) {
	t := runTime.UTC()
	s.state.LastRun = &t
	s.save()
}

// HasAlerted reports whether an initial alert was already recorded for key.
func (s *Store) HasAlerted(key departure.Key) bool {
	rec := s.find(key)
	return rec != nil && rec.InitialAlertSent
}

// HasSentDelayUpdate reports whether a delay update was already recorded for
// key. Unknown keys are simply false.
func (s *Store) HasSentDelayUpdate(key departure.Key) bool {
	rec := s.find(key)
	return rec != nil && rec.DelayUpdateSent
}

// Get returns a copy of the tracked record for key.
func (s *Store) Get(key departure.Key) (TrackedDeparture, bool) {
	if rec := s.find(key); rec != nil {
		return *rec, true
	}
	return TrackedDeparture{}, false
}

// RecordAlert marks key as alerted. On a fresh key it creates the record
// with departureTime as the original baseline. On an existing alerted key it
// refreshes the alert instant and current prediction but preserves the
// original baseline, so a redundant call can never erase the reference point
// delay detection depends on.
func (s *Store) RecordAlert(key departure.Key, departureTime, alertTime time.Time) {
	if rec := s.find(key); rec != nil {
		rec.InitialAlertSent = true
		rec.InitialAlertTime = alertTime.UTC()
		rec.CurrentDepartureTime = departureTime.UTC()
		if rec.OriginalDepartureTime.IsZero() {
			rec.OriginalDepartureTime = departureTime.UTC()
		}
		s.save()
		return
	}

	s.state.TrackedDepartures = append(s.state.TrackedDepartures, TrackedDeparture{
		Key:                   key.String(),
		RouteID:               key.RouteID,
		TripID:                key.TripID,
		StopID:                key.StopID,
		OriginalDepartureTime: departureTime.UTC(),
		CurrentDepartureTime:  departureTime.UTC(),
		InitialAlertSent:      true,
		InitialAlertTime:      alertTime.UTC(),
		DelayUpdateSent:       false,
	})
	s.save()
}

// RecordDelayUpdate marks key as delay-notified and stores the new
// prediction. Unknown keys are ignored: a delay update never creates a
// record on its own.
func (s *Store) RecordDelayUpdate(key departure.Key, newDepartureTime, now time.Time) {
	rec := s.find(key)
	if rec == nil {
		return
	}
	rec.DelayUpdateSent = true
	rec.CurrentDepartureTime = newDepartureTime.UTC()
	t := now.UTC()
	rec.DelayUpdateTime = &t
	s.save()
}

// CleanupOldEntries drops every record whose original departure time is
// older than now-maxAge, regardless of alert status. Run before decision
// processing so a stale key never suppresses a recurring trip id on a later
// day.
func (s *Store) CleanupOldEntries(now time.Time, maxAge time.Duration) int {
	cutoff := now.Add(-maxAge)
	kept := s.state.TrackedDepartures[:0]
	removed := 0
	for _, rec := range s.state.TrackedDepartures {
		if rec.OriginalDepartureTime.Before(cutoff) {
			removed++
			continue
		}
		kept = append(kept, rec)
	}
	s.state.TrackedDepartures = kept
	s.save()
	return removed
}

// Len reports the number of tracked departures.
func (s *Store) Len() int {
	return len(s.state.TrackedDepartures)
}

func (s *Store) find(key departure.Key) *TrackedDeparture {
	k := key.String()
	for i := range s.state.TrackedDepartures {
		if s.state.TrackedDepartures[i].Key == k {
			return &s.state.TrackedDepartures[i]
		}
	}
	return nil
}

// save rewrites the whole store. Persistence is best-effort across runs: a
// write failure is logged and the in-memory state stays authoritative for
// the current run.
func (s *Store) save() {
	data, err := json.MarshalIndent(&s.state, "", "  ")
	if err != nil {
		log.Printf("tracking: could not encode state: %v", err)
		return
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		log.Printf("tracking: could not save %s: %v", s.path, err)
	}
}
