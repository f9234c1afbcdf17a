package transitpings

import (
	"log"
	"time"

	"github.com/theoremus-urban-solutions/transit-pings/config"
	"github.com/theoremus-urban-solutions/transit-pings/decision"
	"github.com/theoremus-urban-solutions/transit-pings/departure"
	"github.com/theoremus-urban-solutions/transit-pings/tracking"
)

// Alert is a departure queued for the initial notification, annotated with
// the computed times.
type Alert struct {
	Observation   departure.Observation
	DepartureTime time.Time
	LeaveTime     time.Time
}

// DelayUpdate is one follow-up notice about schedule slippage.
type DelayUpdate struct {
	Route        string
	Description  string
	OriginalTime time.Time
	NewTime      time.Time
	DelayMinutes int
}

// FeedSource provides departure predictions for a stop.
type FeedSource interface {
	Departures(stopID string) ([]departure.Observation, error)
}

// Notifier delivers the engine's output batches. Delivery failures after
// state has been committed are logged but not rolled back: the failure
// direction this system prefers is a duplicate alert, never a missed one.
type Notifier interface {
	SendDepartureAlert(alerts []Alert, now time.Time) error
	SendDelayAlert(update DelayUpdate, now time.Time) error
}

// RunResult summarizes one run for logging.
type RunResult struct {
	Skipped      bool
	AlertsSent   int
	DelaysSent   int
	RoutesFailed int
}

// Runner executes one poll cycle: fetch departures per configured route,
// classify each against the decision calculator and the tracking store, and
// hand the resulting batches to the notifier.
type Runner struct {
	cfg      *config.Config
	calc     *decision.Calculator
	store    *tracking.Store
	source   FeedSource
	notifier Notifier
}

// NewRunner wires a runner from its collaborators.
func NewRunner(cfg *config.Config, calc *decision.Calculator, store *tracking.Store, source FeedSource, notifier Notifier) *Runner {
	return &Runner{cfg: cfg, calc: calc, store: store, source: source, notifier: notifier}
}

// Run performs a single poll cycle at the given instant.
func (r *Runner) Run(now time.Time) RunResult {
	if paused, _ := ReadPauseState(r.cfg.PauseFile); paused {
		log.Printf("alerts are paused; skipping run")
		return RunResult{Skipped: true}
	}
	if !IsActiveTime(r.cfg.UserPreferences, now) {
		log.Printf("outside active monitoring window; skipping run")
		return RunResult{Skipped: true}
	}

	r.store.UpdateLastRun(now)
	if removed := r.store.CleanupOldEntries(now, tracking.DefaultMaxAge); removed > 0 {
		log.Printf("evicted %d stale tracked departure(s)", removed)
	}

	var alerts []Alert
	var delays []DelayUpdate
	result := RunResult{}

	for _, route := range r.cfg.Routes {
		log.Printf("checking %s (route %s, stop %s)", route.Description, route.RouteID, route.StopID)

		all, err := r.source.Departures(route.StopID)
		if err != nil {
			log.Printf("  error checking %s: %v", route.Description, err)
			result.RoutesFailed++
			continue
		}

		for _, obs := range departure.FilterByRoute(all, route.RouteID) {
			a, d := r.classify(obs, route, now)
			if a != nil {
				alerts = append(alerts, *a)
			}
			if d != nil {
				delays = append(delays, *d)
			}
		}
	}

	alerts = dedupeAlerts(alerts)

	if len(alerts) > 0 {
		if err := r.notifier.SendDepartureAlert(alerts, now); err != nil {
			log.Printf("failed to send departure alert: %v", err)
		} else {
			result.AlertsSent = len(alerts)
		}
	} else {
		buffer := r.cfg.UserPreferences.AdvanceNoticeMinutes + r.cfg.UserPreferences.WalkingTimeMinutes
		log.Printf("no alerts to send; departures within the next ~%d min would trigger one", buffer)
	}

	for _, d := range delays {
		if err := r.notifier.SendDelayAlert(d, now); err != nil {
			log.Printf("failed to send delay update for %s: %v", d.Route, err)
			continue
		}
		result.DelaysSent++
	}

	return result
}

// classify runs one departure through the decision steps. At most one of the
// returned alert and delay update is non-nil.
func (r *Runner) classify(obs departure.Observation, route config.Route, now time.Time) (*Alert, *DelayUpdate) {
	if !r.calc.IsRelevantWithin(obs.Time, now, r.cfg.UserPreferences.MaxWaitMinutes) {
		return nil, nil
	}

	key := obs.Key()
	alreadyAlerted := r.store.HasAlerted(key)

	if r.calc.ShouldAlertNow(obs.Time, now) && !alreadyAlerted {
		r.store.RecordAlert(key, obs.Time, now)
		return &Alert{
			Observation:   obs,
			DepartureTime: obs.Time,
			LeaveTime:     r.calc.LeaveTime(obs.Time),
		}, nil
	}

	if alreadyAlerted {
		tracked, ok := r.store.Get(key)
		if !ok {
			return nil, nil
		}
		delay := r.calc.DelayMinutes(tracked.OriginalDepartureTime, obs.Time)
		if delay >= r.cfg.Alerts.DelayThresholdMinutes && !r.store.HasSentDelayUpdate(key) {
			r.store.RecordDelayUpdate(key, obs.Time, now)
			routeName := obs.RouteShortName
			if routeName == "" {
				routeName = route.RouteID
			}
			desc := obs.Description
			if desc == "" {
				desc = route.Description
			}
			return nil, &DelayUpdate{
				Route:        routeName,
				Description:  desc,
				OriginalTime: tracked.OriginalDepartureTime,
				NewTime:      obs.Time,
				DelayMinutes: delay,
			}
		}
	}

	return nil, nil
}

// dedupeAlerts collapses feed rows that describe the same logical departure.
// The upstream feed occasionally repeats an entry within one poll, so the
// batch is keyed by route and the raw reported time field.
func dedupeAlerts(alerts []Alert) []Alert {
	type dedupKey struct {
		routeID string
		epoch   int64
	}
	seen := make(map[dedupKey]bool, len(alerts))
	out := alerts[:0]
	for _, a := range alerts {
		k := dedupKey{a.Observation.RouteID, a.Observation.EpochTime}
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, a)
	}
	return out
}
