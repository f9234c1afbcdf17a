package decision

import (
	"fmt"
	"math"
	"time"
)

// DefaultMaxWaitMinutes bounds how far into the future a departure is still
// worth evaluating.
const DefaultMaxWaitMinutes = 60

// Calculator computes leave times, alert times and delay magnitudes for
// departures. It is stateless: all methods are pure functions of the
// configured walking time, advance notice and their arguments.
//
// Every comparison operates on absolute instants. The configured location is
// used only for display formatting, never for decision arithmetic.
type Calculator struct {
	walkingTime   time.Duration
	advanceNotice time.Duration
	location      *time.Location
}

// NewCalculator builds a Calculator from minute-granularity preferences and
// an IANA timezone name for display formatting.
func NewCalculator(walkingTimeMinutes, advanceNoticeMinutes int, timezone string) (*Calculator, error) {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", timezone, err)
	}
	return &Calculator{
		walkingTime:   time.Duration(walkingTimeMinutes) * time.Minute,
		advanceNotice: time.Duration(advanceNoticeMinutes) * time.Minute,
		location:      loc,
	}, nil
}

// LeaveTime is the instant the rider must leave to reach the stop in time:
// departure minus walking time.
func (c *Calculator) LeaveTime(departure time.Time) time.Time {
	return departure.Add(-c.walkingTime)
}

// AlertTime is the instant a notification should fire: leave time minus the
// advance notice.
func (c *Calculator) AlertTime(departure time.Time) time.Time {
	return c.LeaveTime(departure).Add(-c.advanceNotice)
}

// ShouldAlertNow reports whether now falls inside the closed alert window
// [AlertTime, LeaveTime]. Once now has passed the leave time the departure
// is no longer actionable, alerted or not.
func (c *Calculator) ShouldAlertNow(departure, now time.Time) bool {
	return !now.Before(c.AlertTime(departure)) && !now.After(c.LeaveTime(departure))
}

// IsRelevant reports whether the departure is worth evaluating at all, using
// the default maximum wait.
func (c *Calculator) IsRelevant(departure, now time.Time) bool {
	return c.IsRelevantWithin(departure, now, DefaultMaxWaitMinutes)
}

// IsRelevantWithin bounds the decision window: the minutes until the alert
// instant must lie in [-advanceNotice, maxWaitMinutes]. The lower bound
// tolerates departures whose alert window opened slightly in the past, since
// the poll cadence is coarser than the window itself.
func (c *Calculator) IsRelevantWithin(departure, now time.Time, maxWaitMinutes int) bool {
	untilAlert := c.AlertTime(departure).Sub(now).Minutes()
	return untilAlert >= -c.advanceNotice.Minutes() && untilAlert <= float64(maxWaitMinutes)
}

// DelayMinutes is the signed schedule slippage between the first-observed
// and latest predicted departure, rounded half away from zero. Positive
// means later than originally observed, negative means earlier.
func (c *Calculator) DelayMinutes(original, current time.Time) int {
	return roundMinutes(current.Sub(original))
}

// MinutesUntil is the rounded signed minute count from now to target. It is
// used only for display.
func (c *Calculator) MinutesUntil(target, now time.Time) int {
	return roundMinutes(target.Sub(now))
}

// FormatLocal renders an instant as a local clock time, e.g. "8:45 AM". It
// carries no decision semantics.
func (c *Calculator) FormatLocal(t time.Time) string {
	return t.In(c.location).Format("3:04 PM")
}

func roundMinutes(d time.Duration) int {
	return int(math.Round(d.Seconds() / 60))
}
