package transitpings

import (
	"fmt"
	"log"
	"time"

	"github.com/theoremus-urban-solutions/transit-pings/config"
)

// IsActiveTime reports whether now falls inside the configured monitoring
// window, evaluated in the user's timezone. An empty active-day list or
// timeframe leaves that dimension unrestricted. A bad timezone or timeframe
// fails open: better a run outside the window than a missed alert.
func IsActiveTime(prefs config.UserPreferences, now time.Time) bool {
	loc, err := time.LoadLocation(prefs.Timezone)
	if err != nil {
		log.Printf("schedule: invalid timezone %q, treating window as active: %v", prefs.Timezone, err)
		return true
	}
	local := now.In(loc)

	if len(prefs.ActiveDays) > 0 && !isActiveDay(prefs.ActiveDays, local.Weekday()) {
		return false
	}

	if prefs.ActiveTimeframe.Start == "" || prefs.ActiveTimeframe.End == "" {
		return true
	}
	start, err := parseClock(prefs.ActiveTimeframe.Start)
	if err != nil {
		log.Printf("schedule: %v, treating window as active", err)
		return true
	}
	end, err := parseClock(prefs.ActiveTimeframe.End)
	if err != nil {
		log.Printf("schedule: %v, treating window as active", err)
		return true
	}

	current := local.Hour()*60 + local.Minute()
	return start <= current && current <= end
}

// isActiveDay matches a Go weekday against the configured 0=Monday scheme.
func isActiveDay(activeDays []int, wd time.Weekday) bool {
	day := (int(wd) + 6) % 7
	for _, d := range activeDays {
		if d == day {
			return true
		}
	}
	return false
}

// parseClock converts "HH:MM" to minutes since local midnight.
func parseClock(s string) (int, error) {
	var h, m int
	if _, err := fmt.Sscanf(s, "%d:%d", &h, &m); err != nil {
		return 0, fmt.Errorf("invalid timeframe %q: %w", s, err)
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, fmt.Errorf("invalid timeframe %q", s)
	}
	return h*60 + m, nil
}
