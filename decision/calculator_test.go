package decision

import (
	"testing"
	"time"
)

func mustCalculator(t *testing.T, walking, advance int) *Calculator {
	t.Helper()
	c, err := NewCalculator(walking, advance, "America/Chicago")
	if err != nil {
		t.Fatalf("NewCalculator: %v", err)
	}
	return c
}

func TestNewCalculatorRejectsBadTimezone(t *testing.T) {
	if _, err := NewCalculator(10, 15, "Not/AZone"); err == nil {
		t.Fatal("expected error for unknown timezone")
	}
}

func TestTimeOrdering(t *testing.T) {
	c := mustCalculator(t, 10, 15)
	departure := time.Date(2026, 3, 2, 14, 40, 0, 0, time.UTC)

	alertAt := c.AlertTime(departure)
	leaveAt := c.LeaveTime(departure)

	if alertAt.After(leaveAt) {
		t.Errorf("alert time %v after leave time %v", alertAt, leaveAt)
	}
	if leaveAt.After(departure) {
		t.Errorf("leave time %v after departure %v", leaveAt, departure)
	}
	if want := departure.Add(-10 * time.Minute); !leaveAt.Equal(want) {
		t.Errorf("leave time = %v, want %v", leaveAt, want)
	}
	if want := departure.Add(-25 * time.Minute); !alertAt.Equal(want) {
		t.Errorf("alert time = %v, want %v", alertAt, want)
	}
}

func TestShouldAlertNowBoundaries(t *testing.T) {
	c := mustCalculator(t, 10, 15)
	departure := time.Date(2026, 3, 2, 14, 40, 0, 0, time.UTC)
	alertAt := c.AlertTime(departure)
	leaveAt := c.LeaveTime(departure)

	tests := []struct {
		name string
		now  time.Time
		want bool
	}{
		{"one second before window", alertAt.Add(-time.Second), false},
		{"exactly at alert time", alertAt, true},
		{"inside window", alertAt.Add(5 * time.Minute), true},
		{"exactly at leave time", leaveAt, true},
		{"one second past leave time", leaveAt.Add(time.Second), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := c.ShouldAlertNow(departure, tt.now); got != tt.want {
				t.Errorf("ShouldAlertNow(now=%v) = %v, want %v", tt.now, got, tt.want)
			}
		})
	}
}

func TestShouldAlertNowScenario(t *testing.T) {
	// walking=10, advance=15, departure at T+40min: window opens at T+15min.
	c := mustCalculator(t, 10, 15)
	base := time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC)
	departure := base.Add(40 * time.Minute)

	if !c.ShouldAlertNow(departure, base.Add(15*time.Minute)) {
		t.Error("expected alert at T+15min")
	}
	if !c.ShouldAlertNow(departure, base.Add(16*time.Minute)) {
		t.Error("expected window still open at T+16min")
	}
	if c.ShouldAlertNow(departure, base.Add(31*time.Minute)) {
		t.Error("expected window closed past leave time")
	}
}

func TestIsRelevant(t *testing.T) {
	c := mustCalculator(t, 10, 15)
	now := time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		departure time.Time
		want      bool
	}{
		// Alert instant is departure-25min throughout.
		{"departing now", now, false},
		{"alert window just opened", now.Add(25 * time.Minute), true},
		{"alert opened 10 min ago, still inside window", now.Add(15 * time.Minute), true},
		{"alert opened beyond advance notice", now.Add(9 * time.Minute), false},
		{"alert exactly max wait away", now.Add(85 * time.Minute), true},
		{"just past max wait", now.Add(86 * time.Minute), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := c.IsRelevant(tt.departure, now); got != tt.want {
				t.Errorf("IsRelevant(dep=%v) = %v, want %v", tt.departure, got, tt.want)
			}
		})
	}
}

func TestIsRelevantWithinCustomWindow(t *testing.T) {
	c := mustCalculator(t, 5, 5)
	now := time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC)

	if !c.IsRelevantWithin(now.Add(40*time.Minute), now, 30) {
		t.Error("alert 30 min out should be relevant with maxWait=30")
	}
	if c.IsRelevantWithin(now.Add(45*time.Minute), now, 30) {
		t.Error("alert 35 min out should be irrelevant with maxWait=30")
	}
}

func TestDelayMinutes(t *testing.T) {
	c := mustCalculator(t, 10, 15)
	base := time.Date(2026, 3, 2, 8, 40, 0, 0, time.UTC)

	tests := []struct {
		name    string
		current time.Time
		want    int
	}{
		{"no slippage", base, 0},
		{"seven minutes late", base.Add(7 * time.Minute), 7},
		{"three minutes early", base.Add(-3 * time.Minute), -3},
		{"ninety seconds rounds up", base.Add(90 * time.Second), 2},
		{"thirty seconds rounds half away from zero", base.Add(30 * time.Second), 1},
		{"negative half rounds away from zero", base.Add(-30 * time.Second), -1},
		{"twenty nine seconds rounds down", base.Add(29 * time.Second), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := c.DelayMinutes(base, tt.current); got != tt.want {
				t.Errorf("DelayMinutes = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestMinutesUntil(t *testing.T) {
	c := mustCalculator(t, 10, 15)
	now := time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC)

	if got := c.MinutesUntil(now.Add(12*time.Minute+30*time.Second), now); got != 13 {
		t.Errorf("MinutesUntil = %d, want 13", got)
	}
	if got := c.MinutesUntil(now.Add(-5*time.Minute), now); got != -5 {
		t.Errorf("MinutesUntil past target = %d, want -5", got)
	}
}

func TestFormatLocal(t *testing.T) {
	c := mustCalculator(t, 10, 15)
	// 14:40 UTC on a CST date is 8:40 AM in Chicago.
	instant := time.Date(2026, 1, 15, 14, 40, 0, 0, time.UTC)
	if got := c.FormatLocal(instant); got != "8:40 AM" {
		t.Errorf("FormatLocal = %q, want %q", got, "8:40 AM")
	}
}
