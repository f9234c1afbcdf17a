package config

import (
	"os"
	"path/filepath"
	"testing"
)

const validYAML = `
api:
  base_url: https://svc.metrotransit.org/nextrip
  timeout_seconds: 5
user_preferences:
  walking_time_minutes: 10
  advance_notice_minutes: 15
  timezone: America/Chicago
  active_days: [0, 1, 2, 3, 4]
  active_timeframe:
    start: "07:00"
    end: "09:30"
alerts:
  delay_threshold_minutes: 7
routes:
  - route_id: "901"
    stop_id: "51405"
    description: "Blue Line to airport"
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadValidConfig(t *testing.T) {
	cfg, err := Load(writeConfig(t, validYAML))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.UserPreferences.WalkingTimeMinutes != 10 {
		t.Errorf("walking time = %d, want 10", cfg.UserPreferences.WalkingTimeMinutes)
	}
	if cfg.Alerts.DelayThresholdMinutes != 7 {
		t.Errorf("delay threshold = %d, want 7", cfg.Alerts.DelayThresholdMinutes)
	}
	if len(cfg.Routes) != 1 || cfg.Routes[0].StopID != "51405" {
		t.Errorf("unexpected routes: %+v", cfg.Routes)
	}
}

func TestLoadAppliesDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, validYAML))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.UserPreferences.MaxWaitMinutes != 60 {
		t.Errorf("max wait default = %d, want 60", cfg.UserPreferences.MaxWaitMinutes)
	}
	if cfg.StateFile != "alert_state.json" {
		t.Errorf("state file default = %q", cfg.StateFile)
	}
	if cfg.PauseFile != ".pause_state.json" {
		t.Errorf("pause file default = %q", cfg.PauseFile)
	}
	if cfg.GTFSRT.TimeoutMS != 30000 {
		t.Errorf("gtfsrt timeout default = %d, want 30000", cfg.GTFSRT.TimeoutMS)
	}
}

func TestLoadRejectsInvalidConfig(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{
			name: "no routes",
			yaml: `
api:
  base_url: https://svc.metrotransit.org/nextrip
user_preferences:
  timezone: America/Chicago
routes: []
`,
		},
		{
			name: "missing timezone",
			yaml: `
api:
  base_url: https://svc.metrotransit.org/nextrip
user_preferences:
  walking_time_minutes: 10
routes:
  - route_id: "901"
    stop_id: "51405"
`,
		},
		{
			name: "bad base url",
			yaml: `
api:
  base_url: not-a-url
user_preferences:
  timezone: America/Chicago
routes:
  - route_id: "901"
    stop_id: "51405"
`,
		},
		{
			name: "active day out of range",
			yaml: `
api:
  base_url: https://svc.metrotransit.org/nextrip
user_preferences:
  timezone: America/Chicago
  active_days: [0, 9]
routes:
  - route_id: "901"
    stop_id: "51405"
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Load(writeConfig(t, tt.yaml)); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yml")); err == nil {
		t.Error("expected error for missing file")
	}
}
