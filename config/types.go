package config

// APIConfig points at the NexTrip-style departures API.
type APIConfig struct {
	BaseURL        string `yaml:"base_url" validate:"required,url"`
	TimeoutSeconds int    `yaml:"timeout_seconds" validate:"gte=0"`
}

// GTFSRTConfig optionally points at a GTFS-Realtime TripUpdates feed used as
// an alternate departure source. The URL may also be a local file path.
type GTFSRTConfig struct {
	TripUpdatesURL string `yaml:"tripUpdatesURL" validate:"omitempty"`
	TimeoutMS      int    `yaml:"timeoutMS" validate:"gte=0"`
}

// Timeframe is a daily local-time window, inclusive on both ends.
type Timeframe struct {
	Start string `yaml:"start" validate:"required"`
	End   string `yaml:"end" validate:"required"`
}

// UserPreferences drives the alert arithmetic and the active window.
type UserPreferences struct {
	WalkingTimeMinutes   int    `yaml:"walking_time_minutes" validate:"gte=0"`
	AdvanceNoticeMinutes int    `yaml:"advance_notice_minutes" validate:"gte=0"`
	MaxWaitMinutes       int    `yaml:"max_wait_minutes" validate:"gte=0"`
	Timezone             string `yaml:"timezone" validate:"required"`
	// ActiveDays uses 0=Monday .. 6=Sunday.
	ActiveDays      []int     `yaml:"active_days" validate:"dive,gte=0,lte=6"`
	ActiveTimeframe Timeframe `yaml:"active_timeframe"`
}

// AlertsConfig tunes follow-up notices.
type AlertsConfig struct {
	DelayThresholdMinutes int `yaml:"delay_threshold_minutes" validate:"gte=0"`
}

// Route is one monitored route-to-stop mapping.
type Route struct {
	RouteID     string `yaml:"route_id" validate:"required"`
	StopID      string `yaml:"stop_id" validate:"required"`
	Description string `yaml:"description"`
}

// Config is the root configuration structure.
type Config struct {
	API             APIConfig       `yaml:"api" validate:"required"`
	GTFSRT          GTFSRTConfig    `yaml:"gtfsrt"`
	UserPreferences UserPreferences `yaml:"user_preferences" validate:"required"`
	Alerts          AlertsConfig    `yaml:"alerts"`
	Routes          []Route         `yaml:"routes" validate:"min=1,dive"`
	StateFile       string          `yaml:"state_file"`
	PauseFile       string          `yaml:"pause_file"`
}
