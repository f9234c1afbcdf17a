package config

import (
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Load reads and validates the configuration. An empty path falls back to
// the default search list.
func Load(path string) (*Config, error) {
	paths := []string{path}
	if path == "" {
		paths = []string{"config.yml", "config.yaml"}
	}

	var data []byte
	var err error
	for _, p := range paths {
		data, err = os.ReadFile(p)
		if err == nil {
			break
		}
	}
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	v := validator.New()
	if err := v.Struct(cfg); err != nil {
		return nil, err
	}

	applyDefaults(&cfg)
	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.API.TimeoutSeconds == 0 {
		cfg.API.TimeoutSeconds = 10
	}
	if cfg.GTFSRT.TimeoutMS == 0 {
		cfg.GTFSRT.TimeoutMS = 30000
	}
	if cfg.UserPreferences.MaxWaitMinutes == 0 {
		cfg.UserPreferences.MaxWaitMinutes = 60
	}
	if cfg.Alerts.DelayThresholdMinutes == 0 {
		cfg.Alerts.DelayThresholdMinutes = 5
	}
	if cfg.StateFile == "" {
		cfg.StateFile = "alert_state.json"
	}
	if cfg.PauseFile == "" {
		cfg.PauseFile = ".pause_state.json"
	}
}
