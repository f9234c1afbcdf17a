package transitpings

import (
	"encoding/json"
	"os"
)

// pauseState is the flag-file layout. External writers (the bot command
// channel) own the file; the engine only reads it once per run.
type pauseState struct {
	Paused bool `json:"paused"`
}

// ReadPauseState reports whether alerts are paused. A missing or unreadable
// file means not paused; the error is informational only.
func ReadPauseState(path string) (bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}

	var st pauseState
	if err := json.Unmarshal(data, &st); err != nil {
		return false, err
	}
	return st.Paused, nil
}

// WritePauseState sets the flag. Used by the external command channel, not
// by the run itself.
func WritePauseState(path string, paused bool) error {
	data, err := json.Marshal(pauseState{Paused: paused})
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
