// Package history records pipeline runs in a JSON log under the state
// directory. History is advisory: failures to record never fail a run.
package history

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// historyFile is the log filename inside the state directory.
const historyFile = "history.json"

// Entry records one pipeline run.
type Entry struct {
	Timestamp  time.Time `json:"timestamp"`
	CommitHash string    `json:"commit_hash,omitempty"`
	Files      int       `json:"files"`
	Entries    int       `json:"entries"`
	Duration   string    `json:"duration"`
	Status     string    `json:"status"`
}

// History is the full run log, oldest first.
type History struct {
	Entries []Entry `json:"entries"`
}

// Load reads the history file from stateDir. A missing file loads as empty.
func Load(stateDir string) (*History, error) {
	path := filepath.Join(stateDir, historyFile)

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &History{}, nil
		}
		return nil, fmt.Errorf("reading history: %w", err)
	}

	var history History
	if err := json.Unmarshal(data, &history); err != nil {
		return nil, fmt.Errorf("parsing history: %w", err)
	}
	return &history, nil
}

// Save writes the history file to stateDir, creating the directory if needed.
func Save(stateDir string, history *History) error {
	if err := os.MkdirAll(stateDir, 0o755); err != nil {
		return fmt.Errorf("creating state directory: %w", err)
	}

	data, err := json.MarshalIndent(history, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding history: %w", err)
	}

	path := filepath.Join(stateDir, historyFile)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing history: %w", err)
	}
	return nil
}
