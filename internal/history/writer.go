package history

import (
	"fmt"
	"os"
	"time"
)

// Writer provides history logging with automatic pruning.
type Writer struct {
	// StateDir is the directory containing the history file.
	StateDir string
	// MaxEntries is the maximum number of entries to retain.
	MaxEntries int
}

// NewWriter creates a new history writer.
func NewWriter(stateDir string, maxEntries int) *Writer {
	return &Writer{
		StateDir:   stateDir,
		MaxEntries: maxEntries,
	}
}

// LogEntry adds a new entry to the history file.
// It loads the existing history, appends the new entry, prunes if needed,
// and saves. Errors are non-fatal: they are written to stderr and don't
// cause run failures.
func (w *Writer) LogEntry(entry Entry) {
	if err := w.logEntryInternal(entry); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to log history: %v\n", err)
	}
}

// logEntryInternal handles the actual logging logic.
func (w *Writer) logEntryInternal(entry Entry) error {
	history, err := Load(w.StateDir)
	if err != nil {
		return fmt.Errorf("loading history: %w", err)
	}

	history.Entries = append(history.Entries, entry)

	// Prune oldest entries if over limit
	if w.MaxEntries > 0 && len(history.Entries) > w.MaxEntries {
		excess := len(history.Entries) - w.MaxEntries
		history.Entries = history.Entries[excess:]
	}

	if err := Save(w.StateDir, history); err != nil {
		return fmt.Errorf("saving history: %w", err)
	}

	return nil
}

// LogRun is a convenience method to log a pipeline run.
func (w *Writer) LogRun(commitHash string, files, entries int, duration time.Duration, status string) {
	w.LogEntry(Entry{
		Timestamp:  time.Now(),
		CommitHash: commitHash,
		Files:      files,
		Entries:    entries,
		Duration:   duration.Round(time.Millisecond).String(),
		Status:     status,
	})
}
