// Package watch triggers the changelog pipeline on a refresh cadence and,
// optionally, on filesystem changes in the docs checkout. The published
// feed's cadence is 3 hours; fsnotify narrows the latency when the checkout
// is updated in place.
package watch

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"

	"github.com/docpulse/docpulse/internal/log"
)

// DefaultDebounce coalesces bursts of filesystem events into one run.
const DefaultDebounce = 2 * time.Second

// RunFunc executes one pipeline run.
type RunFunc func(ctx context.Context) error

// Runner drives periodic and change-triggered pipeline runs.
type Runner struct {
	docsDir  string
	interval time.Duration
	debounce time.Duration
	useFS    bool
	run      RunFunc
}

// Option configures a Runner.
type Option func(*Runner)

// WithDebounce overrides the filesystem event debounce window.
func WithDebounce(d time.Duration) Option {
	return func(r *Runner) {
		r.debounce = d
	}
}

// WithFSEvents enables fsnotify-triggered runs in addition to the interval.
func WithFSEvents(enabled bool) Option {
	return func(r *Runner) {
		r.useFS = enabled
	}
}

// NewRunner creates a Runner that executes run every interval while
// watching docsDir.
func NewRunner(docsDir string, interval time.Duration, run RunFunc, opts ...Option) *Runner {
	r := &Runner{
		docsDir:  docsDir,
		interval: interval,
		debounce: DefaultDebounce,
		run:      run,
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Watch runs immediately, then re-runs on every interval tick and (when
// enabled) after debounced filesystem changes. It returns when the context
// is cancelled. Individual run failures are logged, not fatal: the next
// cadence gets a fresh chance.
func (r *Runner) Watch(ctx context.Context) error {
	logger := log.WithComponent("watch")

	var fsEvents <-chan struct{}
	if r.useFS {
		watcher, events, err := r.startFSWatcher(ctx)
		if err != nil {
			return err
		}
		defer watcher.Close()
		fsEvents = events
	}

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	r.runOnce(ctx, logger)

	for {
		select {
		case <-ctx.Done():
			logger.Info().Msg("watch stopped")
			return nil
		case <-ticker.C:
			logger.Info().Dur("interval", r.interval).Msg("interval refresh")
			r.runOnce(ctx, logger)
		case <-fsEvents:
			logger.Info().Msg("docs changed, refreshing")
			r.runOnce(ctx, logger)
			ticker.Reset(r.interval)
		}
	}
}

// runOnce executes the pipeline and logs failures.
func (r *Runner) runOnce(ctx context.Context, logger zerolog.Logger) {
	start := time.Now()
	if err := r.run(ctx); err != nil {
		if ctx.Err() != nil {
			return
		}
		logger.Error().Err(err).Msg("pipeline run failed")
		return
	}
	logger.Info().Dur("took", time.Since(start)).Msg("pipeline run complete")
}

// startFSWatcher watches docsDir recursively for markdown changes and
// delivers debounced triggers.
func (r *Runner) startFSWatcher(ctx context.Context) (*fsnotify.Watcher, <-chan struct{}, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, nil, err
	}

	if err := addRecursive(watcher, r.docsDir); err != nil {
		watcher.Close()
		return nil, nil, err
	}

	triggers := make(chan struct{}, 1)
	go r.debounceLoop(ctx, watcher, triggers)

	return watcher, triggers, nil
}

// debounceLoop coalesces relevant fsnotify events into single triggers.
func (r *Runner) debounceLoop(ctx context.Context, watcher *fsnotify.Watcher, triggers chan<- struct{}) {
	logger := log.WithComponent("watch")

	var timer *time.Timer
	var timerC <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if !relevantEvent(event) {
				continue
			}
			// New subdirectories join the watch set.
			if event.Op.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					_ = addRecursive(watcher, event.Name)
				}
			}
			if timer == nil {
				timer = time.NewTimer(r.debounce)
				timerC = timer.C
			} else {
				timer.Reset(r.debounce)
			}
		case <-timerC:
			timer = nil
			timerC = nil
			select {
			case triggers <- struct{}{}:
			default:
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			logger.Warn().Err(err).Msg("fsnotify error")
		}
	}
}

// relevantEvent reports whether an fsnotify event should trigger a run:
// markdown file writes, creates, removes, and renames.
func relevantEvent(event fsnotify.Event) bool {
	if !event.Op.Has(fsnotify.Write) && !event.Op.Has(fsnotify.Create) &&
		!event.Op.Has(fsnotify.Remove) && !event.Op.Has(fsnotify.Rename) {
		return false
	}
	return strings.HasSuffix(event.Name, ".md") || filepath.Ext(event.Name) == ""
}

// addRecursive adds path and all subdirectories to the watcher.
func addRecursive(watcher *fsnotify.Watcher, path string) error {
	return filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return watcher.Add(p)
		}
		return nil
	})
}
