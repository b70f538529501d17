package cli

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/docpulse/docpulse/internal/errors"
	"github.com/docpulse/docpulse/internal/git"
	"github.com/docpulse/docpulse/internal/watch"
)

var (
	watchIntervalFlag time.Duration
	watchFSFlag       bool
	watchNotifyFlag   bool
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Run the pipeline on the refresh cadence",
	Long: `Run the summarize pipeline whenever the docs checkout advances.

Every interval (default 3h, matching the published feed's cadence) the
HEAD commit of the docs checkout is inspected; when it differs from the
last processed commit, its changed pages are summarized and recorded.
When HEAD has not moved but the worktree carries uncommitted edits, a
single local run processes those edits instead. With --fs-events,
filesystem changes in the checkout also trigger a refresh between
ticks. With --notify, every run that records entries is also published
as a GitHub Release.

Runs until interrupted (SIGINT/SIGTERM).`,
	GroupID:      GroupPipeline,
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runWatch(cmd)
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)

	watchCmd.Flags().DurationVar(&watchIntervalFlag, "interval", 0, "Refresh cadence (default from config, 3h)")
	watchCmd.Flags().BoolVar(&watchFSFlag, "fs-events", false, "Also refresh on filesystem changes in the docs checkout")
	watchCmd.Flags().BoolVar(&watchNotifyFlag, "notify", false, "Publish a GitHub Release for every run with entries")
}

func runWatch(cmd *cobra.Command) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	interval := cfg.Interval
	if watchIntervalFlag > 0 {
		interval = watchIntervalFlag
	}

	if watchNotifyFlag {
		if cfg.GitHub.Token == "" {
			return errors.MissingGitHubToken()
		}
		if cfg.GitHub.Owner == "" || cfg.GitHub.Repo == "" {
			return errors.MissingGitHubRepo()
		}
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	st := &watchState{}

	run := func(ctx context.Context) error {
		return watchTick(cfg.DocsDir, st, func(files []string, commitHash string) error {
			result, err := runPipeline(ctx, cfg, files, commitHash, cmd.OutOrStdout(), pipelineOptions{})
			if err != nil {
				return err
			}

			if watchNotifyFlag && len(result.Block.Entries) > 0 {
				if err := publishRun(ctx, cfg, result.Block, cmd.OutOrStdout()); err != nil {
					// The changelog is already recorded; a failed release is
					// worth retrying next run, not aborting the watch.
					fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %v\n", err)
				}
			}
			return nil
		})
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Watching %s every %s (Ctrl+C to stop)\n", cfg.DocsDir, interval)

	runner := watch.NewRunner(cfg.DocsDir, interval, run, watch.WithFSEvents(watchFSFlag))
	return runner.Watch(ctx)
}

// watchState tracks what the watch loop has already processed:
// lastProcessed dedupes interval ticks that find no new commit, and
// localDone caps uncommitted worktree edits at one run per dirty period.
type watchState struct {
	lastProcessed string
	localDone     bool
}

// watchTick decides what one refresh should process and invokes exec with
// the status-prefixed file list and commit hash. A new HEAD triggers a
// commit run; an unchanged HEAD over a dirty worktree triggers a single
// local (empty hash) run; otherwise the tick is a no-op.
func watchTick(docsDir string, st *watchState, exec func(files []string, commitHash string) error) error {
	head, err := git.HeadShortHash(docsDir)
	if err != nil {
		return err
	}

	if head != st.lastProcessed {
		files, err := git.HeadChangedFiles(docsDir)
		if err != nil {
			return err
		}
		if err := exec(files, head); err != nil {
			return err
		}
		st.lastProcessed = head
		st.localDone = false
		return nil
	}

	if st.localDone {
		return nil
	}
	dirty, err := git.HasLocalChanges(docsDir)
	if err != nil || !dirty {
		return err
	}
	files, err := git.LocalChangedFiles(docsDir)
	if err != nil {
		return err
	}
	if err := exec(files, ""); err != nil {
		return err
	}
	st.localDone = true
	return nil
}
