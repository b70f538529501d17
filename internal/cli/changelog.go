package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/docpulse/docpulse/internal/changelog"
	"github.com/docpulse/docpulse/internal/errors"
	"github.com/docpulse/docpulse/internal/output"
)

var (
	changelogLastFlag  int
	changelogPlainFlag bool
)

var changelogCmd = &cobra.Command{
	Use:   "changelog",
	Short: "View recent changelog entries in the terminal",
	Long: `View recent entries from pages/changelog.json.

By default, shows the 5 most recent runs. Each run is shown under its
date (KST) with one tagged line per changed page.

Examples:
  docpulse changelog              # Show 5 most recent runs
  docpulse changelog --last 10    # Show 10 most recent runs
  docpulse changelog --plain      # Plain output (no colors/icons)`,
	GroupID:      GroupInternal,
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runChangelogView(cmd)
	},
}

func init() {
	rootCmd.AddCommand(changelogCmd)

	changelogCmd.Flags().IntVar(&changelogLastFlag, "last", 5, "Number of runs to show")
	changelogCmd.Flags().BoolVar(&changelogPlainFlag, "plain", false, "Plain text output (no colors/icons)")
}

func runChangelogView(cmd *cobra.Command) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	store := changelog.NewStore(cfg.PagesDir)
	feed := store.Load()
	if len(feed) == 0 {
		return errors.EmptyChangelog(store.Path())
	}

	opts := changelog.FormatOptions{Plain: changelogPlainFlag}

	shown := feed.LastN(changelogLastFlag)
	if !changelogPlainFlag {
		output.PrintRule(cmd.OutOrStdout(), "docpulse changelog")
	}
	if err := changelog.FormatTerminal(shown, cmd.OutOrStdout(), opts); err != nil {
		return fmt.Errorf("formatting entries: %w", err)
	}

	if len(shown) < len(feed) {
		fmt.Fprintf(cmd.OutOrStdout(), "\n(%d of %d runs shown, %d entries recorded. Use --last %d to see all)\n",
			len(shown), len(feed), feed.EntryCount(), len(feed))
	}

	return nil
}
