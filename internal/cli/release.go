package cli

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/docpulse/docpulse/internal/changelog"
	"github.com/docpulse/docpulse/internal/config"
	"github.com/docpulse/docpulse/internal/errors"
	"github.com/docpulse/docpulse/internal/output"
	"github.com/docpulse/docpulse/internal/release"
)

var (
	releasePublishFlag bool
	releaseTagFlag     string
)

var releaseCmd = &cobra.Command{
	Use:   "release",
	Short: "Render the release body for the most recent run",
	Long: `Render the release body markdown for the most recent changelog run,
and optionally publish it as a GitHub Release.

Publishing requires github.owner, github.repo, and a token (github.token
or the GITHUB_TOKEN env var). The release tag defaults to docs-<commit>.

Examples:
  docpulse release                   # Print the release body
  docpulse release --publish         # Create the GitHub Release
  docpulse release --publish --tag docs-2026-08-29`,
	GroupID:      GroupPublish,
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runRelease(cmd)
	},
}

func init() {
	rootCmd.AddCommand(releaseCmd)

	releaseCmd.Flags().BoolVar(&releasePublishFlag, "publish", false, "Publish as a GitHub Release")
	releaseCmd.Flags().StringVar(&releaseTagFlag, "tag", "", "Release tag (default docs-<commit>)")
}

func runRelease(cmd *cobra.Command) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	store := changelog.NewStore(cfg.PagesDir)
	feed := store.Load()
	if len(feed) == 0 {
		return errors.EmptyChangelog(store.Path())
	}

	latest := feed[0]
	body := release.RenderBody(latest.Entries)

	if !releasePublishFlag {
		fmt.Fprint(cmd.OutOrStdout(), body)
		return nil
	}

	if cfg.GitHub.Token == "" {
		return errors.MissingGitHubToken()
	}
	if cfg.GitHub.Owner == "" || cfg.GitHub.Repo == "" {
		return errors.MissingGitHubRepo()
	}

	tag := releaseTagFlag
	if tag == "" {
		tag = release.TagFor(latest.CommitHash, time.Now())
	}

	publisher := release.NewPublisher(cmd.Context(), cfg.GitHub.Owner, cfg.GitHub.Repo, cfg.GitHub.Token)
	url, err := publisher.Publish(cmd.Context(), tag, body)
	if err != nil {
		return errors.WrapWithMessage(err, errors.Runtime, "publishing release",
			"Check that the token has the repo scope",
			"Check that the tag does not already exist")
	}

	output.PrintSuccess(cmd.OutOrStdout(), fmt.Sprintf("Published %s: %s", tag, url))
	return nil
}

// publishRun publishes one recorded block as a GitHub Release. Used by the
// watch command's --notify mode.
func publishRun(ctx context.Context, cfg *config.Configuration, block changelog.Block, out io.Writer) error {
	tag := release.TagFor(block.CommitHash, time.Now())
	body := release.RenderBody(block.Entries)

	publisher := release.NewPublisher(ctx, cfg.GitHub.Owner, cfg.GitHub.Repo, cfg.GitHub.Token)
	url, err := publisher.Publish(ctx, tag, body)
	if err != nil {
		return fmt.Errorf("publishing release %s: %w", tag, err)
	}

	output.PrintSuccess(out, fmt.Sprintf("Published %s: %s", tag, url))
	return nil
}
