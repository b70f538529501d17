package cli

import (
	"os"
	"time"

	"github.com/briandowns/spinner"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/docpulse/docpulse/internal/errors"
)

var (
	summarizeFilesFlag    []string
	summarizeCommitFlag   string
	summarizeSkipBodyFlag bool
)

var summarizeCmd = &cobra.Command{
	Use:   "summarize --files STATUS:path...",
	Short: "Summarize changed documentation pages into the changelog",
	Long: `Summarize changed documentation pages with the Gemini API and record
the results in pages/changelog.json.

Changed files are passed as STATUS:path pairs, where STATUS is the git
status letter (A=added, M=modified, D=deleted; a bare path means modified).
Non-markdown files are ignored. Trivial changes (whitespace, typos,
formatting) are filtered out by the model and produce no entries.

Updated pages also get a diff artifact under pages/diffs/ that the blog
links to, and every run with entries rewrites the release body markdown.

Examples:
  docpulse summarize --files M:docs/hooks.md --commit-hash 4f2a91c
  docpulse summarize --files A:docs/new-page.md D:docs/old-page.md
  docpulse summarize --files docs/cli.md         # staged/unstaged diff`,
	GroupID:      GroupPipeline,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSummarize(cmd)
	},
}

func init() {
	rootCmd.AddCommand(summarizeCmd)

	summarizeCmd.Flags().StringSliceVar(&summarizeFilesFlag, "files", nil, "Changed files as STATUS:path pairs")
	summarizeCmd.Flags().StringVar(&summarizeCommitFlag, "commit-hash", "", "Commit to diff against its parent (short hash ok)")
	summarizeCmd.Flags().BoolVar(&summarizeSkipBodyFlag, "skip-release-body", false, "Do not rewrite the release body markdown")
}

func runSummarize(cmd *cobra.Command) error {
	if len(summarizeFilesFlag) == 0 {
		return errors.MissingFilesArgument()
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	stop := startSpinner(" Summarizing documentation changes...")
	_, err = runPipeline(cmd.Context(), cfg, summarizeFilesFlag, summarizeCommitFlag, cmd.OutOrStdout(),
		pipelineOptions{SkipReleaseBody: summarizeSkipBodyFlag})
	stop()
	return err
}

// startSpinner shows a progress spinner when stderr is a terminal.
// The returned func stops it.
func startSpinner(suffix string) func() {
	if !isatty.IsTerminal(os.Stderr.Fd()) {
		return func() {}
	}

	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(os.Stderr))
	s.Suffix = suffix
	s.Start()
	return s.Stop
}
