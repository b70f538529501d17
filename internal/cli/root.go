// Package cli implements the docpulse command tree.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/docpulse/docpulse/internal/config"
	"github.com/docpulse/docpulse/internal/errors"
	"github.com/docpulse/docpulse/internal/git"
	"github.com/docpulse/docpulse/internal/log"
	"github.com/docpulse/docpulse/internal/version"
)

// Command groups for help output.
const (
	GroupPipeline = "pipeline"
	GroupPublish  = "publish"
	GroupInternal = "internal"
)

var (
	configFlag string
	debugFlag  bool
)

var rootCmd = &cobra.Command{
	Use:   "docpulse",
	Short: "Track and republish Claude Code documentation changes",
	Long: `docpulse watches a git checkout of the Claude Code documentation,
summarizes meaningful changes with the Gemini API, and republishes them as
a JSON changelog, a browsable blog, and GitHub Release notes.

The summarize command processes an explicit set of changed files (as CI
does after the docs checkout advances); watch runs the same pipeline on a
refresh cadence; serve hosts the published changelog.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := ""
		if debugFlag {
			level = "debug"
			git.SetDebugLogger(func(format string, a ...any) {
				fmt.Fprintf(os.Stderr, format+"\n", a...)
			})
		}
		log.Configure(log.Config{Level: level})
	},
}

func init() {
	rootCmd.Version = fmt.Sprintf("%s (commit %s, built %s)", version.Version, version.Commit, version.BuildDate)

	rootCmd.PersistentFlags().StringVar(&configFlag, "config", "", "Path to project config file (default .docpulse/config.yml)")
	rootCmd.PersistentFlags().BoolVar(&debugFlag, "debug", false, "Enable debug output")

	rootCmd.AddGroup(
		&cobra.Group{ID: GroupPipeline, Title: "Pipeline Commands:"},
		&cobra.Group{ID: GroupPublish, Title: "Publishing Commands:"},
		&cobra.Group{ID: GroupInternal, Title: "Internal Commands:"},
	)
}

// loadConfig loads configuration honoring the --config flag.
func loadConfig() (*config.Configuration, error) {
	cfg, err := config.Load(configFlag)
	if err != nil {
		return nil, errors.Wrap(err, errors.Configuration,
			"Check .docpulse/config.yml for syntax errors",
			"Run 'docpulse config init' to write a fresh template")
	}
	return cfg, nil
}

// Execute runs the root command. Structured CLI errors are printed with
// remediation guidance; the returned error carries the exit code for main.
func Execute() error {
	err := rootCmd.Execute()
	if err == nil {
		return nil
	}

	if cliErr := errors.AsCLIError(err); cliErr != nil {
		errors.PrintError(cliErr)
		return err
	}

	var exitErr *ExitError
	if !asExitError(err, &exitErr) {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	return err
}
