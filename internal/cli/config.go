package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/docpulse/docpulse/internal/config"
	"github.com/docpulse/docpulse/internal/errors"
	"github.com/docpulse/docpulse/internal/output"
)

var configCmd = &cobra.Command{
	Use:     "config",
	Short:   "Manage docpulse configuration",
	GroupID: GroupInternal,
}

var configInitCmd = &cobra.Command{
	Use:          "init",
	Short:        "Write a commented project config template",
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runConfigInit(cmd)
	},
}

var configShowCmd = &cobra.Command{
	Use:          "show",
	Short:        "Show the effective configuration",
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runConfigShow(cmd)
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configInitCmd, configShowCmd)
}

func runConfigInit(cmd *cobra.Command) error {
	path := config.ProjectConfigPath()
	if configFlag != "" {
		path = configFlag
	}

	if _, err := os.Stat(path); err == nil {
		return errors.NewConfigError(
			fmt.Sprintf("config file already exists at %s", path),
			"Remove the existing file first, or edit it in place")
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(config.GetDefaultConfigTemplate()), 0o644); err != nil {
		return fmt.Errorf("writing config template: %w", err)
	}

	output.PrintSuccess(cmd.OutOrStdout(), "Wrote "+path)
	return nil
}

func runConfigShow(cmd *cobra.Command) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "docs_dir:            %s\n", cfg.DocsDir)
	fmt.Fprintf(out, "pages_dir:           %s\n", cfg.PagesDir)
	fmt.Fprintf(out, "base_url:            %s\n", cfg.BaseURL)
	fmt.Fprintf(out, "model:               %s\n", cfg.Model)
	fmt.Fprintf(out, "gemini_api_key:      %s\n", maskSecret(cfg.GeminiAPIKey))
	fmt.Fprintf(out, "max_retries:         %d\n", cfg.MaxRetries)
	fmt.Fprintf(out, "max_diff_chars:      %d\n", cfg.MaxDiffChars)
	fmt.Fprintf(out, "request_pause:       %s\n", cfg.RequestPause)
	fmt.Fprintf(out, "max_parallel:        %d\n", cfg.MaxParallel)
	fmt.Fprintf(out, "interval:            %s\n", cfg.Interval)
	fmt.Fprintf(out, "state_dir:           %s\n", cfg.StateDir)
	fmt.Fprintf(out, "max_history_entries: %d\n", cfg.MaxHistoryEntries)
	fmt.Fprintf(out, "release_body:        %s\n", cfg.ReleaseBody)
	fmt.Fprintf(out, "serve.addr:          %s\n", cfg.Serve.Addr)
	fmt.Fprintf(out, "serve.rate_limit_rps: %d\n", cfg.Serve.RateLimitRPS)
	fmt.Fprintf(out, "github.owner:        %s\n", cfg.GitHub.Owner)
	fmt.Fprintf(out, "github.repo:         %s\n", cfg.GitHub.Repo)
	fmt.Fprintf(out, "github.token:        %s\n", maskSecret(cfg.GitHub.Token))
	return nil
}

// maskSecret hides all but the last four characters of a credential.
func maskSecret(s string) string {
	if s == "" {
		return "(unset)"
	}
	if len(s) <= 4 {
		return "****"
	}
	return "****" + s[len(s)-4:]
}
