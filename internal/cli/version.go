package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/docpulse/docpulse/internal/version"
)

var versionCmd = &cobra.Command{
	Use:     "version",
	Short:   "Show version information",
	GroupID: GroupInternal,
	Args:    cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "docpulse %s\n", version.Version)
		fmt.Fprintf(out, "  commit: %s\n", version.Commit)
		fmt.Fprintf(out, "  built:  %s\n", version.BuildDate)
		if version.IsDevBuild() {
			fmt.Fprintln(out, "  (development build)")
		}
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
