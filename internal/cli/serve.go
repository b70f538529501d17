package cli

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/docpulse/docpulse/internal/changelog"
	"github.com/docpulse/docpulse/internal/web"
)

var serveAddrFlag string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the published changelog site",
	Long: `Serve the changelog blog, the JSON feed, and diff pages over HTTP.

Routes:
  GET /               HTML blog of the changelog
  GET /api/changelog  The raw JSON feed
  GET /diffs/{name}   Diff artifact, highlighted (add ?raw=1 for plain text)
  GET /healthz        Liveness check

The server is read-only: it never mutates the pages directory.`,
	GroupID:      GroupPublish,
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serveAddrFlag, "addr", "", "Listen address (default from config, :8080)")
}

func runServe(cmd *cobra.Command) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	addr := cfg.Serve.Addr
	if serveAddrFlag != "" {
		addr = serveAddrFlag
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store := changelog.NewStore(cfg.PagesDir)
	server := web.NewServer(store, addr, web.WithRateLimit(cfg.Serve.RateLimitRPS))
	return server.Run(ctx)
}
