package cli

import (
	"fmt"
	"log"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/quackverse/ducktyper/internal/api"
	"github.com/quackverse/ducktyper/internal/config"
)

var serveMetrics bool

func init() {
	serveCmd.Flags().BoolVar(&serveMetrics, "metrics", true, "expose Prometheus /metrics")
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the local HTTP API",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	svc, j, err := openEngineWith(cfg)
	if err != nil {
		return err
	}
	defer closeJournal(j)

	server := api.NewServer(svc)
	if j != nil {
		server.SetJournal(j)
	}
	if serveMetrics {
		server.EnableMetrics()
	}

	addr := fmt.Sprintf("%s:%d", cfg.API.Host, cfg.API.Port)
	log.Printf("[serve] listening on http://%s", addr)
	return http.ListenAndServe(addr, server.Handler())
}
