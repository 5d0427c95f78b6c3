package cli

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/stacklight-labs/sitesmith/internal/adapters/driven/config/file"
	"github.com/stacklight-labs/sitesmith/internal/adapters/driving/httpapi"
	"github.com/stacklight-labs/sitesmith/internal/logger"
	"github.com/stacklight-labs/sitesmith/internal/metrics"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long: `Start the HTTP API server exposing generation, editing, stored
documents, asset serving, health and Prometheus metrics.

Endpoints:
  POST   /api/generate
  POST   /api/edit
  GET    /api/documents
  GET    /api/documents/{id}
  DELETE /api/documents/{id}
  GET    /assets/{id}
  GET    /healthz
  GET    /metrics`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", ":8080", "listen address")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	// Wire Prometheus before the pipeline so every stage records metrics.
	registry := prometheus.NewRegistry()
	recorder = metrics.NewPrometheusRecorder(registry)

	if err := initPipeline(); err != nil {
		return err
	}

	watcher, err := file.WatchPrompts(promptStore)
	if err != nil {
		logger.Warn("prompt hot reload unavailable: %v", err)
	} else {
		defer watcher.Close()
	}

	server, err := httpapi.NewServer(&httpapi.Ports{
		Generator: generatorService,
		Editor:    editorService,
		Documents: documentStore,
		Assets:    assetStore,
		Metrics:   promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
	})
	if err != nil {
		return fmt.Errorf("creating server: %w", err)
	}

	return server.Run(cmd.Context(), serveAddr)
}
