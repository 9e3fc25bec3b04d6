package main

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/edgesentry/edgesentry/pkg/config"
	"github.com/edgesentry/edgesentry/pkg/httpapi"
	"github.com/edgesentry/edgesentry/pkg/sandbox"
	"github.com/edgesentry/edgesentry/pkg/telemetry/logging"
	"github.com/edgesentry/edgesentry/pkg/telemetry/metrics"
)

var runFlags struct {
	listenAddress string
	logLevel      string
	dryRun        bool
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Start the edgesentry policy service",
	Long: `Start the edgesentry HTTP server: compile the configured WASM
artifact, bring up the hot-reload watcher and reconciler, and serve
/health, /evaluate, /reload, /metrics, and /metrics/prom.`,
	RunE: runServer,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVarP(&runFlags.listenAddress, "listen", "l", "", "override listen address")
	runCmd.Flags().StringVar(&runFlags.logLevel, "log-level", "", "override log level (debug, info, warn, error)")
	runCmd.Flags().BoolVar(&runFlags.dryRun, "dry-run", false, "validate config without starting the server")
}

func runServer(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if runFlags.listenAddress != "" {
		cfg.Server.ListenAddress = runFlags.listenAddress
	}
	if runFlags.logLevel != "" {
		cfg.Telemetry.Logging.Level = runFlags.logLevel
	}

	logger, err := logging.New(cfg.Telemetry.Logging, nil)
	if err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
	}

	if runFlags.dryRun {
		fmt.Println("configuration valid")
		return nil
	}

	logger.Info("bootstrapping policy sandbox", "artifact_path", cfg.Sandbox.ArtifactPath)
	registry, err := sandbox.Bootstrap(cfg.Sandbox.ArtifactPath, logger)
	if err != nil {
		return fmt.Errorf("failed to bootstrap policy sandbox: %w", err)
	}
	initial := registry.Read()
	logger.Info("policy loaded", "policy_version", initial.Version)

	var collector *metrics.Collector
	if cfg.Telemetry.Metrics.Enabled {
		collector = metrics.NewCollector(cfg.Telemetry.Metrics, nil)
	}
	coordinator := sandbox.NewCoordinator(registry, cfg.Sandbox.ArtifactPath, logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if cfg.Reload.WatchEnabled {
		watcher := sandbox.NewWatcher(coordinator, filepath.Dir(cfg.Sandbox.ArtifactPath), filepath.Ext(cfg.Sandbox.ArtifactPath), logger)
		go func() {
			if err := watcher.Run(ctx); err != nil {
				logger.Error("watcher stopped", "error", err)
			}
		}()
	}

	if cfg.Reload.ReconcileInterval > 0 {
		reconciler := sandbox.NewReconciler(coordinator, cfg.Sandbox.ArtifactPath, cfg.Reload.ReconcileInterval, logger)
		if err := reconciler.Start(ctx, cfg.Reload.ReconcileInterval); err != nil {
			logger.Warn("failed to start reconciler", "error", err)
		}
	}

	server := httpapi.NewServer(cfg.Server, registry, coordinator, collector, logger)
	return server.Run(ctx)
}
