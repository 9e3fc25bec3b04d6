package config

import "time"

// Default values for configuration fields.
const (
	DefaultListenAddress   = "0.0.0.0:8080"
	DefaultReadTimeout     = 5 * time.Second
	DefaultWriteTimeout    = 5 * time.Second
	DefaultIdleTimeout     = 60 * time.Second
	DefaultShutdownTimeout = 10 * time.Second

	DefaultArtifactPath = "./policies/policy.wasm"

	DefaultWatchEnabled      = true
	DefaultReconcileInterval = 30 * time.Second

	DefaultLoggingLevel  = "info"
	DefaultLoggingFormat = "json"

	DefaultMetricsEnabled   = true
	DefaultMetricsPath      = "/metrics/prom"
	DefaultMetricsNamespace = "edgesentry"
)

// ApplyDefaults fills zero-valued fields of cfg with their defaults. It is
// idempotent and safe to call more than once. Reload.WatchEnabled,
// Reload.ReconcileInterval and Telemetry.Metrics.Enabled are not touched
// here, since their zero values are valid settings; Load sets their
// defaults before parsing the file.
func ApplyDefaults(cfg *Config) {
	if cfg.Server.ListenAddress == "" {
		cfg.Server.ListenAddress = DefaultListenAddress
	}
	if cfg.Server.ReadTimeout == 0 {
		cfg.Server.ReadTimeout = DefaultReadTimeout
	}
	if cfg.Server.WriteTimeout == 0 {
		cfg.Server.WriteTimeout = DefaultWriteTimeout
	}
	if cfg.Server.IdleTimeout == 0 {
		cfg.Server.IdleTimeout = DefaultIdleTimeout
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = DefaultShutdownTimeout
	}

	if cfg.Sandbox.ArtifactPath == "" {
		cfg.Sandbox.ArtifactPath = DefaultArtifactPath
	}

	if cfg.Telemetry.Logging.Level == "" {
		cfg.Telemetry.Logging.Level = DefaultLoggingLevel
	}
	if cfg.Telemetry.Logging.Format == "" {
		cfg.Telemetry.Logging.Format = DefaultLoggingFormat
	}
	if cfg.Telemetry.Metrics.Path == "" {
		cfg.Telemetry.Metrics.Path = DefaultMetricsPath
	}
	if cfg.Telemetry.Metrics.Namespace == "" {
		cfg.Telemetry.Metrics.Namespace = DefaultMetricsNamespace
	}
}
