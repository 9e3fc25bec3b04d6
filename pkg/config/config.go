package config

import "time"

// Config is the root configuration structure for edgesentry.
type Config struct {
	// Server contains the HTTP API listener configuration.
	Server ServerConfig `yaml:"server"`

	// Sandbox contains policy artifact and evaluation sandbox configuration.
	Sandbox SandboxConfig `yaml:"sandbox"`

	// Reload contains hot-reload (file watch and periodic reconcile) configuration.
	Reload ReloadConfig `yaml:"reload"`

	// Telemetry contains logging and metrics configuration.
	Telemetry TelemetryConfig `yaml:"telemetry"`
}

// ServerConfig contains configuration for the HTTP API server.
type ServerConfig struct {
	// ListenAddress is the address and port the API listens on.
	// Default: "0.0.0.0:8080"
	ListenAddress string `yaml:"listen_address"`

	// ReadTimeout is the maximum duration for reading the entire request.
	// Default: 5s
	ReadTimeout time.Duration `yaml:"read_timeout"`

	// WriteTimeout is the maximum duration before timing out writes of the response.
	// Default: 5s
	WriteTimeout time.Duration `yaml:"write_timeout"`

	// IdleTimeout is the maximum time to wait for the next request on a keep-alive connection.
	// Default: 60s
	IdleTimeout time.Duration `yaml:"idle_timeout"`

	// ShutdownTimeout bounds how long graceful shutdown waits for in-flight requests.
	// Default: 10s
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

// SandboxConfig contains configuration for the WASM policy sandbox.
type SandboxConfig struct {
	// ArtifactPath is the path to the compiled WASM policy artifact loaded at boot.
	// Default: "./policies/policy.wasm"
	ArtifactPath string `yaml:"artifact_path"`
}

// ReloadConfig contains configuration for hot-reload of the policy artifact.
type ReloadConfig struct {
	// WatchEnabled turns on the fsnotify-based file watcher.
	// Default: true
	WatchEnabled bool `yaml:"watch_enabled"`

	// ReconcileInterval is how often the periodic reconciler re-stats the
	// artifact as a fallback to the file watcher. 0 disables the reconciler.
	// Default: 30s
	ReconcileInterval time.Duration `yaml:"reconcile_interval"`
}

// TelemetryConfig contains configuration for observability.
type TelemetryConfig struct {
	// Logging contains structured logging configuration.
	Logging LoggingConfig `yaml:"logging"`

	// Metrics contains Prometheus metrics configuration.
	Metrics MetricsConfig `yaml:"metrics"`
}

// LoggingConfig contains logging configuration.
type LoggingConfig struct {
	// Level is the minimum log level to emit: "debug", "info", "warn", "error".
	// Default: "info"
	Level string `yaml:"level"`

	// Format controls the log output encoding: "json" or "text".
	// Default: "json"
	Format string `yaml:"format"`

	// AddSource includes the source file and line number in log entries.
	// Default: false
	AddSource bool `yaml:"add_source"`
}

// MetricsConfig contains metrics collection configuration.
type MetricsConfig struct {
	// Enabled controls whether the /metrics/prom endpoint is registered.
	// Default: true
	Enabled bool `yaml:"enabled"`

	// Path names the HTTP path for the Prometheus exposition endpoint.
	// The HTTP server does not read it: it always mounts the endpoint at
	// "/metrics/prom".
	// Default: "/metrics/prom"
	Path string `yaml:"path"`

	// Namespace is the metric name prefix.
	// Default: "edgesentry"
	Namespace string `yaml:"namespace"`
}
