package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Load reads a YAML configuration file at path, applies defaults, applies
// EDGESENTRY_-prefixed environment variable overrides, and validates the
// result. Environment variables always take precedence over the file.
//
// A missing file is not an error — Load proceeds with an empty Config and
// lets ApplyDefaults fill it in, so a container image with no mounted
// config still boots. A file that exists but fails to parse is a boot
// error: the operator wrote something, and it's broken.
func Load(path string) (*Config, error) {
	// Fields whose zero value is a meaningful setting (false, or a 0
	// interval that disables the reconciler) get their defaults before
	// parsing, so only a value written in the file replaces them.
	cfg := Config{
		Reload: ReloadConfig{
			WatchEnabled:      DefaultWatchEnabled,
			ReconcileInterval: DefaultReconcileInterval,
		},
		Telemetry: TelemetryConfig{
			Metrics: MetricsConfig{Enabled: DefaultMetricsEnabled},
		},
	}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse configuration file %q: %w", path, err)
		}
	case os.IsNotExist(err):
		// no file on disk; fall through with zero-valued cfg
	default:
		return nil, fmt.Errorf("failed to read configuration file %q: %w", path, err)
	}

	ApplyDefaults(&cfg)
	applyEnvOverrides(&cfg)

	if err := Validate(&cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &cfg, nil
}

// applyEnvOverrides applies EDGESENTRY_SECTION_FIELD environment variable
// overrides on top of file-based configuration.
func applyEnvOverrides(cfg *Config) {
	if val := os.Getenv("EDGESENTRY_SERVER_LISTEN_ADDRESS"); val != "" {
		cfg.Server.ListenAddress = val
	}
	if val := os.Getenv("EDGESENTRY_SERVER_READ_TIMEOUT"); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			cfg.Server.ReadTimeout = d
		}
	}
	if val := os.Getenv("EDGESENTRY_SERVER_WRITE_TIMEOUT"); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			cfg.Server.WriteTimeout = d
		}
	}
	if val := os.Getenv("EDGESENTRY_SERVER_IDLE_TIMEOUT"); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			cfg.Server.IdleTimeout = d
		}
	}

	if val := os.Getenv("EDGESENTRY_SANDBOX_ARTIFACT_PATH"); val != "" {
		cfg.Sandbox.ArtifactPath = val
	}

	if val := os.Getenv("EDGESENTRY_RELOAD_WATCH_ENABLED"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Reload.WatchEnabled = b
		}
	}
	if val := os.Getenv("EDGESENTRY_RELOAD_RECONCILE_INTERVAL"); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			cfg.Reload.ReconcileInterval = d
		}
	}

	if val := os.Getenv("EDGESENTRY_TELEMETRY_LOGGING_LEVEL"); val != "" {
		cfg.Telemetry.Logging.Level = val
	}
	if val := os.Getenv("EDGESENTRY_TELEMETRY_LOGGING_FORMAT"); val != "" {
		cfg.Telemetry.Logging.Format = val
	}
	if val := os.Getenv("EDGESENTRY_TELEMETRY_METRICS_ENABLED"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Telemetry.Metrics.Enabled = b
		}
	}
	if val := os.Getenv("EDGESENTRY_TELEMETRY_METRICS_PATH"); val != "" {
		cfg.Telemetry.Metrics.Path = val
	}
}
