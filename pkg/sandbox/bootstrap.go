package sandbox

import (
	"log/slog"
	"os"
	"time"
)

// Bootstrap reads and compiles the artifact at artifactPath and returns a
// Registry seeded with the resulting Snapshot. Unlike Coordinator.Reload,
// a failure here is not fail-closed — there is no prior Snapshot to fall
// back to, so the caller (cmd/edgesentry) is expected to treat the
// returned error as fatal and exit non-zero.
func Bootstrap(artifactPath string, logger *slog.Logger) (*Registry, error) {
	bytes, err := os.ReadFile(artifactPath)
	if err != nil {
		return nil, &IoError{FilePath: artifactPath, Cause: err}
	}

	engine, err := NewEngine()
	if err != nil {
		return nil, err
	}

	module, err := Compile(engine, bytes)
	if err != nil {
		return nil, err
	}

	version := StampVersion(len(bytes), time.Now())
	if logger != nil {
		logger.Info("loaded initial policy", "path", artifactPath, "size_bytes", len(bytes), "policy_version", version)
	}
	return NewRegistry(Snapshot{Engine: engine, Module: module, Version: version}), nil
}
