package sandbox

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// watchDebounce is the quiet period required after the last matching
// fsnotify event before a reload is attempted (spec.md §4.6).
const watchDebounce = 500 * time.Millisecond

// ReloadResult is the structured outcome of one reload attempt, returned
// to manual callers (§4.6 "Manual reload") independent of however an
// HTTP handler later renders it as JSON.
type ReloadResult struct {
	Success       bool
	Message       string
	SizeBytes     int
	PolicyVersion string
	Error         string
}

// Coordinator consumes "artifact changed" notifications, compiles new
// Modules, and publishes them to a Registry. It fails closed: a read or
// compile failure leaves the Registry's current Snapshot untouched.
type Coordinator struct {
	registry     *Registry
	artifactPath string
	logger       *slog.Logger
}

// NewCoordinator builds a Coordinator bound to one Registry and one
// artifact path on disk.
func NewCoordinator(registry *Registry, artifactPath string, logger *slog.Logger) *Coordinator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Coordinator{registry: registry, artifactPath: artifactPath, logger: logger}
}

// Reload performs the read-compile-stamp-publish sequence of spec.md
// §4.6 steps 1-5 and returns a structured result. It is used both by the
// manual "/reload" path and by the file-watch and periodic-reconcile
// paths below.
func (c *Coordinator) Reload() ReloadResult {
	bytes, err := os.ReadFile(c.artifactPath)
	if err != nil {
		ioErr := &IoError{FilePath: c.artifactPath, Cause: err}
		c.logger.Error("reload failed: cannot read artifact", "path", c.artifactPath, "error", err)
		return ReloadResult{Success: false, Error: ioErr.Error()}
	}

	engine, err := NewEngine()
	if err != nil {
		c.logger.Error("reload failed: cannot build engine", "error", err)
		return ReloadResult{Success: false, Error: err.Error()}
	}

	module, err := Compile(engine, bytes)
	if err != nil {
		c.logger.Error("reload failed: cannot compile artifact", "path", c.artifactPath, "error", err)
		return ReloadResult{Success: false, Error: err.Error()}
	}

	version := StampVersion(len(bytes), time.Now())
	c.registry.Publish(Snapshot{Engine: engine, Module: module, Version: version})

	c.logger.Info("policy reloaded", "path", c.artifactPath, "size_bytes", len(bytes), "policy_version", version)
	return ReloadResult{Success: true, Message: "policy reloaded successfully", SizeBytes: len(bytes), PolicyVersion: version}
}

// Watcher drives Coordinator.Reload from a debounced stream of fsnotify
// events scoped to one directory and filtered to one file extension,
// mirroring the teacher's FileWatcher/Debouncer pair but specialized to
// a single artifact rather than a set of policy files.
type Watcher struct {
	coordinator *Coordinator
	dir         string
	ext         string
	logger      *slog.Logger

	mu    sync.Mutex
	timer *time.Timer
}

// NewWatcher builds a Watcher over dir, triggering a Coordinator.Reload
// whenever a file whose extension matches ext settles for watchDebounce.
func NewWatcher(coordinator *Coordinator, dir, ext string, logger *slog.Logger) *Watcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Watcher{coordinator: coordinator, dir: dir, ext: ext, logger: logger}
}

// Run watches dir non-recursively until ctx is cancelled. It never
// returns a reload error to the caller — failures are logged and the
// service keeps serving the prior Snapshot, per the fail-closed policy.
func (w *Watcher) Run(ctx context.Context) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return &LoadError{Stage: "watch", Message: "failed to create file watcher", Cause: err}
	}
	defer fsw.Close()

	if err := fsw.Add(w.dir); err != nil {
		return &LoadError{Stage: "watch", Message: "failed to watch policies directory", Cause: err}
	}

	w.logger.Info("watching policies directory", "dir", w.dir, "extension", w.ext)

	for {
		select {
		case <-ctx.Done():
			w.stopTimer()
			return nil

		case event, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if !w.matches(event) {
				continue
			}
			w.debounce()

		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			w.logger.Error("file watcher error", "error", err)
		}
	}
}

func (w *Watcher) matches(event fsnotify.Event) bool {
	if event.Op&fsnotify.Chmod == fsnotify.Chmod {
		return false
	}
	return strings.EqualFold(filepath.Ext(event.Name), w.ext)
}

func (w *Watcher) debounce() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(watchDebounce, func() {
		w.logger.Info("detected policy change, hot-reloading")
		w.coordinator.Reload()
	})
}

func (w *Watcher) stopTimer() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timer != nil {
		w.timer.Stop()
	}
}
