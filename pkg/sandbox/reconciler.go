package sandbox

import (
	"context"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
)

// Reconciler is a belt-and-suspenders fallback to Watcher: some NFS
// mounts and container overlay filesystems silently drop inotify events,
// so Reconciler periodically re-stats the artifact file and triggers a
// Coordinator.Reload only when size or modification time actually
// changed since the last successful load.
type Reconciler struct {
	coordinator  *Coordinator
	artifactPath string
	logger       *slog.Logger

	mu          sync.Mutex
	lastSize    int64
	lastModTime time.Time

	cron *cron.Cron
}

// NewReconciler builds a Reconciler that re-stats artifactPath. The
// interval argument is not used here; the schedule (a fixed-delay
// "@every" spec) comes from the interval passed to Start.
func NewReconciler(coordinator *Coordinator, artifactPath string, interval time.Duration, logger *slog.Logger) *Reconciler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Reconciler{
		coordinator:  coordinator,
		artifactPath: artifactPath,
		logger:       logger,
		cron:         cron.New(),
	}
}

// Start registers the reconciliation job and begins running it in the
// background. It returns once the job is scheduled; call Stop (or cancel
// ctx) to tear it down.
func (r *Reconciler) Start(ctx context.Context, interval time.Duration) error {
	schedule := cron.Every(interval)
	r.cron.Schedule(schedule, cron.FuncJob(r.tick))
	r.cron.Start()

	go func() {
		<-ctx.Done()
		r.Stop()
	}()
	return nil
}

// Stop halts the cron scheduler, waiting for any in-flight tick to
// finish.
func (r *Reconciler) Stop() {
	<-r.cron.Stop().Done()
}

func (r *Reconciler) tick() {
	info, err := os.Stat(r.artifactPath)
	if err != nil {
		r.logger.Warn("reconciler could not stat artifact", "path", r.artifactPath, "error", err)
		return
	}

	r.mu.Lock()
	unchanged := info.Size() == r.lastSize && info.ModTime().Equal(r.lastModTime)
	r.mu.Unlock()
	if unchanged {
		return
	}

	result := r.coordinator.Reload()

	r.mu.Lock()
	if result.Success {
		r.lastSize = info.Size()
		r.lastModTime = info.ModTime()
	}
	r.mu.Unlock()

	if !result.Success {
		r.logger.Warn("reconciler reload attempt failed", "path", r.artifactPath, "error", result.Error)
	}
}
