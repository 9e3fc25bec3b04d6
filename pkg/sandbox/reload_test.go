package sandbox

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func writeArtifact(t *testing.T, dir string, artifact []byte) string {
	t.Helper()
	path := filepath.Join(dir, "policy.wasm")
	require.NoError(t, os.WriteFile(path, artifact, 0o644))
	return path
}

func TestCoordinator_ReloadSuccess(t *testing.T) {
	dir := t.TempDir()
	path := writeArtifact(t, dir, fixtureAllowAll())

	reg, err := Bootstrap(path, nil)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(path, fixtureDenyAll(), 0o644))

	coord := NewCoordinator(reg, path, nil)
	result := coord.Reload()
	require.True(t, result.Success)
	require.NotEmpty(t, result.PolicyVersion)
	require.Equal(t, len(fixtureDenyAll()), result.SizeBytes)

	verdict, err := Evaluate(reg.Read().Engine, reg.Read().Module, []byte(`{}`), nil)
	require.NoError(t, err)
	require.False(t, verdict.Allowed)
}

func TestCoordinator_ReloadFailsClosedOnMissingFile(t *testing.T) {
	dir := t.TempDir()
	path := writeArtifact(t, dir, fixtureAllowAll())

	reg, err := Bootstrap(path, nil)
	require.NoError(t, err)
	before := reg.Read()

	require.NoError(t, os.Remove(path))

	coord := NewCoordinator(reg, path, nil)
	result := coord.Reload()
	require.False(t, result.Success)
	require.NotEmpty(t, result.Error)

	after := reg.Read()
	require.Equal(t, before.Version, after.Version)
}

func TestCoordinator_ReloadFailsClosedOnCorruptArtifact(t *testing.T) {
	dir := t.TempDir()
	path := writeArtifact(t, dir, fixtureAllowAll())

	reg, err := Bootstrap(path, nil)
	require.NoError(t, err)
	before := reg.Read()

	require.NoError(t, os.WriteFile(path, []byte("not wasm"), 0o644))

	coord := NewCoordinator(reg, path, nil)
	result := coord.Reload()
	require.False(t, result.Success)

	after := reg.Read()
	require.Equal(t, before.Version, after.Version)
}

func TestWatcher_DebouncesRapidWrites(t *testing.T) {
	dir := t.TempDir()
	path := writeArtifact(t, dir, fixtureAllowAll())

	reg, err := Bootstrap(path, nil)
	require.NoError(t, err)

	// The fixtures have the same length, so a reload within the same second
	// keeps the Version; watch for a newly published Module instead.
	initialModule := reg.Read().Module

	coord := NewCoordinator(reg, path, nil)
	watcher := NewWatcher(coord, dir, ".wasm", nil)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- watcher.Run(ctx) }()

	// Give the watcher goroutine time to register before writing.
	time.Sleep(50 * time.Millisecond)

	for i := 0; i < 3; i++ {
		require.NoError(t, os.WriteFile(path, fixtureDenyAll(), 0o644))
		time.Sleep(50 * time.Millisecond)
	}

	require.Eventually(t, func() bool {
		return reg.Read().Module != initialModule
	}, 2*time.Second, 20*time.Millisecond)

	cancel()
	require.NoError(t, <-done)
}
