package sandbox

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestReconciler_TickSkipsWhenArtifactUnchanged(t *testing.T) {
	dir := t.TempDir()
	path := writeArtifact(t, dir, fixtureAllowAll())

	reg, err := Bootstrap(path, nil)
	require.NoError(t, err)
	before := reg.Read()

	coord := NewCoordinator(reg, path, nil)
	rec := NewReconciler(coord, path, time.Minute, nil)

	info, err := os.Stat(path)
	require.NoError(t, err)
	rec.lastSize = info.Size()
	rec.lastModTime = info.ModTime()

	rec.tick()

	after := reg.Read()
	require.Equal(t, before.Version, after.Version)
}

func TestReconciler_TickReloadsWhenArtifactChanged(t *testing.T) {
	dir := t.TempDir()
	path := writeArtifact(t, dir, fixtureAllowAll())

	reg, err := Bootstrap(path, nil)
	require.NoError(t, err)
	before := reg.Read()

	coord := NewCoordinator(reg, path, nil)
	rec := NewReconciler(coord, path, time.Minute, nil)

	// Force a later mtime so the change is unambiguous on fast filesystems.
	require.NoError(t, os.WriteFile(path, fixtureDenyAll(), 0o644))
	future := time.Now().Add(time.Second)
	require.NoError(t, os.Chtimes(path, future, future))

	rec.tick()

	// Both fixtures have the same length, so a reload within the same
	// second stamps the same Version; compare the published Module instead.
	after := reg.Read()
	require.NotSame(t, before.Module, after.Module)

	verdict, err := Evaluate(after.Engine, after.Module, []byte(`{}`), nil)
	require.NoError(t, err)
	require.False(t, verdict.Allowed)
}

func TestReconciler_TickSkipsOnStatError(t *testing.T) {
	dir := t.TempDir()
	path := writeArtifact(t, dir, fixtureAllowAll())

	reg, err := Bootstrap(path, nil)
	require.NoError(t, err)
	before := reg.Read()

	coord := NewCoordinator(reg, path, nil)
	rec := NewReconciler(coord, path, time.Minute, nil)

	require.NoError(t, os.Remove(path))
	rec.tick()

	after := reg.Read()
	require.Equal(t, before.Version, after.Version)
}
