package janitor

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeAged(t *testing.T, dir, name string, age time.Duration) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))
	mtime := time.Now().Add(-age)
	require.NoError(t, os.Chtimes(path, mtime, mtime))
	return path
}

func TestSweepRemovesAgedArtifacts(t *testing.T) {
	dir := t.TempDir()

	old := writeAged(t, dir, "stale.mp4", 2*time.Hour)
	young := writeAged(t, dir, "fresh.mp4", time.Minute)

	removed := Sweep(dir, time.Hour)

	assert.Equal(t, 1, removed)
	assert.NoFileExists(t, old)
	assert.FileExists(t, young)
}

func TestSweepSkipsDirectories(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "nested")
	require.NoError(t, os.Mkdir(sub, 0o755))
	mtime := time.Now().Add(-2 * time.Hour)
	require.NoError(t, os.Chtimes(sub, mtime, mtime))

	assert.Zero(t, Sweep(dir, time.Hour))
	assert.DirExists(t, sub)
}

func TestSweepMissingDirIsBenign(t *testing.T) {
	assert.Zero(t, Sweep(filepath.Join(t.TempDir(), "does-not-exist"), time.Hour))
}

func TestSweepIndependentWindows(t *testing.T) {
	renders := t.TempDir()
	previews := t.TempDir()

	renderFile := writeAged(t, renders, "a.mp4", 45*time.Minute)
	previewFile := writeAged(t, previews, "b.png", 45*time.Minute)

	// 45 minutes old: young for the render window, stale for previews.
	Sweep(renders, time.Hour)
	Sweep(previews, 30*time.Minute)

	assert.FileExists(t, renderFile)
	assert.NoFileExists(t, previewFile)
}
