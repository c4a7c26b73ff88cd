package keymap

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/serin-reader/serin/internal/infrastructure/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingBinder struct {
	bound   map[string]string
	cleared int
	reject  map[string]bool // script names that fail to bind
}

func newRecordingBinder() *recordingBinder {
	return &recordingBinder{bound: make(map[string]string), reject: make(map[string]bool)}
}

func (b *recordingBinder) ClearKeyMap() {
	b.cleared++
	b.bound = make(map[string]string)
}

func (b *recordingBinder) BindKey(key, script string) error {
	if b.reject[script] {
		return fmt.Errorf("no script %q", script)
	}
	b.bound[key] = script
	return nil
}

func writeKeymap(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func newTestLoader(dir, layout string) *Loader {
	return NewLoader(dir, func() string { return layout }, logging.NewNop())
}

func TestLoadBindsEntries(t *testing.T) {
	dir := t.TempDir()
	writeKeymap(t, dir, "app_desktop.kbd", "ctrl+a = doSomething\n")

	b := newRecordingBinder()
	found, err := newTestLoader(dir, "desktop").Load("app", b)

	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, map[string]string{"ctrl+a": "doSomething"}, b.bound)
}

func TestLoadIgnoresCommentsAndBlanks(t *testing.T) {
	dir := t.TempDir()
	writeKeymap(t, dir, "app_desktop.kbd",
		"# a comment\n\n   \nctrl+b=scriptB\n  ctrl+c   =   scriptC  \n")

	b := newRecordingBinder()
	found, err := newTestLoader(dir, "desktop").Load("app", b)

	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, map[string]string{"ctrl+b": "scriptB", "ctrl+c": "scriptC"}, b.bound)
}

func TestLoadSkipsUnrecognizedLines(t *testing.T) {
	dir := t.TempDir()
	writeKeymap(t, dir, "app_desktop.kbd", "bogusline\n")

	b := newRecordingBinder()
	found, err := newTestLoader(dir, "desktop").Load("app", b)

	// the file was found and processed, with zero successful bindings
	require.NoError(t, err)
	assert.True(t, found)
	assert.Empty(t, b.bound)
}

func TestLoadSkipsFailedBinds(t *testing.T) {
	dir := t.TempDir()
	writeKeymap(t, dir, "app_desktop.kbd", "ctrl+a = missing\nctrl+b = present\n")

	b := newRecordingBinder()
	b.reject["missing"] = true
	found, err := newTestLoader(dir, "desktop").Load("app", b)

	// a failed bind never aborts the rest of the file
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, map[string]string{"ctrl+b": "present"}, b.bound)
}

func TestLoadLaptopFallsBackToDesktop(t *testing.T) {
	dir := t.TempDir()
	writeKeymap(t, dir, "app_desktop.kbd", "ctrl+a = doSomething\n")

	b := newRecordingBinder()
	found, err := newTestLoader(dir, "laptop").Load("app", b)

	require.NoError(t, err)
	assert.True(t, found)
	assert.Len(t, b.bound, 1)
}

func TestLoadLaptopPreferred(t *testing.T) {
	dir := t.TempDir()
	writeKeymap(t, dir, "app_desktop.kbd", "ctrl+a = desktopScript\n")
	writeKeymap(t, dir, "app_laptop.kbd", "ctrl+a = laptopScript\n")

	b := newRecordingBinder()
	found, err := newTestLoader(dir, "laptop").Load("app", b)

	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "laptopScript", b.bound["ctrl+a"])
}

func TestLoadNoFile(t *testing.T) {
	dir := t.TempDir()

	b := newRecordingBinder()
	found, err := newTestLoader(dir, "laptop").Load("app", b)

	require.NoError(t, err)
	assert.False(t, found)
	assert.Zero(t, b.cleared) // nothing discarded when no file was found
}

func TestLoadReplacesWholesale(t *testing.T) {
	dir := t.TempDir()
	writeKeymap(t, dir, "app_desktop.kbd", "ctrl+a = doSomething\n")

	b := newRecordingBinder()
	loader := newTestLoader(dir, "desktop")

	_, err := loader.Load("app", b)
	require.NoError(t, err)
	_, err = loader.Load("app", b)
	require.NoError(t, err)

	// idempotent reload: cleared before each processed load
	assert.Equal(t, 2, b.cleared)
	assert.Len(t, b.bound, 1)
}
