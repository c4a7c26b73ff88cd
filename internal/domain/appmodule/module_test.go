package appmodule

import (
	"context"
	"testing"

	"github.com/serin-reader/serin/internal/infrastructure/logging"
	"github.com/serin-reader/serin/internal/platform/proc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingHandle struct {
	alive  bool
	closed int
}

func (h *countingHandle) Alive() bool { return h.alive }
func (h *countingHandle) Close() error {
	h.closed++
	return nil
}

func newTestModule(opts ...Option) *Module {
	return New("notepad", 100, proc.NopHandle(true), logging.NewNop(), opts...)
}

func TestBindKey(t *testing.T) {
	m := newTestModule(WithScripts(map[string]Script{
		"doSomething": func(ctx context.Context) error { return nil },
	}))

	require.NoError(t, m.BindKey("ctrl+a", "doSomething"))
	assert.Equal(t, map[string]string{"ctrl+a": "doSomething"}, m.KeyMap())

	s, ok := m.ScriptForKey("ctrl+a")
	assert.True(t, ok)
	assert.NotNil(t, s)
}

func TestBindKeyUnknownScript(t *testing.T) {
	m := newTestModule()

	err := m.BindKey("ctrl+a", "noSuchScript")
	assert.Error(t, err)
	assert.Empty(t, m.KeyMap())
}

func TestClearKeyMapDiscardsWholesale(t *testing.T) {
	m := newTestModule(WithScripts(map[string]Script{
		"a": func(ctx context.Context) error { return nil },
		"b": func(ctx context.Context) error { return nil },
	}))
	require.NoError(t, m.BindKey("k1", "a"))
	require.NoError(t, m.BindKey("k2", "b"))

	m.ClearKeyMap()
	assert.Empty(t, m.KeyMap())
}

func TestKeyMapReturnsCopy(t *testing.T) {
	m := newTestModule(WithScripts(map[string]Script{
		"a": func(ctx context.Context) error { return nil },
	}))
	require.NoError(t, m.BindKey("k1", "a"))

	km := m.KeyMap()
	km["k2"] = "b"
	assert.Len(t, m.KeyMap(), 1)
}

func TestAlive(t *testing.T) {
	alive := New("x", 1, proc.NopHandle(true), logging.NewNop())
	dead := New("x", 1, proc.NopHandle(false), logging.NewNop())

	assert.True(t, alive.Alive())
	assert.False(t, dead.Alive())
}

func TestReleaseExactlyOnce(t *testing.T) {
	h := &countingHandle{alive: true}
	m := New("notepad", 100, h, logging.NewNop())

	m.Release()
	m.Release()
	assert.Equal(t, 1, h.closed)
}

func TestFocusLossHook(t *testing.T) {
	calls := 0
	m := newTestModule(WithFocusLossHook(func() { calls++ }))

	assert.True(t, m.HasFocusLossHook())
	m.NotifyLoseFocus()
	assert.Equal(t, 1, calls)

	plain := newTestModule()
	assert.False(t, plain.HasFocusLossHook())
	plain.NotifyLoseFocus() // no-op
}
