package appmodule

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/serin-reader/serin/internal/infrastructure/logging"
	"github.com/serin-reader/serin/internal/platform/proc"
	"go.uber.org/zap"
)

// Script is a runtime-invokable behavior. Dispatch is owned by the host's
// key engine; this package only validates that bound scripts exist.
type Script func(ctx context.Context) error

// Module is the behavior extension bound to one process.
type Module struct {
	id        string
	appName   string
	processID int
	handle    proc.Handle

	scripts     map[string]Script
	keyMap      map[string]string
	onLoseFocus func()

	releaseOnce sync.Once
	logger      *logging.Logger
}

// Option configures a Module at construction.
type Option func(*Module)

// WithScripts sets the module's script table.
func WithScripts(scripts map[string]Script) Option {
	return func(m *Module) {
		m.scripts = scripts
	}
}

// WithFocusLossHook sets the notification invoked when the module's
// application leaves the focus chain, just before eviction.
func WithFocusLossHook(fn func()) Option {
	return func(m *Module) {
		m.onLoseFocus = fn
	}
}

// New creates a module bound to the given process. The module takes exclusive
// ownership of handle and releases it exactly once, at Release.
func New(appName string, processID int, handle proc.Handle, logger *logging.Logger, opts ...Option) *Module {
	m := &Module{
		id:        uuid.New().String(),
		appName:   appName,
		processID: processID,
		handle:    handle,
		keyMap:    make(map[string]string),
		logger:    logger,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// ID returns the instance identifier used for log correlation.
func (m *Module) ID() string {
	return m.id
}

// AppName returns the lower-cased, extension-stripped application name.
func (m *Module) AppName() string {
	return m.appName
}

// ProcessID returns the OS process identifier this module is bound to.
func (m *Module) ProcessID() int {
	return m.processID
}

// Alive reports whether the backing process is still running, via a
// zero-timeout poll on the process handle.
func (m *Module) Alive() bool {
	if m.handle == nil {
		return false
	}
	return m.handle.Alive()
}

// BindKey binds a key chord to a named script. The script must exist in the
// module's script table.
func (m *Module) BindKey(key, script string) error {
	if _, ok := m.scripts[script]; !ok {
		return fmt.Errorf("module %s has no script %q", m.appName, script)
	}
	m.keyMap[key] = script
	return nil
}

// ClearKeyMap discards the module's bindings in full. Key maps are replaced
// wholesale on reload, never merged.
func (m *Module) ClearKeyMap() {
	m.keyMap = make(map[string]string)
}

// KeyMap returns a copy of the current key-chord to script-name bindings.
func (m *Module) KeyMap() map[string]string {
	out := make(map[string]string, len(m.keyMap))
	for k, v := range m.keyMap {
		out[k] = v
	}
	return out
}

// ScriptForKey resolves the script bound to the given key chord.
func (m *Module) ScriptForKey(key string) (Script, bool) {
	name, ok := m.keyMap[key]
	if !ok {
		return nil, false
	}
	s, ok := m.scripts[name]
	return s, ok
}

// HasFocusLossHook reports whether the module exposes a focus-loss
// notification.
func (m *Module) HasFocusLossHook() bool {
	return m.onLoseFocus != nil
}

// NotifyLoseFocus invokes the focus-loss notification, if any. The registry
// calls this before releasing the handle of an evicted module whose
// application was part of the focus chain.
func (m *Module) NotifyLoseFocus() {
	if m.onLoseFocus != nil {
		m.onLoseFocus()
	}
}

// Release closes the module's process handle. Safe to call more than once;
// the handle is released exactly once.
func (m *Module) Release() {
	m.releaseOnce.Do(func() {
		if m.handle == nil {
			return
		}
		if err := m.handle.Close(); err != nil {
			m.logger.Warn("failed to release process handle",
				zap.String("app", m.appName), zap.Int("pid", m.processID), zap.Error(err))
		}
	})
}
