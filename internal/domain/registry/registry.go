package registry

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/serin-reader/serin/internal/domain/appmodule"
	"github.com/serin-reader/serin/internal/domain/extensions"
	"github.com/serin-reader/serin/internal/domain/keymap"
	"github.com/serin-reader/serin/internal/infrastructure/logging"
	"github.com/serin-reader/serin/internal/infrastructure/monitoring"
	"github.com/serin-reader/serin/internal/platform/proc"
	"github.com/serin-reader/serin/internal/speech"
	"go.uber.org/zap"
)

// DefaultName is the sentinel application name for the default module.
const DefaultName = "_default"

// ErrNoForeground reports that the foreground window's owning process could
// not be determined, or is the host itself.
var ErrNoForeground = errors.New("registry: no resolvable foreground process")

// FocusObject is one member of the focus chain. Its app-module reference is
// a non-owning back-reference and may be nil.
type FocusObject interface {
	AppModule() *appmodule.Module
}

// FocusSource supplies the active object and its ancestors, most specific
// first.
type FocusSource interface {
	FocusChain() []FocusObject
}

// ModuleInfo is a read-only snapshot of one cached module.
type ModuleInfo struct {
	ID       string `json:"id"`
	App      string `json:"app"`
	PID      int    `json:"pid"`
	Bindings int    `json:"bindings"`
	Alive    bool   `json:"alive"`
}

// Stats contains registry statistics.
type Stats struct {
	Running        int    `json:"running"`
	DefaultApp     string `json:"default_app"`
	KeyboardLayout string `json:"keyboard_layout"`
}

// Service is the application-extension registry: it binds OS processes to
// app modules and manages their lifecycle.
type Service struct {
	mu         sync.Mutex
	running    map[int]*appmodule.Module // protected by mu
	defaultMod *appmodule.Module

	sys      proc.System
	resolver *proc.Resolver
	catalog  *extensions.Catalog
	keymaps  *keymap.Loader
	speaker  speech.Speaker
	focus    FocusSource
	metrics  *monitoring.Metrics
	layout   func() string
	logger   *logging.Logger
}

// NewService creates the registry. Initialize must be called before any
// lookup.
func NewService(
	sys proc.System,
	resolver *proc.Resolver,
	catalog *extensions.Catalog,
	keymaps *keymap.Loader,
	speaker speech.Speaker,
	layout func() string,
	logger *logging.Logger,
) *Service {
	return &Service{
		running:  make(map[int]*appmodule.Module),
		sys:      sys,
		resolver: resolver,
		catalog:  catalog,
		keymaps:  keymaps,
		speaker:  speaker,
		layout:   layout,
		logger:   logger.Named("registry"),
	}
}

// WithMetrics adds metrics tracking to the registry.
func (s *Service) WithMetrics(metrics *monitoring.Metrics) *Service {
	s.metrics = metrics
	return s
}

// WithFocusSource attaches the focus-chain collaborator used to deliver
// focus-loss notifications during eviction.
func (s *Service) WithFocusSource(focus FocusSource) *Service {
	s.focus = focus
	return s
}

// Initialize constructs the process-wide default module and loads its key
// map. Failure is fatal to startup: the host depends on a working default
// behavior set.
func (s *Service) Initialize() error {
	factory, err := s.catalog.Fetch(DefaultName)
	if err != nil {
		s.speaker.Speak("Could not load default module")
		return fmt.Errorf("initialize default module: %w", err)
	}

	mod := factory(DefaultName, 0, proc.NopHandle(true), s.logger)

	found, err := s.keymaps.Load(DefaultName, mod)
	if err != nil {
		s.speaker.Speak("Could not load default module key map")
		return fmt.Errorf("initialize default key map: %w", err)
	}
	if !found {
		s.speaker.Speak("Could not load default module key map")
		return fmt.Errorf("initialize: no key map for %s", DefaultName)
	}

	s.defaultMod = mod
	s.logger.Info("default module loaded", zap.Int("bindings", len(mod.KeyMap())))
	return nil
}

// Default returns the process-wide default module.
func (s *Service) Default() *appmodule.Module {
	return s.defaultMod
}

// ModuleForProcess returns the module bound to the given process,
// constructing and caching it on first lookup. Cached instances are returned
// unconditionally; liveness is only checked during Refresh.
func (s *Service) ModuleForProcess(pid int) (*appmodule.Module, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.moduleForProcessLocked(pid)
}

func (s *Service) moduleForProcessLocked(pid int) (*appmodule.Module, error) {
	if mod, ok := s.running[pid]; ok {
		return mod, nil
	}

	appName := s.resolver.AppName(pid, false)

	factory, err := s.catalog.Fetch(appName)
	if err != nil {
		// broken extension: nothing is cached for this attempt
		return nil, err
	}

	handle, err := s.sys.Open(pid)
	if err != nil {
		// process likely exited between snapshot and open; a dead handle
		// lets the next refresh pass evict the entry
		s.logger.Warn("could not open process", zap.Int("pid", pid), zap.Error(err))
		handle = proc.NopHandle(false)
	}

	mod := factory(appName, pid, handle, s.logger)

	kind := "default"
	if s.catalog.Has(appName) {
		kind = "extension"
		s.logger.Info("loaded app module", zap.String("app", appName), zap.Int("pid", pid))
	}
	if s.metrics != nil {
		s.metrics.RecordModuleLoad(kind)
	}

	if _, err := s.keymaps.Load(appName, mod); err != nil {
		// key map I/O failures leave the module bound with no custom keys
		s.logger.Warn("key map load failed", zap.String("app", appName), zap.Error(err))
	}

	s.running[pid] = mod
	if s.metrics != nil {
		s.metrics.SetModulesLive(len(s.running))
	}
	return mod, nil
}

// Refresh evicts every cached module whose process has died, then ensures
// the triggering process has an up-to-date binding.
//
// An evicted module that is part of the current focus chain receives its
// focus-loss notification before its handle is released.
func (s *Service) Refresh(pid int) (*appmodule.Module, error) {
	start := time.Now()
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, mod := range s.running {
		if mod.Alive() {
			continue
		}
		s.logger.Debug("application closed",
			zap.String("app", mod.AppName()), zap.Int("pid", id))
		delete(s.running, id)

		if mod.HasFocusLossHook() && s.inFocusChain(mod) {
			mod.NotifyLoseFocus()
		}
		mod.Release()

		if s.metrics != nil {
			s.metrics.RecordEviction()
		}
	}
	if s.metrics != nil {
		s.metrics.SetModulesLive(len(s.running))
		s.metrics.RecordRefresh(time.Since(start))
	}

	return s.moduleForProcessLocked(pid)
}

// inFocusChain reports whether mod backs any object in the focus chain.
func (s *Service) inFocusChain(mod *appmodule.Module) bool {
	if s.focus == nil {
		return false
	}
	for _, obj := range s.focus.FocusChain() {
		if obj != nil && obj.AppModule() == mod {
			return true
		}
	}
	return false
}

// ActiveModule resolves the module for the foreground window's owning
// process. ErrNoForeground is returned when no process can be determined or
// the foreground process is the host itself.
func (s *Service) ActiveModule() (*appmodule.Module, error) {
	pid, ok := s.sys.ForegroundProcess()
	if !ok || pid == s.sys.Self() {
		return nil, ErrNoForeground
	}
	return s.ModuleForProcess(pid)
}

// ResolveAppName resolves a process ID to its application name. Exposed for
// the extension-script engine.
func (s *Service) ResolveAppName(pid int) string {
	return s.resolver.AppName(pid, false)
}

// Modules returns a snapshot of all cached modules.
func (s *Service) Modules() []ModuleInfo {
	s.mu.Lock()
	defer s.mu.Unlock()

	infos := make([]ModuleInfo, 0, len(s.running))
	for pid, mod := range s.running {
		infos = append(infos, ModuleInfo{
			ID:       mod.ID(),
			App:      mod.AppName(),
			PID:      pid,
			Bindings: len(mod.KeyMap()),
			Alive:    mod.Alive(),
		})
	}
	return infos
}

// Stats returns registry statistics.
func (s *Service) Stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := Stats{
		Running:        len(s.running),
		KeyboardLayout: s.layout(),
	}
	if s.defaultMod != nil {
		st.DefaultApp = s.defaultMod.AppName()
	}
	return st
}

// Shutdown evicts every remaining entry, releasing all handles.
func (s *Service) Shutdown() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for pid, mod := range s.running {
		mod.Release()
		delete(s.running, pid)
	}
	if s.metrics != nil {
		s.metrics.SetModulesLive(0)
	}
	s.logger.Info("registry shut down")
}
