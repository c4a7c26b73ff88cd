package extensions

import (
	"fmt"
	"sync"

	"github.com/serin-reader/serin/internal/domain/appmodule"
	"github.com/serin-reader/serin/internal/infrastructure/logging"
	"github.com/serin-reader/serin/internal/platform/proc"
	"github.com/serin-reader/serin/internal/speech"
	"go.uber.org/zap"
)

// Factory constructs an app module instance bound to one process.
type Factory func(appName string, pid int, handle proc.Handle, logger *logging.Logger) *appmodule.Module

// Loader yields a Factory at discovery time. Returning a nil Factory with a
// nil error means the registration defines nothing usable and the generic
// default applies.
type Loader func() (Factory, error)

// LoadError reports an extension that exists but failed to load. It is fatal
// to the binding attempt that triggered it; the caller must not fall back
// silently.
type LoadError struct {
	App string
	Err error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("extension %s failed to load: %v", e.App, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// Generic returns the factory for the default module type: the base contract
// with no application-specific behavior.
func Generic() Factory {
	return func(appName string, pid int, handle proc.Handle, logger *logging.Logger) *appmodule.Module {
		return appmodule.New(appName, pid, handle, logger)
	}
}

var (
	registryMu sync.Mutex
	registered = make(map[string]Loader)
)

// Register records an extension loader under its application name. Called
// from extension package init functions; duplicate names are a programming
// error.
func Register(name string, loader Loader) {
	registryMu.Lock()
	defer registryMu.Unlock()
	if _, exists := registered[name]; exists {
		panic(fmt.Sprintf("extension %q already registered", name))
	}
	registered[name] = loader
}

// Registered returns a snapshot of the globally registered loaders.
func Registered() map[string]Loader {
	registryMu.Lock()
	defer registryMu.Unlock()
	out := make(map[string]Loader, len(registered))
	for name, l := range registered {
		out[name] = l
	}
	return out
}

// Catalog resolves application names to module factories.
type Catalog struct {
	loaders map[string]Loader
	speaker speech.Speaker
	logger  *logging.Logger
}

// NewCatalog creates an empty catalog. The speaker receives the user-facing
// notification emitted when an extension fails to load.
func NewCatalog(speaker speech.Speaker, logger *logging.Logger) *Catalog {
	return &Catalog{
		loaders: make(map[string]Loader),
		speaker: speaker,
		logger:  logger.Named("extensions"),
	}
}

// Add records a loader under an application name. Duplicate names are a
// programming error.
func (c *Catalog) Add(name string, loader Loader) {
	if _, exists := c.loaders[name]; exists {
		panic(fmt.Sprintf("extension %q already registered", name))
	}
	c.loaders[name] = loader
}

// AddRegistered copies every globally registered loader into the catalog.
func (c *Catalog) AddRegistered() *Catalog {
	for name, l := range Registered() {
		c.Add(name, l)
	}
	return c
}

// Has reports whether an extension is registered under the given name.
func (c *Catalog) Has(name string) bool {
	_, ok := c.loaders[name]
	return ok
}

// Fetch resolves the factory for an application name.
//
// A name with no registration yields the generic default factory and no
// error. A registered loader that fails is logged, spoken to the user, and
// returned as a *LoadError.
func (c *Catalog) Fetch(appName string) (Factory, error) {
	loader, ok := c.loaders[appName]
	if !ok {
		return Generic(), nil
	}

	factory, err := loader()
	if err != nil {
		c.logger.Error("error in extension", zap.String("app", appName), zap.Error(err))
		c.speaker.Speak(fmt.Sprintf("Error in app module %s", appName))
		return nil, &LoadError{App: appName, Err: err}
	}
	if factory == nil {
		// registered but defines nothing usable
		return Generic(), nil
	}
	return factory, nil
}
