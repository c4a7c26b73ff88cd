package keymap

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/serin-reader/serin/internal/infrastructure/logging"
	"github.com/serin-reader/serin/internal/infrastructure/monitoring"
	"go.uber.org/zap"
)

// DefaultLayout is the layout every other layout falls back to.
const DefaultLayout = "desktop"

// bindingPattern grabs a key chord and a script name from one key-map line.
var bindingPattern = regexp.MustCompile(`^\s*(\S+)\s*=\s*(\S+)\s*$`)

// Binder is the module-side surface the loader binds into.
type Binder interface {
	// ClearKeyMap discards any previously loaded bindings in full.
	ClearKeyMap()
	// BindKey binds one key chord to a named script; it fails when the
	// script is unknown to the module.
	BindKey(key, script string) error
}

// Loader resolves and parses key-map files.
type Loader struct {
	root    string
	layout  func() string // configuration collaborator
	logger  *logging.Logger
	metrics *monitoring.Metrics
}

// NewLoader creates a loader rooted at the extensions directory. layout
// supplies the currently configured keyboard layout on every load.
func NewLoader(root string, layout func() string, logger *logging.Logger) *Loader {
	return &Loader{
		root:   root,
		layout: layout,
		logger: logger.Named("keymap"),
	}
}

// WithMetrics adds bind metrics tracking to the loader.
func (l *Loader) WithMetrics(metrics *monitoring.Metrics) *Loader {
	l.metrics = metrics
	return l
}

// fileName resolves the key-map path for an application and layout, falling
// back to the desktop layout. Empty when no file exists for either.
func (l *Loader) fileName(appName, layout string) string {
	path := filepath.Join(l.root, fmt.Sprintf("%s_%s.kbd", appName, layout))
	if _, err := os.Stat(path); err == nil {
		return path
	}
	if layout != DefaultLayout {
		return l.fileName(appName, DefaultLayout)
	}
	return ""
}

// Load reads the application's key map into the binder.
//
// It returns true when a file was found and processed, even with zero
// successful bindings, and false only when no file exists for the requested
// layout or its desktop fallback. Any previously loaded bindings are
// discarded in full before loading, so reloads are idempotent. Lines that
// fail to bind are logged and skipped; they never abort the rest of the file.
func (l *Loader) Load(appName string, b Binder) (bool, error) {
	path := l.fileName(appName, l.layout())
	if path == "" {
		l.logger.Debug("no key map file", zap.String("app", appName))
		return false, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return true, fmt.Errorf("open key map %s: %w", path, err)
	}
	defer f.Close()

	b.ClearKeyMap()

	bound, skipped := 0, 0
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.HasPrefix(line, "#") || strings.TrimSpace(line) == "" {
			continue
		}
		m := bindingPattern.FindStringSubmatch(line)
		if m == nil {
			l.logger.Debug("unrecognized key map line",
				zap.String("app", appName), zap.String("line", line))
			skipped++
			l.recordBindFailure()
			continue
		}
		key, script := m[1], m[2]
		if err := b.BindKey(key, script); err != nil {
			l.logger.Error("error binding key",
				zap.String("key", key), zap.String("script", script),
				zap.String("app", appName), zap.Error(err))
			skipped++
			l.recordBindFailure()
			continue
		}
		bound++
		l.recordBind()
	}
	if err := scanner.Err(); err != nil {
		return true, fmt.Errorf("read key map %s: %w", path, err)
	}

	l.logger.Debug("key map loaded",
		zap.String("app", appName), zap.String("file", path),
		zap.Int("bound", bound), zap.Int("skipped", skipped))
	return true, nil
}

func (l *Loader) recordBind() {
	if l.metrics != nil {
		l.metrics.RecordBind()
	}
}

func (l *Loader) recordBindFailure() {
	if l.metrics != nil {
		l.metrics.RecordBindFailure()
	}
}
