// Package defaults provides the process-wide default app module: the base
// behavior set every application falls back to. The host cannot start
// without it.
package defaults

import (
	"context"
	"time"

	"github.com/serin-reader/serin/internal/domain/appmodule"
	"github.com/serin-reader/serin/internal/domain/extensions"
	"github.com/serin-reader/serin/internal/infrastructure/logging"
	"github.com/serin-reader/serin/internal/platform/proc"
	"go.uber.org/zap"
)

func init() {
	extensions.Register("_default", func() (extensions.Factory, error) {
		return New, nil
	})
}

// New constructs the default module. Script dispatch and spoken output are
// owned by the key engine; the bodies here only record the invocation.
func New(appName string, pid int, handle proc.Handle, logger *logging.Logger) *appmodule.Module {
	log := logger.Named("defaults")
	scripts := map[string]appmodule.Script{
		"dateTime": func(ctx context.Context) error {
			log.Debug("script dateTime", zap.String("now", time.Now().Format(time.Kitchen)))
			return nil
		},
		"reportForeground": func(ctx context.Context) error {
			log.Debug("script reportForeground")
			return nil
		},
		"titleBar": func(ctx context.Context) error {
			log.Debug("script titleBar")
			return nil
		},
	}
	return appmodule.New(appName, pid, handle, logger, appmodule.WithScripts(scripts))
}
