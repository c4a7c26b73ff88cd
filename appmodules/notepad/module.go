// Package notepad customizes host behavior for the Windows Notepad editor.
package notepad

import (
	"context"

	"github.com/serin-reader/serin/internal/domain/appmodule"
	"github.com/serin-reader/serin/internal/domain/extensions"
	"github.com/serin-reader/serin/internal/infrastructure/logging"
	"github.com/serin-reader/serin/internal/platform/proc"
	"go.uber.org/zap"
)

func init() {
	extensions.Register("notepad", func() (extensions.Factory, error) {
		return New, nil
	})
}

// New constructs the notepad module.
func New(appName string, pid int, handle proc.Handle, logger *logging.Logger) *appmodule.Module {
	log := logger.Named("notepad")
	scripts := map[string]appmodule.Script{
		"reportStatusBar": func(ctx context.Context) error {
			log.Debug("script reportStatusBar", zap.Int("pid", pid))
			return nil
		},
		"reportLineNumber": func(ctx context.Context) error {
			log.Debug("script reportLineNumber", zap.Int("pid", pid))
			return nil
		},
	}
	return appmodule.New(appName, pid, handle, logger,
		appmodule.WithScripts(scripts),
		appmodule.WithFocusLossHook(func() {
			log.Debug("notepad lost focus", zap.Int("pid", pid))
		}),
	)
}
