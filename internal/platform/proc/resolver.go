package proc

import (
	"path/filepath"
	"strings"

	"github.com/serin-reader/serin/internal/infrastructure/logging"
	"go.uber.org/zap"
)

// Resolver maps process IDs to application names.
type Resolver struct {
	sys     System
	selfExe string // the host's own executable file name, extension included
	logger  *logging.Logger
}

// NewResolver creates a resolver. selfExe is the host's executable file name;
// the host never enumerates the OS to name itself.
func NewResolver(sys System, selfExe string, logger *logging.Logger) *Resolver {
	return &Resolver{
		sys:     sys,
		selfExe: selfExe,
		logger:  logger,
	}
}

// AppName resolves the application name for the given process ID.
//
// The returned name has its path stripped and, unless includeExt is set, its
// file extension removed and the remainder lower-cased. An empty string means
// the process could not be found in the snapshot (it may have exited
// mid-scan); that is a signal, not an error.
func (r *Resolver) AppName(pid int, includeExt bool) string {
	if pid == r.sys.Self() {
		if includeExt {
			return r.selfExe
		}
		return stripExt(r.selfExe)
	}

	entries, err := r.sys.Snapshot()
	if err != nil {
		r.logger.Warn("process snapshot failed", zap.Int("pid", pid), zap.Error(err))
		return ""
	}

	var name string
	for _, e := range entries {
		if e.PID == pid {
			name = e.ExeFile
			break
		}
	}
	if name == "" {
		return ""
	}

	name = filepath.Base(name)
	if !includeExt {
		name = stripExt(name)
	}
	r.logger.Debug("resolved app name", zap.Int("pid", pid), zap.String("app", name))
	return name
}

func stripExt(name string) string {
	return strings.ToLower(strings.TrimSuffix(name, filepath.Ext(name)))
}
