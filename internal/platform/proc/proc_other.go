//go:build !windows && !linux

package proc

import "errors"

var errUnsupported = errors.New("proc: unsupported platform")

type unsupportedSystem struct{}

// NewSystem returns a stub implementation for platforms without a port.
func NewSystem() System {
	return unsupportedSystem{}
}

func (unsupportedSystem) Self() int { return -1 }

func (unsupportedSystem) Snapshot() ([]Entry, error) { return nil, errUnsupported }

func (unsupportedSystem) Open(int) (Handle, error) { return nil, errUnsupported }

func (unsupportedSystem) ForegroundProcess() (int, bool) { return 0, false }
