//go:build linux

package proc

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"golang.org/x/sys/unix"
)

type linuxSystem struct{}

// NewSystem returns the procfs-backed Linux implementation. Foreground-window
// resolution needs a display-server integration and reports unresolved here.
func NewSystem() System {
	return linuxSystem{}
}

func (linuxSystem) Self() int {
	return os.Getpid()
}

func (linuxSystem) Snapshot() ([]Entry, error) {
	dirs, err := os.ReadDir("/proc")
	if err != nil {
		return nil, fmt.Errorf("read /proc: %w", err)
	}

	var entries []Entry
	for _, d := range dirs {
		pid, err := strconv.Atoi(d.Name())
		if err != nil {
			continue
		}
		comm, err := os.ReadFile(filepath.Join("/proc", d.Name(), "comm"))
		if err != nil {
			// process exited mid-scan
			continue
		}
		entries = append(entries, Entry{
			PID:     pid,
			ExeFile: strings.TrimSpace(string(comm)),
		})
	}
	return entries, nil
}

func (linuxSystem) Open(pid int) (Handle, error) {
	fd, err := unix.PidfdOpen(pid, 0)
	if err != nil {
		return nil, fmt.Errorf("pidfd_open %d: %w", pid, err)
	}
	return &linuxHandle{fd: fd}, nil
}

func (linuxSystem) ForegroundProcess() (int, bool) {
	return 0, false
}

type linuxHandle struct {
	fd int
}

// Alive polls the pidfd with zero timeout; the descriptor becomes readable
// once the process exits.
func (h *linuxHandle) Alive() bool {
	fds := []unix.PollFd{{Fd: int32(h.fd), Events: unix.POLLIN}}
	n, err := unix.Poll(fds, 0)
	if err != nil {
		return false
	}
	return n == 0
}

func (h *linuxHandle) Close() error {
	return unix.Close(h.fd)
}
