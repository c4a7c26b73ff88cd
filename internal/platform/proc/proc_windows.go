//go:build windows

package proc

import (
	"fmt"
	"os"
	"unsafe"

	"golang.org/x/sys/windows"
)

type windowsSystem struct {
	getForegroundWindow      *windows.LazyProc
	getWindowThreadProcessId *windows.LazyProc
}

// NewSystem returns the toolhelp-backed Windows implementation.
func NewSystem() System {
	user32 := windows.NewLazySystemDLL("user32.dll")
	return &windowsSystem{
		getForegroundWindow:      user32.NewProc("GetForegroundWindow"),
		getWindowThreadProcessId: user32.NewProc("GetWindowThreadProcessId"),
	}
}

func (s *windowsSystem) Self() int {
	return os.Getpid()
}

func (s *windowsSystem) Snapshot() ([]Entry, error) {
	snap, err := windows.CreateToolhelp32Snapshot(windows.TH32CS_SNAPPROCESS, 0)
	if err != nil {
		return nil, fmt.Errorf("create process snapshot: %w", err)
	}
	defer windows.CloseHandle(snap)

	var pe windows.ProcessEntry32
	pe.Size = uint32(unsafe.Sizeof(pe))

	if err := windows.Process32First(snap, &pe); err != nil {
		return nil, fmt.Errorf("walk process snapshot: %w", err)
	}

	var entries []Entry
	for {
		entries = append(entries, Entry{
			PID:     int(pe.ProcessID),
			ExeFile: windows.UTF16ToString(pe.ExeFile[:]),
		})
		if err := windows.Process32Next(snap, &pe); err != nil {
			break
		}
	}
	return entries, nil
}

func (s *windowsSystem) Open(pid int) (Handle, error) {
	h, err := windows.OpenProcess(windows.SYNCHRONIZE, false, uint32(pid))
	if err != nil {
		return nil, fmt.Errorf("open process %d: %w", pid, err)
	}
	return &windowsHandle{h: h}, nil
}

func (s *windowsSystem) ForegroundProcess() (int, bool) {
	hwnd, _, _ := s.getForegroundWindow.Call()
	if hwnd == 0 {
		return 0, false
	}
	var pid uint32
	s.getWindowThreadProcessId.Call(hwnd, uintptr(unsafe.Pointer(&pid)))
	if pid == 0 {
		return 0, false
	}
	return int(pid), true
}

type windowsHandle struct {
	h windows.Handle
}

// Alive reports WAIT_TIMEOUT from a zero-timeout wait, meaning the process
// object has not been signaled and the process is still running.
func (h *windowsHandle) Alive() bool {
	ev, err := windows.WaitForSingleObject(h.h, 0)
	if err != nil {
		return false
	}
	return ev == uint32(windows.WAIT_TIMEOUT)
}

func (h *windowsHandle) Close() error {
	return windows.CloseHandle(h.h)
}
