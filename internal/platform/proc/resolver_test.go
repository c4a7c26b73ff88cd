package proc

import (
	"errors"
	"testing"

	"github.com/serin-reader/serin/internal/infrastructure/logging"
	"github.com/stretchr/testify/assert"
)

type fakeSystem struct {
	self    int
	entries []Entry
	snapErr error
}

func (f *fakeSystem) Self() int                      { return f.self }
func (f *fakeSystem) Snapshot() ([]Entry, error)     { return f.entries, f.snapErr }
func (f *fakeSystem) Open(pid int) (Handle, error)   { return NopHandle(true), nil }
func (f *fakeSystem) ForegroundProcess() (int, bool) { return 0, false }

func TestAppNameSelf(t *testing.T) {
	sys := &fakeSystem{self: 42}
	r := NewResolver(sys, "serin.exe", logging.NewNop())

	// the host names itself without enumerating the OS
	assert.Equal(t, "serin", r.AppName(42, false))
	assert.Equal(t, "serin.exe", r.AppName(42, true))
	assert.Empty(t, sys.entries)
}

func TestAppNameFromSnapshot(t *testing.T) {
	sys := &fakeSystem{
		self: 1,
		entries: []Entry{
			{PID: 100, ExeFile: "Notepad.EXE"},
			{PID: 200, ExeFile: "firefox.exe"},
		},
	}
	r := NewResolver(sys, "serin.exe", logging.NewNop())

	assert.Equal(t, "notepad", r.AppName(100, false))
	assert.Equal(t, "Notepad.EXE", r.AppName(100, true))
	assert.Equal(t, "firefox", r.AppName(200, false))
}

func TestAppNameProcessVanished(t *testing.T) {
	sys := &fakeSystem{
		self:    1,
		entries: []Entry{{PID: 100, ExeFile: "notepad.exe"}},
	}
	r := NewResolver(sys, "serin.exe", logging.NewNop())

	// not an error, only a signal that no name is available
	assert.Equal(t, "", r.AppName(999, false))
}

func TestAppNameSnapshotError(t *testing.T) {
	sys := &fakeSystem{self: 1, snapErr: errors.New("boom")}
	r := NewResolver(sys, "serin.exe", logging.NewNop())

	assert.Equal(t, "", r.AppName(100, false))
}

func TestAppNameWithoutExtension(t *testing.T) {
	sys := &fakeSystem{
		self:    1,
		entries: []Entry{{PID: 300, ExeFile: "soffice"}},
	}
	r := NewResolver(sys, "serin", logging.NewNop())

	assert.Equal(t, "soffice", r.AppName(300, false))
}
