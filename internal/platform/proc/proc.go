package proc

// Entry describes one process in an enumeration snapshot.
type Entry struct {
	PID     int
	ExeFile string // executable file name as reported by the OS, may carry a path
}

// Handle is an owned reference to a live process, used for liveness polling.
// The owner must call Close exactly once when done.
type Handle interface {
	// Alive reports whether the process has not yet terminated.
	// This is a zero-timeout poll, never a wait.
	Alive() bool
	// Close releases the underlying OS handle.
	Close() error
}

// System abstracts the OS process and window facilities the host needs.
type System interface {
	// Self returns the host's own process ID.
	Self() int
	// Snapshot enumerates all running processes. The underlying OS snapshot
	// is released before Snapshot returns, on every path.
	Snapshot() ([]Entry, error)
	// Open opens a synchronize-only handle to the given process.
	Open(pid int) (Handle, error)
	// ForegroundProcess returns the process ID owning the foreground window,
	// or false when no owning process can be determined.
	ForegroundProcess() (int, bool)
}
