package proc

// NopHandle returns a handle with fixed liveness that releases nothing.
// The default module uses an always-alive one, since it is bound to a
// sentinel rather than a real process; tests use both variants.
func NopHandle(alive bool) Handle {
	return nopHandle{alive: alive}
}

type nopHandle struct {
	alive bool
}

func (h nopHandle) Alive() bool { return h.alive }

func (h nopHandle) Close() error { return nil }
