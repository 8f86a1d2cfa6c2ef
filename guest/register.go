package guest

import "sync"

var active = struct {
	sync.Mutex
	rt *Runtime
}{}

// Register installs m as the process-wide module behind the exported entry
// points and returns its Runtime. A later Register replaces the earlier one.
func Register(m Module, opts ...Option) *Runtime {
	rt := New(m, opts...)
	active.Lock()
	active.rt = rt
	active.Unlock()
	return rt
}

// Default returns the registered Runtime, creating an empty one if nothing
// was registered.
func Default() *Runtime {
	active.Lock()
	defer active.Unlock()
	if active.rt == nil {
		active.rt = New(nil)
	}
	return active.rt
}

// RunStandalone initializes the registered module and runs frames ticks,
// standing in for a host. It returns the initializer's status.
func RunStandalone(frames int) int32 {
	rt := Default()
	status := rt.Init()
	for i := 0; i < frames; i++ {
		rt.Tick()
	}
	return status
}
