package guest

// Module is a guest program.
type Module interface {
	// Init runs once before any other hook and returns a status code.
	Init(rt *Runtime) int32
}

// Framer is implemented by modules with a per-frame hook.
type Framer interface {
	Frame(rt *Runtime)
}

// KeyHandler is implemented by modules that react to key transitions as
// they arrive. The key table is updated before the handler runs.
type KeyHandler interface {
	Key(rt *Runtime, code int32, down bool)
}

// Funcs adapts plain functions to Module, Framer and KeyHandler. Nil fields
// are skipped.
type Funcs struct {
	InitFunc  func(rt *Runtime) int32
	FrameFunc func(rt *Runtime)
	KeyFunc   func(rt *Runtime, code int32, down bool)
}

// Init implements Module.
func (f Funcs) Init(rt *Runtime) int32 {
	if f.InitFunc == nil {
		return 0
	}
	return f.InitFunc(rt)
}

// Frame implements Framer.
func (f Funcs) Frame(rt *Runtime) {
	if f.FrameFunc != nil {
		f.FrameFunc(rt)
	}
}

// Key implements KeyHandler.
func (f Funcs) Key(rt *Runtime, code int32, down bool) {
	if f.KeyFunc != nil {
		f.KeyFunc(rt, code, down)
	}
}
