package guest

import (
	"slices"

	"github.com/z-libs/zwasm-go/domain/ports"
	"github.com/z-libs/zwasm-go/format"
	"github.com/z-libs/zwasm-go/infrastructure/wasm"
	"github.com/z-libs/zwasm-go/input"
	"github.com/z-libs/zwasm-go/memory"
	"github.com/z-libs/zwasm-go/script"
)

// Getter is a side-effect-free state query the host may call at any time.
type Getter func() float64

// Runtime owns the state of one guest program. It is not safe for
// concurrent use; hosts call exports one at a time.
type Runtime struct {
	module  Module
	host    ports.Host
	mem     ports.Memory
	alloc   *memory.Bump
	getters map[string]Getter
	keys    input.KeyTable
	cfg     runtimeConfig
	status  int32
	frames  uint64
	started bool
}

// New creates a Runtime for m. Without WithHost the runtime talks to the
// env imports; without WithMemory it allocates from a private arena.
func New(m Module, opts ...Option) *Runtime {
	cfg := defaultRuntimeConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if m == nil {
		m = Funcs{}
	}
	if cfg.host == nil {
		cfg.host = wasm.NewHostAdapter()
	}
	if cfg.mem == nil {
		cfg.mem = memory.NewSliceMemory(DefaultArenaPages, memory.WithMaxPages(DefaultArenaPages))
	}

	var bumpOpts []memory.BumpOption
	bumpOpts = append(bumpOpts, memory.WithBase(cfg.heapBase))
	if cfg.reallocCompat {
		bumpOpts = append(bumpOpts, memory.WithReallocCompat())
	}

	return &Runtime{
		module:  m,
		host:    cfg.host,
		mem:     cfg.mem,
		alloc:   memory.NewBump(cfg.mem, bumpOpts...),
		getters: make(map[string]Getter),
		cfg:     cfg,
	}
}

// Init runs the module initializer once and returns its status. Later calls
// return the first status without running it again.
func (r *Runtime) Init() int32 {
	if r.started {
		return r.status
	}
	r.started = true
	r.alloc.Init(0, 0)
	r.status = r.module.Init(r)
	return r.status
}

// Initialized reports whether Init has run.
func (r *Runtime) Initialized() bool { return r.started }

// Tick runs the frame hook. It does nothing before Init.
func (r *Runtime) Tick() {
	if !r.started {
		return
	}
	r.frames++
	if f, ok := r.module.(Framer); ok {
		f.Frame(r)
	}
}

// Frames returns the number of ticks run.
func (r *Runtime) Frames() uint64 { return r.frames }

// OnKey records a key transition and forwards it to the module.
func (r *Runtime) OnKey(code int32, down bool) {
	r.keys.Set(code, down)
	if h, ok := r.module.(KeyHandler); ok {
		h.Key(r, code, down)
	}
}

// KeyDown reports whether code is held.
func (r *Runtime) KeyDown(code int32) bool { return r.keys.IsDown(code) }

// Keys returns the key table.
func (r *Runtime) Keys() *input.KeyTable { return &r.keys }

// Log sends msg to the host log.
func (r *Runtime) Log(msg string) { r.host.Log(msg) }

// Printf formats with the restricted %d %s %f grammar and logs the result.
// Output is capped at format.DefaultLimit bytes.
func (r *Runtime) Printf(pattern string, args ...format.Arg) {
	r.host.Log(format.Sprint(pattern, args...))
}

// Eval asks the host to run code. The guest is responsible for its safety.
func (r *Runtime) Eval(code string) { r.host.Eval(code) }

// SetHTML replaces the inner HTML of the element with the given id. Hosts
// that manage the DOM themselves get the call directly; others receive a
// generated script, cut at script.SetHTMLBound bytes.
func (r *Runtime) SetHTML(elementID, html string) bool {
	if dom, ok := r.host.(ports.DOMHost); ok {
		return dom.SetHTML(elementID, html)
	}
	var opts []script.Option
	if r.cfg.escapeHTML {
		opts = append(opts, script.WithEscaping())
	}
	code, _ := script.SetHTML(elementID, html, opts...)
	r.host.Eval(code)
	return true
}

// FillStyle sets the canvas fill style.
func (r *Runtime) FillStyle(color string) { r.host.FillStyle(color) }

// FillRect draws a filled rectangle.
func (r *Runtime) FillRect(x, y, w, h float32) { r.host.FillRect(x, y, w, h) }

// ClearCanvas clears the canvas.
func (r *Runtime) ClearCanvas() { r.host.ClearCanvas() }

// Now returns host time in seconds.
func (r *Runtime) Now() float64 { return r.host.Now() }

// Random returns a host random value in [0, 1).
func (r *Runtime) Random() float32 { return r.host.Random() }

// Malloc allocates size bytes from the runtime's memory. It returns zero if
// the memory is exhausted.
func (r *Runtime) Malloc(size uint32) uint32 {
	p, err := r.alloc.Allocate(size)
	if err != nil {
		return 0
	}
	return p
}

// Realloc returns a new block of newSize bytes holding the old contents.
func (r *Runtime) Realloc(ptr, newSize uint32) uint32 {
	p, err := r.alloc.Reallocate(ptr, newSize)
	if err != nil {
		return 0
	}
	return p
}

// Free does nothing. Memory is reclaimed when the module is discarded.
func (r *Runtime) Free(ptr uint32) { r.alloc.Release(ptr) }

// Bytes returns a view of n bytes at ptr, or nil if out of range.
func (r *Runtime) Bytes(ptr, n uint32) []byte {
	b, ok := r.mem.Read(ptr, n)
	if !ok {
		return nil
	}
	return b
}

// Allocator returns the runtime's allocator.
func (r *Runtime) Allocator() *memory.Bump { return r.alloc }

// Memory returns the memory the allocator works over.
func (r *Runtime) Memory() ports.Memory { return r.mem }

// RegisterGetter exposes a named state query. Registering a name twice
// replaces the earlier getter.
func (r *Runtime) RegisterGetter(name string, g Getter) {
	if g == nil {
		delete(r.getters, name)
		return
	}
	r.getters[name] = g
}

// Get calls the named getter.
func (r *Runtime) Get(name string) (float64, bool) {
	g, ok := r.getters[name]
	if !ok {
		return 0, false
	}
	return g(), true
}

// Getters returns the registered getter names in sorted order.
func (r *Runtime) Getters() []string {
	names := make([]string, 0, len(r.getters))
	for name := range r.getters {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
