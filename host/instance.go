package host

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"
	"sync"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"

	"github.com/z-libs/zwasm-go/domain/entities"
	domainerrors "github.com/z-libs/zwasm-go/domain/errors"
	"github.com/z-libs/zwasm-go/domain/ports"
	wazeroadapter "github.com/z-libs/zwasm-go/infrastructure/wazero"
	"github.com/z-libs/zwasm-go/internal/abi"
	"github.com/z-libs/zwasm-go/memory"
)

// ErrClosed is returned by calls on a closed Instance.
var ErrClosed = errors.New("host: instance closed")

// Exports that locate the guest heap.
const (
	HeapBaseGlobal = "__heap_base"
	ArenaExport    = "zwasm_arena"
)

// Exports through which the host allocates inside the guest heap.
const (
	AllocateExport = "allocate"
	ReleaseExport  = "release"
)

// GetterPrefix marks exports discovered as getters when none are
// configured.
const GetterPrefix = "get_"

// Instance is one instantiated guest. Calls are serialized, so the frame
// hook and the key hook may be driven from different goroutines.
type Instance struct {
	mu       sync.Mutex
	module   api.Module
	compiled wazero.CompiledModule
	name     string
	exports  entities.ExportConfig
	closed   bool
}

func newInstance(mod api.Module, compiled wazero.CompiledModule, cfg instanceConfig) *Instance {
	return &Instance{
		module:   mod,
		compiled: compiled,
		name:     cfg.name,
		exports:  cfg.exports,
	}
}

// Name returns the instance name.
func (i *Instance) Name() string { return i.name }

// Exports returns the export names the instance calls.
func (i *Instance) Exports() entities.ExportConfig { return i.exports }

// Init calls the initializer and returns its status code. A guest without
// the initializer export is an error.
func (i *Instance) Init(ctx context.Context) (int32, error) {
	i.mu.Lock()
	defer i.mu.Unlock()

	results, found, err := i.call(ctx, i.exports.Init)
	if err != nil {
		return 0, err
	}
	if !found {
		return 0, &domainerrors.ExportError{Name: i.exports.Init}
	}
	if len(results) == 0 {
		return 0, nil
	}
	return int32(uint32(results[0])), nil
}

// Tick calls the frame hook. A guest without one ignores ticks.
func (i *Instance) Tick(ctx context.Context) error {
	i.mu.Lock()
	defer i.mu.Unlock()

	_, _, err := i.call(ctx, i.exports.Frame)
	return err
}

// OnKey reports a key transition. A guest without the key hook ignores it.
func (i *Instance) OnKey(ctx context.Context, code int32, down bool) error {
	i.mu.Lock()
	defer i.mu.Unlock()

	var d uint64
	if down {
		d = 1
	}
	_, _, err := i.call(ctx, i.exports.Key, api.EncodeI32(code), d)
	return err
}

// Get calls a getter export and converts its single numeric result.
func (i *Instance) Get(ctx context.Context, name string) (float64, error) {
	i.mu.Lock()
	defer i.mu.Unlock()

	if i.closed {
		return 0, ErrClosed
	}
	fn := i.module.ExportedFunction(name)
	if fn == nil {
		return 0, &domainerrors.ExportError{Name: name}
	}
	def := fn.Definition()
	if !isGetter(def) {
		return 0, &domainerrors.ExportError{Name: name, Err: fmt.Errorf("not a getter: %s", signature(def))}
	}
	results, err := fn.Call(i.ctx(ctx))
	if err != nil {
		return 0, &domainerrors.TrapError{Err: err, Export: name}
	}
	return decodeNumber(def.ResultTypes()[0], results[0]), nil
}

// Getters returns the configured getter names, or every exported getter
// whose name starts with GetterPrefix when none are configured.
func (i *Instance) Getters() []string {
	if len(i.exports.Getters) > 0 {
		return append([]string(nil), i.exports.Getters...)
	}
	var names []string
	for name, def := range i.compiled.ExportedFunctions() {
		if strings.HasPrefix(name, GetterPrefix) && isGetter(def) {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// Sample reads every getter. Getters that fail are left out.
func (i *Instance) Sample(ctx context.Context) map[string]float64 {
	names := i.Getters()
	values := make(map[string]float64, len(names))
	for _, name := range names {
		if v, err := i.Get(ctx, name); err == nil {
			values[name] = v
		}
	}
	return values
}

// HeapBase returns where free guest memory starts: the __heap_base global
// of freestanding guests, or the arena a Go guest reports.
func (i *Instance) HeapBase(ctx context.Context) (uint32, bool) {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.heapBase(ctx)
}

func (i *Instance) heapBase(ctx context.Context) (uint32, bool) {
	if i.closed {
		return 0, false
	}
	if g := i.module.ExportedGlobal(HeapBaseGlobal); g != nil {
		return uint32(g.Get()), true
	}
	if fn := i.module.ExportedFunction(ArenaExport); fn != nil {
		results, err := fn.Call(i.ctx(ctx))
		if err != nil || len(results) == 0 {
			return 0, false
		}
		base, _ := abi.UnpackPtrLen(results[0])
		return base, base != 0
	}
	return 0, false
}

// Memory returns the guest's exported memory, or nil.
func (i *Instance) Memory() ports.Memory {
	if mem := i.module.Memory(); mem != nil {
		return mem
	}
	return nil
}

// Allocate asks the guest for size bytes through its allocate export, so
// host placements come from the same cursor as the guest's own blocks.
func (i *Instance) Allocate(ctx context.Context, size uint32) (uint32, error) {
	i.mu.Lock()
	defer i.mu.Unlock()

	results, found, err := i.call(ctx, AllocateExport, api.EncodeU32(size))
	if err != nil {
		return 0, err
	}
	if !found || len(results) == 0 {
		return 0, &domainerrors.ExportError{Name: AllocateExport}
	}
	ptr := uint32(results[0])
	if ptr == 0 && size > 0 {
		merr := &domainerrors.MemoryError{Requested: size}
		if mem := i.module.Memory(); mem != nil {
			merr.Size = mem.Size()
		}
		return 0, fmt.Errorf("%w: %w", memory.ErrMemoryExhausted, merr)
	}
	return ptr, nil
}

// Release hands ptr back through the guest's release export, if any.
func (i *Instance) Release(ctx context.Context, ptr uint32) error {
	i.mu.Lock()
	defer i.mu.Unlock()

	_, _, err := i.call(ctx, ReleaseExport, api.EncodeU32(ptr))
	return err
}

// Allocator reserves a size byte block with Allocate and returns a bump
// allocator confined to it. The host can place many small values without a
// guest call each, and never past the block.
func (i *Instance) Allocator(ctx context.Context, size uint32) (*memory.Bump, error) {
	if size == 0 {
		return nil, fmt.Errorf("host: allocator region must not be empty")
	}
	mem := i.Memory()
	if mem == nil {
		return nil, &domainerrors.ExportError{Name: "memory"}
	}
	ptr, err := i.Allocate(ctx, size)
	if err != nil {
		return nil, err
	}
	alloc := memory.NewBump(mem)
	alloc.Init(ptr, size)
	return alloc, nil
}

// Close releases the instance. Further calls return ErrClosed.
func (i *Instance) Close(ctx context.Context) error {
	i.mu.Lock()
	defer i.mu.Unlock()

	if i.closed {
		return nil
	}
	i.closed = true
	err := i.module.Close(ctx)
	return errors.Join(err, i.compiled.Close(ctx))
}

// call invokes an optional export. found is false when the guest does not
// export name.
func (i *Instance) call(ctx context.Context, name string, params ...uint64) (results []uint64, found bool, err error) {
	if i.closed {
		return nil, false, ErrClosed
	}
	if name == "" {
		return nil, false, nil
	}
	fn := i.module.ExportedFunction(name)
	if fn == nil {
		return nil, false, nil
	}
	if got := len(fn.Definition().ParamTypes()); got != len(params) {
		return nil, true, &domainerrors.ExportError{
			Name: name,
			Err:  fmt.Errorf("expected %d parameters, guest declares %d", len(params), got),
		}
	}
	results, err = fn.Call(i.ctx(ctx), params...)
	if err != nil {
		return nil, true, &domainerrors.TrapError{Err: err, Export: name}
	}
	return results, true, nil
}

func (i *Instance) ctx(ctx context.Context) context.Context {
	if i.name == "" {
		return ctx
	}
	return wazeroadapter.WithModuleName(ctx, i.name)
}

func isGetter(def api.FunctionDefinition) bool {
	return len(def.ParamTypes()) == 0 && len(def.ResultTypes()) == 1
}

func decodeNumber(t api.ValueType, v uint64) float64 {
	switch t {
	case api.ValueTypeI32:
		return float64(api.DecodeI32(v))
	case api.ValueTypeI64:
		return float64(int64(v))
	case api.ValueTypeF32:
		return float64(api.DecodeF32(v))
	case api.ValueTypeF64:
		return api.DecodeF64(v)
	}
	return math.NaN()
}

func signature(def api.FunctionDefinition) string {
	parts := make([]string, 0, len(def.ParamTypes()))
	for _, p := range def.ParamTypes() {
		parts = append(parts, api.ValueTypeName(p))
	}
	s := "(" + strings.Join(parts, ", ") + ")"
	for _, r := range def.ResultTypes() {
		s += " " + api.ValueTypeName(r)
	}
	return s
}
