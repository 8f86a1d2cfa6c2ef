package memory

import (
	"errors"
	"fmt"
	"math"

	domainerrors "github.com/z-libs/zwasm-go/domain/errors"
	"github.com/z-libs/zwasm-go/domain/ports"
)

// ErrMemoryExhausted is returned when the backing memory cannot grow to hold
// a requested block.
var ErrMemoryExhausted = errors.New("memory: linear memory exhausted")

// ReallocMode selects how Reallocate copies the old block.
type ReallocMode int

const (
	// ReallocClamp copies min(old size, new size) bytes. Block sizes are
	// tracked to make this possible.
	ReallocClamp ReallocMode = iota

	// ReallocCompat copies new size bytes from the old pointer regardless of
	// the old block's size, clipped only by the end of memory. Growing a
	// block therefore reads whatever followed it.
	ReallocCompat
)

// Bump is a monotonic allocator over a linear memory region. The cursor only
// moves forward; nothing is ever reused.
//
// Bump is not safe for concurrent use. Guests call it from a single thread;
// hosts serialize calls into an instance.
type Bump struct {
	mem    ports.Memory
	sizes  map[uint32]uint32
	base   uint32
	cursor uint32
	limit  uint32
	mode   ReallocMode
}

// BumpOption configures a Bump allocator.
type BumpOption func(*Bump)

// WithBase places the region start at base, typically the module's
// __heap_base.
func WithBase(base uint32) BumpOption {
	return func(b *Bump) {
		b.base = base
		b.cursor = base
	}
}

// WithReallocCompat makes Reallocate copy new size bytes from the old block.
func WithReallocCompat() BumpOption {
	return func(b *Bump) {
		b.mode = ReallocCompat
	}
}

// NewBump creates an allocator over mem. Without WithBase the region starts
// at the current end of memory, so allocations never land on data the
// module already owns.
func NewBump(mem ports.Memory, opts ...BumpOption) *Bump {
	b := &Bump{
		mem:    mem,
		base:   mem.Size(),
		cursor: mem.Size(),
		sizes:  make(map[uint32]uint32),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Init sets the region to [start, start+size). A size of zero leaves the
// region unbounded above. Init(0, 0) keeps the configured base, matching a
// loader that supplies the region through a link-time symbol.
func (b *Bump) Init(start, size uint32) {
	if start == 0 && size == 0 {
		return
	}
	b.base = start
	b.cursor = start
	b.limit = 0
	if size > 0 {
		b.limit = start + size
		if b.limit < start {
			b.limit = math.MaxUint32
		}
	}
	clear(b.sizes)
}

// Allocate returns size bytes at the cursor and advances it. A zero size
// returns the cursor without advancing.
func (b *Bump) Allocate(size uint32) (uint32, error) {
	end := uint64(b.cursor) + uint64(size)
	if end > math.MaxUint32 || (b.limit != 0 && end > uint64(b.limit)) {
		return 0, b.exhausted(size)
	}
	if err := b.ensure(uint32(end), size); err != nil {
		return 0, err
	}

	ptr := b.cursor
	b.cursor = uint32(end)
	if size > 0 && b.mode == ReallocClamp {
		b.sizes[ptr] = size
	}
	return ptr, nil
}

// Reallocate allocates a new block of newSize bytes and copies the old
// block's contents into it. A zero old pointer behaves like Allocate.
func (b *Bump) Reallocate(old, newSize uint32) (uint32, error) {
	if old == 0 {
		return b.Allocate(newSize)
	}
	oldSize, tracked := b.sizes[old]

	ptr, err := b.Allocate(newSize)
	if err != nil {
		return 0, err
	}

	n := newSize
	if b.mode == ReallocClamp && tracked && oldSize < n {
		n = oldSize
	}
	if memSize := b.mem.Size(); old >= memSize {
		n = 0
	} else if uint64(old)+uint64(n) > uint64(memSize) {
		n = memSize - old
	}
	if n > 0 {
		src, ok := b.mem.Read(old, n)
		if ok {
			b.mem.Write(ptr, src)
		}
	}
	return ptr, nil
}

// Release is a no-op. Blocks live until the module is discarded.
func (b *Bump) Release(uint32) {}

// Base returns the start of the region.
func (b *Bump) Base() uint32 { return b.base }

// HighWater returns the next free address.
func (b *Bump) HighWater() uint32 { return b.cursor }

// Used returns the number of bytes handed out since the region start.
func (b *Bump) Used() uint32 { return b.cursor - b.base }

// Memory returns the backing memory.
func (b *Bump) Memory() ports.Memory { return b.mem }

// ensure grows the memory so that end is addressable.
func (b *Bump) ensure(end, requested uint32) error {
	current := b.mem.Size()
	if end <= current {
		return nil
	}
	pages := (uint64(end) - uint64(current) + ports.PageSize - 1) / ports.PageSize
	if pages > MaxPages {
		return b.exhausted(requested)
	}
	if _, ok := b.mem.Grow(uint32(pages)); !ok {
		return b.exhausted(requested)
	}
	return nil
}

func (b *Bump) exhausted(requested uint32) error {
	return fmt.Errorf("%w: %w", ErrMemoryExhausted, &domainerrors.MemoryError{
		Requested: requested,
		Cursor:    b.cursor,
		Size:      b.mem.Size(),
	})
}
