package guest

import (
	"github.com/z-libs/zwasm-go/domain/ports"
)

// DefaultArenaPages is the size of the guest arena in 64 KiB pages.
const DefaultArenaPages = 16

// DefaultHeapBase is where allocation starts inside the arena. Address zero
// is never handed out.
const DefaultHeapBase = 16

type runtimeConfig struct {
	host          ports.Host
	mem           ports.Memory
	heapBase      uint32
	reallocCompat bool
	escapeHTML    bool
}

func defaultRuntimeConfig() runtimeConfig {
	return runtimeConfig{heapBase: DefaultHeapBase}
}

// Option configures a Runtime.
type Option func(*runtimeConfig)

// WithHost replaces the env imports, for example with a recorder in tests.
func WithHost(h ports.Host) Option {
	return func(c *runtimeConfig) {
		c.host = h
	}
}

// WithMemory sets the memory the allocator hands out.
func WithMemory(mem ports.Memory) Option {
	return func(c *runtimeConfig) {
		c.mem = mem
	}
}

// WithHeapBase sets the first address the allocator hands out.
func WithHeapBase(base uint32) Option {
	return func(c *runtimeConfig) {
		c.heapBase = base
	}
}

// WithReallocCompat makes Realloc copy the full new size from the old block.
func WithReallocCompat() Option {
	return func(c *runtimeConfig) {
		c.reallocCompat = true
	}
}

// WithHTMLEscaping escapes ids and HTML passed to SetHTML.
func WithHTMLEscaping() Option {
	return func(c *runtimeConfig) {
		c.escapeHTML = true
	}
}
