package memory

import (
	"math"

	"github.com/z-libs/zwasm-go/domain/ports"
)

// MaxPages is the largest page count addressable with 32-bit offsets.
const MaxPages = 65536

// SliceMemory is a linear memory backed by a Go byte slice. Offsets are
// absolute, starting at zero.
type SliceMemory struct {
	buf      []byte
	maxPages uint32
}

// SliceOption configures a SliceMemory.
type SliceOption func(*SliceMemory)

// WithMaxPages caps how far the memory may grow.
func WithMaxPages(pages uint32) SliceOption {
	return func(m *SliceMemory) {
		if pages > 0 && pages <= MaxPages {
			m.maxPages = pages
		}
	}
}

// NewSliceMemory returns a memory of the given initial page count.
func NewSliceMemory(pages uint32, opts ...SliceOption) *SliceMemory {
	m := &SliceMemory{maxPages: MaxPages}
	for _, opt := range opts {
		opt(m)
	}
	if pages > m.maxPages {
		pages = m.maxPages
	}
	m.buf = make([]byte, int(pages)*ports.PageSize)
	return m
}

// Size implements ports.Memory.
func (m *SliceMemory) Size() uint32 {
	if len(m.buf) > math.MaxUint32 {
		return math.MaxUint32
	}
	return uint32(len(m.buf))
}

// Pages returns the current size in pages.
func (m *SliceMemory) Pages() uint32 {
	return uint32(len(m.buf) / ports.PageSize)
}

// Grow implements ports.Memory.
func (m *SliceMemory) Grow(deltaPages uint32) (uint32, bool) {
	prev := m.Pages()
	if deltaPages == 0 {
		return prev, true
	}
	if uint64(prev)+uint64(deltaPages) > uint64(m.maxPages) {
		return prev, false
	}
	grown := make([]byte, len(m.buf)+int(deltaPages)*ports.PageSize)
	copy(grown, m.buf)
	m.buf = grown
	return prev, true
}

// Read implements ports.Memory. The returned slice aliases the memory.
func (m *SliceMemory) Read(offset, byteCount uint32) ([]byte, bool) {
	if !m.inBounds(offset, byteCount) {
		return nil, false
	}
	return m.buf[offset : offset+byteCount : offset+byteCount], true
}

// Write implements ports.Memory.
func (m *SliceMemory) Write(offset uint32, v []byte) bool {
	if uint64(len(v)) > math.MaxUint32 || !m.inBounds(offset, uint32(len(v))) {
		return false
	}
	copy(m.buf[offset:], v)
	return true
}

// ReadByte implements ports.Memory.
func (m *SliceMemory) ReadByte(offset uint32) (byte, bool) {
	if !m.inBounds(offset, 1) {
		return 0, false
	}
	return m.buf[offset], true
}

// WriteByte implements ports.Memory.
func (m *SliceMemory) WriteByte(offset uint32, v byte) bool {
	if !m.inBounds(offset, 1) {
		return false
	}
	m.buf[offset] = v
	return true
}

func (m *SliceMemory) inBounds(offset, byteCount uint32) bool {
	return uint64(offset)+uint64(byteCount) <= uint64(len(m.buf))
}

var _ ports.Memory = (*SliceMemory)(nil)

// Bytes returns the backing slice. It is replaced, not extended, by Grow.
func (m *SliceMemory) Bytes() []byte { return m.buf }
