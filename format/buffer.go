// Package format implements the guest's dependency-free text formatting: a
// fixed-capacity buffer that truncates instead of overflowing, and a
// printf-style encoder restricted to %d, %s and %f.
package format

import (
	"errors"
	"io"
)

// Sizes used by the logging path.
const (
	DefaultSize  = 1024
	DefaultLimit = 1000
)

// ErrTruncated is returned by Write when the buffer could not hold all of p.
var ErrTruncated = errors.New("format: buffer truncated")

// Buffer is a fixed-capacity text buffer over a caller-owned byte slice.
// One byte is reserved for a NUL terminator, which is kept directly after
// the content at all times. Bytes that do not fit are dropped and the
// buffer remembers that it truncated.
type Buffer struct {
	data      []byte
	n         int
	limit     int
	truncated bool
}

// BufferOption configures a Buffer.
type BufferOption func(*Buffer)

// WithLimit lowers the content capacity below len(data)-1.
func WithLimit(n int) BufferOption {
	return func(b *Buffer) {
		if n >= 0 && n < b.limit {
			b.limit = n
		}
	}
}

// NewBuffer wraps data. The bound is len(data); the content capacity is
// len(data)-1.
func NewBuffer(data []byte, opts ...BufferOption) *Buffer {
	b := &Buffer{data: data, limit: len(data) - 1}
	if b.limit < 0 {
		b.limit = 0
	}
	for _, opt := range opts {
		opt(b)
	}
	b.terminate()
	return b
}

// NewSized allocates a buffer of the given bound.
func NewSized(bound int, opts ...BufferOption) *Buffer {
	if bound < 0 {
		bound = 0
	}
	return NewBuffer(make([]byte, bound), opts...)
}

// WriteByte appends c, or drops it when the buffer is full. It never fails.
func (b *Buffer) WriteByte(c byte) error {
	if b.n >= b.limit {
		b.truncated = true
		return nil
	}
	b.data[b.n] = c
	b.n++
	b.terminate()
	return nil
}

// WriteString appends as much of s as fits and returns the count written.
func (b *Buffer) WriteString(s string) int {
	room := b.limit - b.n
	if room < len(s) {
		b.truncated = true
		s = s[:max(room, 0)]
	}
	n := copy(b.data[b.n:], s)
	b.n += n
	b.terminate()
	return n
}

// Write implements io.Writer. A short write returns ErrTruncated.
func (b *Buffer) Write(p []byte) (int, error) {
	n := b.WriteString(string(p))
	if n < len(p) {
		return n, ErrTruncated
	}
	return n, nil
}

// Bytes returns the content without the terminator. It aliases the buffer.
func (b *Buffer) Bytes() []byte { return b.data[:b.n] }

// Terminated returns the content including the NUL terminator.
func (b *Buffer) Terminated() []byte {
	if b.n >= len(b.data) {
		return b.data[:b.n]
	}
	return b.data[:b.n+1]
}

// String returns a copy of the content.
func (b *Buffer) String() string { return string(b.data[:b.n]) }

// Len returns the number of content bytes.
func (b *Buffer) Len() int { return b.n }

// Cap returns the content capacity.
func (b *Buffer) Cap() int { return b.limit }

// Full reports whether no more content fits.
func (b *Buffer) Full() bool { return b.n >= b.limit }

// Truncated reports whether any write was cut short.
func (b *Buffer) Truncated() bool { return b.truncated }

// Reset empties the buffer and clears the truncation flag.
func (b *Buffer) Reset() {
	b.n = 0
	b.truncated = false
	b.terminate()
}

func (b *Buffer) terminate() {
	if b.n < len(b.data) {
		b.data[b.n] = 0
	}
}

var (
	_ io.Writer     = (*Buffer)(nil)
	_ io.ByteWriter = (*Buffer)(nil)
)
