package hostfuncs

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/z-libs/zwasm-go/domain/ports"
)

// ErrOutOfBounds is returned when a (pointer, length) argument does not lie
// inside guest memory.
var ErrOutOfBounds = errors.New("hostfuncs: argument out of guest memory bounds")

// Call is one invocation of a host function. Stack holds the raw parameter
// slots on entry and receives the results, following the wasm calling
// convention: i32 and f32 occupy the low 32 bits, strings take two slots.
type Call struct {
	Memory ports.Memory
	Stack  []uint64

	// MaxStringSize caps how many bytes String copies out of guest memory.
	// Zero means DefaultMaxStringSize.
	MaxStringSize uint32
}

// Handler implements one host function.
type Handler func(ctx context.Context, call *Call) error

// I32 returns slot i as a signed 32-bit integer.
func (c *Call) I32(i int) int32 { return int32(uint32(c.Stack[i])) }

// U32 returns slot i as an unsigned 32-bit integer.
func (c *Call) U32(i int) uint32 { return uint32(c.Stack[i]) }

// I64 returns slot i as a signed 64-bit integer.
func (c *Call) I64(i int) int64 { return int64(c.Stack[i]) }

// F32 returns slot i as a 32-bit float.
func (c *Call) F32(i int) float32 { return math.Float32frombits(uint32(c.Stack[i])) }

// F64 returns slot i as a 64-bit float.
func (c *Call) F64(i int) float64 { return math.Float64frombits(c.Stack[i]) }

// String copies the string whose pointer is in slot i and length in slot
// i+1 out of guest memory. Strings longer than the size limit are cut.
func (c *Call) String(i int) (string, error) {
	ptr, length := c.U32(i), c.U32(i+1)
	if length == 0 {
		return "", nil
	}
	if c.Memory == nil {
		return "", fmt.Errorf("%w: no memory exported", ErrOutOfBounds)
	}
	limit := c.MaxStringSize
	if limit == 0 {
		limit = DefaultMaxStringSize
	}
	if length > limit {
		length = limit
	}
	b, ok := c.Memory.Read(ptr, length)
	if !ok {
		return "", fmt.Errorf("%w: ptr=%d len=%d size=%d", ErrOutOfBounds, ptr, length, c.Memory.Size())
	}
	return string(b), nil
}

// SetI32 stores v as result slot i.
func (c *Call) SetI32(i int, v int32) { c.Stack[i] = uint64(uint32(v)) }

// SetF32 stores v as result slot i.
func (c *Call) SetF32(i int, v float32) { c.Stack[i] = uint64(math.Float32bits(v)) }

// SetF64 stores v as result slot i.
func (c *Call) SetF64(i int, v float64) { c.Stack[i] = math.Float64bits(v) }

// EncodeF32 packs v into a stack slot.
func EncodeF32(v float32) uint64 { return uint64(math.Float32bits(v)) }

// EncodeF64 packs v into a stack slot.
func EncodeF64(v float64) uint64 { return math.Float64bits(v) }

// EncodeI32 packs v into a stack slot.
func EncodeI32(v int32) uint64 { return uint64(uint32(v)) }
