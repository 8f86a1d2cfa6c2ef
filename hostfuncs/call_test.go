package hostfuncs

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/z-libs/zwasm-go/memory"
)

func TestCall_Scalars(t *testing.T) {
	call := &Call{Stack: []uint64{
		EncodeI32(-1),
		math.MaxUint64,
		EncodeF32(1.5),
		EncodeF64(-2.25),
	}}

	assert.Equal(t, int32(-1), call.I32(0))
	assert.Equal(t, uint32(math.MaxUint32), call.U32(0))
	assert.Equal(t, int64(-1), call.I64(1))
	assert.Equal(t, float32(1.5), call.F32(2))
	assert.Equal(t, -2.25, call.F64(3))

	call.SetI32(0, 7)
	call.SetF32(1, 0.5)
	call.SetF64(2, math.Pi)
	assert.Equal(t, uint64(7), call.Stack[0])
	assert.Equal(t, float32(0.5), call.F32(1))
	assert.Equal(t, math.Pi, call.F64(2))
}

func TestCall_String(t *testing.T) {
	mem := memory.NewSliceMemory(1)
	require.True(t, mem.Write(100, []byte("abcdef")))

	t.Run("reads the slice", func(t *testing.T) {
		call := &Call{Memory: mem, Stack: []uint64{100, 6}}
		s, err := call.String(0)
		require.NoError(t, err)
		assert.Equal(t, "abcdef", s)
	})

	t.Run("honors the size limit", func(t *testing.T) {
		call := &Call{Memory: mem, Stack: []uint64{100, 6}, MaxStringSize: 3}
		s, err := call.String(0)
		require.NoError(t, err)
		assert.Equal(t, "abc", s)
	})

	t.Run("copies out of memory", func(t *testing.T) {
		call := &Call{Memory: mem, Stack: []uint64{100, 3}}
		s, err := call.String(0)
		require.NoError(t, err)
		require.True(t, mem.Write(100, []byte("xyz")))
		assert.Equal(t, "abc", s)
	})

	t.Run("rejects out of bounds", func(t *testing.T) {
		call := &Call{Memory: mem, Stack: []uint64{65535, 2}}
		_, err := call.String(0)
		assert.ErrorIs(t, err, ErrOutOfBounds)
	})

	t.Run("rejects missing memory", func(t *testing.T) {
		call := &Call{Stack: []uint64{0, 1}}
		_, err := call.String(0)
		assert.ErrorIs(t, err, ErrOutOfBounds)
	})
}
