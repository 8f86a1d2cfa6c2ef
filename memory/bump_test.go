package memory

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainerrors "github.com/z-libs/zwasm-go/domain/errors"
)

func TestBump_AllocateIsMonotonic(t *testing.T) {
	mem := NewSliceMemory(1)
	b := NewBump(mem, WithBase(1024))

	sizes := []uint32{0, 1, 7, 0, 64, 3, 4096, 1}
	prevEnd := b.Base()
	for _, size := range sizes {
		p, err := b.Allocate(size)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, p, b.Base())
		assert.Equal(t, prevEnd, p, "allocation starts where the previous one ended")
		assert.LessOrEqual(t, uint64(p)+uint64(size), uint64(b.HighWater()))
		prevEnd = p + size
	}
	assert.Equal(t, uint32(1+7+64+3+4096+1), b.Used())
}

func TestBump_ZeroSizeDoesNotAdvance(t *testing.T) {
	b := NewBump(NewSliceMemory(1), WithBase(16))
	p1, err := b.Allocate(0)
	require.NoError(t, err)
	p2, err := b.Allocate(0)
	require.NoError(t, err)
	assert.Equal(t, p1, p2)
	assert.Equal(t, uint32(16), b.HighWater())
}

func TestBump_DefaultBaseIsEndOfMemory(t *testing.T) {
	mem := NewSliceMemory(1)
	b := NewBump(mem)
	assert.Equal(t, uint32(65536), b.Base())

	p, err := b.Allocate(10)
	require.NoError(t, err)
	assert.Equal(t, uint32(65536), p)
	assert.Equal(t, uint32(2), mem.Pages(), "memory grew to hold the block")
}

func TestBump_GrowsMemory(t *testing.T) {
	mem := NewSliceMemory(1)
	b := NewBump(mem, WithBase(65000))

	p, err := b.Allocate(2 * 65536)
	require.NoError(t, err)
	assert.Equal(t, uint32(65000), p)
	assert.GreaterOrEqual(t, mem.Size(), p+2*65536)
	assert.True(t, mem.WriteByte(p+2*65536-1, 1))
}

func TestBump_Exhausted(t *testing.T) {
	mem := NewSliceMemory(1, WithMaxPages(1))
	b := NewBump(mem, WithBase(65000))

	_, err := b.Allocate(500)
	require.NoError(t, err)

	_, err = b.Allocate(100)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMemoryExhausted))

	var memErr *domainerrors.MemoryError
	require.True(t, errors.As(err, &memErr))
	assert.Equal(t, uint32(100), memErr.Requested)
	assert.Equal(t, uint32(65500), memErr.Cursor)
	assert.Equal(t, uint32(65500), b.HighWater(), "failed allocation leaves the cursor alone")
}

func TestBump_InitRegion(t *testing.T) {
	b := NewBump(NewSliceMemory(1), WithBase(100))

	b.Init(0, 0)
	assert.Equal(t, uint32(100), b.Base(), "Init(0, 0) keeps the supplied base")

	b.Init(2048, 16)
	assert.Equal(t, uint32(2048), b.Base())
	assert.Equal(t, uint32(2048), b.HighWater())

	_, err := b.Allocate(16)
	require.NoError(t, err)
	_, err = b.Allocate(1)
	assert.ErrorIs(t, err, ErrMemoryExhausted, "bounded region")
}

func TestBump_ReallocateClamp(t *testing.T) {
	mem := NewSliceMemory(1)
	b := NewBump(mem, WithBase(256))

	old, err := b.Allocate(4)
	require.NoError(t, err)
	require.True(t, mem.Write(old, []byte("abcd")))
	next, err := b.Allocate(4)
	require.NoError(t, err)
	require.True(t, mem.Write(next, []byte("XXXX")))

	grown, err := b.Reallocate(old, 8)
	require.NoError(t, err)
	assert.Greater(t, grown, next)
	got, _ := mem.Read(grown, 8)
	assert.Equal(t, []byte{'a', 'b', 'c', 'd', 0, 0, 0, 0}, got, "only the old block is copied")

	shrunk, err := b.Reallocate(grown, 2)
	require.NoError(t, err)
	got, _ = mem.Read(shrunk, 2)
	assert.Equal(t, "ab", string(got))
}

func TestBump_ReallocateCompat(t *testing.T) {
	mem := NewSliceMemory(1)
	b := NewBump(mem, WithBase(256), WithReallocCompat())

	old, err := b.Allocate(4)
	require.NoError(t, err)
	require.True(t, mem.Write(old, []byte("abcd")))
	next, err := b.Allocate(4)
	require.NoError(t, err)
	require.True(t, mem.Write(next, []byte("WXYZ")))

	grown, err := b.Reallocate(old, 8)
	require.NoError(t, err)
	got, _ := mem.Read(grown, 8)
	assert.Equal(t, "abcdWXYZ", string(got), "copies new size bytes from the old pointer")
}

func TestBump_ReallocateNilAllocates(t *testing.T) {
	b := NewBump(NewSliceMemory(1), WithBase(64))
	p, err := b.Reallocate(0, 10)
	require.NoError(t, err)
	assert.Equal(t, uint32(64), p)
	assert.Equal(t, uint32(74), b.HighWater())
}

func TestBump_ReleaseIsNoop(t *testing.T) {
	b := NewBump(NewSliceMemory(1), WithBase(64))
	p, err := b.Allocate(10)
	require.NoError(t, err)
	b.Release(p)
	q, err := b.Allocate(10)
	require.NoError(t, err)
	assert.Equal(t, p+10, q, "released blocks are never reused")
}
