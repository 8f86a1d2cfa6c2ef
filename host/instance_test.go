package host_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/z-libs/zwasm-go/domain/entities"
	domainerrors "github.com/z-libs/zwasm-go/domain/errors"
	"github.com/z-libs/zwasm-go/host"
	"github.com/z-libs/zwasm-go/internal/wasmtest"
	"github.com/z-libs/zwasm-go/memory"
	"github.com/z-libs/zwasm-go/text"
)

func loadGuest(t *testing.T, opts wasmtest.GuestOptions, instOpts ...host.InstanceOption) *host.Instance {
	t.Helper()
	e, _ := newExecutor(t)
	inst, err := e.LoadModule(context.Background(), wasmtest.Guest(opts), instOpts...)
	require.NoError(t, err)
	return inst
}

func TestInstance_OnKey(t *testing.T) {
	ctx := context.Background()
	inst := loadGuest(t, wasmtest.GuestOptions{})

	require.NoError(t, inst.OnKey(ctx, 32, true))
	require.NoError(t, inst.OnKey(ctx, 37, true))
	require.NoError(t, inst.OnKey(ctx, 37, false))
	// Out of range codes are ignored by the guest
	require.NoError(t, inst.OnKey(ctx, 300, true))

	mem := inst.Memory()
	require.NotNil(t, mem)
	b, ok := mem.ReadByte(wasmtest.KeyBase + 32)
	require.True(t, ok)
	assert.Equal(t, byte(1), b)
	b, _ = mem.ReadByte(wasmtest.KeyBase + 37)
	assert.Equal(t, byte(0), b)
}

func TestInstance_MissingExports(t *testing.T) {
	ctx := context.Background()
	inst := loadGuest(t, wasmtest.GuestOptions{NoInit: true},
		host.WithExports(entities.ExportConfig{Init: "main", Frame: "", Key: "no_such_key"}))

	_, err := inst.Init(ctx)
	var ee *domainerrors.ExportError
	require.True(t, errors.As(err, &ee))
	assert.Equal(t, "main", ee.Name)

	assert.NoError(t, inst.Tick(ctx), "no frame hook is a no-op")
	assert.NoError(t, inst.OnKey(ctx, 32, true), "no key hook is a no-op")
}

func TestInstance_WrongKeySignature(t *testing.T) {
	ctx := context.Background()
	inst := loadGuest(t, wasmtest.GuestOptions{},
		host.WithExports(entities.ExportConfig{Init: "main", Key: "key_state"}))

	err := inst.OnKey(ctx, 32, true)
	var ee *domainerrors.ExportError
	require.True(t, errors.As(err, &ee))
	assert.Contains(t, err.Error(), "expected 2 parameters, guest declares 1")
}

func TestInstance_Trap(t *testing.T) {
	ctx := context.Background()
	inst := loadGuest(t, wasmtest.GuestOptions{TrapOnFrame: true})

	err := inst.Tick(ctx)
	var te *domainerrors.TrapError
	require.True(t, errors.As(err, &te))
	assert.Equal(t, "on_frame", te.Export)
}

func TestInstance_Getters(t *testing.T) {
	ctx := context.Background()
	inst := loadGuest(t, wasmtest.GuestOptions{})

	assert.Equal(t, []string{"get_frames", "get_half"}, inst.Getters())

	half, err := inst.Get(ctx, "get_half")
	require.NoError(t, err)
	assert.Equal(t, 0.5, half)

	_, err = inst.Get(ctx, "missing")
	var ee *domainerrors.ExportError
	require.True(t, errors.As(err, &ee))

	_, err = inst.Get(ctx, "key_state")
	require.True(t, errors.As(err, &ee))
	assert.Contains(t, err.Error(), "not a getter")

	require.NoError(t, inst.Tick(ctx))
	assert.Equal(t, map[string]float64{"get_frames": 1, "get_half": 0.5}, inst.Sample(ctx))
}

func TestInstance_HeapBase(t *testing.T) {
	ctx := context.Background()
	inst := loadGuest(t, wasmtest.GuestOptions{})

	base, ok := inst.HeapBase(ctx)
	require.True(t, ok)
	assert.Equal(t, uint32(wasmtest.HeapBase), base)
}

func TestInstance_NoHeapBase(t *testing.T) {
	ctx := context.Background()
	inst := loadGuest(t, wasmtest.GuestOptions{NoHeapBase: true})

	_, ok := inst.HeapBase(ctx)
	assert.False(t, ok)
}

func TestInstance_AllocateSharesGuestCursor(t *testing.T) {
	ctx := context.Background()
	inst := loadGuest(t, wasmtest.GuestOptions{})

	first, err := inst.Allocate(ctx, 8)
	require.NoError(t, err)
	assert.Equal(t, uint32(wasmtest.HeapBase), first)

	second, err := inst.Allocate(ctx, 8)
	require.NoError(t, err)
	assert.Equal(t, first+8, second)

	require.True(t, inst.Memory().Write(second, []byte("hello\x00")))
	assert.Equal(t, uint32(5), text.MemLength(inst.Memory(), second))
	// No release export: a no-op.
	require.NoError(t, inst.Release(ctx, second))
}

func TestInstance_AllocatorStaysInsideReservedBlock(t *testing.T) {
	ctx := context.Background()
	inst := loadGuest(t, wasmtest.GuestOptions{})

	alloc, err := inst.Allocator(ctx, 16)
	require.NoError(t, err)
	assert.Equal(t, uint32(wasmtest.HeapBase), alloc.Base())

	a, err := alloc.Allocate(10)
	require.NoError(t, err)
	assert.Equal(t, uint32(wasmtest.HeapBase), a)
	_, err = alloc.Allocate(10)
	require.ErrorIs(t, err, memory.ErrMemoryExhausted)

	// The guest's next block starts after the reserved one.
	next, err := inst.Allocate(ctx, 4)
	require.NoError(t, err)
	assert.Equal(t, uint32(wasmtest.HeapBase+16), next)

	_, err = inst.Allocator(ctx, 0)
	assert.Error(t, err)
}

func TestInstance_AllocateWithoutExport(t *testing.T) {
	ctx := context.Background()
	inst := loadGuest(t, wasmtest.GuestOptions{NoAllocate: true})

	_, err := inst.Allocate(ctx, 8)
	var ee *domainerrors.ExportError
	require.True(t, errors.As(err, &ee))
	assert.Equal(t, host.AllocateExport, ee.Name)

	_, err = inst.Allocator(ctx, 8)
	assert.True(t, errors.As(err, &ee))
}

func TestInstance_Close(t *testing.T) {
	ctx := context.Background()
	inst := loadGuest(t, wasmtest.GuestOptions{})

	require.NoError(t, inst.Close(ctx))
	require.NoError(t, inst.Close(ctx))

	_, err := inst.Init(ctx)
	assert.ErrorIs(t, err, host.ErrClosed)
	assert.ErrorIs(t, inst.Tick(ctx), host.ErrClosed)
	_, err = inst.Get(ctx, "get_half")
	assert.ErrorIs(t, err, host.ErrClosed)
}

func TestInstance_ConcurrentCallsAreSerialized(t *testing.T) {
	ctx := context.Background()
	inst := loadGuest(t, wasmtest.GuestOptions{})
	_, err := inst.Init(ctx)
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			for j := 0; j < 25; j++ {
				assert.NoError(t, inst.Tick(ctx))
			}
		}()
		go func(code int32) {
			defer wg.Done()
			assert.NoError(t, inst.OnKey(ctx, code, true))
		}(int32(i))
	}
	wg.Wait()

	frames, err := inst.Get(ctx, "get_frames")
	require.NoError(t, err)
	assert.Equal(t, 200.0, frames)
}
