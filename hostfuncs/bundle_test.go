package hostfuncs

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/z-libs/zwasm-go/internal/testutil"
	"github.com/z-libs/zwasm-go/memory"
)

// guestString places s in mem at ptr and returns the two stack slots.
func guestString(t *testing.T, mem *memory.SliceMemory, ptr uint32, s string) []uint64 {
	t.Helper()
	require.True(t, mem.Write(ptr, []byte(s)))
	return []uint64{uint64(ptr), uint64(len(s))}
}

func envRegistry(t *testing.T) (*HandlerRegistry, *testutil.Recorder) {
	t.Helper()
	rec := testutil.NewRecorder()
	reg, err := NewRegistry(WithBundle(EnvBundle(rec.Env())))
	require.NoError(t, err)
	return reg, rec
}

func TestEnvBundle_Signatures(t *testing.T) {
	reg, _ := envRegistry(t)

	want := map[string]string{
		"js_log":          "env.js_log(string)",
		"js_time":         "env.js_time() -> f64",
		"js_rand":         "env.js_rand() -> f32",
		"js_eval":         "env.js_eval(string)",
		"js_canvas_rect":  "env.js_canvas_rect(f32, f32, f32, f32)",
		"js_canvas_style": "env.js_canvas_style(string)",
		"js_canvas_clear": "env.js_canvas_clear()",
	}
	for name, sig := range want {
		fn, ok := reg.Lookup("env", name)
		require.True(t, ok, name)
		assert.Equal(t, sig, fn.Signature.String())
	}
}

func TestEnvBundle_StringImports(t *testing.T) {
	reg, rec := envRegistry(t)
	mem := memory.NewSliceMemory(1)
	ctx := context.Background()

	require.NoError(t, reg.Invoke(ctx, FuncLog, &Call{Memory: mem, Stack: guestString(t, mem, 16, "hello from wasm")}))
	require.NoError(t, reg.Invoke(ctx, FuncEval, &Call{Memory: mem, Stack: guestString(t, mem, 64, "alert(1)")}))
	require.NoError(t, reg.Invoke(ctx, FuncCanvasStyle, &Call{Memory: mem, Stack: guestString(t, mem, 128, "#ff0000")}))

	testutil.RequireCalls(t, rec, "log", "eval", "style")
	assert.Equal(t, []string{"hello from wasm"}, rec.Texts("log"))
	assert.Equal(t, []string{"alert(1)"}, rec.Texts("eval"))
	assert.Equal(t, []string{"#ff0000"}, rec.Texts("style"))
}

func TestEnvBundle_EmptyString(t *testing.T) {
	reg, rec := envRegistry(t)

	// A zero length never touches memory, even a missing one.
	require.NoError(t, reg.Invoke(context.Background(), FuncLog, &Call{Stack: []uint64{0, 0}}))
	assert.Equal(t, []string{""}, rec.Texts("log"))
}

func TestEnvBundle_OutOfBoundsString(t *testing.T) {
	reg, rec := envRegistry(t)
	mem := memory.NewSliceMemory(1)

	err := reg.Invoke(context.Background(), FuncLog, &Call{Memory: mem, Stack: []uint64{65530, 100}})
	require.ErrorIs(t, err, ErrOutOfBounds)
	assert.Empty(t, rec.Calls())
}

func TestEnvBundle_Results(t *testing.T) {
	reg, rec := envRegistry(t)
	rec.Time = 1.25
	rec.Rand = 0.75
	ctx := context.Background()

	call := &Call{Stack: make([]uint64, 1)}
	require.NoError(t, reg.Invoke(ctx, FuncTime, call))
	assert.Equal(t, 1.25, call.F64(0))

	require.NoError(t, reg.Invoke(ctx, FuncRand, call))
	assert.Equal(t, float32(0.75), call.F32(0))
}

func TestEnvBundle_Canvas(t *testing.T) {
	reg, rec := envRegistry(t)
	ctx := context.Background()

	stack := []uint64{EncodeF32(10), EncodeF32(20), EncodeF32(50), EncodeF32(40)}
	require.NoError(t, reg.Invoke(ctx, FuncCanvasRect, &Call{Stack: stack}))
	require.NoError(t, reg.Invoke(ctx, FuncCanvasClear, &Call{}))

	calls := rec.Calls()
	require.Len(t, calls, 2)
	assert.Equal(t, []float32{10, 20, 50, 40}, calls[0].Nums)
	assert.Equal(t, "clear", calls[1].Name)
}

func TestCombine(t *testing.T) {
	extra := &staticBundle{functions: []HostFunction{NewHostFunction("js_extra", nil, nil, noop)}}
	bundle := Combine(EnvBundle(NewCanvasEnv(nil)), extra)
	assert.Len(t, bundle.Functions(), 8)

	_, err := NewRegistry(WithBundle(bundle), WithBundle(extra))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "js_extra")
}
