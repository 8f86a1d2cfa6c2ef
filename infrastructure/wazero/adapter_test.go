package wazero

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"

	"github.com/z-libs/zwasm-go/domain/entities"
	"github.com/z-libs/zwasm-go/hostfuncs"
	"github.com/z-libs/zwasm-go/internal/testutil"
	"github.com/z-libs/zwasm-go/internal/wasmtest"
)

func TestDefaultAdapterConfig(t *testing.T) {
	cfg := defaultAdapterConfig()
	assert.Equal(t, uint32(hostfuncs.DefaultMaxStringSize), cfg.MaxStringSize)
	assert.False(t, cfg.TrapOnError)
	assert.Empty(t, cfg.CustomHandlers)
}

func TestAdapterOptions(t *testing.T) {
	cfg := defaultAdapterConfig()
	WithMaxStringSize(2048)(&cfg)
	WithTrapOnError()(&cfg)
	WithCustomHandler(CustomHandler{Name: "test_handler"})(&cfg)

	assert.Equal(t, uint32(2048), cfg.MaxStringSize)
	assert.True(t, cfg.TrapOnError)
	require.Len(t, cfg.CustomHandlers, 1)
	assert.Equal(t, "test_handler", cfg.CustomHandlers[0].Name)
}

func TestValueTypes(t *testing.T) {
	got := ValueTypes([]entities.ValueKind{
		entities.KindString, entities.KindF32, entities.KindF64, entities.KindI64, entities.KindI32,
	})
	assert.Equal(t, []api.ValueType{
		api.ValueTypeI32, api.ValueTypeI32,
		api.ValueTypeF32, api.ValueTypeF64, api.ValueTypeI64, api.ValueTypeI32,
	}, got)
	assert.Empty(t, ValueTypes(nil))
}

func envRuntime(t *testing.T, opts ...AdapterOption) (wazero.Runtime, *testutil.Recorder) {
	t.Helper()
	ctx := context.Background()
	rec := testutil.NewRecorder()
	reg, err := hostfuncs.NewRegistry(hostfuncs.WithBundle(hostfuncs.EnvBundle(rec.Env())))
	require.NoError(t, err)

	rt := wazero.NewRuntime(ctx)
	t.Cleanup(func() { _ = rt.Close(ctx) })
	require.NoError(t, RegisterWithRuntime(ctx, rt, reg, opts...))
	return rt, rec
}

func TestRegisterWithRuntime_GuestCalls(t *testing.T) {
	ctx := context.Background()
	rt, rec := envRuntime(t)

	mod, err := rt.Instantiate(ctx, wasmtest.Guest(wasmtest.GuestOptions{}))
	require.NoError(t, err)

	_, err = mod.ExportedFunction("main").Call(ctx)
	require.NoError(t, err)
	_, err = mod.ExportedFunction("on_frame").Call(ctx)
	require.NoError(t, err)

	testutil.RequireCalls(t, rec, "log", "clear", "rect")
	assert.Equal(t, []string{wasmtest.HelloText}, rec.Texts("log"))
}

func TestRegisterWithRuntime_Definitions(t *testing.T) {
	rt, _ := envRuntime(t)

	env := rt.Module("env")
	require.NotNil(t, env)

	defs := env.ExportedFunctionDefinitions()
	require.Len(t, defs, 7)

	def := defs["js_canvas_rect"]
	require.NotNil(t, def)
	assert.Equal(t, []api.ValueType{api.ValueTypeF32, api.ValueTypeF32, api.ValueTypeF32, api.ValueTypeF32}, def.ParamTypes())
	assert.Empty(t, def.ResultTypes())

	def = defs["js_time"]
	require.NotNil(t, def)
	assert.Empty(t, def.ParamTypes())
	assert.Equal(t, []api.ValueType{api.ValueTypeF64}, def.ResultTypes())

	def = defs["js_log"]
	require.NotNil(t, def)
	assert.Equal(t, []api.ValueType{api.ValueTypeI32, api.ValueTypeI32}, def.ParamTypes())
}

func TestRegisterWithRuntime_StringLimit(t *testing.T) {
	ctx := context.Background()
	rt, rec := envRuntime(t, WithMaxStringSize(5))

	mod, err := rt.Instantiate(ctx, wasmtest.Guest(wasmtest.GuestOptions{}))
	require.NoError(t, err)
	_, err = mod.ExportedFunction("main").Call(ctx)
	require.NoError(t, err)

	assert.Equal(t, []string{"hello"}, rec.Texts("log"))
}

func outOfBoundsLogger() []byte {
	m := wasmtest.New()
	logFn := m.Import("env", "js_log", []wasmtest.ValType{wasmtest.I32, wasmtest.I32}, nil)
	m.Memory(1)
	fn := m.Func(nil, nil, nil,
		wasmtest.I32Const(65530), wasmtest.I32Const(64), wasmtest.Call(logFn))
	m.ExportFunc("run", fn)
	return m.Bytes()
}

func TestRegisterWithRuntime_ErrorIsLogged(t *testing.T) {
	ctx := context.Background()
	rt, rec := envRuntime(t)

	mod, err := rt.Instantiate(ctx, outOfBoundsLogger())
	require.NoError(t, err)
	_, err = mod.ExportedFunction("run").Call(ctx)
	require.NoError(t, err)
	assert.Empty(t, rec.Calls())
}

func TestRegisterWithRuntime_TrapOnError(t *testing.T) {
	ctx := context.Background()
	rt, _ := envRuntime(t, WithTrapOnError())

	mod, err := rt.Instantiate(ctx, outOfBoundsLogger())
	require.NoError(t, err)
	_, err = mod.ExportedFunction("run").Call(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "out of guest memory bounds")
}

func TestRegisterWithRuntime_CustomHandler(t *testing.T) {
	ctx := context.Background()
	var got uint32
	rt, _ := envRuntime(t, WithCustomHandler(CustomHandler{
		Name: "js_debug",
		Handler: api.GoModuleFunc(func(_ context.Context, _ api.Module, stack []uint64) {
			got = api.DecodeU32(stack[0])
		}),
		ParamTypes: []api.ValueType{api.ValueTypeI32},
	}))

	m := wasmtest.New()
	dbg := m.Import("env", "js_debug", []wasmtest.ValType{wasmtest.I32}, nil)
	fn := m.Func(nil, nil, nil, wasmtest.I32Const(42), wasmtest.Call(dbg))
	m.ExportFunc("run", fn)

	mod, err := rt.Instantiate(ctx, m.Bytes())
	require.NoError(t, err)
	_, err = mod.ExportedFunction("run").Call(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint32(42), got)
}

func TestCheckSignature(t *testing.T) {
	ctx := context.Background()
	rt := wazero.NewRuntime(ctx)
	defer rt.Close(ctx)

	compiled, err := rt.CompileModule(ctx, wasmtest.Guest(wasmtest.GuestOptions{BadLog: true}))
	require.NoError(t, err)

	good := entities.Signature{Name: "js_canvas_clear"}
	logSig := entities.Signature{Name: "js_log", Params: []entities.ValueKind{entities.KindString}}

	for _, def := range compiled.ImportedFunctions() {
		_, name, _ := def.Import()
		switch name {
		case "js_canvas_clear":
			assert.NoError(t, CheckSignature(def, good))
		case "js_log":
			err := CheckSignature(def, logSig)
			require.Error(t, err)
			assert.Equal(t, "signature mismatch: guest declares (i32), host provides (i32, i32)", err.Error())
		}
	}
}

func TestModuleNameContext(t *testing.T) {
	ctx := context.Background()
	_, ok := ModuleNameFromContext(ctx)
	assert.False(t, ok)

	ctx = WithModuleName(ctx, "bouncer")
	name, ok := ModuleNameFromContext(ctx)
	assert.True(t, ok)
	assert.Equal(t, "bouncer", name)
}

func TestLogger(t *testing.T) {
	assert.NotNil(t, Logger())
	SetLogger(nil)
	assert.NotNil(t, Logger())
}
