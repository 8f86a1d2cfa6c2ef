package host

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"
	"github.com/tetratelabs/wazero/imports/wasi_snapshot_preview1"
	"go.uber.org/zap"

	"github.com/z-libs/zwasm-go/domain/entities"
	domainerrors "github.com/z-libs/zwasm-go/domain/errors"
	"github.com/z-libs/zwasm-go/hostfuncs"
	wazeroadapter "github.com/z-libs/zwasm-go/infrastructure/wazero"
)

// Executor owns a wazero runtime with the env host module registered, and
// loads guest modules into it.
type Executor struct {
	runtime  wazero.Runtime
	registry *hostfuncs.HandlerRegistry
	logger   *zap.Logger
	wasi     bool
}

// NewExecutor creates a new executor with the given options.
func NewExecutor(ctx context.Context, opts ...Option) (*Executor, error) {
	cfg := executorConfig{
		memoryLimitPages: entities.DefaultMemoryLimit,
		logger:           wazeroadapter.Logger(),
		wasi:             true,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	if cfg.registry == nil {
		reg, err := newEnvRegistry(cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to create default registry: %w", err)
		}
		cfg.registry = reg
	}

	rtConfig := wazero.NewRuntimeConfig().
		WithCloseOnContextDone(true).
		WithMemoryLimitPages(cfg.memoryLimitPages)
	rt := wazero.NewRuntimeWithConfig(ctx, rtConfig)

	if cfg.wasi {
		if _, err := wasi_snapshot_preview1.Instantiate(ctx, rt); err != nil {
			_ = rt.Close(ctx)
			return nil, fmt.Errorf("failed to instantiate WASI: %w", err)
		}
	}

	if err := wazeroadapter.RegisterWithRuntime(ctx, rt, cfg.registry, cfg.adapterOpts...); err != nil {
		_ = rt.Close(ctx)
		return nil, fmt.Errorf("failed to register host functions: %w", err)
	}

	cfg.logger.Debug("executor ready",
		zap.String("namespace", cfg.registry.Namespace()),
		zap.Strings("functions", cfg.registry.Names()),
		zap.Uint32("memory_limit_pages", cfg.memoryLimitPages),
		zap.Bool("wasi", cfg.wasi))

	return &Executor{
		runtime:  rt,
		registry: cfg.registry,
		logger:   cfg.logger,
		wasi:     cfg.wasi,
	}, nil
}

func newEnvRegistry(cfg executorConfig) (*hostfuncs.HandlerRegistry, error) {
	env := cfg.env
	if env == nil {
		env = hostfuncs.NewConsoleEnv()
	}
	middleware := []hostfuncs.Middleware{hostfuncs.PanicRecoveryMiddleware()}
	if cfg.trace {
		middleware = append(middleware, hostfuncs.TraceMiddleware(cfg.logger))
	}
	opts := []hostfuncs.RegistryOption{
		hostfuncs.WithMiddleware(middleware...),
		hostfuncs.WithBundle(hostfuncs.EnvBundle(env)),
	}
	if cfg.namespace != "" {
		opts = append(opts, hostfuncs.WithNamespace(cfg.namespace))
	}
	return hostfuncs.NewRegistry(opts...)
}

// Registry returns the host functions guests can import.
func (e *Executor) Registry() *hostfuncs.HandlerRegistry {
	return e.registry
}

// Close releases resources held by the executor, including every instance.
func (e *Executor) Close(ctx context.Context) error {
	return e.runtime.Close(ctx)
}

// Compile compiles wasm and checks its imports without instantiating it.
func (e *Executor) Compile(ctx context.Context, wasm []byte) (wazero.CompiledModule, error) {
	compiled, err := e.runtime.CompileModule(ctx, wasm)
	if err != nil {
		return nil, fmt.Errorf("failed to compile module: %w", err)
	}
	if err := e.ValidateImports(compiled); err != nil {
		_ = compiled.Close(ctx)
		return nil, err
	}
	return compiled, nil
}

// ValidateImports checks every function the module imports against what the
// runtime provides. Each unresolved or mistyped import yields a
// *errors.ResolutionError; all of them are joined.
func (e *Executor) ValidateImports(compiled wazero.CompiledModule) error {
	var errs []error
	for _, def := range compiled.ImportedFunctions() {
		module, name, _ := def.Import()
		if err := e.resolve(def, module, name); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (e *Executor) resolve(def api.FunctionDefinition, module, name string) error {
	reason := "no such function"
	if module == e.registry.Namespace() {
		if fn, ok := e.registry.Lookup(module, name); ok {
			if err := wazeroadapter.CheckSignature(def, fn.Signature); err != nil {
				return &domainerrors.ResolutionError{Module: module, Name: name, Reason: err.Error()}
			}
			return nil
		}
		// Custom handlers live only in the host module.
		reason = "no such host function"
	}

	if module == wasi_snapshot_preview1.ModuleName && !e.wasi {
		return &domainerrors.ResolutionError{Module: module, Name: name, Reason: "WASI is disabled"}
	}
	provider := e.runtime.Module(module)
	if provider == nil {
		return &domainerrors.ResolutionError{Module: module, Name: name, Reason: "module not provided by host"}
	}
	// Host modules forbid ExportedFunction; definitions are always available.
	want, ok := provider.ExportedFunctionDefinitions()[name]
	if !ok {
		return &domainerrors.ResolutionError{Module: module, Name: name, Reason: reason}
	}
	if !slices.Equal(def.ParamTypes(), want.ParamTypes()) || !slices.Equal(def.ResultTypes(), want.ResultTypes()) {
		return &domainerrors.ResolutionError{Module: module, Name: name, Reason: "signature mismatch"}
	}
	return nil
}

// LoadModule compiles, validates and instantiates a guest. Start functions
// are not run; a reactor's _initialize export is called instead.
func (e *Executor) LoadModule(ctx context.Context, wasm []byte, opts ...InstanceOption) (*Instance, error) {
	cfg := instanceConfig{exports: entities.DefaultBridgeConfig().Exports}
	for _, opt := range opts {
		opt(&cfg)
	}

	compiled, err := e.Compile(ctx, wasm)
	if err != nil {
		return nil, err
	}

	modConfig := wazero.NewModuleConfig().
		WithName(cfg.name).
		WithStartFunctions().
		WithSysWalltime().
		WithSysNanotime()
	if cfg.stdout != nil {
		modConfig = modConfig.WithStdout(cfg.stdout)
	}
	if cfg.stderr != nil {
		modConfig = modConfig.WithStderr(cfg.stderr)
	}

	callCtx := wazeroadapter.WithModuleName(ctx, cfg.name)
	mod, err := e.runtime.InstantiateModule(callCtx, compiled, modConfig)
	if err != nil {
		_ = compiled.Close(ctx)
		return nil, fmt.Errorf("failed to instantiate module: %w", err)
	}

	if init := mod.ExportedFunction("_initialize"); init != nil {
		if _, err := init.Call(callCtx); err != nil {
			_ = mod.Close(ctx)
			_ = compiled.Close(ctx)
			return nil, &domainerrors.TrapError{Err: err, Export: "_initialize"}
		}
	}

	e.logger.Debug("module loaded",
		zap.String("name", cfg.name),
		zap.Int("imports", len(compiled.ImportedFunctions())),
		zap.Int("exports", len(compiled.ExportedFunctions())))

	return newInstance(mod, compiled, cfg), nil
}

// LoadConfig loads the module described by cfg from wasm, naming the
// instance and its exports after the configuration.
func (e *Executor) LoadConfig(ctx context.Context, cfg *entities.BridgeConfig, wasm []byte, opts ...InstanceOption) (*Instance, error) {
	opts = append([]InstanceOption{WithName(cfg.Name), WithExports(cfg.Exports)}, opts...)
	return e.LoadModule(ctx, wasm, opts...)
}
