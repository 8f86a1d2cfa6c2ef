package wazero

import (
	"context"
	"log/slog"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"

	"github.com/z-libs/zwasm-go/hostfuncs"
)

// AdapterConfig holds configuration for the wazero adapter.
type AdapterConfig struct {
	// MaxStringSize limits how many bytes of a string argument are copied
	// out of guest memory. Default is 1MB.
	MaxStringSize uint32

	// TrapOnError aborts the guest call when a host function fails. By
	// default the failure is logged and the import behaves as a no-op.
	TrapOnError bool

	// CustomHandlers allows adding wazero-specific functions that need the
	// api.Module directly.
	CustomHandlers []CustomHandler
}

// CustomHandler represents a raw wazero host function.
type CustomHandler struct {
	// Name is the exported function name.
	Name string

	// Handler is the wazero GoModuleFunc implementation.
	Handler api.GoModuleFunc

	// ParamTypes are the WASM parameter types.
	ParamTypes []api.ValueType

	// ResultTypes are the WASM result types.
	ResultTypes []api.ValueType
}

// AdapterOption configures the adapter.
type AdapterOption func(*AdapterConfig)

// WithMaxStringSize sets the maximum string size read from guest memory.
func WithMaxStringSize(size uint32) AdapterOption {
	return func(c *AdapterConfig) {
		c.MaxStringSize = size
	}
}

// WithTrapOnError turns host function failures into guest traps.
func WithTrapOnError() AdapterOption {
	return func(c *AdapterConfig) {
		c.TrapOnError = true
	}
}

// WithCustomHandler adds a custom wazero handler.
func WithCustomHandler(h CustomHandler) AdapterOption {
	return func(c *AdapterConfig) {
		c.CustomHandlers = append(c.CustomHandlers, h)
	}
}

// defaultAdapterConfig returns the default adapter configuration.
func defaultAdapterConfig() AdapterConfig {
	return AdapterConfig{
		MaxStringSize: hostfuncs.DefaultMaxStringSize,
	}
}

// RegisterWithRuntime instantiates a host module named after the registry
// namespace that exports every function in the registry.
//
// Each function is wrapped to:
//   - Wrap the raw wazero stack and the calling module's memory in a hostfuncs.Call
//   - Invoke the registry handler, which reads its own arguments
//   - Log (or trap on) handler errors
//
// Example:
//
//	registry, _ := hostfuncs.NewRegistry(
//	    hostfuncs.WithBundle(hostfuncs.EnvBundle(env)),
//	)
//	err := wazeroadapter.RegisterWithRuntime(ctx, runtime, registry)
func RegisterWithRuntime(ctx context.Context, runtime wazero.Runtime, registry *hostfuncs.HandlerRegistry, opts ...AdapterOption) error {
	cfg := defaultAdapterConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	builder := runtime.NewHostModuleBuilder(registry.Namespace())

	for _, fn := range registry.Functions() {
		name := fn.Signature.Name // capture for closure
		builder.NewFunctionBuilder().
			WithGoModuleFunction(api.GoModuleFunc(func(ctx context.Context, mod api.Module, stack []uint64) {
				handleRegistryCall(ctx, mod, stack, registry, name, cfg)
			}), ValueTypes(fn.Signature.Params), ValueTypes(fn.Signature.Results)).
			WithName(name).
			Export(name)
	}

	for _, ch := range cfg.CustomHandlers {
		builder.NewFunctionBuilder().
			WithGoModuleFunction(ch.Handler, ch.ParamTypes, ch.ResultTypes).
			Export(ch.Name)
	}

	_, err := builder.Instantiate(ctx)
	return err
}

// handleRegistryCall dispatches one import call from a guest.
func handleRegistryCall(ctx context.Context, mod api.Module, stack []uint64, registry *hostfuncs.HandlerRegistry, name string, cfg AdapterConfig) {
	call := &hostfuncs.Call{
		Stack:         stack,
		MaxStringSize: cfg.MaxStringSize,
	}
	if mem := mod.Memory(); mem != nil {
		call.Memory = mem
	}

	err := registry.Invoke(ctx, name, call)
	if err == nil {
		return
	}

	slog.ErrorContext(ctx, "wazero: host function failed",
		"function", name, "module", GetModuleName(ctx, mod), "error", err)
	if cfg.TrapOnError {
		panic(err)
	}
}
