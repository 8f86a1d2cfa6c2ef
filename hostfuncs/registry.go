package hostfuncs

import (
	"context"
	"fmt"
	"sort"

	"github.com/z-libs/zwasm-go/domain/entities"
)

// DefaultNamespace is the import module name guests use.
const DefaultNamespace = entities.DefaultImportNamespace

// HandlerRegistry is an immutable collection of named host functions in one
// import namespace. Once created via NewRegistry, functions cannot be added
// or removed, so lookups need no locking.
type HandlerRegistry struct {
	functions  map[string]HostFunction
	namespace  string
	names      []string // sorted for consistent iteration
	middleware []Middleware
}

// registryBuilder accumulates configuration during registry construction.
type registryBuilder struct {
	functions  map[string]HostFunction
	namespace  string
	middleware []Middleware
	errors     []error
}

// RegistryOption is a functional option for configuring a HandlerRegistry.
type RegistryOption func(*registryBuilder)

// NewRegistry creates an immutable HandlerRegistry with the given options.
// Returns an error if any function name is registered twice.
//
// Example usage:
//
//	registry, err := NewRegistry(
//	    WithMiddleware(PanicRecoveryMiddleware()),
//	    WithBundle(EnvBundle(NewConsoleEnv())),
//	)
func NewRegistry(opts ...RegistryOption) (*HandlerRegistry, error) {
	b := &registryBuilder{
		functions: make(map[string]HostFunction),
		namespace: DefaultNamespace,
	}

	for _, opt := range opts {
		opt(b)
	}

	if len(b.errors) > 0 {
		return nil, b.errors[0]
	}

	names := make([]string, 0, len(b.functions))
	for name := range b.functions {
		names = append(names, name)
	}
	sort.Strings(names)

	// Apply middleware chain to all handlers (FIFO order)
	wrapped := make(map[string]HostFunction, len(b.functions))
	for name, fn := range b.functions {
		h := fn.Handler
		for i := len(b.middleware) - 1; i >= 0; i-- {
			h = b.middleware[i](h)
		}
		fn.Handler = h
		fn.Signature.Module = b.namespace
		wrapped[name] = fn
	}

	return &HandlerRegistry{
		functions:  wrapped,
		namespace:  b.namespace,
		names:      names,
		middleware: b.middleware,
	}, nil
}

// Namespace returns the import module name the functions live under.
func (r *HandlerRegistry) Namespace() string { return r.namespace }

// Invoke dispatches a host function call by name.
func (r *HandlerRegistry) Invoke(ctx context.Context, name string, call *Call) error {
	fn, ok := r.functions[name]
	if !ok {
		return &NotFoundError{Module: r.namespace, Name: name}
	}
	return fn.Handler(HostContextFrom(ctx, name), call)
}

// Lookup returns the function registered under module.name.
func (r *HandlerRegistry) Lookup(module, name string) (HostFunction, bool) {
	if module != r.namespace {
		return HostFunction{}, false
	}
	fn, ok := r.functions[name]
	return fn, ok
}

// Has returns true if a function with the given name is registered.
func (r *HandlerRegistry) Has(name string) bool {
	_, ok := r.functions[name]
	return ok
}

// Names returns a sorted list of all registered function names.
func (r *HandlerRegistry) Names() []string {
	result := make([]string, len(r.names))
	copy(result, r.names)
	return result
}

// Functions returns all functions sorted by name, with middleware applied.
func (r *HandlerRegistry) Functions() []HostFunction {
	out := make([]HostFunction, 0, len(r.names))
	for _, name := range r.names {
		out = append(out, r.functions[name])
	}
	return out
}

// addFunction registers fn under its signature name.
// Returns an error if the name is already registered.
func (b *registryBuilder) addFunction(fn HostFunction) error {
	name := fn.Signature.Name
	if name == "" {
		return fmt.Errorf("host function name cannot be empty")
	}
	if fn.Handler == nil {
		return fmt.Errorf("host function %q has no handler", name)
	}
	if _, exists := b.functions[name]; exists {
		return fmt.Errorf("duplicate host function name: %q", name)
	}
	b.functions[name] = fn
	return nil
}

// WithNamespace sets the import module name. Defaults to "env".
func WithNamespace(ns string) RegistryOption {
	return func(b *registryBuilder) {
		if ns == "" {
			b.errors = append(b.errors, fmt.Errorf("namespace cannot be empty"))
			return
		}
		b.namespace = ns
	}
}

// WithFunction registers a single host function.
func WithFunction(fn HostFunction) RegistryOption {
	return func(b *registryBuilder) {
		if err := b.addFunction(fn); err != nil {
			b.errors = append(b.errors, err)
		}
	}
}

// WithMiddleware adds middleware to the registry.
// Middleware executes in FIFO order (first added wraps first).
func WithMiddleware(mw ...Middleware) RegistryOption {
	return func(b *registryBuilder) {
		b.middleware = append(b.middleware, mw...)
	}
}
