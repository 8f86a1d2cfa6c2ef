package wazero

import (
	"context"

	"github.com/tetratelabs/wazero/api"
)

// contextKey is a private type for context keys.
type contextKey struct {
	name string
}

var moduleNameKey = &contextKey{name: "module_name"}

// WithModuleName adds the guest program name to the context so host
// functions and their logs can tell guests apart.
func WithModuleName(ctx context.Context, name string) context.Context {
	return context.WithValue(ctx, moduleNameKey, name)
}

// ModuleNameFromContext retrieves the guest program name from the context.
func ModuleNameFromContext(ctx context.Context) (string, bool) {
	name, ok := ctx.Value(moduleNameKey).(string)
	return name, ok && name != ""
}

// GetModuleName extracts the program name from context, falling back to the
// module name.
func GetModuleName(ctx context.Context, mod api.Module) string {
	if name, ok := ModuleNameFromContext(ctx); ok {
		return name
	}
	return mod.Name()
}
