package hostfuncs

import (
	"context"

	"github.com/z-libs/zwasm-go/domain/entities"
	"github.com/z-libs/zwasm-go/domain/ports"
)

// HostFuncBundle is a pre-configured set of related host functions.
// Bundles allow registering multiple functions at once.
type HostFuncBundle interface {
	Functions() []HostFunction
}

// staticBundle implements HostFuncBundle with a fixed set of functions.
type staticBundle struct {
	functions []HostFunction
}

func (b *staticBundle) Functions() []HostFunction {
	return b.functions
}

// Names of the env imports.
const (
	FuncLog         = "js_log"
	FuncTime        = "js_time"
	FuncRand        = "js_rand"
	FuncEval        = "js_eval"
	FuncCanvasRect  = "js_canvas_rect"
	FuncCanvasStyle = "js_canvas_style"
	FuncCanvasClear = "js_canvas_clear"
)

var (
	str = entities.KindString
	f32 = entities.KindF32
	f64 = entities.KindF64
)

// EnvBundle returns the env imports implemented by env:
//
//	js_log(ptr, len)
//	js_time() -> f64
//	js_rand() -> f32
//	js_eval(ptr, len)
//	js_canvas_rect(x, y, w, h f32)
//	js_canvas_style(ptr, len)
//	js_canvas_clear()
func EnvBundle(env ports.Env) HostFuncBundle {
	withString := func(fn func(context.Context, string)) Handler {
		return func(ctx context.Context, call *Call) error {
			s, err := call.String(0)
			if err != nil {
				return err
			}
			fn(ctx, s)
			return nil
		}
	}

	return &staticBundle{
		functions: []HostFunction{
			NewHostFunction(FuncLog, []entities.ValueKind{str}, nil, withString(env.Log)),
			NewHostFunction(FuncTime, nil, []entities.ValueKind{f64},
				func(ctx context.Context, call *Call) error {
					call.SetF64(0, env.Now(ctx))
					return nil
				}),
			NewHostFunction(FuncRand, nil, []entities.ValueKind{f32},
				func(ctx context.Context, call *Call) error {
					call.SetF32(0, env.Random(ctx))
					return nil
				}),
			NewHostFunction(FuncEval, []entities.ValueKind{str}, nil, withString(env.Eval)),
			NewHostFunction(FuncCanvasRect, []entities.ValueKind{f32, f32, f32, f32}, nil,
				func(ctx context.Context, call *Call) error {
					env.FillRect(ctx, call.F32(0), call.F32(1), call.F32(2), call.F32(3))
					return nil
				}),
			NewHostFunction(FuncCanvasStyle, []entities.ValueKind{str}, nil, withString(env.FillStyle)),
			NewHostFunction(FuncCanvasClear, nil, nil,
				func(ctx context.Context, _ *Call) error {
					env.ClearCanvas(ctx)
					return nil
				}),
		},
	}
}

// compositeBundle combines multiple bundles into one.
type compositeBundle struct {
	bundles []HostFuncBundle
}

func (b *compositeBundle) Functions() []HostFunction {
	var result []HostFunction
	for _, bundle := range b.bundles {
		result = append(result, bundle.Functions()...)
	}
	return result
}

// Combine merges bundles. Duplicate names are reported by NewRegistry.
func Combine(bundles ...HostFuncBundle) HostFuncBundle {
	return &compositeBundle{bundles: bundles}
}

// WithBundle registers all functions from a bundle.
func WithBundle(bundle HostFuncBundle) RegistryOption {
	return func(b *registryBuilder) {
		for _, fn := range bundle.Functions() {
			if err := b.addFunction(fn); err != nil {
				b.errors = append(b.errors, err)
			}
		}
	}
}
