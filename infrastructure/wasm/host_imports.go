//go:build wasip1

// Package wasm binds the guest to the host's "env" imports. Under wasip1 the
// functions below are resolved by the host at instantiation; native builds
// get console stand-ins with the same signatures.
package wasm

import "unsafe"

//go:wasmimport env js_log
//nolint:revive // snake_case matches the import names
func js_log(ptr unsafe.Pointer, length int32)

//go:wasmimport env js_time
//nolint:revive
func js_time() float64

//go:wasmimport env js_rand
//nolint:revive
func js_rand() float32

//go:wasmimport env js_eval
//nolint:revive
func js_eval(ptr unsafe.Pointer, length int32)

//go:wasmimport env js_canvas_rect
//nolint:revive
func js_canvas_rect(x, y, w, h float32)

//go:wasmimport env js_canvas_style
//nolint:revive
func js_canvas_style(ptr unsafe.Pointer, length int32)

//go:wasmimport env js_canvas_clear
//nolint:revive
func js_canvas_clear()
