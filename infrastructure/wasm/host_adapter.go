package wasm

import (
	"math"
	"unsafe"

	"github.com/z-libs/zwasm-go/domain/ports"
)

// Compile-time interface compliance check
var _ ports.Host = (*HostAdapter)(nil)

// HostAdapter implements ports.Host over the env imports. Strings are passed
// as a pointer to their bytes and a length; the host only reads them for
// the duration of the call.
type HostAdapter struct{}

// NewHostAdapter creates a new host adapter.
func NewHostAdapter() *HostAdapter {
	return &HostAdapter{}
}

// Log implements ports.Host.
func (h *HostAdapter) Log(msg string) { Log(msg) }

// Now implements ports.Host.
func (h *HostAdapter) Now() float64 { return js_time() }

// Random implements ports.Host.
func (h *HostAdapter) Random() float32 { return js_rand() }

// Eval implements ports.Host.
func (h *HostAdapter) Eval(code string) {
	ptr, n := stringArgs(code)
	js_eval(ptr, n)
}

// FillRect implements ports.Host.
func (h *HostAdapter) FillRect(x, y, w, hgt float32) { js_canvas_rect(x, y, w, hgt) }

// FillStyle implements ports.Host.
func (h *HostAdapter) FillStyle(color string) {
	ptr, n := stringArgs(color)
	js_canvas_style(ptr, n)
}

// ClearCanvas implements ports.Host.
func (h *HostAdapter) ClearCanvas() { js_canvas_clear() }

// Log sends msg through the logging import.
func Log(msg string) {
	ptr, n := stringArgs(msg)
	js_log(ptr, n)
}

// stringArgs returns the (pointer, length) pair for s. Strings longer than
// the i32 range are cut to fit.
func stringArgs(s string) (unsafe.Pointer, int32) {
	if len(s) == 0 {
		return nil, 0
	}
	if len(s) > math.MaxInt32 {
		s = s[:math.MaxInt32]
	}
	//nolint:gosec // G103: the host reads len(s) bytes at this address during the call
	return unsafe.Pointer(unsafe.StringData(s)), int32(len(s))
}
