//go:build !wasip1

// Package wasm binds the guest to the host's "env" imports. Under wasip1 the
// functions are resolved by the host at instantiation; in native builds the
// stand-ins below echo every call to a local console instead.
package wasm

import (
	"fmt"
	"io"
	"math/rand/v2"
	"os"
	"sync"
	"time"
	"unsafe"
)

var console = struct {
	sync.Mutex
	w     io.Writer
	start time.Time
}{
	w:     os.Stdout,
	start: time.Now(),
}

// SetConsole redirects stand-in output and returns the previous writer.
func SetConsole(w io.Writer) io.Writer {
	console.Lock()
	defer console.Unlock()
	prev := console.w
	console.w = w
	return prev
}

func printf(format string, args ...any) {
	console.Lock()
	defer console.Unlock()
	_, _ = fmt.Fprintf(console.w, format, args...)
}

func str(ptr unsafe.Pointer, length int32) string {
	if ptr == nil || length <= 0 {
		return ""
	}
	//nolint:gosec // G103: stand-in reads the caller's bytes like the host would
	return string(unsafe.Slice((*byte)(ptr), length))
}

//nolint:revive // snake_case matches the import names
func js_log(ptr unsafe.Pointer, length int32) {
	printf("[LOG] %s\n", str(ptr, length))
}

//nolint:revive
func js_time() float64 {
	return time.Since(console.start).Seconds()
}

//nolint:revive
func js_rand() float32 {
	return rand.Float32()
}

//nolint:revive
func js_eval(ptr unsafe.Pointer, length int32) {
	printf("[JS EVAL] %s\n", str(ptr, length))
}

//nolint:revive
func js_canvas_rect(x, y, w, h float32) {
	printf("[CANVAS] Rect: %.2f, %.2f (%.2fx%.2f)\n", x, y, w, h)
}

//nolint:revive
func js_canvas_style(ptr unsafe.Pointer, length int32) {
	printf("[CANVAS] Fill Style: %s\n", str(ptr, length))
}

//nolint:revive
func js_canvas_clear() {
	printf("[CANVAS] Clear\n")
}
