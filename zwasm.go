// Package zwasm is the guest-facing API. Each function forwards to the
// process-wide Runtime installed with Register, so guest programs can be
// written as a flat list of calls:
//
//	func init() {
//		zwasm.Register(guest.Funcs{
//			InitFunc: func(*guest.Runtime) int32 {
//				zwasm.Printf("Hello from Go! %d", 42)
//				return 0
//			},
//		})
//	}
package zwasm

import (
	"github.com/z-libs/zwasm-go/format"
	"github.com/z-libs/zwasm-go/guest"
)

// Register installs m as the module behind the exported entry points.
func Register(m guest.Module, opts ...guest.Option) *guest.Runtime {
	return guest.Register(m, opts...)
}

// Log writes msg to the host console.
func Log(msg string) { guest.Default().Log(msg) }

// Printf logs text built with the %d %s %f grammar. Arguments are converted
// with format.Of.
func Printf(pattern string, args ...any) {
	guest.Default().Printf(pattern, format.Args(args...)...)
}

// Now returns host time in seconds.
func Now() float64 { return guest.Default().Now() }

// Random returns a host random value in [0, 1).
func Random() float32 { return guest.Default().Random() }

// Eval runs code in the host.
func Eval(code string) { guest.Default().Eval(code) }

// SetHTML replaces the inner HTML of the element with the given id.
func SetHTML(elementID, html string) bool { return guest.Default().SetHTML(elementID, html) }

// FillStyle sets the active canvas color, "#RRGGBB" or a name.
func FillStyle(color string) { guest.Default().FillStyle(color) }

// FillRect draws a filled rectangle.
func FillRect(x, y, w, h float32) { guest.Default().FillRect(x, y, w, h) }

// ClearCanvas clears the canvas.
func ClearCanvas() { guest.Default().ClearCanvas() }

// KeyDown reports whether a key is held. Codes are browser key codes.
func KeyDown(code int32) bool { return guest.Default().KeyDown(code) }

// MemInit sets the allocator region. MemInit(0, 0) keeps the default.
func MemInit(start, size uint32) { guest.Default().Allocator().Init(start, size) }

// Malloc allocates size bytes, returning zero when memory is exhausted.
func Malloc(size uint32) uint32 { return guest.Default().Malloc(size) }

// Realloc moves a block to a new one of newSize bytes.
func Realloc(ptr, newSize uint32) uint32 { return guest.Default().Realloc(ptr, newSize) }

// Free does nothing.
func Free(ptr uint32) { guest.Default().Free(ptr) }
