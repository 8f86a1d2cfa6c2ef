//go:build wasip1

package guest

import (
	"github.com/z-libs/zwasm-go/internal/abi"
	"github.com/z-libs/zwasm-go/memory"
)

// arena returns the base address of the default runtime's memory in the
// module's linear memory. Only slice-backed arenas can be addressed.
func arena() (*memory.SliceMemory, uint32) {
	mem, ok := Default().Memory().(*memory.SliceMemory)
	if !ok {
		return nil, 0
	}
	return mem, abi.Pin(mem.Bytes())
}

//go:wasmexport main
func exportMain() int32 {
	return Default().Init()
}

//go:wasmexport on_frame
func exportOnFrame() {
	Default().Tick()
}

//go:wasmexport zwasm_on_key
func exportOnKey(code int32, down int32) {
	Default().OnKey(code, down != 0)
}

//go:wasmexport allocate
func exportAllocate(size uint32) uint32 {
	_, base := arena()
	if base == 0 {
		return 0
	}
	p := Default().Malloc(size)
	if p == 0 {
		return 0
	}
	return base + p
}

//go:wasmexport release
func exportRelease(ptr uint32) {
	Default().Free(ptr)
}

//go:wasmexport zwasm_arena
func exportArena() uint64 {
	mem, base := arena()
	if mem == nil {
		return 0
	}
	return abi.PackPtrLen(base, mem.Size())
}
