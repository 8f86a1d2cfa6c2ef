//go:build wasip1

package abi

import (
	"sync"
	"unsafe"
)

// pinned keeps byte slices handed to the host reachable so the Go GC does
// not collect memory the host still addresses.
var pinned = struct {
	sync.Mutex
	ptrs map[uint32][]byte
}{
	ptrs: make(map[uint32][]byte),
}

// Addr returns the linear-memory address of b's first byte.
func Addr(b []byte) uint32 {
	if len(b) == 0 {
		return 0
	}
	//nolint:gosec // G103: WASM linear memory addresses fit in 32 bits
	return uint32(uintptr(unsafe.Pointer(&b[0])))
}

// Pin records b and returns its address.
func Pin(b []byte) uint32 {
	ptr := Addr(b)
	if ptr == 0 {
		return 0
	}
	pinned.Lock()
	pinned.ptrs[ptr] = b
	pinned.Unlock()
	return ptr
}

// Unpin forgets the slice at ptr. Unknown pointers are ignored.
func Unpin(ptr uint32) {
	pinned.Lock()
	delete(pinned.ptrs, ptr)
	pinned.Unlock()
}

// Pinned returns the number of pinned slices.
func Pinned() int {
	pinned.Lock()
	defer pinned.Unlock()
	return len(pinned.ptrs)
}
