// Package text holds the byte-level string primitives the guest runtime
// uses in place of a platform string library: length, fill and copy over
// Go slices and over linear-memory addresses.
package text

import "github.com/z-libs/zwasm-go/domain/ports"

// Length returns the number of bytes before the first NUL in b, or len(b)
// if b holds no terminator.
func Length(b []byte) int {
	for i, c := range b {
		if c == 0 {
			return i
		}
	}
	return len(b)
}

// Fill sets the first n bytes of dst to v and returns how many were set.
// n is clipped to len(dst).
func Fill(dst []byte, v byte, n int) int {
	n = clip(n, len(dst))
	for i := 0; i < n; i++ {
		dst[i] = v
	}
	return n
}

// Copy copies n bytes from src to dst, front to back, and returns how many
// were copied. n is clipped to both slices. Overlapping ranges are the
// caller's problem.
func Copy(dst, src []byte, n int) int {
	n = clip(clip(n, len(dst)), len(src))
	for i := 0; i < n; i++ {
		dst[i] = src[i]
	}
	return n
}

func clip(n, limit int) int {
	if n < 0 {
		return 0
	}
	if n > limit {
		return limit
	}
	return n
}

// MemLength scans linear memory from ptr for a NUL byte. Without a
// terminator the scan stops at the end of memory.
func MemLength(mem ports.Memory, ptr uint32) uint32 {
	size := mem.Size()
	if ptr >= size {
		return 0
	}
	view, ok := mem.Read(ptr, size-ptr)
	if !ok {
		return 0
	}
	return uint32(Length(view))
}

// MemFill sets n bytes at dst to v. It reports false if the range is out of
// bounds, in which case nothing is written.
func MemFill(mem ports.Memory, dst uint32, v byte, n uint32) bool {
	view, ok := mem.Read(dst, n)
	if !ok {
		return false
	}
	Fill(view, v, len(view))
	return true
}

// MemCopy copies n bytes from src to dst within linear memory.
func MemCopy(mem ports.Memory, dst, src, n uint32) bool {
	from, ok := mem.Read(src, n)
	if !ok {
		return false
	}
	to, ok := mem.Read(dst, n)
	if !ok {
		return false
	}
	Copy(to, from, int(n))
	return true
}

// MemString copies the (ptr, length) string out of linear memory.
func MemString(mem ports.Memory, ptr, length uint32) (string, bool) {
	if length == 0 {
		return "", true
	}
	view, ok := mem.Read(ptr, length)
	if !ok {
		return "", false
	}
	return string(view), true
}

// MemCString copies the NUL-terminated string at ptr out of linear memory.
func MemCString(mem ports.Memory, ptr uint32) string {
	s, _ := MemString(mem, ptr, MemLength(mem, ptr))
	return s
}
