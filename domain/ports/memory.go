package ports

// PageSize is the size of one wasm linear-memory page.
const PageSize = 65536

// Memory is a byte-addressed linear memory. Reads and writes outside the
// current size report false instead of panicking.
//
// wazero's api.Memory satisfies this interface.
type Memory interface {
	// Size returns the current size in bytes.
	Size() uint32

	// Grow adds deltaPages pages and returns the previous size in pages.
	Grow(deltaPages uint32) (previousPages uint32, ok bool)

	// Read returns a view of byteCount bytes starting at offset.
	Read(offset, byteCount uint32) ([]byte, bool)

	// Write copies v into memory at offset.
	Write(offset uint32, v []byte) bool

	ReadByte(offset uint32) (byte, bool)
	WriteByte(offset uint32, v byte) bool
}
