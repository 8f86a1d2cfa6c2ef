package wasmtest

const (
	opIf             = 0x04
	opEnd            = 0x0b
	opCall           = 0x10
	opDrop           = 0x1a
	opLocalGet       = 0x20
	opGlobalGet      = 0x23
	opGlobalSet      = 0x24
	opI32Load8U      = 0x2d
	opI32Store8      = 0x3a
	opI32Const       = 0x41
	opI64Const       = 0x42
	opF32Const       = 0x43
	opF64Const       = 0x44
	opI32LtU         = 0x49
	opI32Add         = 0x6a
	opI32Sub         = 0x6b
	opF32ConvertI32S = 0xb2
	opUnreachable    = 0x00
)

// I32Const pushes v.
func I32Const(v int32) []byte { return sleb([]byte{opI32Const}, int64(v)) }

// I64Const pushes v.
func I64Const(v int64) []byte { return sleb([]byte{opI64Const}, v) }

// F32Const pushes v.
func F32Const(v float32) []byte { return append([]byte{opF32Const}, f32bytes(v)...) }

// F64Const pushes v.
func F64Const(v float64) []byte { return append([]byte{opF64Const}, f64bytes(v)...) }

// LocalGet pushes local i.
func LocalGet(i uint32) []byte { return uleb([]byte{opLocalGet}, i) }

// GlobalGet pushes global i.
func GlobalGet(i uint32) []byte { return uleb([]byte{opGlobalGet}, i) }

// GlobalSet pops into global i.
func GlobalSet(i uint32) []byte { return uleb([]byte{opGlobalSet}, i) }

// Call calls function idx.
func Call(idx uint32) []byte { return uleb([]byte{opCall}, idx) }

// If opens a block without a result that runs when the popped i32 is
// non-zero. Close it with End.
func If() []byte { return []byte{opIf, 0x40} }

// End closes a block.
func End() []byte { return []byte{opEnd} }

// Drop discards the top of the stack.
func Drop() []byte { return []byte{opDrop} }

// Unreachable traps.
func Unreachable() []byte { return []byte{opUnreachable} }

// I32Add adds the two i32 on top of the stack.
func I32Add() []byte { return []byte{opI32Add} }

// I32Sub subtracts the two i32 on top of the stack.
func I32Sub() []byte { return []byte{opI32Sub} }

// I32LtU compares the two i32 on top of the stack as unsigned.
func I32LtU() []byte { return []byte{opI32LtU} }

// I32Load8U loads an unsigned byte from the popped address.
func I32Load8U() []byte { return []byte{opI32Load8U, 0x00, 0x00} }

// I32Store8 stores the low byte of the value at the address below it.
func I32Store8() []byte { return []byte{opI32Store8, 0x00, 0x00} }

// F32ConvertI32S converts a signed i32 to f32.
func F32ConvertI32S() []byte { return []byte{opF32ConvertI32S} }
