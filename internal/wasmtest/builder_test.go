package wasmtest

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLEB128(t *testing.T) {
	assert.Equal(t, []byte{0x00}, uleb(nil, 0))
	assert.Equal(t, []byte{0x7f}, uleb(nil, 127))
	assert.Equal(t, []byte{0x80, 0x01}, uleb(nil, 128))
	assert.Equal(t, []byte{0xe5, 0x8e, 0x26}, uleb(nil, 624485))

	assert.Equal(t, []byte{0x00}, sleb(nil, 0))
	assert.Equal(t, []byte{0x7f}, sleb(nil, -1))
	assert.Equal(t, []byte{0x3f}, sleb(nil, 63))
	assert.Equal(t, []byte{0xc0, 0x00}, sleb(nil, 64))
	assert.Equal(t, []byte{0x80, 0x10}, sleb(nil, 2048))
	assert.Equal(t, []byte{0xc0, 0xbb, 0x78}, sleb(nil, -123456))
}

func TestEmptyModule(t *testing.T) {
	assert.Equal(t, []byte{0x00, 0x61, 0x73, 0x6d, 0x01, 0x00, 0x00, 0x00}, New().Bytes())
}

func TestTypesAreShared(t *testing.T) {
	m := New()
	a := m.Import("env", "a", []ValType{I32}, nil)
	b := m.Import("env", "b", []ValType{I32}, nil)
	f := m.Func(nil, []ValType{F32}, nil, F32Const(1))

	assert.Equal(t, uint32(0), a)
	assert.Equal(t, uint32(1), b)
	assert.Equal(t, uint32(2), f)
	assert.Len(t, m.types, 2)
}

func TestImportAfterFuncPanics(t *testing.T) {
	m := New()
	m.Func(nil, nil, nil)
	assert.Panics(t, func() { m.Import("env", "late", nil, nil) })
}

func TestGuestLayout(t *testing.T) {
	b := Guest(GuestOptions{})
	assert.Equal(t, []byte("\x00asm"), b[:4])
	assert.Contains(t, string(b), HelloText)
	assert.Contains(t, string(b), "__heap_base")
	assert.NotContains(t, string(Guest(GuestOptions{NoHeapBase: true})), "__heap_base")
}
