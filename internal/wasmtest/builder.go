// Package wasmtest assembles small WebAssembly modules for host tests, so
// the host can be exercised end to end without a guest toolchain.
package wasmtest

import (
	"encoding/binary"
	"math"
)

// ValType is a wasm value type byte.
type ValType byte

const (
	I32 ValType = 0x7f
	I64 ValType = 0x7e
	F32 ValType = 0x7d
	F64 ValType = 0x7c
)

const (
	sectionType     = 1
	sectionImport   = 2
	sectionFunction = 3
	sectionMemory   = 5
	sectionGlobal   = 6
	sectionExport   = 7
	sectionCode     = 10
	sectionData     = 11

	kindFunc   = 0x00
	kindMemory = 0x02
	kindGlobal = 0x03
)

type funcType struct {
	params, results []ValType
}

type importFunc struct {
	module, name string
	typeIdx      uint32
}

type funcDef struct {
	typeIdx uint32
	locals  []ValType
	body    []byte
}

type global struct {
	typ     ValType
	mutable bool
	init    []byte
}

type export struct {
	name string
	kind byte
	idx  uint32
}

type segment struct {
	offset uint32
	data   []byte
}

// Module is a wasm module under construction. Imports must be declared
// before any function so function indices stay stable.
type Module struct {
	types     []funcType
	imports   []importFunc
	funcs     []funcDef
	globals   []global
	exports   []export
	data      []segment
	memPages  uint32
	hasMemory bool
}

// New returns an empty module.
func New() *Module {
	return &Module{}
}

func (m *Module) typeIndex(params, results []ValType) uint32 {
	for i, t := range m.types {
		if string(asBytes(t.params)) == string(asBytes(params)) &&
			string(asBytes(t.results)) == string(asBytes(results)) {
			return uint32(i)
		}
	}
	m.types = append(m.types, funcType{params: params, results: results})
	return uint32(len(m.types) - 1)
}

// Import declares an imported function and returns its function index.
func (m *Module) Import(module, name string, params, results []ValType) uint32 {
	if len(m.funcs) > 0 {
		panic("wasmtest: imports must be declared before functions")
	}
	m.imports = append(m.imports, importFunc{module: module, name: name, typeIdx: m.typeIndex(params, results)})
	return uint32(len(m.imports) - 1)
}

// Func defines a function and returns its index. The body is the
// concatenation of code fragments; the closing end is appended.
func (m *Module) Func(params, results, locals []ValType, code ...[]byte) uint32 {
	var body []byte
	for _, c := range code {
		body = append(body, c...)
	}
	m.funcs = append(m.funcs, funcDef{typeIdx: m.typeIndex(params, results), locals: locals, body: body})
	return uint32(len(m.imports) + len(m.funcs) - 1)
}

// Memory declares the module's memory with an initial page count and
// exports it as "memory".
func (m *Module) Memory(pages uint32) {
	m.hasMemory = true
	m.memPages = pages
	m.exports = append(m.exports, export{name: "memory", kind: kindMemory, idx: 0})
}

// GlobalI32 declares an i32 global and returns its index.
func (m *Module) GlobalI32(value int32, mutable bool) uint32 {
	m.globals = append(m.globals, global{typ: I32, mutable: mutable, init: I32Const(value)})
	return uint32(len(m.globals) - 1)
}

// ExportFunc exports function idx under name.
func (m *Module) ExportFunc(name string, idx uint32) {
	m.exports = append(m.exports, export{name: name, kind: kindFunc, idx: idx})
}

// ExportGlobal exports global idx under name.
func (m *Module) ExportGlobal(name string, idx uint32) {
	m.exports = append(m.exports, export{name: name, kind: kindGlobal, idx: idx})
}

// Data places b at offset in memory 0.
func (m *Module) Data(offset uint32, b []byte) {
	m.data = append(m.data, segment{offset: offset, data: b})
}

// Bytes encodes the module in the binary format.
func (m *Module) Bytes() []byte {
	out := []byte{0x00, 0x61, 0x73, 0x6d, 0x01, 0x00, 0x00, 0x00}

	if len(m.types) > 0 {
		sec := uleb(nil, uint32(len(m.types)))
		for _, t := range m.types {
			sec = append(sec, 0x60)
			sec = valTypes(sec, t.params)
			sec = valTypes(sec, t.results)
		}
		out = section(out, sectionType, sec)
	}

	if len(m.imports) > 0 {
		sec := uleb(nil, uint32(len(m.imports)))
		for _, imp := range m.imports {
			sec = name(sec, imp.module)
			sec = name(sec, imp.name)
			sec = append(sec, kindFunc)
			sec = uleb(sec, imp.typeIdx)
		}
		out = section(out, sectionImport, sec)
	}

	if len(m.funcs) > 0 {
		sec := uleb(nil, uint32(len(m.funcs)))
		for _, f := range m.funcs {
			sec = uleb(sec, f.typeIdx)
		}
		out = section(out, sectionFunction, sec)
	}

	if m.hasMemory {
		sec := uleb(nil, 1)
		sec = append(sec, 0x00)
		sec = uleb(sec, m.memPages)
		out = section(out, sectionMemory, sec)
	}

	if len(m.globals) > 0 {
		sec := uleb(nil, uint32(len(m.globals)))
		for _, g := range m.globals {
			sec = append(sec, byte(g.typ))
			if g.mutable {
				sec = append(sec, 0x01)
			} else {
				sec = append(sec, 0x00)
			}
			sec = append(sec, g.init...)
			sec = append(sec, opEnd)
		}
		out = section(out, sectionGlobal, sec)
	}

	if len(m.exports) > 0 {
		sec := uleb(nil, uint32(len(m.exports)))
		for _, e := range m.exports {
			sec = name(sec, e.name)
			sec = append(sec, e.kind)
			sec = uleb(sec, e.idx)
		}
		out = section(out, sectionExport, sec)
	}

	if len(m.funcs) > 0 {
		sec := uleb(nil, uint32(len(m.funcs)))
		for _, f := range m.funcs {
			var body []byte
			body = uleb(body, uint32(len(f.locals)))
			for _, l := range f.locals {
				body = uleb(body, 1)
				body = append(body, byte(l))
			}
			body = append(body, f.body...)
			body = append(body, opEnd)
			sec = uleb(sec, uint32(len(body)))
			sec = append(sec, body...)
		}
		out = section(out, sectionCode, sec)
	}

	if len(m.data) > 0 {
		sec := uleb(nil, uint32(len(m.data)))
		for _, d := range m.data {
			sec = append(sec, 0x00)
			sec = append(sec, I32Const(int32(d.offset))...)
			sec = append(sec, opEnd)
			sec = uleb(sec, uint32(len(d.data)))
			sec = append(sec, d.data...)
		}
		out = section(out, sectionData, sec)
	}

	return out
}

func asBytes(v []ValType) []byte {
	b := make([]byte, len(v))
	for i, t := range v {
		b[i] = byte(t)
	}
	return b
}

func valTypes(dst []byte, v []ValType) []byte {
	dst = uleb(dst, uint32(len(v)))
	return append(dst, asBytes(v)...)
}

func section(dst []byte, id byte, payload []byte) []byte {
	dst = append(dst, id)
	dst = uleb(dst, uint32(len(payload)))
	return append(dst, payload...)
}

func name(dst []byte, s string) []byte {
	dst = uleb(dst, uint32(len(s)))
	return append(dst, s...)
}

func uleb(dst []byte, v uint32) []byte {
	for {
		b := byte(v & 0x7f)
		v >>= 7
		if v != 0 {
			dst = append(dst, b|0x80)
			continue
		}
		return append(dst, b)
	}
}

func sleb(dst []byte, v int64) []byte {
	for {
		b := byte(v & 0x7f)
		v >>= 7
		if (v == 0 && b&0x40 == 0) || (v == -1 && b&0x40 != 0) {
			return append(dst, b)
		}
		dst = append(dst, b|0x80)
	}
}

func f32bytes(v float32) []byte {
	return binary.LittleEndian.AppendUint32(nil, math.Float32bits(v))
}

func f64bytes(v float64) []byte {
	return binary.LittleEndian.AppendUint64(nil, math.Float64bits(v))
}
