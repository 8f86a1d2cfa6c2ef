package wasmtest

// Layout of the guest built by Guest.
const (
	HelloOffset = 16
	HelloText   = "hello from wasm"
	IovOffset   = 32
	NWritten    = 40
	KeyBase     = 1024
	HeapBase    = 2048
	BoxSize     = 10
)

// GuestOptions tweaks the guest built by Guest.
type GuestOptions struct {
	// InitStatus is returned by main.
	InitStatus int32

	// TrapOnFrame makes on_frame execute unreachable.
	TrapOnFrame bool

	// NoInit omits the main export.
	NoInit bool

	// NoHeapBase omits the __heap_base export.
	NoHeapBase bool

	// ExtraImport adds an env import with no parameters that nothing calls.
	ExtraImport string

	// BadLog declares js_log with a single i32 parameter.
	BadLog bool

	// WASI makes main also write HelloText to stdout through
	// wasi_snapshot_preview1.fd_write, and exports a reactor _initialize
	// that sets the value read by get_ready.
	WASI bool

	// NoAllocate omits the allocate export.
	NoAllocate bool
}

// Guest builds a module written against the env bridge:
//
//	main()                 logs HelloText, returns InitStatus
//	on_frame()             counts frames, clears, draws a BoxSize square at x = frames
//	zwasm_on_key(code, d)  stores d at KeyBase+code for codes below 256
//	key_state(code) i32    reads it back
//	get_frames() i32       frame counter
//	get_half() f32         0.5
//	allocate(size) i32     bump allocation from HeapBase, no growth
//	__heap_base            HeapBase
func Guest(opts GuestOptions) []byte {
	m := New()

	var logFn uint32
	if opts.BadLog {
		logFn = m.Import("env", "js_log", []ValType{I32}, nil)
	} else {
		logFn = m.Import("env", "js_log", []ValType{I32, I32}, nil)
	}
	clearFn := m.Import("env", "js_canvas_clear", nil, nil)
	rectFn := m.Import("env", "js_canvas_rect", []ValType{F32, F32, F32, F32}, nil)
	if opts.ExtraImport != "" {
		m.Import("env", opts.ExtraImport, nil, nil)
	}
	var fdWrite uint32
	if opts.WASI {
		fdWrite = m.Import("wasi_snapshot_preview1", "fd_write", []ValType{I32, I32, I32, I32}, []ValType{I32})
	}

	m.Memory(1)
	m.Data(HelloOffset, []byte(HelloText))

	heapBase := m.GlobalI32(HeapBase, false)
	frames := m.GlobalI32(0, true)
	cursor := m.GlobalI32(HeapBase, true)
	ready := m.GlobalI32(0, true)

	logArgs := append(I32Const(HelloOffset), I32Const(int32(len(HelloText)))...)
	if opts.BadLog {
		logArgs = I32Const(HelloOffset)
	}
	var stdout []byte
	if opts.WASI {
		m.Data(IovOffset, iovec(HelloOffset, uint32(len(HelloText))))
		stdout = concat(
			I32Const(1), I32Const(IovOffset), I32Const(1), I32Const(NWritten),
			Call(fdWrite), Drop(),
		)
	}
	mainFn := m.Func(nil, []ValType{I32}, nil,
		stdout,
		logArgs,
		Call(logFn),
		I32Const(opts.InitStatus),
	)

	var frameBody [][]byte
	if opts.TrapOnFrame {
		frameBody = [][]byte{Unreachable()}
	} else {
		frameBody = [][]byte{
			GlobalGet(frames), I32Const(1), I32Add(), GlobalSet(frames),
			Call(clearFn),
			GlobalGet(frames), F32ConvertI32S(),
			F32Const(0), F32Const(BoxSize), F32Const(BoxSize),
			Call(rectFn),
		}
	}
	frameFn := m.Func(nil, nil, nil, frameBody...)

	keyFn := m.Func([]ValType{I32, I32}, nil, nil,
		LocalGet(0), I32Const(256), I32LtU(),
		If(),
		I32Const(KeyBase), LocalGet(0), I32Add(),
		LocalGet(1),
		I32Store8(),
		End(),
	)

	keyStateFn := m.Func([]ValType{I32}, []ValType{I32}, nil,
		I32Const(KeyBase), LocalGet(0), I32Add(),
		I32Load8U(),
	)

	framesFn := m.Func(nil, []ValType{I32}, nil, GlobalGet(frames))
	halfFn := m.Func(nil, []ValType{F32}, nil, F32Const(0.5))
	allocFn := m.Func([]ValType{I32}, []ValType{I32}, nil,
		GlobalGet(cursor),
		GlobalGet(cursor), LocalGet(0), I32Add(), GlobalSet(cursor),
	)

	if !opts.NoInit {
		m.ExportFunc("main", mainFn)
	}
	m.ExportFunc("on_frame", frameFn)
	m.ExportFunc("zwasm_on_key", keyFn)
	m.ExportFunc("key_state", keyStateFn)
	m.ExportFunc("get_frames", framesFn)
	m.ExportFunc("get_half", halfFn)
	if !opts.NoAllocate {
		m.ExportFunc("allocate", allocFn)
	}
	if opts.WASI {
		initFn := m.Func(nil, nil, nil, I32Const(1), GlobalSet(ready))
		readyFn := m.Func(nil, []ValType{I32}, nil, GlobalGet(ready))
		m.ExportFunc("_initialize", initFn)
		m.ExportFunc("get_ready", readyFn)
	}
	if !opts.NoHeapBase {
		m.ExportGlobal("__heap_base", heapBase)
	}

	return m.Bytes()
}

// iovec encodes one wasi iovec {buf, len} in little endian.
func iovec(buf, n uint32) []byte {
	return []byte{
		byte(buf), byte(buf >> 8), byte(buf >> 16), byte(buf >> 24),
		byte(n), byte(n >> 8), byte(n >> 16), byte(n >> 24),
	}
}

func concat(parts ...[]byte) []byte {
	var out []byte
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}
