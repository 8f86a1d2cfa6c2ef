// Package guest is the runtime a guest program is written against. A
// Runtime owns the allocator, the key table and the connection to the host,
// and forwards the host's calls (initialize, tick, key) to a Module.
//
// Under wasip1 the package exports the entry points the host drives:
//
//	main          initializer, returns a status code
//	on_frame      per-frame hook
//	zwasm_on_key  key transition (code, is_down)
//	allocate      bump allocation in the guest arena
//	release       no-op free
//	zwasm_arena   packed (base, size) of the guest arena
//
// A program installs its module with Register from an init function, since
// reactor builds never run main.main. Native builds drive the same Runtime
// with RunStandalone, and the host imports echo to the console.
package guest
