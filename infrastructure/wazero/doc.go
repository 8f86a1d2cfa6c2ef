// Package wazero binds a hostfuncs.HandlerRegistry to the wazero runtime.
//
// It handles:
//
//   - Building a host module named after the registry namespace ("env")
//   - Expanding string parameters into (pointer, length) i32 pairs
//   - Copying guest strings out of linear memory with a size limit
//   - Checking guest imports against registered signatures
//
// # Basic Usage
//
//	registry, err := hostfuncs.NewRegistry(
//	    hostfuncs.WithBundle(hostfuncs.EnvBundle(hostfuncs.NewConsoleEnv())),
//	)
//	if err != nil {
//	    return err
//	}
//
//	runtime := wazero.NewRuntime(ctx)
//	err = wazeroadapter.RegisterWithRuntime(ctx, runtime, registry)
//
// # Custom Handlers
//
// Functions that need direct access to the wazero module can be added with
// WithCustomHandler:
//
//	wazeroadapter.RegisterWithRuntime(ctx, runtime, registry,
//	    wazeroadapter.WithCustomHandler(wazeroadapter.CustomHandler{
//	        Name:       "js_debug_break",
//	        Handler:    debugBreak,
//	        ParamTypes: []api.ValueType{api.ValueTypeI32},
//	    }),
//	)
package wazero
