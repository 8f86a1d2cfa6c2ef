// Package host runs guest programs built against the env bridge.
//
// It abstracts the underlying WASM engine (wazero): an Executor owns the
// runtime and the env host module, checks every import a guest declares
// before instantiating it, and hands back an Instance whose exports
// (initializer, frame hook, key hook, getters) can be driven by name.
// A Driver runs the init-then-tick loop at a cadence, and a Loader reads the
// YAML bridge configuration that names the exports.
package host
