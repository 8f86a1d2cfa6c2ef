// Package hostfuncs provides pure Go implementations of the host side of the
// bridge: the functions a guest imports from the "env" namespace, an
// immutable registry to resolve them by name, and middleware around calls.
// It has no WASM runtime dependency; infrastructure/wazero binds a registry
// to a wazero host module.
package hostfuncs
