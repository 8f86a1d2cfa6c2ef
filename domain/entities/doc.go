// Package entities provides the core domain types shared by the guest runtime
// and the host bridge: value kinds and import signatures, the bridge
// configuration, input events and per-frame samples.
package entities
