// Package memory provides linear-memory primitives for guest code: a
// growable slice-backed memory for native builds and a monotonic bump
// allocator that works over any ports.Memory, including a live wazero
// instance.
//
// The allocator never reclaims blocks. Release is a no-op and the cursor
// only moves forward, which suits short-lived or frame-bounded modules.
package memory
