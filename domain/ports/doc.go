// Package ports defines the interfaces the runtime is written against.
// Guest code talks to a Host and a Memory; the host bridge implements an Env.
// Infrastructure adapters provide the concrete implementations.
package ports
