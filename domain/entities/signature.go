package entities

import (
	"fmt"
	"strings"
)

// ValueKind is the type of a single parameter or result crossing the bridge.
type ValueKind uint8

const (
	KindI32 ValueKind = iota + 1
	KindI64
	KindF32
	KindF64
	// KindString is a (pointer, length) pair into guest linear memory.
	// It occupies two i32 slots on the wasm stack.
	KindString
)

// String returns the wasm text name of the kind.
func (k ValueKind) String() string {
	switch k {
	case KindI32:
		return "i32"
	case KindI64:
		return "i64"
	case KindF32:
		return "f32"
	case KindF64:
		return "f64"
	case KindString:
		return "string"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// Slots returns how many wasm stack values the kind occupies.
func (k ValueKind) Slots() int {
	if k == KindString {
		return 2
	}
	return 1
}

// Signature describes one imported or exported function.
type Signature struct {
	Module  string
	Name    string
	Params  []ValueKind
	Results []ValueKind
}

// QualifiedName returns "module.name".
func (s Signature) QualifiedName() string {
	if s.Module == "" {
		return s.Name
	}
	return s.Module + "." + s.Name
}

// String renders the signature as "module.name(i32, i32) -> f64".
func (s Signature) String() string {
	var b strings.Builder
	b.WriteString(s.QualifiedName())
	b.WriteByte('(')
	for i, p := range s.Params {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(p.String())
	}
	b.WriteByte(')')
	if len(s.Results) > 0 {
		b.WriteString(" -> ")
		for i, r := range s.Results {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(r.String())
		}
	}
	return b.String()
}
