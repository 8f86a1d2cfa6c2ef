package hostfuncs

import (
	"github.com/z-libs/zwasm-go/domain/entities"
)

// HostFunction pairs an import signature with its implementation. The
// signature's Module is filled in by the registry.
type HostFunction struct {
	Handler   Handler
	Signature entities.Signature
}

// NewHostFunction declares a host function.
func NewHostFunction(name string, params, results []entities.ValueKind, h Handler) HostFunction {
	return HostFunction{
		Signature: entities.Signature{Name: name, Params: params, Results: results},
		Handler:   h,
	}
}

// ParamSlots returns the number of wasm stack slots the parameters occupy.
func (f HostFunction) ParamSlots() int {
	n := 0
	for _, p := range f.Signature.Params {
		n += p.Slots()
	}
	return n
}
