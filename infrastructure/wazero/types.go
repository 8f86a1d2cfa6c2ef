package wazero

import (
	"fmt"
	"slices"

	"github.com/tetratelabs/wazero/api"

	"github.com/z-libs/zwasm-go/domain/entities"
)

// ValueTypes expands kinds into wasm value types. A string becomes a
// (pointer, length) pair of i32.
func ValueTypes(kinds []entities.ValueKind) []api.ValueType {
	out := make([]api.ValueType, 0, len(kinds))
	for _, k := range kinds {
		switch k {
		case entities.KindI32:
			out = append(out, api.ValueTypeI32)
		case entities.KindI64:
			out = append(out, api.ValueTypeI64)
		case entities.KindF32:
			out = append(out, api.ValueTypeF32)
		case entities.KindF64:
			out = append(out, api.ValueTypeF64)
		case entities.KindString:
			out = append(out, api.ValueTypeI32, api.ValueTypeI32)
		}
	}
	return out
}

// CheckSignature reports whether def, an imported function of a guest,
// has exactly the wasm types of sig.
func CheckSignature(def api.FunctionDefinition, sig entities.Signature) error {
	wantParams, wantResults := ValueTypes(sig.Params), ValueTypes(sig.Results)
	if slices.Equal(def.ParamTypes(), wantParams) && slices.Equal(def.ResultTypes(), wantResults) {
		return nil
	}
	return fmt.Errorf("signature mismatch: guest declares %s, host provides %s",
		formatTypes(def.ParamTypes(), def.ResultTypes()),
		formatTypes(wantParams, wantResults))
}

func formatTypes(params, results []api.ValueType) string {
	s := "("
	for i, p := range params {
		if i > 0 {
			s += ", "
		}
		s += api.ValueTypeName(p)
	}
	s += ")"
	if len(results) > 0 {
		s += " ->"
		for _, r := range results {
			s += " " + api.ValueTypeName(r)
		}
	}
	return s
}
