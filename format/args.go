package format

import (
	"fmt"
	"math"
)

type argKind uint8

const (
	kindInt argKind = iota + 1
	kindFloat
	kindString
)

// Arg is one formatting argument: an integer, a float or a string.
type Arg struct {
	s    string
	i    int64
	f    float64
	kind argKind
}

// Int returns an integer argument.
func Int(v int64) Arg { return Arg{kind: kindInt, i: v} }

// Float returns a floating-point argument.
func Float(v float64) Arg { return Arg{kind: kindFloat, f: v} }

// Str returns a string argument. Only the bytes before the first NUL are
// emitted.
func Str(v string) Arg { return Arg{kind: kindString, s: v} }

// Of converts a Go value to an Arg. Signed and unsigned integers become Int,
// floats become Float, strings and byte slices become Str, bools become 0/1,
// and anything else is rendered with fmt.
func Of(v any) Arg {
	switch x := v.(type) {
	case Arg:
		return x
	case int:
		return Int(int64(x))
	case int8:
		return Int(int64(x))
	case int16:
		return Int(int64(x))
	case int32:
		return Int(int64(x))
	case int64:
		return Int(x)
	case uint:
		return fromUnsigned(uint64(x))
	case uint8:
		return Int(int64(x))
	case uint16:
		return Int(int64(x))
	case uint32:
		return Int(int64(x))
	case uint64:
		return fromUnsigned(x)
	case float32:
		return Float(float64(x))
	case float64:
		return Float(x)
	case string:
		return Str(x)
	case []byte:
		return Str(string(x))
	case bool:
		if x {
			return Int(1)
		}
		return Int(0)
	case fmt.Stringer:
		return Str(x.String())
	case error:
		return Str(x.Error())
	default:
		return Str(fmt.Sprint(v))
	}
}

// Args converts each value with Of.
func Args(vs ...any) []Arg {
	out := make([]Arg, len(vs))
	for i, v := range vs {
		out[i] = Of(v)
	}
	return out
}

func fromUnsigned(u uint64) Arg {
	if u > math.MaxInt64 {
		return Float(float64(u))
	}
	return Int(int64(u))
}

func (a Arg) asInt() int64 {
	switch a.kind {
	case kindInt:
		return a.i
	case kindFloat:
		return truncToInt(a.f)
	default:
		return 0
	}
}

func (a Arg) asFloat() float64 {
	switch a.kind {
	case kindInt:
		return float64(a.i)
	case kindFloat:
		return a.f
	default:
		return 0
	}
}

func truncToInt(f float64) int64 {
	switch {
	case math.IsNaN(f):
		return 0
	case f >= math.MaxInt64:
		return math.MaxInt64
	case f <= math.MinInt64:
		return math.MinInt64
	default:
		return int64(f)
	}
}
