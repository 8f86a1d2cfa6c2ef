package format

import (
	"math"
	"strconv"
)

// Result reports what a formatting call produced.
type Result struct {
	// N is the number of content bytes written by the call.
	N int
	// Truncated is set when output was dropped because the buffer filled up.
	Truncated bool
}

// Format renders pattern into buf. Supported conversions:
//
//	%d  integer, decimal
//	%s  string, up to its first NUL
//	%f  float, integer part then exactly three truncated fraction digits
//
// Any other byte after %, a second % included, is consumed and produces
// nothing, as does a trailing lone %. A conversion with no argument left produces nothing.
// Numeric arguments are converted between %d and %f; %s of a number renders
// it with its own conversion.
func Format(buf *Buffer, pattern string, args ...Arg) Result {
	start := buf.Len()
	earlier := buf.truncated
	buf.truncated = false
	next := 0

	for i := 0; i < len(pattern); i++ {
		c := pattern[i]
		if c != '%' {
			_ = buf.WriteByte(c)
			continue
		}
		i++
		if i >= len(pattern) {
			break
		}
		verb := pattern[i]
		if (verb != 'd' && verb != 's' && verb != 'f') || next >= len(args) {
			continue
		}
		arg := args[next]
		next++

		switch {
		case verb == 'd':
			buf.WriteInt(arg.asInt())
		case verb == 'f':
			buf.WriteFixed(arg.asFloat())
		case arg.kind == kindInt:
			buf.WriteInt(arg.i)
		case arg.kind == kindFloat:
			buf.WriteFixed(arg.f)
		default:
			buf.WriteCString(arg.s)
		}
	}

	res := Result{N: buf.Len() - start, Truncated: buf.truncated}
	buf.truncated = buf.truncated || earlier
	return res
}

// Sprint formats into a DefaultSize buffer capped at DefaultLimit bytes and
// returns the text.
func Sprint(pattern string, args ...Arg) string {
	var data [DefaultSize]byte
	buf := NewBuffer(data[:], WithLimit(DefaultLimit))
	Format(buf, pattern, args...)
	return buf.String()
}

// WriteInt appends the decimal text of v. The minimum int64 renders exactly.
func (b *Buffer) WriteInt(v int64) {
	var tmp [20]byte
	u := uint64(v)
	if v < 0 {
		_ = b.WriteByte('-')
		u = -u
	}
	k := len(tmp)
	for {
		k--
		tmp[k] = byte('0' + u%10)
		u /= 10
		if u == 0 {
			break
		}
	}
	b.WriteString(string(tmp[k:]))
}

// WriteFixed appends f as its truncated integer part, a dot, and the first
// three fraction digits, truncated and zero-padded. No rounding is done and
// a fraction that comes out as 1000 is not carried. A negative value with a
// zero integer part keeps its sign. NaN and infinities render as nan, inf
// and -inf.
func (b *Buffer) WriteFixed(f float64) {
	switch {
	case math.IsNaN(f):
		b.WriteString("nan")
		return
	case math.IsInf(f, 1):
		b.WriteString("inf")
		return
	case math.IsInf(f, -1):
		b.WriteString("-inf")
		return
	}

	whole := math.Trunc(f)
	if f < 0 && whole == 0 {
		_ = b.WriteByte('-')
	}
	if whole >= math.MaxInt64 || whole <= math.MinInt64 {
		b.WriteString(strconv.FormatFloat(whole, 'f', 0, 64))
	} else {
		b.WriteInt(int64(whole))
	}
	_ = b.WriteByte('.')

	frac := int64(math.Abs(f-whole) * 1000)
	if frac < 10 {
		_ = b.WriteByte('0')
	}
	if frac < 100 {
		_ = b.WriteByte('0')
	}
	b.WriteInt(frac)
}

// WriteCString appends s up to its first NUL byte.
func (b *Buffer) WriteCString(s string) {
	for i := 0; i < len(s); i++ {
		if s[i] == 0 {
			s = s[:i]
			break
		}
	}
	b.WriteString(s)
}
