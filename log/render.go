package log

import (
	"fmt"
	"log/slog"
	"runtime"
	"strings"
	"time"

	"github.com/z-libs/zwasm-go/format"
)

// qualify prefixes the key with the open groups. Attributes added through
// WithAttrs are qualified once, when they are added.
func qualify(groups []string, a slog.Attr) slog.Attr {
	if len(groups) == 0 {
		return a
	}
	a.Key = strings.Join(groups, ".") + "." + a.Key
	return a
}

func writeAttr(buf *format.Buffer, groups []string, attr slog.Attr) {
	attr.Value = attr.Value.Resolve()
	if attr.Equal(slog.Attr{}) {
		return
	}
	if attr.Value.Kind() == slog.KindGroup {
		sub := groups
		if attr.Key != "" {
			sub = append(append([]string(nil), groups...), attr.Key)
		}
		for _, a := range attr.Value.Group() {
			writeAttr(buf, sub, a)
		}
		return
	}

	_ = buf.WriteByte(' ')
	for _, g := range groups {
		buf.WriteString(g)
		_ = buf.WriteByte('.')
	}
	buf.WriteString(attr.Key)
	_ = buf.WriteByte('=')
	writeValue(buf, attr.Value)
}

// writeValue renders numbers with the guest formatter, so floats carry three
// truncated fraction digits.
func writeValue(buf *format.Buffer, v slog.Value) {
	switch v.Kind() {
	case slog.KindString:
		s := v.String()
		if strings.ContainsAny(s, " =\"") {
			buf.WriteString(fmt.Sprintf("%q", s))
			return
		}
		buf.WriteString(s)
	case slog.KindInt64:
		buf.WriteInt(v.Int64())
	case slog.KindUint64:
		format.Format(buf, "%d", format.Of(v.Uint64()))
	case slog.KindFloat64:
		buf.WriteFixed(v.Float64())
	case slog.KindBool:
		if v.Bool() {
			buf.WriteString("true")
		} else {
			buf.WriteString("false")
		}
	case slog.KindDuration:
		buf.WriteString(v.Duration().String())
	case slog.KindTime:
		buf.WriteString(v.Time().Format(time.RFC3339))
	default:
		if err, ok := v.Any().(error); ok {
			buf.WriteString(err.Error())
			return
		}
		buf.WriteString(fmt.Sprint(v.Any()))
	}
}

func writeSource(buf *format.Buffer, record slog.Record) {
	if record.PC == 0 {
		return
	}
	frames := runtime.CallersFrames([]uintptr{record.PC})
	f, _ := frames.Next()
	if f.File == "" {
		return
	}
	file := f.File
	if i := strings.LastIndexByte(file, '/'); i >= 0 {
		file = file[i+1:]
	}
	format.Format(buf, " source=%s:%d", format.Str(file), format.Int(int64(f.Line)))
}
