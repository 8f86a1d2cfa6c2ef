// Package script builds host-executable script snippets in bounded buffers.
package script

import (
	"strings"

	"github.com/z-libs/zwasm-go/format"
)

// SetHTMLBound is the buffer bound used by SetHTML.
const SetHTMLBound = 4096

const (
	setHTMLPrefix = "var e=document.getElementById('"
	setHTMLInfix  = "');if(e)e.innerHTML=`"
	setHTMLSuffix = "`;"
)

// Option configures a build.
type Option func(*options)

type options struct {
	escape bool
}

// WithEscaping escapes the element id for a single-quoted string and the
// HTML for a template literal. Without it both are inserted verbatim and
// the caller must keep the script's delimiters out of them.
func WithEscaping() Option {
	return func(o *options) {
		o.escape = true
	}
}

var (
	quoteEscaper    = strings.NewReplacer(`\`, `\\`, `'`, `\'`, "\n", `\n`, "\r", `\r`)
	templateEscaper = strings.NewReplacer(`\`, `\\`, "`", "\\`", "${", "\\${")
)

// BuildSetHTML writes a script that replaces the inner HTML of the element
// with the given id. Both fields end at their first NUL byte. Output stops
// at the buffer's capacity.
func BuildSetHTML(buf *format.Buffer, elementID, html string, opts ...Option) format.Result {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	elementID, html = cutNUL(elementID), cutNUL(html)
	if o.escape {
		elementID = quoteEscaper.Replace(elementID)
		html = templateEscaper.Replace(html)
	}

	start := buf.Len()
	truncated := false
	for _, part := range [...]string{setHTMLPrefix, elementID, setHTMLInfix, html, setHTMLSuffix} {
		if n := buf.WriteString(part); n < len(part) {
			truncated = true
		}
	}
	return format.Result{N: buf.Len() - start, Truncated: truncated}
}

func cutNUL(s string) string {
	if i := strings.IndexByte(s, 0); i >= 0 {
		return s[:i]
	}
	return s
}

// SetHTML returns the script built in a SetHTMLBound buffer and whether it
// was truncated.
func SetHTML(elementID, html string, opts ...Option) (string, bool) {
	var data [SetHTMLBound]byte
	buf := format.NewBuffer(data[:])
	res := BuildSetHTML(buf, elementID, html, opts...)
	return buf.String(), res.Truncated
}

// SetStyle returns a script that assigns one inline style property of the
// element with the given id.
func SetStyle(elementID, property, value string) string {
	var data [format.DefaultSize]byte
	buf := format.NewBuffer(data[:])
	format.Format(buf, "var e=document.getElementById('%s');if(e)e.style.%s='%s';",
		format.Str(elementID), format.Str(property), format.Str(value))
	return buf.String()
}
