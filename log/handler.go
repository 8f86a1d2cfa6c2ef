// Package log provides structured logging (slog) for guest programs.
// Records are rendered as one line of text and sent through the host's
// logging import.
package log

import (
	"context"
	"log/slog"
	"slices"

	"github.com/z-libs/zwasm-go/format"
	"github.com/z-libs/zwasm-go/infrastructure/wasm"
)

// WasmLogHandler implements slog.Handler to route logs through a host function.
type WasmLogHandler struct {
	groups []string
	attrs  []slog.Attr
	opts   handlerConfig
}

// HandlerOption configures the WasmLogHandler.
type HandlerOption func(*handlerConfig)

type handlerConfig struct {
	sink      func(string)
	level     slog.Level
	addSource bool
}

// defaultHandlerConfig returns the default configuration.
func defaultHandlerConfig() handlerConfig {
	return handlerConfig{
		level: slog.LevelInfo,
		sink:  wasm.Log,
	}
}

// WithLevel sets the minimum log level to report.
// Records below this level will be filtered on the guest side.
func WithLevel(level slog.Level) HandlerOption {
	return func(c *handlerConfig) {
		c.level = level
	}
}

// WithSource enables reporting of source location (file/line).
func WithSource(enabled bool) HandlerOption {
	return func(c *handlerConfig) {
		c.addSource = enabled
	}
}

// WithSink sends rendered lines to fn instead of the logging import.
func WithSink(fn func(string)) HandlerOption {
	return func(c *handlerConfig) {
		if fn != nil {
			c.sink = fn
		}
	}
}

// NewHandler creates a new WasmLogHandler with the given options.
func NewHandler(opts ...HandlerOption) *WasmLogHandler {
	cfg := defaultHandlerConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return &WasmLogHandler{opts: cfg}
}

// Enabled reports whether the handler handles records at the given level.
func (h *WasmLogHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.opts.level
}

// Handle renders the record into a fixed-size buffer and sends it to the
// host. Lines longer than format.DefaultLimit are cut.
func (h *WasmLogHandler) Handle(_ context.Context, record slog.Record) error {
	var data [format.DefaultSize]byte
	buf := format.NewBuffer(data[:], format.WithLimit(format.DefaultLimit))

	buf.WriteString(record.Level.String())
	_ = buf.WriteByte(' ')
	buf.WriteString(record.Message)

	if h.opts.addSource {
		writeSource(buf, record)
	}
	for _, attr := range h.attrs {
		writeAttr(buf, nil, attr)
	}
	record.Attrs(func(attr slog.Attr) bool {
		writeAttr(buf, h.groups, attr)
		return !buf.Full()
	})

	h.opts.sink(buf.String())
	return nil
}

// WithAttrs returns a new WasmLogHandler that includes the given attributes.
func (h *WasmLogHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return h
	}
	clone := *h
	clone.attrs = slices.Clip(h.attrs)
	for _, a := range attrs {
		clone.attrs = append(clone.attrs, qualify(h.groups, a))
	}
	return &clone
}

// WithGroup returns a new WasmLogHandler with the given group name.
func (h *WasmLogHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	clone := *h
	clone.groups = append(slices.Clip(h.groups), name)
	return &clone
}

// init configures the default slog handler to use our WasmLogHandler.
func init() {
	slog.SetDefault(slog.New(NewHandler()))
}
