package main

import (
	"fmt"
	"io"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// newLogger builds the process logger. Warnings and errors are always
// shown; --verbose adds debug output such as per-call host traces.
func newLogger(opts *globalOptions, w io.Writer) (*zap.Logger, error) {
	level := zapcore.WarnLevel
	if opts.verbose {
		level = zapcore.DebugLevel
	}

	var enc zapcore.Encoder
	switch opts.logFormat {
	case "console", "":
		cfg := zap.NewDevelopmentEncoderConfig()
		cfg.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05.000")
		enc = zapcore.NewConsoleEncoder(cfg)
	case "json":
		enc = zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
	default:
		return nil, fmt.Errorf("unknown log format %q (expected console or json)", opts.logFormat)
	}

	core := zapcore.NewCore(enc, zapcore.AddSync(w), level)
	return zap.New(core), nil
}
