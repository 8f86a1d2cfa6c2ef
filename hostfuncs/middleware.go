package hostfuncs

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Middleware is a function that wraps a Handler to add cross-cutting behavior.
// Middleware executes in FIFO order (first registered wraps first, onion model).
//
// Example usage:
//
//	counting := func(next Handler) Handler {
//	    return func(ctx context.Context, call *Call) error {
//	        calls++
//	        return next(ctx, call)
//	    }
//	}
type Middleware func(next Handler) Handler

// PanicRecoveryMiddleware returns a middleware that converts a panicking host
// function into a *PanicError instead of crashing the host.
func PanicRecoveryMiddleware() Middleware {
	return func(next Handler) Handler {
		return func(ctx context.Context, call *Call) (err error) {
			defer func() {
				if r := recover(); r != nil {
					err = &PanicError{Value: r, Function: functionName(ctx)}
				}
			}()
			return next(ctx, call)
		}
	}
}

// LoggingMiddleware returns a middleware that reports host function
// invocations through logFn.
func LoggingMiddleware(logFn func(format string, args ...any)) Middleware {
	return func(next Handler) Handler {
		return func(ctx context.Context, call *Call) error {
			funcName := functionName(ctx)
			logFn("invoking host function: %s", funcName)
			err := next(ctx, call)
			if err != nil {
				logFn("host function %s failed: %v", funcName, err)
			} else {
				logFn("host function %s completed", funcName)
			}
			return err
		}
	}
}

// TraceMiddleware logs every call at debug level with its duration. Failed
// calls are logged as warnings.
func TraceMiddleware(logger *zap.Logger) Middleware {
	if logger == nil {
		logger = zap.NewNop()
	}
	return func(next Handler) Handler {
		return func(ctx context.Context, call *Call) error {
			start := time.Now()
			err := next(ctx, call)
			fields := []zap.Field{
				zap.String("function", functionName(ctx)),
				zap.Duration("elapsed", time.Since(start)),
			}
			if err != nil {
				logger.Warn("host call failed", append(fields, zap.Error(err))...)
				return err
			}
			if ce := logger.Check(zap.DebugLevel, "host call"); ce != nil {
				ce.Write(fields...)
			}
			return nil
		}
	}
}

func functionName(ctx context.Context) string {
	if hc, ok := ctx.(HostContext); ok {
		return hc.FunctionName()
	}
	return "unknown"
}
