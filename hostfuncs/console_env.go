package hostfuncs

import (
	"context"
	"fmt"
	"io"
	"math/rand/v2"
	"os"
	"sync"
	"time"
)

// ConsoleEnv implements ports.Env by printing every effect as a tagged line,
// the same transcript a native guest build produces:
//
//	[LOG] hello
//	[JS EVAL] alert(1)
//	[CANVAS] Rect: 10.00, 20.00 (50.00x50.00)
//	[CANVAS] Fill Style: #f00
//	[CANVAS] Clear
type ConsoleEnv struct {
	mu    sync.Mutex
	out   io.Writer
	clock func() float64
	rng   *rand.Rand
}

// ConsoleOption configures a ConsoleEnv.
type ConsoleOption func(*ConsoleEnv)

// WithWriter sets the destination of the transcript. Defaults to os.Stdout.
func WithWriter(w io.Writer) ConsoleOption {
	return func(e *ConsoleEnv) {
		if w != nil {
			e.out = w
		}
	}
}

// WithClock replaces the clock behind js_time.
func WithClock(clock func() float64) ConsoleOption {
	return func(e *ConsoleEnv) {
		if clock != nil {
			e.clock = clock
		}
	}
}

// WithSeed makes js_rand deterministic.
func WithSeed(seed uint64) ConsoleOption {
	return func(e *ConsoleEnv) {
		e.rng = rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	}
}

// NewConsoleEnv creates a ConsoleEnv. Without WithClock, js_time reports
// seconds since construction.
func NewConsoleEnv(opts ...ConsoleOption) *ConsoleEnv {
	start := time.Now()
	e := &ConsoleEnv{
		out:   os.Stdout,
		clock: func() float64 { return time.Since(start).Seconds() },
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *ConsoleEnv) printf(format string, args ...any) {
	e.mu.Lock()
	defer e.mu.Unlock()
	_, _ = fmt.Fprintf(e.out, format, args...)
}

func (e *ConsoleEnv) Log(_ context.Context, msg string) {
	e.printf("[LOG] %s\n", msg)
}

func (e *ConsoleEnv) Now(_ context.Context) float64 {
	return e.clock()
}

func (e *ConsoleEnv) Random(_ context.Context) float32 {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.rng != nil {
		return e.rng.Float32()
	}
	return rand.Float32()
}

func (e *ConsoleEnv) Eval(_ context.Context, code string) {
	e.printf("[JS EVAL] %s\n", code)
}

func (e *ConsoleEnv) FillRect(_ context.Context, x, y, w, h float32) {
	e.printf("[CANVAS] Rect: %.2f, %.2f (%.2fx%.2f)\n", x, y, w, h)
}

func (e *ConsoleEnv) FillStyle(_ context.Context, color string) {
	e.printf("[CANVAS] Fill Style: %s\n", color)
}

func (e *ConsoleEnv) ClearCanvas(_ context.Context) {
	e.printf("[CANVAS] Clear\n")
}
