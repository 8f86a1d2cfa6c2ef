package hostfuncs

import (
	"context"
	"sync"
	"time"
)

// DrawOp is one recorded canvas operation.
type DrawOp struct {
	Kind       string // "rect" or "clear"
	Style      string
	X, Y, W, H float32
}

// Frame is the state of a CanvasEnv at a point in time.
type Frame struct {
	Ops   []DrawOp
	Logs  []string
	Evals []string
}

// CanvasEnv implements ports.Env by keeping a display list instead of
// drawing. A clear drops every recorded op. Logs and evals accumulate until
// Drain.
type CanvasEnv struct {
	mu    sync.Mutex
	style string
	ops   []DrawOp
	logs  []string
	evals []string
	start time.Time
	rand  func() float32
}

// NewCanvasEnv creates a CanvasEnv. random defaults to 0.5 when nil.
func NewCanvasEnv(random func() float32) *CanvasEnv {
	if random == nil {
		random = func() float32 { return 0.5 }
	}
	return &CanvasEnv{style: "#000000", start: time.Now(), rand: random}
}

func (c *CanvasEnv) Log(_ context.Context, msg string) {
	c.mu.Lock()
	c.logs = append(c.logs, msg)
	c.mu.Unlock()
}

func (c *CanvasEnv) Now(_ context.Context) float64 {
	return time.Since(c.start).Seconds()
}

func (c *CanvasEnv) Random(_ context.Context) float32 {
	return c.rand()
}

func (c *CanvasEnv) Eval(_ context.Context, code string) {
	c.mu.Lock()
	c.evals = append(c.evals, code)
	c.mu.Unlock()
}

func (c *CanvasEnv) FillRect(_ context.Context, x, y, w, h float32) {
	c.mu.Lock()
	c.ops = append(c.ops, DrawOp{Kind: "rect", Style: c.style, X: x, Y: y, W: w, H: h})
	c.mu.Unlock()
}

func (c *CanvasEnv) FillStyle(_ context.Context, color string) {
	c.mu.Lock()
	c.style = color
	c.mu.Unlock()
}

func (c *CanvasEnv) ClearCanvas(_ context.Context) {
	c.mu.Lock()
	c.ops = c.ops[:0]
	c.mu.Unlock()
}

// Snapshot returns a copy of the current display list along with pending
// logs and evals, without consuming them.
func (c *CanvasEnv) Snapshot() Frame {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Frame{
		Ops:   append([]DrawOp(nil), c.ops...),
		Logs:  append([]string(nil), c.logs...),
		Evals: append([]string(nil), c.evals...),
	}
}

// Drain is Snapshot followed by clearing the pending logs and evals.
func (c *CanvasEnv) Drain() Frame {
	c.mu.Lock()
	defer c.mu.Unlock()
	f := Frame{
		Ops:   append([]DrawOp(nil), c.ops...),
		Logs:  c.logs,
		Evals: c.evals,
	}
	c.logs, c.evals = nil, nil
	return f
}
