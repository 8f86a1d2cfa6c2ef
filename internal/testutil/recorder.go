package testutil

import (
	"context"
	"fmt"
	"sync"

	"github.com/z-libs/zwasm-go/domain/ports"
)

// Call is one recorded host call.
type Call struct {
	Name string
	Text string
	Nums []float32
}

// String renders the call for failure messages.
func (c Call) String() string {
	if c.Text != "" {
		return fmt.Sprintf("%s(%q)", c.Name, c.Text)
	}
	if len(c.Nums) > 0 {
		return fmt.Sprintf("%s%v", c.Name, c.Nums)
	}
	return c.Name + "()"
}

// Recorder implements ports.Host and ports.Env by recording every call.
// Now and Random return fixed values.
type Recorder struct {
	mu     sync.Mutex
	calls  []Call
	Time   float64
	Rand   float32
	OnEval func(code string)
}

// NewRecorder returns an empty Recorder.
func NewRecorder() *Recorder {
	return &Recorder{Rand: 0.5}
}

var (
	_ ports.Host = (*Recorder)(nil)
	_ ports.Env  = (*EnvRecorder)(nil)
)

func (r *Recorder) record(c Call) {
	r.mu.Lock()
	r.calls = append(r.calls, c)
	r.mu.Unlock()
}

// Calls returns a copy of the recorded calls.
func (r *Recorder) Calls() []Call {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Call(nil), r.calls...)
}

// Names returns the recorded call names.
func (r *Recorder) Names() []string {
	calls := r.Calls()
	names := make([]string, len(calls))
	for i, c := range calls {
		names[i] = c.Name
	}
	return names
}

// Texts returns the text argument of every call with the given name.
func (r *Recorder) Texts(name string) []string {
	var out []string
	for _, c := range r.Calls() {
		if c.Name == name {
			out = append(out, c.Text)
		}
	}
	return out
}

// Reset forgets all calls.
func (r *Recorder) Reset() {
	r.mu.Lock()
	r.calls = nil
	r.mu.Unlock()
}

func (r *Recorder) Log(msg string) { r.record(Call{Name: "log", Text: msg}) }

func (r *Recorder) Now() float64 {
	r.record(Call{Name: "time"})
	return r.Time
}

func (r *Recorder) Random() float32 {
	r.record(Call{Name: "rand"})
	return r.Rand
}

func (r *Recorder) Eval(code string) {
	r.record(Call{Name: "eval", Text: code})
	if r.OnEval != nil {
		r.OnEval(code)
	}
}

func (r *Recorder) FillRect(x, y, w, h float32) {
	r.record(Call{Name: "rect", Nums: []float32{x, y, w, h}})
}

func (r *Recorder) FillStyle(color string) { r.record(Call{Name: "style", Text: color}) }

func (r *Recorder) ClearCanvas() { r.record(Call{Name: "clear"}) }

// EnvRecorder adapts a Recorder to ports.Env.
type EnvRecorder struct {
	*Recorder
}

// Env returns the Recorder as a ports.Env.
func (r *Recorder) Env() *EnvRecorder { return &EnvRecorder{Recorder: r} }

func (e *EnvRecorder) Log(_ context.Context, msg string)     { e.Recorder.Log(msg) }
func (e *EnvRecorder) Now(_ context.Context) float64         { return e.Recorder.Now() }
func (e *EnvRecorder) Random(_ context.Context) float32      { return e.Recorder.Random() }
func (e *EnvRecorder) Eval(_ context.Context, code string)   { e.Recorder.Eval(code) }
func (e *EnvRecorder) FillStyle(_ context.Context, c string) { e.Recorder.FillStyle(c) }
func (e *EnvRecorder) ClearCanvas(_ context.Context)         { e.Recorder.ClearCanvas() }
func (e *EnvRecorder) FillRect(_ context.Context, x, y, w, h float32) {
	e.Recorder.FillRect(x, y, w, h)
}
