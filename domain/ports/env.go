package ports

import "context"

// Env is the host-side implementation of the imports a guest may declare.
// Strings have already been copied out of guest memory.
type Env interface {
	Log(ctx context.Context, msg string)
	Now(ctx context.Context) float64
	Random(ctx context.Context) float32
	Eval(ctx context.Context, code string)
	FillRect(ctx context.Context, x, y, w, h float32)
	FillStyle(ctx context.Context, color string)
	ClearCanvas(ctx context.Context)
}
