package hostfuncs

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConsoleEnv_Transcript(t *testing.T) {
	var out bytes.Buffer
	env := NewConsoleEnv(WithWriter(&out), WithClock(func() float64 { return 3 }))
	ctx := context.Background()

	env.Log(ctx, "hello")
	env.Eval(ctx, "alert(1)")
	env.FillStyle(ctx, "#f00")
	env.FillRect(ctx, 10, 20.5, 50, 50)
	env.ClearCanvas(ctx)

	assert.Equal(t, "[LOG] hello\n"+
		"[JS EVAL] alert(1)\n"+
		"[CANVAS] Fill Style: #f00\n"+
		"[CANVAS] Rect: 10.00, 20.50 (50.00x50.00)\n"+
		"[CANVAS] Clear\n", out.String())
	assert.Equal(t, 3.0, env.Now(ctx))
}

func TestConsoleEnv_SeededRandom(t *testing.T) {
	ctx := context.Background()
	a := NewConsoleEnv(WithSeed(7))
	b := NewConsoleEnv(WithSeed(7))
	for i := 0; i < 10; i++ {
		v := a.Random(ctx)
		assert.Equal(t, v, b.Random(ctx))
		assert.GreaterOrEqual(t, v, float32(0))
		assert.Less(t, v, float32(1))
	}
}

func TestConsoleEnv_DefaultClockAdvances(t *testing.T) {
	env := NewConsoleEnv()
	assert.GreaterOrEqual(t, env.Now(context.Background()), 0.0)
}

func TestCanvasEnv_DisplayList(t *testing.T) {
	env := NewCanvasEnv(nil)
	ctx := context.Background()

	env.FillRect(ctx, 0, 0, 1, 1)
	env.ClearCanvas(ctx)
	env.FillStyle(ctx, "#00f")
	env.FillRect(ctx, 10, 10, 40, 40)
	env.Log(ctx, "frame")
	env.Eval(ctx, "flash()")

	snap := env.Snapshot()
	assert.Equal(t, []DrawOp{{Kind: "rect", Style: "#00f", X: 10, Y: 10, W: 40, H: 40}}, snap.Ops)
	assert.Equal(t, []string{"frame"}, snap.Logs)

	drained := env.Drain()
	assert.Equal(t, []string{"flash()"}, drained.Evals)
	after := env.Snapshot()
	assert.Empty(t, after.Logs)
	assert.Empty(t, after.Evals)
	assert.Len(t, after.Ops, 1)
	assert.Equal(t, float32(0.5), env.Random(ctx))
}
