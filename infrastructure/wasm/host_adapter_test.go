//go:build !wasip1

package wasm

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func captureConsole(t *testing.T) *bytes.Buffer {
	t.Helper()
	var out bytes.Buffer
	prev := SetConsole(&out)
	t.Cleanup(func() { SetConsole(prev) })
	return &out
}

func TestHostAdapter_ConsoleStandIns(t *testing.T) {
	out := captureConsole(t)
	h := NewHostAdapter()

	h.Log("hello")
	h.Eval("alert(1)")
	h.FillStyle("#ff0000")
	h.FillRect(1, 2.5, 40, 40)
	h.ClearCanvas()
	assert.True(t, h.SetHTML("app", "<b>x</b>"))
	h.Log("")

	assert.Equal(t, "[LOG] hello\n"+
		"[JS EVAL] alert(1)\n"+
		"[CANVAS] Fill Style: #ff0000\n"+
		"[CANVAS] Rect: 1.00, 2.50 (40.00x40.00)\n"+
		"[CANVAS] Clear\n"+
		"[DOM] Set #app HTML to: <b>x</b>\n"+
		"[LOG] \n", out.String())
}

func TestHostAdapter_TimeAndRandom(t *testing.T) {
	h := NewHostAdapter()

	t0 := h.Now()
	t1 := h.Now()
	assert.GreaterOrEqual(t, t0, 0.0)
	assert.GreaterOrEqual(t, t1, t0, "clock is monotonic")

	for i := 0; i < 100; i++ {
		r := h.Random()
		assert.GreaterOrEqual(t, r, float32(0))
		assert.Less(t, r, float32(1))
	}
}

func TestStringArgs(t *testing.T) {
	ptr, n := stringArgs("")
	assert.Nil(t, ptr)
	assert.Equal(t, int32(0), n)

	ptr, n = stringArgs("abc")
	assert.NotNil(t, ptr)
	assert.Equal(t, "abc", str(ptr, n))
}
