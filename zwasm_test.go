//go:build !wasip1

package zwasm

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/z-libs/zwasm-go/guest"
	"github.com/z-libs/zwasm-go/input"
	"github.com/z-libs/zwasm-go/internal/testutil"
)

func TestFacadeForwardsToRegisteredRuntime(t *testing.T) {
	rec := testutil.NewRecorder()
	rt := Register(guest.Funcs{
		InitFunc: func(*guest.Runtime) int32 {
			Printf("Hello from C! Int: %d, Float: %f, String: %s", 42, 3.14159, "Bare Metal")
			Printf("Random: %f", Random())
			return 0
		},
	}, guest.WithHost(rec))
	t.Cleanup(func() { Register(nil) })

	assert.Equal(t, int32(0), guest.RunStandalone(0))
	assert.Equal(t, []string{
		"Hello from C! Int: 42, Float: 3.141, String: Bare Metal",
		"Random: 0.500",
	}, rec.Texts("log"))

	Log("plain")
	Eval("x()")
	SetHTML("status", "<b>ok</b>")
	FillStyle("#00ff00")
	FillRect(0, 0, 10, 10)
	ClearCanvas()
	assert.Equal(t, 0.0, Now())

	rt.OnKey(input.KeyLeft, true)
	assert.True(t, KeyDown(input.KeyLeft))

	MemInit(0, 0)
	p := Malloc(8)
	assert.NotZero(t, p)
	q := Realloc(p, 16)
	assert.Greater(t, q, p)
	Free(q)

	assert.Equal(t, []string{"x()", "var e=document.getElementById('status');if(e)e.innerHTML=`<b>ok</b>`;"},
		rec.Texts("eval"))
}
