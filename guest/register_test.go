package guest

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/z-libs/zwasm-go/internal/testutil"
)

func TestRegisterAndRunStandalone(t *testing.T) {
	m := &counter{}
	rt := Register(m, WithHost(testutil.NewRecorder()))
	t.Cleanup(func() { Register(nil, WithHost(testutil.NewRecorder())) })

	assert.Same(t, rt, Default())
	assert.Equal(t, int32(7), RunStandalone(5))
	assert.Equal(t, 5, m.frames)
	assert.Equal(t, 1, m.inits)
}
