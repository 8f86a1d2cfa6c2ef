package log

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCapture(opts ...HandlerOption) (*slog.Logger, *[]string) {
	var lines []string
	opts = append(opts, WithSink(func(s string) { lines = append(lines, s) }))
	return slog.New(NewHandler(opts...)), &lines
}

func TestNewHandler_Defaults(t *testing.T) {
	h := NewHandler()
	assert.NotNil(t, h)
	assert.True(t, h.Enabled(context.TODO(), slog.LevelInfo))
	assert.False(t, h.Enabled(context.TODO(), slog.LevelDebug))
}

func TestNewHandler_Options(t *testing.T) {
	h := NewHandler(
		WithLevel(slog.LevelDebug),
		WithSource(true),
	)
	assert.True(t, h.Enabled(context.TODO(), slog.LevelDebug))
}

func TestHandle_Attrs(t *testing.T) {
	logger, lines := newCapture()

	logger.Info("bounce",
		slog.String("axis", "x"),
		slog.Int("frame", 12),
		slog.Float64("speed", 2.2),
		slog.Bool("flip", true),
		slog.Duration("dt", 16*time.Millisecond),
		slog.Any("err", errors.New("boom")),
		slog.String("note", "two words"),
		slog.Uint64("seed", 7),
	)

	require.Len(t, *lines, 1)
	assert.Equal(t,
		`INFO bounce axis=x frame=12 speed=2.200 flip=true dt=16ms err=boom note="two words" seed=7`,
		(*lines)[0])
}

func TestHandle_GroupsAndWithAttrs(t *testing.T) {
	logger, lines := newCapture()

	logger.With("game", "bouncer").WithGroup("box").Info("moved",
		slog.Int("x", 14),
		slog.Group("v", slog.Int("dx", 4)))

	require.Len(t, *lines, 1)
	assert.Equal(t, "INFO moved game=bouncer box.x=14 box.v.dx=4", (*lines)[0])
}

func TestHandle_LevelFilter(t *testing.T) {
	logger, lines := newCapture(WithLevel(slog.LevelWarn))
	logger.Info("hidden")
	logger.Warn("shown")
	assert.Equal(t, []string{"WARN shown"}, *lines)
}

func TestHandle_Source(t *testing.T) {
	logger, lines := newCapture(WithSource(true))
	logger.Info("here")
	require.Len(t, *lines, 1)
	assert.Contains(t, (*lines)[0], "source=log_test.go:")
}

func TestHandle_Truncates(t *testing.T) {
	logger, lines := newCapture()
	logger.Info(strings.Repeat("a", 1500), slog.Int("n", 1))
	require.Len(t, *lines, 1)
	assert.Len(t, (*lines)[0], 1000)
}
