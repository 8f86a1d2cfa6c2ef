package main

import (
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/z-libs/zwasm-go/domain/entities"
	"github.com/z-libs/zwasm-go/host"
	"github.com/z-libs/zwasm-go/hostfuncs"
	"github.com/z-libs/zwasm-go/internal/wasmtest"
)

func newTestPlayModel(t *testing.T, opts wasmtest.GuestOptions) *playModel {
	t.Helper()
	ctx := context.Background()

	canvas := hostfuncs.NewCanvasEnv(nil)
	e, err := host.NewExecutor(ctx, host.WithEnv(canvas))
	require.NoError(t, err)
	t.Cleanup(func() { _ = e.Close(ctx) })

	inst, err := e.LoadModule(ctx, wasmtest.Guest(opts))
	require.NoError(t, err)
	status, err := inst.Init(ctx)
	require.NoError(t, err)
	require.Equal(t, int32(0), status)

	cfg := entities.DefaultBridgeConfig()
	cfg.Name = "guest"
	cfg.Canvas.Width, cfg.Canvas.Height = 100, 100
	return newPlayModel(ctx, inst, canvas, &cfg)
}

func TestPlayModel_Tick(t *testing.T) {
	m := newTestPlayModel(t, wasmtest.GuestOptions{})
	assert.Equal(t, []string{wasmtest.HelloText}, m.logs)

	_, cmd := m.Update(tickMsg{})
	assert.NotNil(t, cmd, "a tick schedules the next one")
	_, _ = m.Update(tickMsg{})

	assert.Equal(t, 2, m.frames)
	require.Len(t, m.frame.Ops, 1)
	assert.Equal(t, hostfuncs.DrawOp{Kind: "rect", Style: "#000000", X: 2, W: wasmtest.BoxSize, H: wasmtest.BoxSize}, m.frame.Ops[0])

	frames, err := m.inst.Get(context.Background(), "get_frames")
	require.NoError(t, err)
	assert.Equal(t, 2.0, frames)
}

func TestPlayModel_Pause(t *testing.T) {
	m := newTestPlayModel(t, wasmtest.GuestOptions{})

	m.Update(tea.KeyMsg{Type: tea.KeyCtrlP})
	m.Update(tickMsg{})
	assert.Equal(t, 0, m.frames)
	assert.Contains(t, m.View(), "[paused]")

	m.Update(tea.KeyMsg{Type: tea.KeyCtrlP})
	m.Update(tickMsg{})
	assert.Equal(t, 1, m.frames)
}

func TestPlayModel_KeyHold(t *testing.T) {
	m := newTestPlayModel(t, wasmtest.GuestOptions{})

	m.Update(tea.KeyMsg{Type: tea.KeySpace})
	require.Contains(t, m.held, int32(32))

	for i := 0; i < holdFrames; i++ {
		m.Update(tickMsg{})
	}
	assert.Contains(t, m.held, int32(32), "still within the hold window")

	m.Update(tickMsg{})
	assert.NotContains(t, m.held, int32(32))
}

func TestPlayModel_KeyRepeatExtendsHold(t *testing.T) {
	m := newTestPlayModel(t, wasmtest.GuestOptions{})

	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'a'}})
	for i := 0; i < holdFrames-1; i++ {
		m.Update(tickMsg{})
	}
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'a'}})
	for i := 0; i < holdFrames; i++ {
		m.Update(tickMsg{})
	}
	assert.Contains(t, m.held, int32('A'))
}

func TestPlayModel_TrapQuits(t *testing.T) {
	m := newTestPlayModel(t, wasmtest.GuestOptions{TrapOnFrame: true})

	_, cmd := m.Update(tickMsg{})
	require.Error(t, m.err)
	assert.Contains(t, m.err.Error(), "frame 1")
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestPlayModel_Quit(t *testing.T) {
	m := newTestPlayModel(t, wasmtest.GuestOptions{})

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestPlayModel_View(t *testing.T) {
	m := newTestPlayModel(t, wasmtest.GuestOptions{})
	m.Update(tea.WindowSizeMsg{Width: 40, Height: 30})
	m.Update(tickMsg{})

	view := m.View()
	assert.Contains(t, view, "guest")
	assert.Contains(t, view, "frame 1")
	assert.Contains(t, view, wasmtest.HelloText)
	assert.Contains(t, view, "█")
}

func TestKeyCode(t *testing.T) {
	tests := []struct {
		msg  tea.KeyMsg
		want int32
		ok   bool
	}{
		{tea.KeyMsg{Type: tea.KeySpace}, 32, true},
		{tea.KeyMsg{Type: tea.KeyLeft}, 37, true},
		{tea.KeyMsg{Type: tea.KeyUp}, 38, true},
		{tea.KeyMsg{Type: tea.KeyRight}, 39, true},
		{tea.KeyMsg{Type: tea.KeyDown}, 40, true},
		{tea.KeyMsg{Type: tea.KeyEnter}, 13, true},
		{tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'w'}}, 'W', true},
		{tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'5'}}, '5', true},
		{tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'é'}}, 0, false},
		{tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'w'}, Alt: true}, 0, false},
		{tea.KeyMsg{Type: tea.KeyF1}, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.msg.String(), func(t *testing.T) {
			got, ok := keyCode(tt.msg)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRasterize(t *testing.T) {
	ops := []hostfuncs.DrawOp{
		{Kind: "rect", Style: "#f00", X: 0, Y: 0, W: 50, H: 100},
		{Kind: "rect", Style: "blue", X: 40, Y: 40, W: 20, H: 20},
		{Kind: "rect", Style: "red", X: 200, Y: 200, W: 10, H: 10},
	}
	grid := rasterize(ops, 100, 100, 10, 10)

	require.Len(t, grid, 10)
	assert.Equal(t, "#ff0000", grid[0][0])
	assert.Equal(t, "#ff0000", grid[9][3])
	assert.Equal(t, "", grid[0][5])
	assert.Equal(t, "#0000ff", grid[4][4], "later ops paint over earlier ones")
	assert.Equal(t, "#0000ff", grid[5][5])
	assert.Equal(t, "", grid[9][9], "off-canvas rects are clipped")
}

func TestRasterize_Degenerate(t *testing.T) {
	grid := rasterize([]hostfuncs.DrawOp{{Kind: "rect", W: 10, H: 10}}, 0, 100, 4, 2)
	require.Len(t, grid, 2)
	assert.Equal(t, []string{"", "", "", ""}, grid[0])
}

func TestCellColor(t *testing.T) {
	assert.Equal(t, "#aabbcc", cellColor("#AABBCC"))
	assert.Equal(t, "#ffaa00", cellColor("#fa0"))
	assert.Equal(t, "#ffa500", cellColor(" Orange "))
	assert.Equal(t, "#0a14ff", cellColor("rgb(10,20,300)"))
	assert.Equal(t, "#ffffff", cellColor("hsl(0, 100%, 50%)"))
}

func TestRenderGrid(t *testing.T) {
	out := renderGrid([][]string{{"", "#ff0000", "#ff0000"}, {"", "", ""}})
	lines := strings.Split(out, "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "██")
	assert.Equal(t, "   ", lines[1])
}
