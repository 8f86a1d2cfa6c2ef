package main

import (
	"fmt"
	"math"
	"math/rand/v2"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/z-libs/zwasm-go/hostfuncs"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	logStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))

	frameStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#444444"))
)

// cssColors covers the named colors guests commonly pass to fillStyle.
var cssColors = map[string]string{
	"black":   "#000000",
	"white":   "#ffffff",
	"red":     "#ff0000",
	"green":   "#008000",
	"lime":    "#00ff00",
	"blue":    "#0000ff",
	"yellow":  "#ffff00",
	"cyan":    "#00ffff",
	"magenta": "#ff00ff",
	"orange":  "#ffa500",
	"purple":  "#800080",
	"gray":    "#808080",
	"grey":    "#808080",
}

// cellColor normalizes a CSS fill style to a #rrggbb color. Styles it
// cannot interpret fall back to white.
func cellColor(style string) string {
	s := strings.ToLower(strings.TrimSpace(style))
	if c, ok := cssColors[s]; ok {
		return c
	}
	if strings.HasPrefix(s, "#") {
		switch len(s) {
		case 7:
			return s
		case 4:
			return "#" + strings.Repeat(s[1:2], 2) + strings.Repeat(s[2:3], 2) + strings.Repeat(s[3:4], 2)
		}
	}
	var r, g, b int
	if n, _ := fmt.Sscanf(s, "rgb(%d,%d,%d)", &r, &g, &b); n == 3 {
		return fmt.Sprintf("#%02x%02x%02x", clampByte(r), clampByte(g), clampByte(b))
	}
	return "#ffffff"
}

func clampByte(v int) int {
	return min(max(v, 0), 255)
}

// rasterize maps a display list onto a cols x rows grid scaled from a
// canvas of width x height. Each cell holds the color of the last rect
// covering it, or "" for none.
func rasterize(ops []hostfuncs.DrawOp, width, height, cols, rows int) [][]string {
	grid := make([][]string, rows)
	for y := range grid {
		grid[y] = make([]string, cols)
	}
	if width <= 0 || height <= 0 || cols <= 0 || rows <= 0 {
		return grid
	}

	sx := float64(width) / float64(cols)
	sy := float64(height) / float64(rows)
	for _, op := range ops {
		if op.Kind != "rect" || op.W <= 0 || op.H <= 0 {
			continue
		}
		color := cellColor(op.Style)
		x0 := clampCell(math.Floor(float64(op.X)/sx), cols)
		x1 := clampCell(math.Ceil(float64(op.X+op.W)/sx), cols)
		y0 := clampCell(math.Floor(float64(op.Y)/sy), rows)
		y1 := clampCell(math.Ceil(float64(op.Y+op.H)/sy), rows)
		for y := y0; y < y1; y++ {
			for x := x0; x < x1; x++ {
				grid[y][x] = color
			}
		}
	}
	return grid
}

func clampCell(v float64, n int) int {
	switch {
	case math.IsNaN(v) || v < 0:
		return 0
	case v > float64(n):
		return n
	}
	return int(v)
}

// renderGrid draws each run of same-colored cells with a single style.
func renderGrid(grid [][]string) string {
	var b strings.Builder
	for y, row := range grid {
		if y > 0 {
			b.WriteByte('\n')
		}
		for x := 0; x < len(row); {
			end := x + 1
			for end < len(row) && row[end] == row[x] {
				end++
			}
			if row[x] == "" {
				b.WriteString(strings.Repeat(" ", end-x))
			} else {
				b.WriteString(lipgloss.NewStyle().
					Foreground(lipgloss.Color(row[x])).
					Render(strings.Repeat("█", end-x)))
			}
			x = end
		}
	}
	return b.String()
}

// chromeRows is the number of terminal rows used around the canvas.
const chromeRows = 4 + maxLogLines

func (m *playModel) render() string {
	cols := max(m.cols-2, 1)
	rows := max(m.rows-chromeRows, 1)
	grid := rasterize(m.frame.Ops, m.cfg.Canvas.Width, m.cfg.Canvas.Height, cols, rows)

	var held []int32
	for code := range m.held {
		held = append(held, code)
	}
	slices.Sort(held)

	status := fmt.Sprintf("frame %d  %.0fs  keys %v", m.frames, time.Since(m.start).Seconds(), held)
	if m.paused {
		status += "  [paused]"
	}

	logs := make([]string, maxLogLines)
	copy(logs, m.logs)

	return lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render(m.cfg.Name)+" "+statusStyle.Render(status),
		frameStyle.Render(renderGrid(grid)),
		logStyle.Render(strings.Join(logs, "\n")),
		helpStyle.Render("ctrl+p pause • ctrl+c quit"),
	)
}

// seededRandom returns the js_rand source for play.
func seededRandom(seed uint64) func() float32 {
	if seed == 0 {
		seed = rand.Uint64()
	}
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)).Float32
}
