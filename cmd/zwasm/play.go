package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/z-libs/zwasm-go/domain/entities"
	"github.com/z-libs/zwasm-go/host"
	"github.com/z-libs/zwasm-go/hostfuncs"
	wazeroadapter "github.com/z-libs/zwasm-go/infrastructure/wazero"
)

type playOptions struct {
	values valueFlags
	seed   uint64
	noWASI bool
}

func newPlayCmd() *cobra.Command {
	opts := &playOptions{}

	cmd := &cobra.Command{
		Use:   "play <zwasm.yaml|module.wasm>",
		Short: "Run a guest interactively in the terminal",
		Long: `Run a guest at its frame rate and draw its canvas in the terminal.

Arrow keys, space, enter, letters and digits are forwarded to the guest.
Terminals report presses only, so a key counts as held until no repeat
has arrived for a few frames.

  ctrl+p  pause or resume
  ctrl+c  quit`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlay(cmd, opts, args[0])
		},
	}

	cmd.Flags().Uint64Var(&opts.seed, "seed", 0, "Seed for js_rand (0 picks one at random)")
	cmd.Flags().BoolVar(&opts.noWASI, "no-wasi", false, "Do not provide wasi_snapshot_preview1")
	opts.values.register(cmd)

	return cmd
}

func runPlay(cmd *cobra.Command, opts *playOptions, path string) error {
	fd := int(os.Stdout.Fd())
	if !term.IsTerminal(fd) {
		return errors.New("play needs a terminal; use run for headless output")
	}
	cols, rows, err := term.GetSize(fd)
	if err != nil {
		return fmt.Errorf("failed to read terminal size: %w", err)
	}

	cfg, err := loadConfig(path, &opts.values)
	if err != nil {
		return err
	}
	wasm, err := readModule(cfg)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	canvas := hostfuncs.NewCanvasEnv(seededRandom(opts.seed))

	execOpts := []host.Option{
		host.WithEnv(canvas),
		host.WithNamespace(cfg.Imports.Namespace),
		host.WithMemoryLimitPages(cfg.MemoryLimitPages),
		host.WithLogger(wazeroadapter.Logger()),
	}
	if opts.noWASI {
		execOpts = append(execOpts, host.WithoutWASI())
	}
	exec, err := host.NewExecutor(ctx, execOpts...)
	if err != nil {
		return err
	}
	defer exec.Close(context.WithoutCancel(ctx))

	guestOut := hostfuncs.NewBoundedBuffer(hostfuncs.DefaultMaxOutputSize)
	inst, err := exec.LoadConfig(ctx, cfg, wasm, host.WithStdout(guestOut), host.WithStderr(guestOut))
	if err != nil {
		return err
	}

	status, err := inst.Init(ctx)
	if err != nil {
		return err
	}
	if status != 0 {
		return &exitError{
			err:  fmt.Errorf("%s: init returned status %d", cfg.Name, status),
			code: statusCode(status),
		}
	}

	m := newPlayModel(ctx, inst, canvas, cfg)
	m.cols, m.rows = cols, rows

	final, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	if err != nil {
		return err
	}
	if pm, ok := final.(*playModel); ok && pm.err != nil {
		return pm.err
	}
	if guestOut.Len() > 0 {
		fmt.Fprint(cmd.OutOrStdout(), guestOut.String())
	}
	return nil
}

// holdFrames is how many frames a key stays down after its last press.
const holdFrames = 8

// maxLogLines is the number of guest log lines kept on screen.
const maxLogLines = 6

type tickMsg time.Time

// playModel drives an Instance from bubbletea ticks and draws the display
// list kept by a CanvasEnv.
type playModel struct {
	ctx    context.Context
	err    error
	inst   *host.Instance
	canvas *hostfuncs.CanvasEnv
	cfg    *entities.BridgeConfig
	held   map[int32]int
	frame  hostfuncs.Frame
	logs   []string
	start  time.Time
	frames int
	cols   int
	rows   int
	paused bool
}

func newPlayModel(ctx context.Context, inst *host.Instance, canvas *hostfuncs.CanvasEnv, cfg *entities.BridgeConfig) *playModel {
	m := &playModel{
		ctx:    ctx,
		inst:   inst,
		canvas: canvas,
		cfg:    cfg,
		held:   make(map[int32]int),
		start:  time.Now(),
		cols:   80,
		rows:   24,
	}
	m.collect()
	return m
}

func (m *playModel) tick() tea.Cmd {
	fps := m.cfg.FrameRate
	if fps <= 0 {
		fps = entities.DefaultFrameRate
	}
	return tea.Tick(time.Second/time.Duration(fps), func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m *playModel) Init() tea.Cmd {
	return m.tick()
}

func (m *playModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.cols, m.rows = msg.Width, msg.Height

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC:
			return m, tea.Quit
		case tea.KeyCtrlP:
			m.paused = !m.paused
			return m, nil
		}
		if code, ok := keyCode(msg); ok && !m.paused {
			if err := m.press(code); err != nil {
				m.err = err
				return m, tea.Quit
			}
		}

	case tickMsg:
		if !m.paused {
			if err := m.step(); err != nil {
				m.err = err
				return m, tea.Quit
			}
		}
		return m, m.tick()
	}
	return m, nil
}

// press forwards a key down the first time it is seen and extends the hold
// on repeats.
func (m *playModel) press(code int32) error {
	_, down := m.held[code]
	m.held[code] = m.frames
	if down {
		return nil
	}
	return m.inst.OnKey(m.ctx, code, true)
}

// step releases keys whose hold expired, then runs one frame.
func (m *playModel) step() error {
	for code, last := range m.held {
		if m.frames-last >= holdFrames {
			delete(m.held, code)
			if err := m.inst.OnKey(m.ctx, code, false); err != nil {
				return err
			}
		}
	}
	if err := m.inst.Tick(m.ctx); err != nil {
		return fmt.Errorf("frame %d: %w", m.frames+1, err)
	}
	m.frames++
	m.collect()
	return nil
}

func (m *playModel) collect() {
	m.frame = m.canvas.Drain()
	m.logs = append(m.logs, m.frame.Logs...)
	for _, code := range m.frame.Evals {
		m.logs = append(m.logs, "eval: "+code)
	}
	if n := len(m.logs); n > maxLogLines {
		m.logs = m.logs[n-maxLogLines:]
	}
}

func (m *playModel) View() string {
	return m.render()
}

// keyCode maps a terminal key to the browser key code the guest expects.
func keyCode(msg tea.KeyMsg) (int32, bool) {
	switch msg.Type {
	case tea.KeySpace:
		return keyNames["space"], true
	case tea.KeyLeft:
		return keyNames["left"], true
	case tea.KeyRight:
		return keyNames["right"], true
	case tea.KeyUp:
		return keyNames["up"], true
	case tea.KeyDown:
		return keyNames["down"], true
	case tea.KeyEnter:
		return keyNames["enter"], true
	case tea.KeyEsc:
		return keyNames["escape"], true
	case tea.KeyTab:
		return keyNames["tab"], true
	case tea.KeyBackspace:
		return keyNames["backspace"], true
	case tea.KeyRunes:
		if len(msg.Runes) != 1 || msg.Alt {
			return 0, false
		}
		r := msg.Runes[0]
		switch {
		case r == ' ':
			return keyNames["space"], true
		case r >= 'a' && r <= 'z':
			return int32(r - 'a' + 'A'), true
		case r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return int32(r), true
		}
	}
	return 0, false
}
