package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"slices"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/z-libs/zwasm-go/domain/entities"
	domainerrors "github.com/z-libs/zwasm-go/domain/errors"
	"github.com/z-libs/zwasm-go/host"
	"github.com/z-libs/zwasm-go/hostfuncs"
	wazeroadapter "github.com/z-libs/zwasm-go/infrastructure/wazero"
)

type runOptions struct {
	values    valueFlags
	keys      []string
	frames    int
	maxOutput int
	seed      uint64
	sample    bool
	realtime  bool
	trace     bool
	noWASI    bool
	jsonOut   bool
}

// runReport is what run prints in JSON mode.
type runReport struct {
	Getters map[string]float64    `json:"getters,omitempty"`
	Error   *entities.ErrorDetail `json:"error,omitempty"`
	Name    string                `json:"name"`
	Output  string                `json:"output"`
	host.RunResult
	Truncated bool `json:"truncated,omitempty"`
}

func newRunCmd() *cobra.Command {
	opts := &runOptions{}

	cmd := &cobra.Command{
		Use:   "run <zwasm.yaml|module.wasm>",
		Short: "Run a guest headless and print its transcript",
		Long: `Run a guest without a display.

The guest's init export runs once, then its frame export runs --frames
times. Every host call is printed as a transcript line:

  [LOG] hello
  [CANVAS] Fill Style: #ff0000
  [CANVAS] Rect: 10.00, 20.00 (50.00x50.00)

Key transitions are scheduled with --key key@frame[:up], where key is a
browser key code, a name (space, left, up, right, down, enter, escape)
or a single letter. An event for frame n is delivered before tick n.

Getter exports (get_*) are read after the last frame and printed.`,
		Example: `  zwasm run game.wasm --frames 120 --key space@10 --key space@20:up
  zwasm run zwasm.yaml --set canvas.width=640 --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRun(cmd, opts, args[0])
		},
	}

	f := cmd.Flags()
	f.IntVarP(&opts.frames, "frames", "n", entities.DefaultFrameRate, "Number of frames to run after init")
	f.StringArrayVarP(&opts.keys, "key", "k", nil, "Key transition key@frame[:up] (repeatable)")
	f.IntVar(&opts.maxOutput, "max-output", hostfuncs.DefaultMaxOutputSize, "Maximum transcript bytes kept")
	f.Uint64Var(&opts.seed, "seed", 0, "Seed for js_rand (0 picks one at random)")
	f.BoolVar(&opts.sample, "sample", false, "Record getter values after every frame")
	f.BoolVar(&opts.realtime, "realtime", false, "Pace frames at the configured frame rate and stream output")
	f.BoolVar(&opts.trace, "trace", false, "Log every host call (with --verbose)")
	f.BoolVar(&opts.noWASI, "no-wasi", false, "Do not provide wasi_snapshot_preview1")
	f.BoolVar(&opts.jsonOut, "json", false, "Print the result as JSON")
	opts.values.register(cmd)

	return cmd
}

func runRun(cmd *cobra.Command, opts *runOptions, path string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	report, err := execute(ctx, cmd, opts, path)

	if opts.jsonOut {
		report.Error = domainerrors.ToErrorDetail(err)
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		if encErr := enc.Encode(report); encErr != nil {
			return encErr
		}
		switch {
		case err != nil:
			return &exitError{code: 1}
		case report.Status != 0:
			return &exitError{code: statusCode(report.Status)}
		}
		return nil
	}

	if !opts.realtime {
		_, _ = io.WriteString(cmd.OutOrStdout(), report.Output)
	}
	if report.Truncated {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: output truncated to %d bytes\n", opts.maxOutput)
	}
	if err != nil {
		return err
	}
	if report.Status != 0 {
		return &exitError{
			err:  fmt.Errorf("%s: init returned status %d", report.Name, report.Status),
			code: statusCode(report.Status),
		}
	}

	if opts.sample && len(report.Samples) > 0 {
		fmt.Fprintln(cmd.OutOrStdout(), samplesTable(report.Samples))
	} else if len(report.Getters) > 0 {
		fmt.Fprintln(cmd.OutOrStdout(), gettersTable(report.Getters))
	}
	return nil
}

func execute(ctx context.Context, cmd *cobra.Command, opts *runOptions, path string) (runReport, error) {
	var report runReport

	events, err := parseKeyEvents(opts.keys)
	if err != nil {
		return report, err
	}

	cfg, err := loadConfig(path, &opts.values)
	if err != nil {
		return report, err
	}
	report.Name = cfg.Name

	wasm, err := readModule(cfg)
	if err != nil {
		return report, err
	}

	logger := wazeroadapter.Logger().With(zap.String("program", cfg.Name))

	out := hostfuncs.NewBoundedBuffer(opts.maxOutput)
	var transcript io.Writer = out
	if opts.realtime && !opts.jsonOut {
		transcript = cmd.OutOrStdout()
	}

	envOpts := []hostfuncs.ConsoleOption{hostfuncs.WithWriter(transcript)}
	if opts.seed != 0 {
		envOpts = append(envOpts, hostfuncs.WithSeed(opts.seed))
	}

	execOpts := []host.Option{
		host.WithEnv(hostfuncs.NewConsoleEnv(envOpts...)),
		host.WithNamespace(cfg.Imports.Namespace),
		host.WithMemoryLimitPages(cfg.MemoryLimitPages),
		host.WithLogger(logger),
		host.WithTrace(cfg.Trace || opts.trace),
	}
	if opts.noWASI {
		execOpts = append(execOpts, host.WithoutWASI())
	}

	exec, err := host.NewExecutor(ctx, execOpts...)
	if err != nil {
		return report, err
	}
	defer exec.Close(context.WithoutCancel(ctx))

	inst, err := exec.LoadConfig(ctx, cfg, wasm,
		host.WithStdout(transcript),
		host.WithStderr(cmd.ErrOrStderr()))
	if err != nil {
		return report, err
	}

	driver := host.NewDriver(inst,
		host.WithFrameRate(cfg.FrameRate),
		host.WithRealtime(opts.realtime),
		host.WithKeyEvents(events...),
		host.WithSampling(opts.sample))

	res, err := driver.Run(ctx, opts.frames)
	report.RunResult = res
	report.Output = out.String()
	report.Truncated = out.Truncated()
	if err != nil {
		return report, err
	}
	if res.Status == 0 {
		report.Getters = inst.Sample(ctx)
	}

	logger.Debug("run finished",
		zap.Int32("status", res.Status),
		zap.Int("frames", res.Frames),
		zap.Int("output_bytes", out.Len()))
	return report, nil
}

var headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return lipgloss.NewStyle().Padding(0, 1)
		}).
		Headers(headers...)
}

func gettersTable(values map[string]float64) string {
	t := newTable("getter", "value")
	for _, name := range sortedKeys(values) {
		t.Row(name, formatValue(values[name]))
	}
	return t.String()
}

func samplesTable(samples []entities.FrameSample) string {
	names := sortedKeys(samples[0].Values)
	t := newTable(append([]string{"frame"}, names...)...)
	for _, s := range samples {
		row := []string{strconv.Itoa(s.Frame)}
		for _, name := range names {
			row = append(row, formatValue(s.Values[name]))
		}
		t.Row(row...)
	}
	return t.String()
}

func sortedKeys(m map[string]float64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
