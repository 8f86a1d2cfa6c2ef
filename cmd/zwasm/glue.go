package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/z-libs/zwasm-go/application/glue"
	wazeroadapter "github.com/z-libs/zwasm-go/infrastructure/wazero"
)

type glueOptions struct {
	values valueFlags
	outDir string
	script string
	wasi   string
}

func newGlueCmd() *cobra.Command {
	opts := &glueOptions{}

	cmd := &cobra.Command{
		Use:   "glue <zwasm.yaml|module.wasm>",
		Short: "Render the browser loader for a guest",
		Long: `Render the JavaScript that runs a guest in a browser.

The loader implements the env imports against a 2D canvas, forwards
keydown and keyup events, and drives the frame export from
requestAnimationFrame.

Without --out the loader is written to stdout. With --out the directory
receives the loader, an index.html hosting the canvas, and a copy of the
module, ready to be served as static files.`,
		Example: `  zwasm glue zwasm.yaml > zwasm.js
  zwasm glue game.wasm --out dist/`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGlue(cmd, opts, args[0])
		},
	}

	f := cmd.Flags()
	f.StringVarP(&opts.outDir, "out", "o", "", "Write a servable bundle to this directory")
	f.StringVar(&opts.script, "script", glue.DefaultScriptName, "File name of the loader script")
	f.StringVar(&opts.wasi, "wasi", "auto", "Include the WASI shim: auto, on, off")
	opts.values.register(cmd)

	return cmd
}

func runGlue(cmd *cobra.Command, opts *glueOptions, path string) error {
	cfg, err := loadConfig(path, &opts.values)
	if err != nil {
		return err
	}

	var (
		wasm    []byte
		useWASI bool
	)
	switch opts.wasi {
	case "on":
		useWASI = true
	case "off":
	case "auto":
		if wasm, err = readModule(cfg); err != nil {
			return err
		}
		if useWASI, err = importsWASI(cmd.Context(), wasm); err != nil {
			return err
		}
	default:
		return fmt.Errorf("invalid --wasi %q (expected auto, on or off)", opts.wasi)
	}

	glueOpts := []glue.Option{glue.WithWASI(useWASI), glue.WithScriptName(opts.script)}

	if opts.outDir == "" {
		return glue.RenderLoader(cmd.OutOrStdout(), cfg, glueOpts...)
	}

	if wasm == nil {
		if wasm, err = readModule(cfg); err != nil {
			return err
		}
	}
	if err := os.MkdirAll(opts.outDir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	bundled := *cfg
	bundled.Module = filepath.Base(cfg.Module)

	var loader, page bytes.Buffer
	if err := glue.RenderLoader(&loader, &bundled, glueOpts...); err != nil {
		return err
	}
	if err := glue.RenderPage(&page, &bundled, glueOpts...); err != nil {
		return err
	}

	files := []struct {
		name string
		data []byte
	}{
		{opts.script, loader.Bytes()},
		{"index.html", page.Bytes()},
		{bundled.Module, wasm},
	}
	for _, f := range files {
		if err := os.WriteFile(filepath.Join(opts.outDir, f.name), f.data, 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", f.name, err)
		}
	}

	wazeroadapter.Logger().Debug("bundle written",
		zap.String("dir", opts.outDir),
		zap.String("program", cfg.Name),
		zap.Bool("wasi", useWASI))
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s, index.html and %s to %s\n", opts.script, bundled.Module, opts.outDir)
	return nil
}
