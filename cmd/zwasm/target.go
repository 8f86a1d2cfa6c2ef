package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/imports/wasi_snapshot_preview1"

	"github.com/z-libs/zwasm-go/application/config"
	"github.com/z-libs/zwasm-go/domain/entities"
	"github.com/z-libs/zwasm-go/host"
)

// valueFlags are the template values a config file is rendered with.
type valueFlags struct {
	file string
	sets []string
}

func (v *valueFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&v.file, "values", "f", "", "YAML file of config template values")
	cmd.Flags().StringArrayVar(&v.sets, "set", nil, "Config template value key=value (repeatable)")
}

func (v *valueFlags) values() (config.Values, error) {
	values := config.Values{}
	if v.file != "" {
		fromFile, err := config.LoadFile(v.file)
		if err != nil {
			return nil, err
		}
		values = config.Merge(values, fromFile)
	}
	assigned, err := config.ParseAssignments(v.sets)
	if err != nil {
		return nil, err
	}
	return config.Merge(values, assigned), nil
}

// loadConfig reads a bridge config, or synthesizes the default one when
// path names a .wasm file directly.
func loadConfig(path string, vf *valueFlags) (*entities.BridgeConfig, error) {
	ext := filepath.Ext(path)
	if strings.EqualFold(ext, ".wasm") {
		cfg := entities.DefaultBridgeConfig()
		cfg.Name = strings.TrimSuffix(filepath.Base(path), ext)
		cfg.Module = path
		return &cfg, nil
	}

	values, err := vf.values()
	if err != nil {
		return nil, err
	}
	return host.NewLoader().LoadFile(path, values)
}

func readModule(cfg *entities.BridgeConfig) ([]byte, error) {
	wasm, err := os.ReadFile(cfg.Module)
	if err != nil {
		return nil, fmt.Errorf("failed to read module: %w", err)
	}
	return wasm, nil
}

// importsWASI reports whether the module imports anything from
// wasi_snapshot_preview1, as guests built by the Go toolchain do.
func importsWASI(ctx context.Context, wasm []byte) (bool, error) {
	rt := wazero.NewRuntimeWithConfig(ctx, wazero.NewRuntimeConfigInterpreter())
	defer rt.Close(ctx)

	compiled, err := rt.CompileModule(ctx, wasm)
	if err != nil {
		return false, fmt.Errorf("failed to compile module: %w", err)
	}
	for _, def := range compiled.ImportedFunctions() {
		if module, _, _ := def.Import(); module == wasi_snapshot_preview1.ModuleName {
			return true, nil
		}
	}
	return false, nil
}
