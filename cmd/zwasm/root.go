package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	wazeroadapter "github.com/z-libs/zwasm-go/infrastructure/wazero"
)

type globalOptions struct {
	logFormat string
	verbose   bool
}

func newRootCmd() *cobra.Command {
	opts := &globalOptions{}

	cmd := &cobra.Command{
		Use:   "zwasm",
		Short: "Run and package zwasm WebAssembly guests",
		Long: `zwasm - host WebAssembly programs written against the zwasm bridge.

A guest imports a small set of env functions (js_log, js_time, js_rand,
js_eval and the js_canvas_* calls) and exports main, on_frame and
zwasm_on_key. zwasm runs such guests headless or in the terminal, and
renders the JavaScript loader that runs them in a browser.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			logger, err := newLogger(opts, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			wazeroadapter.SetLogger(logger)
			return nil
		},
	}

	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Enable debug logging")
	cmd.PersistentFlags().StringVar(&opts.logFormat, "log-format", "console", "Log format: console, json")

	cmd.AddCommand(
		newRunCmd(),
		newPlayCmd(),
		newGlueCmd(),
		newSchemaCmd(),
		newVersionCmd(),
	)
	return cmd
}

// Execute runs the root command and exits the process on failure.
func Execute() {
	cmd := newRootCmd()
	err := cmd.Execute()
	if err == nil {
		return
	}

	code := 1
	var ee *exitError
	if errors.As(err, &ee) {
		code = ee.code
		err = ee.err
	}
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
	}
	os.Exit(code)
}

// exitError carries a process exit code. A nil err means the failure has
// already been reported.
type exitError struct {
	err  error
	code int
}

func (e *exitError) Error() string {
	if e.err == nil {
		return fmt.Sprintf("exit status %d", e.code)
	}
	return e.err.Error()
}

func (e *exitError) Unwrap() error {
	return e.err
}

// statusCode maps a guest init status to a process exit code.
func statusCode(status int32) int {
	if status > 0 && status < 256 {
		return int(status)
	}
	return 1
}
