// Package glue renders the browser side of the bridge: a JavaScript loader
// that implements the env imports against the DOM and a canvas, and a
// minimal page to host it.
package glue

import (
	_ "embed"
	"fmt"
	htmltemplate "html/template"
	"io"
	"text/template"

	"github.com/z-libs/zwasm-go/domain/entities"
)

//go:embed loader.js.tmpl
var loaderSource string

//go:embed index.html.tmpl
var pageSource string

var (
	loaderTemplate = template.Must(template.New("loader.js").Parse(loaderSource))
	pageTemplate   = htmltemplate.Must(htmltemplate.New("index.html").Parse(pageSource))
)

// DefaultScriptName is the file name the page loads the loader from.
const DefaultScriptName = "zwasm.js"

type glueConfig struct {
	script string
	wasi   bool
}

// Option configures rendering.
type Option func(*glueConfig)

// WithWASI adds a wasi_snapshot_preview1 shim, needed by guests built with
// the Go toolchain. Output goes to the console; unsupported calls return
// ENOSYS.
func WithWASI(enabled bool) Option {
	return func(c *glueConfig) {
		c.wasi = enabled
	}
}

// WithScriptName sets the loader path referenced by the page.
func WithScriptName(name string) Option {
	return func(c *glueConfig) {
		if name != "" {
			c.script = name
		}
	}
}

type view struct {
	Config *entities.BridgeConfig
	Script string
	WASI   bool
}

func newView(cfg *entities.BridgeConfig, opts []Option) view {
	c := glueConfig{script: DefaultScriptName}
	for _, opt := range opts {
		opt(&c)
	}
	withDefaults := *cfg
	withDefaults.ApplyDefaults()
	return view{Config: &withDefaults, Script: c.script, WASI: c.wasi}
}

// RenderLoader writes the JavaScript loader for cfg.
func RenderLoader(w io.Writer, cfg *entities.BridgeConfig, opts ...Option) error {
	if err := loaderTemplate.Execute(w, newView(cfg, opts)); err != nil {
		return fmt.Errorf("failed to render loader: %w", err)
	}
	return nil
}

// RenderPage writes an HTML page with the configured canvas that loads the
// loader script.
func RenderPage(w io.Writer, cfg *entities.BridgeConfig, opts ...Option) error {
	if err := pageTemplate.Execute(w, newView(cfg, opts)); err != nil {
		return fmt.Errorf("failed to render page: %w", err)
	}
	return nil
}
