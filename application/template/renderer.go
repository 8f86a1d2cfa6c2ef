// Package template renders bridge configuration files with text/template
// before they are parsed.
package template

import (
	"bytes"
	"fmt"
	"os"
	"strings"
	"text/template"

	"github.com/z-libs/zwasm-go/domain/ports"
)

// templateConfig holds configuration for the GoTemplateEngine.
type templateConfig struct {
	lookupEnv func(string) (string, bool)
	strict    bool // Fail on missing keys
}

func defaultTemplateConfig() templateConfig {
	return templateConfig{
		strict:    true,
		lookupEnv: os.LookupEnv,
	}
}

// TemplateOption configures a GoTemplateEngine.
type TemplateOption func(*templateConfig)

// WithStrict enables/disables strict mode for missing keys.
// When enabled (default), template rendering fails if a referenced key is missing.
func WithStrict(enabled bool) TemplateOption {
	return func(c *templateConfig) {
		c.strict = enabled
	}
}

// WithEnvLookup replaces the environment used by the env function.
func WithEnvLookup(lookup func(string) (string, bool)) TemplateOption {
	return func(c *templateConfig) {
		if lookup != nil {
			c.lookupEnv = lookup
		}
	}
}

// GoTemplateEngine implements TemplateEngine using standard text/template.
//
// Values are available as {{.config.key}}; in strict mode a missing key is
// an error. Three functions are defined:
//
//	{{env "NAME"}}               environment variable, empty when unset
//	{{value "a.b"}}              value at a dotted path, nil when missing
//	{{default "x" (value "y")}}  second argument unless nil or empty
type GoTemplateEngine struct {
	config templateConfig
}

// NewGoTemplateEngine creates a new GoTemplateEngine.
func NewGoTemplateEngine(opts ...TemplateOption) ports.TemplateEngine {
	cfg := defaultTemplateConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return &GoTemplateEngine{config: cfg}
}

// Render processes the raw config bytes with the provided values.
func (e *GoTemplateEngine) Render(raw []byte, values map[string]interface{}) ([]byte, error) {
	tmpl := template.New("bridge").Funcs(template.FuncMap{
		"env": func(name string) string {
			v, _ := e.config.lookupEnv(name)
			return v
		},
		"value": func(path string) any {
			return lookup(values, path)
		},
		"default": func(def, v any) any {
			if v == nil || v == "" {
				return def
			}
			return v
		},
	})

	// Fail fast on a missing key
	if e.config.strict {
		tmpl = tmpl.Option("missingkey=error")
	}

	tmpl, err := tmpl.Parse(string(raw))
	if err != nil {
		return nil, fmt.Errorf("failed to parse config template: %w", err)
	}

	if values == nil {
		values = map[string]interface{}{}
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, map[string]interface{}{"config": values}); err != nil {
		return nil, fmt.Errorf("failed to execute config template: %w", err)
	}

	return buf.Bytes(), nil
}

// lookup walks a dotted path through nested maps. Missing keys and
// non-map intermediates yield nil.
func lookup(values map[string]interface{}, path string) any {
	var cur any = values
	for _, key := range strings.Split(path, ".") {
		switch m := cur.(type) {
		case map[string]interface{}:
			cur = m[key]
		case map[interface{}]interface{}:
			cur = m[key]
		default:
			return nil
		}
		if cur == nil {
			return nil
		}
	}
	return cur
}
