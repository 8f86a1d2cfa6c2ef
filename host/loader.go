package host

import (
	"fmt"
	"os"
	"path/filepath"

	apptemplate "github.com/z-libs/zwasm-go/application/template"
	"github.com/z-libs/zwasm-go/application/validation"
	"github.com/z-libs/zwasm-go/domain/entities"
	"github.com/z-libs/zwasm-go/domain/ports"
	"github.com/z-libs/zwasm-go/infrastructure/parser"
)

// loaderConfig holds configuration for the Loader.
type loaderConfig struct {
	templateEngine  ports.TemplateEngine
	parser          ports.ConfigParser
	validator       ports.ConfigValidator
	strictTemplates bool // Fail on missing template keys
}

func defaultLoaderConfig() loaderConfig {
	return loaderConfig{
		parser:          parser.NewYamlConfigParser(),
		validator:       validation.NewConfigValidator(),
		strictTemplates: true,
	}
}

// Loader orchestrates the config loading pipeline: template rendering,
// YAML parsing, defaults, validation.
type Loader struct {
	config loaderConfig
}

// LoaderOption configures the Loader.
type LoaderOption func(*loaderConfig)

// WithParser sets a custom config parser.
func WithParser(p ports.ConfigParser) LoaderOption {
	return func(c *loaderConfig) {
		c.parser = p
	}
}

// WithTemplateEngine sets a template engine.
func WithTemplateEngine(t ports.TemplateEngine) LoaderOption {
	return func(c *loaderConfig) {
		c.templateEngine = t
	}
}

// WithValidator sets the validator. A nil validator disables validation.
func WithValidator(v ports.ConfigValidator) LoaderOption {
	return func(c *loaderConfig) {
		c.validator = v
	}
}

// WithStrictTemplates enables/disables strict template mode.
// When enabled (default), template rendering fails if a referenced key is missing.
func WithStrictTemplates(enabled bool) LoaderOption {
	return func(c *loaderConfig) {
		c.strictTemplates = enabled
	}
}

// NewLoader creates a new Loader with defaults.
func NewLoader(opts ...LoaderOption) *Loader {
	cfg := defaultLoaderConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	if cfg.templateEngine == nil {
		cfg.templateEngine = apptemplate.NewGoTemplateEngine(
			apptemplate.WithStrict(cfg.strictTemplates),
		)
	}

	return &Loader{config: cfg}
}

// Load renders, parses, defaults and validates a bridge config.
func (l *Loader) Load(raw []byte, values map[string]interface{}) (*entities.BridgeConfig, error) {
	data, err := l.config.templateEngine.Render(raw, values)
	if err != nil {
		return nil, fmt.Errorf("failed to render config: %w", err)
	}

	cfg, err := l.config.parser.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	cfg.ApplyDefaults()

	if l.config.validator != nil {
		if err := l.config.validator.Validate(cfg); err != nil {
			return nil, err
		}
	}

	return cfg, nil
}

// LoadFile reads path and loads it. A relative module path is resolved
// against the directory of the config file.
func (l *Loader) LoadFile(path string, values map[string]interface{}) (*entities.BridgeConfig, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	cfg, err := l.Load(raw, values)
	if err != nil {
		return nil, err
	}
	if cfg.Module != "" && !filepath.IsAbs(cfg.Module) {
		cfg.Module = filepath.Join(filepath.Dir(path), cfg.Module)
	}
	return cfg, nil
}
