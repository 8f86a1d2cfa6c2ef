package host

import (
	"io"

	"go.uber.org/zap"

	"github.com/z-libs/zwasm-go/domain/entities"
	"github.com/z-libs/zwasm-go/domain/ports"
	"github.com/z-libs/zwasm-go/hostfuncs"
	wazeroadapter "github.com/z-libs/zwasm-go/infrastructure/wazero"
)

type executorConfig struct {
	registry         *hostfuncs.HandlerRegistry
	env              ports.Env
	logger           *zap.Logger
	adapterOpts      []wazeroadapter.AdapterOption
	namespace        string
	memoryLimitPages uint32
	trace            bool
	wasi             bool
}

// Option defines a functional option for configuring the Executor.
type Option func(*executorConfig)

// WithHostFunctions configures the executor with a host function registry.
// It takes precedence over WithEnv.
func WithHostFunctions(registry *hostfuncs.HandlerRegistry) Option {
	return func(c *executorConfig) {
		c.registry = registry
	}
}

// WithEnv sets the implementation of the env imports. Defaults to a
// hostfuncs.ConsoleEnv writing to stdout.
func WithEnv(env ports.Env) Option {
	return func(c *executorConfig) {
		c.env = env
	}
}

// WithNamespace sets the import module name the env functions are
// registered under. Ignored when WithHostFunctions is used.
func WithNamespace(ns string) Option {
	return func(c *executorConfig) {
		c.namespace = ns
	}
}

// WithMemoryLimitPages caps the linear memory of every guest.
func WithMemoryLimitPages(pages uint32) Option {
	return func(c *executorConfig) {
		if pages > 0 {
			c.memoryLimitPages = pages
		}
	}
}

// WithLogger sets the zap logger used for lifecycle and trace logging.
func WithLogger(l *zap.Logger) Option {
	return func(c *executorConfig) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithTrace logs every host import call at debug level.
func WithTrace(enabled bool) Option {
	return func(c *executorConfig) {
		c.trace = enabled
	}
}

// WithoutWASI skips instantiating wasi_snapshot_preview1. Guests built by
// the Go toolchain need it; freestanding guests do not.
func WithoutWASI() Option {
	return func(c *executorConfig) {
		c.wasi = false
	}
}

// WithAdapterOptions passes options through to the wazero adapter.
func WithAdapterOptions(opts ...wazeroadapter.AdapterOption) Option {
	return func(c *executorConfig) {
		c.adapterOpts = append(c.adapterOpts, opts...)
	}
}

type instanceConfig struct {
	stdout  io.Writer
	stderr  io.Writer
	name    string
	exports entities.ExportConfig
}

// InstanceOption configures a module being loaded.
type InstanceOption func(*instanceConfig)

// WithName names the instance. Names must be unique per executor; the
// default is an anonymous instance.
func WithName(name string) InstanceOption {
	return func(c *instanceConfig) {
		c.name = name
	}
}

// WithExports overrides the export names the instance calls.
func WithExports(exports entities.ExportConfig) InstanceOption {
	return func(c *instanceConfig) {
		c.exports = exports
	}
}

// WithStdout routes the guest's WASI stdout to w.
func WithStdout(w io.Writer) InstanceOption {
	return func(c *instanceConfig) {
		c.stdout = w
	}
}

// WithStderr routes the guest's WASI stderr to w.
func WithStderr(w io.Writer) InstanceOption {
	return func(c *instanceConfig) {
		c.stderr = w
	}
}
