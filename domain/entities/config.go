package entities

// Default names used by the bridge when a configuration leaves them empty.
const (
	DefaultImportNamespace = "env"
	DefaultInitExport      = "main"
	DefaultFrameExport     = "on_frame"
	DefaultKeyExport       = "zwasm_on_key"
	DefaultCanvasElement   = "canvas"
	DefaultCanvasWidth     = 800
	DefaultCanvasHeight    = 600
	DefaultFrameRate       = 60
	DefaultMemoryLimit     = 256
)

// BridgeConfig describes how a host drives one guest module.
type BridgeConfig struct {
	// Name identifies the program in logs.
	Name string `json:"name" yaml:"name" validate:"required"`

	// Module is the path of the .wasm binary.
	Module string `json:"module" yaml:"module" validate:"required"`

	Imports ImportConfig `json:"imports" yaml:"imports"`
	Exports ExportConfig `json:"exports" yaml:"exports"`
	Canvas  CanvasConfig `json:"canvas" yaml:"canvas"`

	// FrameRate is the number of ticks per second requested from the host.
	FrameRate int `json:"frame_rate" yaml:"frame_rate" validate:"gte=1,lte=240" jsonschema:"minimum=1,maximum=240,default=60"`

	// MemoryLimitPages caps guest linear memory in 64 KiB pages.
	MemoryLimitPages uint32 `json:"memory_limit_pages" yaml:"memory_limit_pages" validate:"gte=1,lte=65536" jsonschema:"minimum=1,maximum=65536,default=256"`

	// Trace enables per-call logging of host imports.
	Trace bool `json:"trace,omitempty" yaml:"trace,omitempty"`
}

// ImportConfig names the namespace under which host functions are resolved.
type ImportConfig struct {
	Namespace string `json:"namespace" yaml:"namespace" validate:"required" jsonschema:"default=env"`
}

// ExportConfig names the guest entry points.
type ExportConfig struct {
	Init    string   `json:"init" yaml:"init" validate:"required" jsonschema:"default=main"`
	Frame   string   `json:"frame" yaml:"frame" jsonschema:"default=on_frame"`
	Key     string   `json:"key" yaml:"key" jsonschema:"default=zwasm_on_key"`
	Getters []string `json:"getters,omitempty" yaml:"getters,omitempty" validate:"dive,required"`
}

// CanvasConfig describes the drawing surface exposed to the guest.
type CanvasConfig struct {
	Element string `json:"element" yaml:"element" validate:"required" jsonschema:"default=canvas"`
	Width   int    `json:"width" yaml:"width" validate:"gte=1,lte=8192" jsonschema:"minimum=1,maximum=8192,default=800"`
	Height  int    `json:"height" yaml:"height" validate:"gte=1,lte=8192" jsonschema:"minimum=1,maximum=8192,default=600"`
}

// DefaultBridgeConfig returns a configuration with every optional field set.
func DefaultBridgeConfig() BridgeConfig {
	var c BridgeConfig
	c.ApplyDefaults()
	return c
}

// ApplyDefaults fills zero-valued optional fields.
func (c *BridgeConfig) ApplyDefaults() {
	if c.Imports.Namespace == "" {
		c.Imports.Namespace = DefaultImportNamespace
	}
	if c.Exports.Init == "" {
		c.Exports.Init = DefaultInitExport
	}
	if c.Exports.Frame == "" {
		c.Exports.Frame = DefaultFrameExport
	}
	if c.Exports.Key == "" {
		c.Exports.Key = DefaultKeyExport
	}
	if c.Canvas.Element == "" {
		c.Canvas.Element = DefaultCanvasElement
	}
	if c.Canvas.Width == 0 {
		c.Canvas.Width = DefaultCanvasWidth
	}
	if c.Canvas.Height == 0 {
		c.Canvas.Height = DefaultCanvasHeight
	}
	if c.FrameRate == 0 {
		c.FrameRate = DefaultFrameRate
	}
	if c.MemoryLimitPages == 0 {
		c.MemoryLimitPages = DefaultMemoryLimit
	}
}
