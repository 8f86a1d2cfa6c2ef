// Package parser decodes bridge configuration files.
package parser

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/z-libs/zwasm-go/domain/entities"
	"github.com/z-libs/zwasm-go/domain/ports"
)

// YamlConfigParser implements ConfigParser for YAML.
type YamlConfigParser struct {
	strict bool
}

// ParserOption configures a YamlConfigParser.
type ParserOption func(*YamlConfigParser)

// WithKnownFields rejects keys that do not map to a BridgeConfig field.
// Enabled by default.
func WithKnownFields(enabled bool) ParserOption {
	return func(p *YamlConfigParser) {
		p.strict = enabled
	}
}

// NewYamlConfigParser creates a new YamlConfigParser.
func NewYamlConfigParser(opts ...ParserOption) ports.ConfigParser {
	p := &YamlConfigParser{strict: true}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Parse unmarshals YAML bytes into a BridgeConfig. An empty document yields
// a zero config.
func (p *YamlConfigParser) Parse(data []byte) (*entities.BridgeConfig, error) {
	var cfg entities.BridgeConfig
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(p.strict)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("invalid bridge config: %w", err)
	}
	return &cfg, nil
}
