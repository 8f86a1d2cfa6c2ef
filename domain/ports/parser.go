package ports

import "github.com/z-libs/zwasm-go/domain/entities"

// ConfigParser parses raw YAML bytes into a BridgeConfig.
type ConfigParser interface {
	// Parse unmarshals YAML bytes into a BridgeConfig struct.
	Parse(data []byte) (*entities.BridgeConfig, error)
}
