package ports

import "github.com/z-libs/zwasm-go/domain/entities"

// ConfigValidator checks a parsed BridgeConfig.
type ConfigValidator interface {
	Validate(cfg *entities.BridgeConfig) error
}
