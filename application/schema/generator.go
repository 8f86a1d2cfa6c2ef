// Package schema generates JSON schemas for bridge configuration files.
package schema

import (
	"encoding/json"
	"fmt"

	"github.com/invopop/jsonschema"

	"github.com/z-libs/zwasm-go/domain/entities"
)

// SchemaID identifies the bridge config schema.
const SchemaID = "https://github.com/z-libs/zwasm-go/schemas/bridge.json"

// GenerateSchema creates a JSON schema from a Go struct.
// It uses the `invopop/jsonschema` library to reflect on the struct
// and generate a standard JSON Schema (Draft 2020-12).
func GenerateSchema(v interface{}) ([]byte, error) {
	reflector := jsonschema.Reflector{
		ExpandedStruct: true, // Expand struct definitions inline
	}
	return marshal(reflector.Reflect(v))
}

// BridgeConfigSchema returns the schema of a bridge config file. Property
// names follow the YAML keys. Only name and module are required since
// everything else has a default.
func BridgeConfigSchema() ([]byte, error) {
	reflector := jsonschema.Reflector{
		ExpandedStruct: true,
		DoNotReference: true,
		FieldNameTag:   "yaml",
	}
	s := reflector.Reflect(&entities.BridgeConfig{})
	s.ID = jsonschema.ID(SchemaID)
	s.Title = "zwasm bridge config"
	s.Description = "How a host loads and drives one guest module."
	clearRequired(s)
	s.Required = []string{"name", "module"}
	return marshal(s)
}

func clearRequired(s *jsonschema.Schema) {
	if s == nil {
		return
	}
	s.Required = nil
	if s.Properties == nil {
		return
	}
	for pair := s.Properties.Oldest(); pair != nil; pair = pair.Next() {
		clearRequired(pair.Value)
	}
}

func marshal(s *jsonschema.Schema) ([]byte, error) {
	jsonBytes, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal schema: %w", err)
	}
	return jsonBytes, nil
}
