package schema

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decode(t *testing.T, b []byte) map[string]interface{} {
	t.Helper()
	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(b, &decoded))
	return decoded
}

func TestGenerateSchema_NestedStruct(t *testing.T) {
	type Canvas struct {
		Width  int `json:"width"`
		Height int `json:"height"`
	}
	type Config struct {
		Canvas Canvas `json:"canvas"`
		Name   string `json:"name"`
	}

	schema, err := GenerateSchema(Config{})
	require.NoError(t, err)
	decode(t, schema)

	s := string(schema)
	assert.Contains(t, s, "canvas")
	assert.Contains(t, s, "width")
	assert.Contains(t, s, "name")
}

func TestGenerateSchema_EmptyStruct(t *testing.T) {
	type EmptyConfig struct{}

	schema, err := GenerateSchema(EmptyConfig{})
	require.NoError(t, err)
	assert.NotEmpty(t, decode(t, schema))
}

func TestBridgeConfigSchema(t *testing.T) {
	schema, err := BridgeConfigSchema()
	require.NoError(t, err)
	doc := decode(t, schema)

	assert.Equal(t, SchemaID, doc["$id"])
	assert.Equal(t, []interface{}{"name", "module"}, doc["required"])

	props, ok := doc["properties"].(map[string]interface{})
	require.True(t, ok)
	for _, key := range []string{"name", "module", "imports", "exports", "canvas", "frame_rate", "memory_limit_pages", "trace"} {
		assert.Contains(t, props, key)
	}

	frameRate := props["frame_rate"].(map[string]interface{})
	assert.Equal(t, 1.0, frameRate["minimum"])
	assert.Equal(t, 240.0, frameRate["maximum"])
	assert.Equal(t, 60.0, frameRate["default"])

	canvas := props["canvas"].(map[string]interface{})
	assert.NotContains(t, canvas, "required")
	canvasProps := canvas["properties"].(map[string]interface{})
	assert.Contains(t, canvasProps, "element")
	assert.Contains(t, canvasProps, "width")
}
