// Package config collects the values a bridge config template is rendered
// with, from --set assignments and YAML values files.
package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/z-libs/zwasm-go/domain/errors"
)

// Values is the data available to a config template as {{.config.key}}.
type Values = map[string]any

// ParseAssignments turns key=value pairs into Values. Dotted keys nest
// ("canvas.width=600" sets {"canvas": {"width": 600}}) and values are
// decoded as YAML scalars, so numbers and booleans keep their types.
func ParseAssignments(pairs []string) (Values, error) {
	out := Values{}
	for _, pair := range pairs {
		key, raw, ok := strings.Cut(pair, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, &errors.ConfigError{Field: pair, Err: fmt.Errorf("expected key=value")}
		}
		if err := set(out, strings.Split(key, "."), scalar(raw)); err != nil {
			return nil, &errors.ConfigError{Field: key, Err: err}
		}
	}
	return out, nil
}

func scalar(raw string) any {
	var v any
	if err := yaml.Unmarshal([]byte(raw), &v); err != nil || v == nil {
		return raw
	}
	switch v.(type) {
	case map[string]any, []any:
		return raw
	}
	return v
}

func set(dst Values, path []string, v any) error {
	for i, part := range path[:len(path)-1] {
		next, exists := dst[part]
		if !exists {
			m := Values{}
			dst[part] = m
			dst = m
			continue
		}
		m, ok := next.(Values)
		if !ok {
			return fmt.Errorf("%s is not a map", strings.Join(path[:i+1], "."))
		}
		dst = m
	}
	dst[path[len(path)-1]] = v
	return nil
}

// LoadFile reads a YAML mapping of values.
func LoadFile(path string) (Values, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read values: %w", err)
	}
	out := Values{}
	if err := yaml.Unmarshal(raw, &out); err != nil {
		return nil, &errors.ConfigError{Field: path, Err: err}
	}
	return out, nil
}

// Merge copies src into dst recursively; src wins on conflicts.
func Merge(dst, src Values) Values {
	if dst == nil {
		dst = Values{}
	}
	for k, v := range src {
		sub, isMap := v.(Values)
		existing, hasMap := dst[k].(Values)
		if isMap && hasMap {
			dst[k] = Merge(existing, sub)
			continue
		}
		dst[k] = v
	}
	return dst
}

// GetInt extracts an int, handling the numeric types YAML and JSON decode to.
func GetInt(values Values, key string) (int, bool) {
	switch n := values[key].(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case float64:
		return int(n), true
	default:
		return 0, false
	}
}

// GetString extracts a string.
func GetString(values Values, key string) (string, bool) {
	s, ok := values[key].(string)
	return s, ok
}
