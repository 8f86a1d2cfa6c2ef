// Package validation checks bridge configurations with go-playground
// validator tags plus a few cross-field rules.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/z-libs/zwasm-go/domain/entities"
	domainerrors "github.com/z-libs/zwasm-go/domain/errors"
	"github.com/z-libs/zwasm-go/domain/ports"
)

// ConfigValidator implements ports.ConfigValidator.
type ConfigValidator struct {
	validate *validator.Validate
}

// NewConfigValidator creates a validator that reports fields by their YAML
// path, e.g. "canvas.width".
func NewConfigValidator() ports.ConfigValidator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("yaml"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return &ConfigValidator{validate: v}
}

// Validate returns nil or one *errors.ConfigError per violation, joined.
func (v *ConfigValidator) Validate(cfg *entities.BridgeConfig) error {
	if cfg == nil {
		return &domainerrors.ConfigError{Err: errors.New("config is nil")}
	}

	var errs []error
	if err := v.validate.Struct(cfg); err != nil {
		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) {
			return &domainerrors.ConfigError{Err: err}
		}
		for _, fe := range fieldErrs {
			errs = append(errs, &domainerrors.ConfigError{
				Field: fieldPath(fe.Namespace()),
				Err:   describe(fe),
			})
		}
	}
	errs = append(errs, checkExports(cfg.Exports)...)
	return errors.Join(errs...)
}

// checkExports rejects one export bound to two roles.
func checkExports(e entities.ExportConfig) []error {
	var errs []error
	seen := map[string]string{}
	claim := func(role, name string) {
		if name == "" {
			return
		}
		if prev, ok := seen[name]; ok {
			errs = append(errs, &domainerrors.ConfigError{
				Field: "exports." + role,
				Err:   fmt.Errorf("%q is already used as exports.%s", name, prev),
			})
			return
		}
		seen[name] = role
	}
	claim("init", e.Init)
	claim("frame", e.Frame)
	claim("key", e.Key)
	for i, g := range e.Getters {
		claim(fmt.Sprintf("getters[%d]", i), g)
	}
	return errs
}

// fieldPath drops the root struct name from a validator namespace.
func fieldPath(ns string) string {
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

func describe(fe validator.FieldError) error {
	switch fe.Tag() {
	case "required":
		return errors.New("is required")
	case "gte":
		return fmt.Errorf("must be at least %s", fe.Param())
	case "lte":
		return fmt.Errorf("must be at most %s", fe.Param())
	}
	return fmt.Errorf("failed %q check (value %v)", fe.Tag(), fe.Value())
}
