// Package errors provides domain-specific error types for the bridge.
// All error types support error unwrapping via errors.As() and errors.Is().
package errors

import (
	stdErrors "errors"
	"fmt"

	"github.com/z-libs/zwasm-go/domain/entities"
)

// ErrorDetail is an alias to entities.ErrorDetail for convenience.
type ErrorDetail = entities.ErrorDetail

// DetailedError is implemented by error types that can describe themselves
// as a structured ErrorDetail.
type DetailedError interface {
	error
	ToErrorDetail() *entities.ErrorDetail
}

// ToErrorDetail converts a Go error to a structured ErrorDetail.
func ToErrorDetail(err error) *entities.ErrorDetail {
	if err == nil {
		return nil
	}

	var e *entities.ErrorDetail
	if stdErrors.As(err, &e) {
		return e
	}

	var de DetailedError
	if stdErrors.As(err, &de) {
		return de.ToErrorDetail()
	}

	return &entities.ErrorDetail{
		Message: err.Error(),
		Type:    "internal",
	}
}

// ResolutionError reports a guest import the host cannot satisfy.
type ResolutionError struct {
	Module string
	Name   string
	Reason string
}

func (e *ResolutionError) Error() string {
	return fmt.Sprintf("unresolved import %s.%s: %s", e.Module, e.Name, e.Reason)
}

// ToErrorDetail implements DetailedError.
func (e *ResolutionError) ToErrorDetail() *entities.ErrorDetail {
	return &entities.ErrorDetail{
		Message: e.Error(),
		Type:    "resolution",
		Code:    e.Module + "." + e.Name,
	}
}

// ExportError reports a missing or malformed guest export.
type ExportError struct {
	Err  error
	Name string
}

func (e *ExportError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("export %q: %v", e.Name, e.Err)
	}
	return fmt.Sprintf("export %q not found", e.Name)
}

func (e *ExportError) Unwrap() error {
	return e.Err
}

// ToErrorDetail implements DetailedError.
func (e *ExportError) ToErrorDetail() *entities.ErrorDetail {
	return &entities.ErrorDetail{Message: e.Error(), Type: "export", Code: e.Name}
}

// TrapError wraps a failure raised while the guest was executing an export.
type TrapError struct {
	Err    error
	Export string
}

func (e *TrapError) Error() string {
	return fmt.Sprintf("guest trapped in %s: %v", e.Export, e.Err)
}

func (e *TrapError) Unwrap() error {
	return e.Err
}

// ToErrorDetail implements DetailedError.
func (e *TrapError) ToErrorDetail() *entities.ErrorDetail {
	return &entities.ErrorDetail{Message: e.Error(), Type: "trap", Code: e.Export}
}

// ConfigError represents a configuration validation error.
type ConfigError struct {
	Err   error
	Field string
}

func (e *ConfigError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("config validation failed for field '%s': %v", e.Field, e.Err)
	}
	return fmt.Sprintf("config validation failed: %v", e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// ToErrorDetail implements DetailedError.
func (e *ConfigError) ToErrorDetail() *entities.ErrorDetail {
	return &entities.ErrorDetail{Message: e.Error(), Type: "config", Code: e.Field}
}

// MemoryError reports a linear-memory request that could not be satisfied.
type MemoryError struct {
	Requested uint32
	Cursor    uint32
	Size      uint32
}

func (e *MemoryError) Error() string {
	return fmt.Sprintf("memory exhausted: requested %d bytes at offset %d, memory size %d bytes",
		e.Requested, e.Cursor, e.Size)
}

// ToErrorDetail implements DetailedError.
func (e *MemoryError) ToErrorDetail() *entities.ErrorDetail {
	return &entities.ErrorDetail{Message: e.Error(), Type: "memory", Code: "exhausted"}
}
