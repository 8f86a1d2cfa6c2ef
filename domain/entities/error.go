package entities

import "fmt"

// ErrorDetail is the structured form of a bridge failure, as reported by the
// CLI in JSON mode.
// Types: "resolution", "export", "trap", "config", "memory", "internal".
type ErrorDetail struct {
	Details map[string]any `json:"details,omitempty"`
	Message string         `json:"message"`
	Type    string         `json:"type"`
	Code    string         `json:"code,omitempty"`
}

// Error implements the error interface.
func (e *ErrorDetail) Error() string {
	if e == nil {
		return ""
	}
	msg := e.Message
	if e.Type != "" && e.Type != "internal" {
		msg = fmt.Sprintf("%s: %s", e.Type, msg)
	}
	if e.Code != "" {
		msg = fmt.Sprintf("%s [%s]", msg, e.Code)
	}
	return msg
}

// NewErrorDetail creates a new ErrorDetail with the given type and message.
func NewErrorDetail(errorType, message string) *ErrorDetail {
	return &ErrorDetail{Type: errorType, Message: message}
}
