package hostfuncs

import "fmt"

// NotFoundError is returned by Invoke for an unknown function name.
type NotFoundError struct {
	Module string
	Name   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("unknown host function: %s.%s", e.Module, e.Name)
}

// PanicError wraps a panic recovered from a host function.
type PanicError struct {
	Value    any
	Function string
}

func (e *PanicError) Error() string {
	msg := "panic recovered"
	switch v := e.Value.(type) {
	case error:
		msg = v.Error()
	case string:
		msg = v
	}
	if e.Function != "" {
		return fmt.Sprintf("host function %s: panic: %s", e.Function, msg)
	}
	return "panic: " + msg
}

// Unwrap returns the panic value when it is an error.
func (e *PanicError) Unwrap() error {
	if err, ok := e.Value.(error); ok {
		return err
	}
	return nil
}
