//go:build !wasip1

package wasm

import "github.com/z-libs/zwasm-go/domain/ports"

// Compile-time interface compliance check
var _ ports.DOMHost = (*HostAdapter)(nil)

// SetHTML prints the DOM update instead of building a script for it.
func (h *HostAdapter) SetHTML(elementID, html string) bool {
	printf("[DOM] Set #%s HTML to: %s\n", elementID, html)
	return true
}
