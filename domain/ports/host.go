package ports

// Host is the guest's view of the embedding environment. Each method maps
// to one import of the "env" namespace.
type Host interface {
	// Log emits a line of text (js_log).
	Log(msg string)

	// Now returns seconds elapsed on a monotonic clock (js_time).
	Now() float64

	// Random returns a uniform value in [0, 1) (js_rand).
	Random() float32

	// Eval executes a script in the host (js_eval).
	Eval(code string)

	// FillRect draws a filled rectangle in the current style (js_canvas_rect).
	FillRect(x, y, w, h float32)

	// FillStyle sets the fill style for subsequent rectangles (js_canvas_style).
	FillStyle(color string)

	// ClearCanvas clears the drawing surface (js_canvas_clear).
	ClearCanvas()
}

// DOMHost is implemented by hosts that can replace an element's HTML
// directly. Guests fall back to evaluating a generated script otherwise.
type DOMHost interface {
	SetHTML(elementID, html string) bool
}
