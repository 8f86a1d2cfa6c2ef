// Package input tracks which keys are currently held. The host writes
// transitions as they arrive and guest code polls the table once per frame.
// Only the current level is stored, so a press and release between two
// polls is not observed.
package input

// TableSize is the number of key codes tracked, [0, TableSize).
const TableSize = 256

// Key codes as reported by browser keyboard events.
const (
	KeySpace int32 = 32
	KeyLeft  int32 = 37
	KeyUp    int32 = 38
	KeyRight int32 = 39
	KeyDown  int32 = 40
)

// KeyTable is the held-state of every tracked key code. The zero value has
// every key up.
type KeyTable struct {
	down [TableSize]bool
}

// Set records a transition. Codes outside [0, TableSize) are ignored.
func (t *KeyTable) Set(code int32, down bool) {
	if code < 0 || code >= TableSize {
		return
	}
	t.down[code] = down
}

// IsDown reports whether code is held. Out-of-range codes are never held.
func (t *KeyTable) IsDown(code int32) bool {
	if code < 0 || code >= TableSize {
		return false
	}
	return t.down[code]
}

// Reset releases every key.
func (t *KeyTable) Reset() {
	t.down = [TableSize]bool{}
}

// Down returns the held key codes in ascending order.
func (t *KeyTable) Down() []int32 {
	var codes []int32
	for code, held := range t.down {
		if held {
			codes = append(codes, int32(code))
		}
	}
	return codes
}
