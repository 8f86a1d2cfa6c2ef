package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/z-libs/zwasm-go/domain/entities"
	"github.com/z-libs/zwasm-go/input"
)

var keyNames = map[string]int32{
	"space":     input.KeySpace,
	"left":      input.KeyLeft,
	"up":        input.KeyUp,
	"right":     input.KeyRight,
	"down":      input.KeyDown,
	"enter":     13,
	"escape":    27,
	"esc":       27,
	"tab":       9,
	"backspace": 8,
	"shift":     16,
}

// parseKeyCode accepts a key name, a single letter or digit, or a numeric
// browser key code of two or more digits. A lone digit is the digit key.
func parseKeyCode(s string) (int32, error) {
	if code, ok := keyNames[strings.ToLower(s)]; ok {
		return code, nil
	}
	if len(s) > 1 {
		n, err := strconv.ParseInt(s, 10, 32)
		if err != nil {
			return 0, fmt.Errorf("unknown key %q", s)
		}
		return checkKeyCode(int32(n))
	}
	if len(s) == 1 {
		c := strings.ToUpper(s)[0]
		if (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9') {
			return int32(c), nil
		}
	}
	return 0, fmt.Errorf("unknown key %q", s)
}

func checkKeyCode(code int32) (int32, error) {
	if code < 0 || code >= input.TableSize {
		return 0, fmt.Errorf("key code %d out of range [0, %d)", code, input.TableSize)
	}
	return code, nil
}

// parseKeyEvent parses key@frame[:up|:down]. Without a suffix the key is
// pressed.
func parseKeyEvent(arg string) (entities.KeyEvent, error) {
	key, rest, ok := strings.Cut(arg, "@")
	if !ok || key == "" {
		return entities.KeyEvent{}, fmt.Errorf("invalid key event %q (expected key@frame[:up])", arg)
	}

	frameStr, state, hasState := strings.Cut(rest, ":")
	frame, err := strconv.Atoi(frameStr)
	if err != nil {
		return entities.KeyEvent{}, fmt.Errorf("invalid frame in key event %q: %w", arg, err)
	}

	down := true
	if hasState {
		switch strings.ToLower(state) {
		case "down", "press":
		case "up", "release":
			down = false
		default:
			return entities.KeyEvent{}, fmt.Errorf("invalid key state %q in %q (expected up or down)", state, arg)
		}
	}

	code, err := parseKeyCode(key)
	if err != nil {
		return entities.KeyEvent{}, err
	}
	return entities.KeyEvent{Frame: frame, Code: code, Down: down}, nil
}

func parseKeyEvents(args []string) ([]entities.KeyEvent, error) {
	events := make([]entities.KeyEvent, 0, len(args))
	for _, arg := range args {
		ev, err := parseKeyEvent(arg)
		if err != nil {
			return nil, err
		}
		events = append(events, ev)
	}
	return events, nil
}
