// Package gesture turns per-tick button samples into discrete presses.
package gesture

import "fmt"

// ButtonID identifies one of the three physical buttons
type ButtonID int

const (
	Top ButtonID = iota
	Middle
	Bottom
)

// Buttons lists every button in the order they are sampled and routed each tick
var Buttons = [...]ButtonID{Top, Middle, Bottom}

// NumButtons is the number of physical buttons
const NumButtons = len(Buttons)

// String returns the lowercase button name used in configuration and logs
func (b ButtonID) String() string {
	switch b {
	case Top:
		return "top"
	case Middle:
		return "middle"
	case Bottom:
		return "bottom"
	default:
		return "unknown"
	}
}

// ParseButtonID maps a button name back to its ButtonID
func ParseButtonID(name string) (ButtonID, error) {
	for _, b := range Buttons {
		if b.String() == name {
			return b, nil
		}
	}
	return 0, fmt.Errorf("%w: %s", ErrUnknownButton, name)
}

// Kind is the type of gesture
type Kind int

const (
	ShortPress Kind = iota
	LongPress
)

// String returns a human-readable representation of the gesture kind
func (k Kind) String() string {
	switch k {
	case ShortPress:
		return "short-press"
	case LongPress:
		return "long-press"
	default:
		return "unknown"
	}
}

// Gesture is a classified button interaction
type Gesture struct {
	Kind   Kind
	Button ButtonID
}

// Short returns a ShortPress gesture for b
func Short(b ButtonID) Gesture {
	return Gesture{Kind: ShortPress, Button: b}
}

// Long returns a LongPress gesture for b
func Long(b ButtonID) Gesture {
	return Gesture{Kind: LongPress, Button: b}
}

// Is reports whether g is the given kind of press on button b
func (g Gesture) Is(kind Kind, b ButtonID) bool {
	return g.Kind == kind && g.Button == b
}

func (g Gesture) String() string {
	return fmt.Sprintf("%s/%s", g.Button, g.Kind)
}
