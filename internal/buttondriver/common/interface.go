package common

import "time"

// ButtonEventType represents the type of button event
type ButtonEventType int

const (
	ButtonPressed ButtonEventType = iota
	ButtonReleased
)

// ButtonEvent is a debounced press or release transition
type ButtonEvent struct {
	// Source is the button name (top, middle or bottom)
	Source string

	Type      ButtonEventType
	Timestamp time.Time

	// Device is the pin or device backing the button (e.g. "GPIO17")
	Device string
}

// ButtonDriver is the common interface for all button implementations.
//
// The tick loop samples buttons with IsPressed. Events carries the same
// transitions for callers that want them; when the channel is full new
// events are dropped rather than blocking the driver.
type ButtonDriver interface {
	// Events returns a channel that delivers button events
	Events() <-chan ButtonEvent

	// Start begins monitoring for button events
	Start() error

	// Stop stops monitoring and closes the events channel
	Stop()

	// AddButton adds a button to be monitored
	// The buttonSpec parameter format is implementation-specific
	AddButton(buttonSpec interface{}) error

	// GetButtons returns the names of the buttons being monitored
	GetButtons() []string

	// IsPressed returns the debounced state of the named button. Unknown
	// buttons read as released.
	IsPressed(name string) bool
}

// ButtonSpec is a common interface for button specifications
type ButtonSpec interface {
	GetName() string
	GetDevice() string
	Validate() error
}

func (bet ButtonEventType) String() string {
	switch bet {
	case ButtonPressed:
		return "PRESSED"
	case ButtonReleased:
		return "RELEASED"
	default:
		return "UNKNOWN"
	}
}

// IsPressed returns true if this is a button press event
func (be ButtonEvent) IsPressed() bool {
	return be.Type == ButtonPressed
}
