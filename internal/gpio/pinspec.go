// Package gpio parses the pin specifications shared by the button driver
// and the speaker output.
package gpio

import (
	"fmt"
	"strconv"
	"strings"
)

// Polarity represents the electrical polarity of a GPIO pin
type Polarity int

const (
	ActiveHigh Polarity = iota
	ActiveLow
)

// PullMode represents the pull resistor configuration
type PullMode int

const (
	PullNone PullMode = iota
	PullUp
	PullDown
	PullAuto // pull toward the inactive level
)

// PinSpec represents a parsed GPIO pin specification
type PinSpec struct {
	// LineNum is the GPIO line number (e.g., 17 for GPIO17)
	LineNum int

	Polarity Polarity
	PullMode PullMode
}

// ParsePin parses a GPIO pin specification string
// Format: "pin[:active-high|active-low][:pull-none|pull-up|pull-down|pull-auto]"
// Examples: "GPIO17", "GPIO17:active-low", "27:active-low:pull-up"
func ParsePin(pinSpec string) (*PinSpec, error) {
	parts := strings.Split(pinSpec, ":")

	lineNum, err := ParsePinNumber(strings.TrimSpace(parts[0]))
	if err != nil {
		return nil, err
	}

	spec := &PinSpec{
		LineNum:  lineNum,
		Polarity: ActiveHigh,
		PullMode: PullAuto,
	}

	for _, part := range parts[1:] {
		if err := spec.apply(part); err != nil {
			return nil, err
		}
	}

	return spec, nil
}

// apply sets a single polarity or pull option
func (ps *PinSpec) apply(param string) error {
	switch strings.ToLower(strings.TrimSpace(param)) {
	case "active-high":
		ps.Polarity = ActiveHigh
	case "active-low":
		ps.Polarity = ActiveLow
	case "pull-none":
		ps.PullMode = PullNone
	case "pull-up":
		ps.PullMode = PullUp
	case "pull-down":
		ps.PullMode = PullDown
	case "pull-auto":
		ps.PullMode = PullAuto
	default:
		return fmt.Errorf("%w: %s", ErrUnknownParameter, param)
	}
	return nil
}

// ParsePinNumber parses a GPIO pin name (e.g., "GPIO17") and returns the line number
// Supports both "GPIO<number>" and "<number>" formats
func ParsePinNumber(pinName string) (int, error) {
	numStr := pinName
	if strings.HasPrefix(strings.ToUpper(pinName), "GPIO") {
		numStr = pinName[len("GPIO"):]
	}

	lineNum, err := strconv.Atoi(numStr)
	if err != nil || lineNum < 0 {
		return 0, fmt.Errorf("%w: %q (expected GPIO<number> or <number>)", ErrInvalidPin, pinName)
	}

	return lineNum, nil
}

// Name returns the pin name in the form the periph.io registry uses
func (ps *PinSpec) Name() string {
	return fmt.Sprintf("GPIO%d", ps.LineNum)
}

// Pull returns the pull mode to request, resolving PullAuto against the
// polarity so an idle input reads as inactive.
func (ps *PinSpec) Pull() PullMode {
	if ps.PullMode != PullAuto {
		return ps.PullMode
	}
	if ps.Polarity == ActiveLow {
		return PullUp
	}
	return PullDown
}

// ActiveLevel returns the raw line value that means "on"
func (ps *PinSpec) ActiveLevel() int {
	if ps.Polarity == ActiveLow {
		return 0
	}
	return 1
}

func (p Polarity) String() string {
	switch p {
	case ActiveHigh:
		return "active-high"
	case ActiveLow:
		return "active-low"
	default:
		return "unknown"
	}
}

func (pm PullMode) String() string {
	switch pm {
	case PullNone:
		return "pull-none"
	case PullUp:
		return "pull-up"
	case PullDown:
		return "pull-down"
	case PullAuto:
		return "pull-auto"
	default:
		return "unknown"
	}
}

// String returns the canonical form of the pin specification
func (ps *PinSpec) String() string {
	return fmt.Sprintf("%s:%s:%s", ps.Name(), ps.Polarity, ps.PullMode)
}
