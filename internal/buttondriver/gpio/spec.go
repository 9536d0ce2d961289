package gpio

import (
	"fmt"
	"strings"

	"github.com/larsks/deskclock/internal/buttondriver/common"
	"github.com/larsks/deskclock/internal/gpio"
)

// ButtonSpec is a button wired to a single GPIO line
type ButtonSpec struct {
	Name string
	Pin  *gpio.PinSpec
}

// ParseButtonSpec parses a GPIO button specification
// Format: "name:pin[:active-high|active-low][:pull-none|pull-up|pull-down|pull-auto]"
// Examples: "top:GPIO17", "middle:GPIO27:active-low:pull-up"
func ParseButtonSpec(spec string) (*ButtonSpec, error) {
	name, pin, ok := strings.Cut(spec, ":")
	if !ok {
		return nil, fmt.Errorf("%w: %q (expected name:pin[:options])", ErrInvalidSpec, spec)
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: button name cannot be empty", ErrInvalidSpec)
	}

	pinSpec, err := gpio.ParsePin(pin)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidSpec, err)
	}

	return &ButtonSpec{Name: name, Pin: pinSpec}, nil
}

func (spec *ButtonSpec) GetName() string {
	return spec.Name
}

func (spec *ButtonSpec) GetDevice() string {
	if spec.Pin == nil {
		return ""
	}
	return spec.Pin.Name()
}

// Validate checks that the spec names a button and a pin
func (spec *ButtonSpec) Validate() error {
	if spec.Name == "" {
		return fmt.Errorf("%w: button name cannot be empty", ErrInvalidSpec)
	}
	if spec.Pin == nil {
		return fmt.Errorf("%w: GPIO pin cannot be empty", ErrInvalidSpec)
	}
	return nil
}

func (spec *ButtonSpec) String() string {
	return fmt.Sprintf("%s:%s", spec.Name, spec.Pin)
}

var _ common.ButtonSpec = (*ButtonSpec)(nil)
