package speaker

import (
	"fmt"
	"log"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/host/v3"

	pinspec "github.com/larsks/deskclock/internal/gpio"
)

// Output is the thing that makes noise
type Output interface {
	TurnOn() error
	TurnOff() error
	String() string
}

// PinOutput drives a buzzer wired to a GPIO pin
type PinOutput struct {
	pin      gpio.PinIO
	polarity pinspec.Polarity
}

// NewPinOutput initializes periph.io and configures the pin described by
// spec as an output, initially off.
func NewPinOutput(spec *pinspec.PinSpec) (*PinOutput, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPeriphInit, err)
	}

	pin := gpioreg.ByName(spec.Name())
	if pin == nil {
		return nil, fmt.Errorf("%w: %s", ErrPinNotFound, spec.Name())
	}

	out := &PinOutput{pin: pin, polarity: spec.Polarity}
	if err := out.TurnOff(); err != nil {
		return nil, err
	}

	return out, nil
}

func (o *PinOutput) level(on bool) gpio.Level {
	if o.polarity == pinspec.ActiveLow {
		return gpio.Level(!on)
	}
	return gpio.Level(on)
}

func (o *PinOutput) TurnOn() error {
	if err := o.pin.Out(o.level(true)); err != nil {
		return fmt.Errorf("failed to turn on %s: %w", o.pin.Name(), err)
	}
	return nil
}

func (o *PinOutput) TurnOff() error {
	if err := o.pin.Out(o.level(false)); err != nil {
		return fmt.Errorf("failed to turn off %s: %w", o.pin.Name(), err)
	}
	return nil
}

func (o *PinOutput) String() string {
	return o.pin.Name()
}

// LogOutput only logs, for dry runs and machines without a buzzer
type LogOutput struct{}

func (LogOutput) TurnOn() error {
	log.Printf("[speaker] on")
	return nil
}

func (LogOutput) TurnOff() error {
	log.Printf("[speaker] off")
	return nil
}

func (LogOutput) String() string {
	return "log"
}
