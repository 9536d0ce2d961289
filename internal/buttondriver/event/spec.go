package event

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/larsks/deskclock/internal/buttondriver/common"
)

// ButtonSpec is a button reported by an input event device, such as a
// gpio-keys overlay
type ButtonSpec struct {
	Name      string
	Device    string
	EventType EventType
	EventCode uint32
	LowValue  uint32
	HighValue uint32
}

func (spec *ButtonSpec) GetName() string {
	return spec.Name
}

func (spec *ButtonSpec) GetDevice() string {
	return spec.Device
}

// Validate checks if the button specification is valid
func (spec *ButtonSpec) Validate() error {
	switch {
	case spec.Name == "":
		return fmt.Errorf("%w: button name is required", ErrInvalidSpec)
	case spec.Device == "":
		return fmt.Errorf("%w: device path is required", ErrInvalidSpec)
	case spec.EventCode == 0:
		return fmt.Errorf("%w: event code is required", ErrInvalidSpec)
	}
	return nil
}

// ParseButtonSpec parses a button specification string
// Format: name:device:event_type:event_code[:low_value:high_value]
// Example: "top:/dev/input/event0:EV_KEY:257" or "top:/dev/input/event0:EV_KEY:257:0:1"
func ParseButtonSpec(spec string) (*ButtonSpec, error) {
	parts := strings.Split(spec, ":")
	if len(parts) != 4 && len(parts) != 6 {
		return nil, fmt.Errorf("%w: %q (expected name:device:event_type:event_code[:low_value:high_value])", ErrInvalidSpec, spec)
	}

	eventType, ok := ParseEventType(parts[2])
	if !ok {
		return nil, fmt.Errorf("%w: unknown event type %s", ErrInvalidSpec, parts[2])
	}

	eventCode, err := strconv.ParseUint(parts[3], 10, 32)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid event code %s", ErrInvalidSpec, parts[3])
	}

	bs := &ButtonSpec{
		Name:      parts[0],
		Device:    parts[1],
		EventType: eventType,
		EventCode: uint32(eventCode),
		LowValue:  0,
		HighValue: 1,
	}

	if len(parts) == 6 {
		low, err := strconv.ParseUint(parts[4], 10, 32)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid low value %s", ErrInvalidSpec, parts[4])
		}
		high, err := strconv.ParseUint(parts[5], 10, 32)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid high value %s", ErrInvalidSpec, parts[5])
		}
		bs.LowValue = uint32(low)
		bs.HighValue = uint32(high)
	}

	if err := bs.Validate(); err != nil {
		return nil, err
	}

	return bs, nil
}

var _ common.ButtonSpec = (*ButtonSpec)(nil)
