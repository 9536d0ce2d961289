package event

import (
	"fmt"
	"syscall"
)

// InputEvent matches the Linux kernel's struct input_event
type InputEvent struct {
	Time  syscall.Timeval
	Type  uint16
	Code  uint16
	Value int32
}

// EventType is an input event type from linux/input.h
type EventType uint16

const (
	EV_SYN EventType = 0x00
	EV_KEY EventType = 0x01
	EV_SW  EventType = 0x05
)

var eventTypeNames = map[EventType]string{
	EV_SYN: "EV_SYN",
	EV_KEY: "EV_KEY",
	EV_SW:  "EV_SW",
}

func (et EventType) String() string {
	if name, ok := eventTypeNames[et]; ok {
		return name
	}
	return fmt.Sprintf("UNKNOWN_%d", uint16(et))
}

// ParseEventType maps a name such as "EV_KEY" to its EventType. Only the
// types that can carry a button are accepted.
func ParseEventType(name string) (EventType, bool) {
	for et, n := range eventTypeNames {
		if n == name && et != EV_SYN {
			return et, true
		}
	}
	return 0, false
}
