package buttondriver

import (
	"github.com/larsks/deskclock/internal/buttondriver/common"
	"github.com/larsks/deskclock/internal/buttondriver/event"
)

// EventDriverFactory implements Factory for input event devices
type EventDriverFactory struct{}

func (f *EventDriverFactory) CreateDriver(config map[string]interface{}) (common.ButtonDriver, error) {
	if err := f.ValidateConfig(config); err != nil {
		return nil, err
	}
	return event.NewButtonDriver(), nil
}

func (f *EventDriverFactory) ParseButtonSpec(spec string) (interface{}, error) {
	return event.ParseButtonSpec(spec)
}

// ValidateConfig rejects any configuration; the event driver has none
func (f *EventDriverFactory) ValidateConfig(config map[string]interface{}) error {
	return rejectConfig("event", config)
}

func init() {
	MustRegister("event", &EventDriverFactory{})
}
