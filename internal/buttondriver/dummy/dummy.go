// Package dummy is an in-memory button driver used for dry runs and
// tests. Buttons are pressed and released by calling Set.
package dummy

import (
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/larsks/deskclock/internal/buttondriver/common"
)

// ButtonSpec names a dummy button
type ButtonSpec struct {
	Name string
}

// ParseButtonSpec accepts "name" or "name:anything"; the remainder is
// ignored so the same button configuration works with every driver.
func ParseButtonSpec(spec string) (*ButtonSpec, error) {
	name, _, _ := strings.Cut(spec, ":")
	bs := &ButtonSpec{Name: strings.TrimSpace(name)}
	if err := bs.Validate(); err != nil {
		return nil, err
	}
	return bs, nil
}

func (spec *ButtonSpec) GetName() string   { return spec.Name }
func (spec *ButtonSpec) GetDevice() string { return "dummy" }

func (spec *ButtonSpec) Validate() error {
	if spec.Name == "" {
		return fmt.Errorf("%w: button name cannot be empty", ErrInvalidSpec)
	}
	return nil
}

// ButtonDriver holds button states in memory
type ButtonDriver struct {
	mutex     sync.RWMutex
	pressed   map[string]bool
	order     []string
	eventChan chan common.ButtonEvent
	started   bool
	stopped   bool
}

func NewButtonDriver() *ButtonDriver {
	return &ButtonDriver{
		pressed:   make(map[string]bool),
		eventChan: make(chan common.ButtonEvent, 16),
	}
}

func (d *ButtonDriver) AddButton(buttonSpec interface{}) error {
	spec, ok := buttonSpec.(*ButtonSpec)
	if !ok {
		return fmt.Errorf("%w: expected *dummy.ButtonSpec, got %T", ErrInvalidSpec, buttonSpec)
	}
	if err := spec.Validate(); err != nil {
		return err
	}

	d.mutex.Lock()
	defer d.mutex.Unlock()

	if _, exists := d.pressed[spec.Name]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateButton, spec.Name)
	}
	d.pressed[spec.Name] = false
	d.order = append(d.order, spec.Name)
	return nil
}

func (d *ButtonDriver) Start() error {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	if d.started {
		return ErrAlreadyStarted
	}
	d.started = true
	log.Printf("started dummy button driver with %d buttons", len(d.order))
	return nil
}

func (d *ButtonDriver) Stop() {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	if d.stopped {
		return
	}
	d.stopped = true
	close(d.eventChan)
}

func (d *ButtonDriver) Events() <-chan common.ButtonEvent {
	return d.eventChan
}

func (d *ButtonDriver) GetButtons() []string {
	d.mutex.RLock()
	defer d.mutex.RUnlock()
	return append([]string(nil), d.order...)
}

func (d *ButtonDriver) IsPressed(name string) bool {
	d.mutex.RLock()
	defer d.mutex.RUnlock()
	return d.pressed[name]
}

// Set changes the state of a button and emits an event if it changed
func (d *ButtonDriver) Set(name string, pressed bool) error {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	current, ok := d.pressed[name]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownButton, name)
	}
	if current == pressed || d.stopped {
		return nil
	}
	d.pressed[name] = pressed

	eventType := common.ButtonReleased
	if pressed {
		eventType = common.ButtonPressed
	}

	select {
	case d.eventChan <- common.ButtonEvent{Source: name, Type: eventType, Timestamp: time.Now(), Device: "dummy"}:
	default:
	}
	return nil
}

var _ common.ButtonDriver = (*ButtonDriver)(nil)
