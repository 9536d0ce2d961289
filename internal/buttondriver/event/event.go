// Package event reads buttons from Linux input event devices.
package event

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"log"
	"os"
	"sync"
	"time"
	"unsafe"

	"github.com/larsks/deskclock/internal/buttondriver/common"
)

// ButtonDriver reads key events from one or more input devices. The
// kernel debounces gpio-keys buttons, so events are used as-is.
type ButtonDriver struct {
	buttons   map[string][]*ButtonSpec
	files     map[string]*os.File
	pressed   map[string]bool
	eventChan chan common.ButtonEvent
	stopChan  chan struct{}
	wg        sync.WaitGroup
	mutex     sync.RWMutex
	started   bool
}

// NewButtonDriver creates a new event-based button driver
func NewButtonDriver() *ButtonDriver {
	return &ButtonDriver{
		buttons:   make(map[string][]*ButtonSpec),
		files:     make(map[string]*os.File),
		pressed:   make(map[string]bool),
		eventChan: make(chan common.ButtonEvent, 16),
		stopChan:  make(chan struct{}),
	}
}

func (d *ButtonDriver) Events() <-chan common.ButtonEvent {
	return d.eventChan
}

// Start opens every configured device and begins reading events
func (d *ButtonDriver) Start() error {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	if d.started {
		return ErrAlreadyStarted
	}

	if len(d.buttons) == 0 {
		return ErrNoButtons
	}

	for device := range d.buttons {
		if _, exists := d.files[device]; exists {
			continue
		}
		file, err := os.Open(device)
		if err != nil {
			d.closeFiles()
			return fmt.Errorf("failed to open device %s: %w", device, err)
		}
		d.files[device] = file
	}

	d.started = true
	for device, specs := range d.buttons {
		d.wg.Add(1)
		go d.monitorDevice(device, d.files[device], specs)
	}

	return nil
}

// Stop closes the devices and the events channel
func (d *ButtonDriver) Stop() {
	d.mutex.Lock()
	if !d.started {
		d.mutex.Unlock()
		return
	}
	d.started = false

	// closing the files unblocks the readers
	d.closeFiles()
	close(d.stopChan)
	d.mutex.Unlock()

	d.wg.Wait()
	close(d.eventChan)
}

func (d *ButtonDriver) closeFiles() {
	for device, file := range d.files {
		if err := file.Close(); err != nil {
			log.Printf("error closing device %s: %v", device, err)
		}
		delete(d.files, device)
	}
}

// AddButton adds a *ButtonSpec to be monitored
func (d *ButtonDriver) AddButton(buttonSpec interface{}) error {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	if d.started {
		return ErrAlreadyStarted
	}

	spec, ok := buttonSpec.(*ButtonSpec)
	if !ok {
		return fmt.Errorf("%w: expected *event.ButtonSpec, got %T", ErrInvalidSpec, buttonSpec)
	}

	if err := spec.Validate(); err != nil {
		return err
	}

	d.buttons[spec.Device] = append(d.buttons[spec.Device], spec)
	return nil
}

func (d *ButtonDriver) GetButtons() []string {
	d.mutex.RLock()
	defer d.mutex.RUnlock()

	var names []string
	for _, specs := range d.buttons {
		for _, spec := range specs {
			names = append(names, spec.Name)
		}
	}
	return names
}

func (d *ButtonDriver) IsPressed(name string) bool {
	d.mutex.RLock()
	defer d.mutex.RUnlock()
	return d.pressed[name]
}

func (d *ButtonDriver) monitorDevice(device string, file *os.File, specs []*ButtonSpec) {
	defer d.wg.Done()

	log.Printf("monitoring %s for %d button(s)", device, len(specs))

	eventSize := int(unsafe.Sizeof(InputEvent{}))
	buf := make([]byte, eventSize)

	for {
		n, err := file.Read(buf)
		if err != nil {
			select {
			case <-d.stopChan:
			default:
				if !errors.Is(err, os.ErrClosed) {
					log.Printf("error reading from device %s: %v", device, err)
				}
			}
			return
		}
		if n != eventSize {
			continue
		}

		var ev InputEvent
		if err := binary.Read(bytes.NewReader(buf), binary.LittleEndian, &ev); err != nil {
			log.Printf("error parsing event from %s: %v", device, err)
			continue
		}

		for _, spec := range specs {
			if EventType(ev.Type) == spec.EventType && uint32(ev.Code) == spec.EventCode {
				d.handleButtonEvent(spec, uint32(ev.Value), device)
			}
		}
	}
}

// handleButtonEvent records a press or release; other values such as
// key repeats are ignored
func (d *ButtonDriver) handleButtonEvent(spec *ButtonSpec, value uint32, device string) {
	var eventType common.ButtonEventType
	switch value {
	case spec.HighValue:
		eventType = common.ButtonPressed
	case spec.LowValue:
		eventType = common.ButtonReleased
	default:
		return
	}

	d.mutex.Lock()
	d.pressed[spec.Name] = eventType == common.ButtonPressed
	d.mutex.Unlock()

	ev := common.ButtonEvent{
		Source:    spec.Name,
		Type:      eventType,
		Timestamp: time.Now(),
		Device:    device,
	}

	select {
	case d.eventChan <- ev:
	default:
	}
}

var _ common.ButtonDriver = (*ButtonDriver)(nil)
