package gpio

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/larsks/deskclock/internal/buttondriver/common"
	"github.com/larsks/deskclock/internal/gpio"
	"github.com/warthog618/go-gpiocdev"
)

const (
	DefaultChip     = "gpiochip0"
	DefaultDebounce = 20 * time.Millisecond

	pollInterval = time.Millisecond
)

// ButtonDriver polls GPIO lines and debounces them
type ButtonDriver struct {
	chipName      string
	chip          *gpiocdev.Chip
	pins          map[string]*ButtonPin
	eventChannel  chan common.ButtonEvent
	stopChannel   chan struct{}
	wg            sync.WaitGroup
	debounceDelay time.Duration
	started       bool
	closed        bool
	mutex         sync.RWMutex
}

// ButtonPin is a single GPIO line configured as a button
type ButtonPin struct {
	line    *gpiocdev.Line
	name    string
	pinName string
	active  int

	// raw is the last level read, stable is the debounced state
	raw          bool
	stable       bool
	rawChangedAt time.Time
	mutex        sync.Mutex
}

// NewButtonDriver opens chipName and returns a driver that reports a
// state change once a line has held it for debounceDelay.
func NewButtonDriver(chipName string, debounceDelay time.Duration) (*ButtonDriver, error) {
	if chipName == "" {
		chipName = DefaultChip
	}

	chip, err := gpiocdev.NewChip(chipName)
	if err != nil {
		return nil, fmt.Errorf("%w %s: %w", ErrOpenChip, chipName, err)
	}

	return &ButtonDriver{
		chipName:      chipName,
		chip:          chip,
		pins:          make(map[string]*ButtonPin),
		eventChannel:  make(chan common.ButtonEvent, 16),
		stopChannel:   make(chan struct{}),
		debounceDelay: debounceDelay,
	}, nil
}

// AddButton requests the line named in a *ButtonSpec as an input
func (bd *ButtonDriver) AddButton(buttonSpec interface{}) error {
	bd.mutex.Lock()
	defer bd.mutex.Unlock()

	if bd.closed {
		return ErrClosed
	}
	if bd.started {
		return ErrAlreadyStarted
	}

	spec, ok := buttonSpec.(*ButtonSpec)
	if !ok {
		return fmt.Errorf("%w: expected *gpio.ButtonSpec, got %T", ErrInvalidSpec, buttonSpec)
	}

	if err := spec.Validate(); err != nil {
		return err
	}

	if _, exists := bd.pins[spec.Name]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateButton, spec.Name)
	}

	lineOpts := []gpiocdev.LineReqOption{gpiocdev.AsInput}
	switch spec.Pin.Pull() {
	case gpio.PullUp:
		lineOpts = append(lineOpts, gpiocdev.WithPullUp)
	case gpio.PullDown:
		lineOpts = append(lineOpts, gpiocdev.WithPullDown)
	}

	line, err := bd.chip.RequestLine(spec.Pin.LineNum, lineOpts...)
	if err != nil {
		return fmt.Errorf("failed to configure pin %s as input: %w", spec.Pin.Name(), err)
	}

	pin := &ButtonPin{
		line:    line,
		name:    spec.Name,
		pinName: spec.Pin.Name(),
		active:  spec.Pin.ActiveLevel(),
	}
	pin.raw = pin.read()
	pin.stable = pin.raw

	bd.pins[spec.Name] = pin
	log.Printf("[%s] added button on %s (%s, %s)", spec.Name, pin.pinName, spec.Pin.Polarity, spec.Pin.Pull())
	return nil
}

// Start begins polling all configured pins
func (bd *ButtonDriver) Start() error {
	bd.mutex.Lock()
	defer bd.mutex.Unlock()

	if bd.closed {
		return ErrClosed
	}
	if bd.started {
		return ErrAlreadyStarted
	}

	if len(bd.pins) == 0 {
		return ErrNoButtons
	}

	bd.started = true
	for _, pin := range bd.pins {
		bd.wg.Add(1)
		go bd.monitorPin(pin)
	}

	log.Printf("started monitoring %d buttons on %s", len(bd.pins), bd.chipName)
	return nil
}

// Stop stops polling and releases the lines and chip. It also releases
// them when the driver was never started. The driver cannot be reused.
func (bd *ButtonDriver) Stop() {
	bd.mutex.Lock()
	defer bd.mutex.Unlock()

	if bd.closed {
		return
	}
	bd.closed = true

	if bd.started {
		close(bd.stopChannel)
		bd.wg.Wait()
		bd.started = false
	}

	for _, pin := range bd.pins {
		if pin.line == nil {
			continue
		}
		if err := pin.line.Close(); err != nil {
			log.Printf("[%s] error closing GPIO line: %v", pin.name, err)
		}
	}

	if bd.chip != nil {
		if err := bd.chip.Close(); err != nil {
			log.Printf("error closing GPIO chip: %v", err)
		}
	}

	close(bd.eventChannel)
}

// Events returns the channel of debounced transitions
func (bd *ButtonDriver) Events() <-chan common.ButtonEvent {
	return bd.eventChannel
}

// GetButtons returns the names of the configured buttons
func (bd *ButtonDriver) GetButtons() []string {
	bd.mutex.RLock()
	defer bd.mutex.RUnlock()

	buttons := make([]string, 0, len(bd.pins))
	for name := range bd.pins {
		buttons = append(buttons, name)
	}
	return buttons
}

// IsPressed returns the debounced state of a button
func (bd *ButtonDriver) IsPressed(name string) bool {
	bd.mutex.RLock()
	pin, ok := bd.pins[name]
	bd.mutex.RUnlock()

	if !ok {
		return false
	}

	pin.mutex.Lock()
	defer pin.mutex.Unlock()
	return pin.stable
}

func (bd *ButtonDriver) monitorPin(pin *ButtonPin) {
	defer bd.wg.Done()

	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-bd.stopChannel:
			return
		case now := <-ticker.C:
			if ev, ok := pin.update(pin.read(), now, bd.debounceDelay); ok {
				bd.emit(ev)
			}
		}
	}
}

func (bd *ButtonDriver) emit(ev common.ButtonEvent) {
	select {
	case bd.eventChannel <- ev:
	default:
	}
}

// update records a raw sample and returns an event when the debounced
// state changes
func (pin *ButtonPin) update(raw bool, now time.Time, debounce time.Duration) (common.ButtonEvent, bool) {
	pin.mutex.Lock()
	defer pin.mutex.Unlock()

	if raw != pin.raw {
		pin.raw = raw
		pin.rawChangedAt = now
		return common.ButtonEvent{}, false
	}

	if raw == pin.stable || now.Sub(pin.rawChangedAt) < debounce {
		return common.ButtonEvent{}, false
	}

	pin.stable = raw

	eventType := common.ButtonReleased
	if raw {
		eventType = common.ButtonPressed
	}

	return common.ButtonEvent{
		Source:    pin.name,
		Type:      eventType,
		Timestamp: now,
		Device:    pin.pinName,
	}, true
}

func (pin *ButtonPin) read() bool {
	level, err := pin.line.Value()
	if err != nil {
		log.Printf("[%s] error reading %s: %v", pin.name, pin.pinName, err)
		return false
	}
	return level == pin.active
}

var _ common.ButtonDriver = (*ButtonDriver)(nil)
