package buttondriver

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/larsks/deskclock/internal/buttondriver/common"
	"github.com/larsks/deskclock/internal/buttondriver/dummy"
)

var errAddButton = errors.New("line busy")

type mockButtonDriver struct {
	events  chan common.ButtonEvent
	added   []interface{}
	failAdd int
	stopped bool
}

func (m *mockButtonDriver) Events() <-chan common.ButtonEvent { return m.events }
func (m *mockButtonDriver) Start() error                      { return nil }
func (m *mockButtonDriver) GetButtons() []string              { return []string{"test"} }
func (m *mockButtonDriver) IsPressed(string) bool             { return false }

func (m *mockButtonDriver) Stop() {
	m.stopped = true
	close(m.events)
}

// AddButton fails on the failAdd'th call when failAdd is set
func (m *mockButtonDriver) AddButton(buttonSpec interface{}) error {
	if m.failAdd > 0 && len(m.added)+1 == m.failAdd {
		return errAddButton
	}
	m.added = append(m.added, buttonSpec)
	return nil
}

type mockFactory struct {
	driverConfig map[string]interface{}
	driver       *mockButtonDriver
	failAdd      int
	created      int
}

func (m *mockFactory) CreateDriver(config map[string]interface{}) (common.ButtonDriver, error) {
	m.driverConfig = config
	m.created++
	m.driver = &mockButtonDriver{events: make(chan common.ButtonEvent, 10), failAdd: m.failAdd}
	return m.driver, nil
}

func (m *mockFactory) ParseButtonSpec(spec string) (interface{}, error) {
	if strings.HasSuffix(spec, ":") {
		return nil, fmt.Errorf("empty spec %q", spec)
	}
	return map[string]string{"spec": spec}, nil
}

func (m *mockFactory) ValidateConfig(config map[string]interface{}) error {
	if _, ok := config["bogus"]; ok {
		return ErrInvalidConfig
	}
	return nil
}

func TestRegistry_Register(t *testing.T) {
	registry := NewRegistry()
	factory := &mockFactory{}

	if err := registry.Register("test", factory); err != nil {
		t.Fatalf("failed to register driver: %v", err)
	}

	err := registry.Register("test", factory)
	if !errors.Is(err, ErrDuplicateDriver) {
		t.Errorf("expected ErrDuplicateDriver, got %v", err)
	}
}

var (
	testNames   = []string{"top", "middle", "bottom"}
	testButtons = map[string]string{"top": "GPIO17", "middle": "GPIO27", "bottom": "GPIO22:active-low"}
)

func newTestRegistry(t *testing.T, factory *mockFactory) *Registry {
	t.Helper()
	registry := NewRegistry()
	if err := registry.Register("test", factory); err != nil {
		t.Fatalf("failed to register driver: %v", err)
	}
	return registry
}

func TestRegistry_CreateDriverWithButtons(t *testing.T) {
	factory := &mockFactory{}
	registry := newTestRegistry(t, factory)

	config := map[string]interface{}{"chip": "gpiochip1"}
	driver, err := registry.CreateDriverWithButtons("test", config, testNames, testButtons)
	if err != nil {
		t.Fatalf("failed to create driver: %v", err)
	}
	if driver == nil {
		t.Fatal("driver should not be nil")
	}
	if factory.driverConfig["chip"] != "gpiochip1" {
		t.Errorf("expected chip gpiochip1, got %v", factory.driverConfig["chip"])
	}

	want := []interface{}{
		map[string]string{"spec": "top:GPIO17"},
		map[string]string{"spec": "middle:GPIO27"},
		map[string]string{"spec": "bottom:GPIO22:active-low"},
	}
	if !reflect.DeepEqual(factory.driver.added, want) {
		t.Errorf("got specs %v, want %v", factory.driver.added, want)
	}

	_, err = registry.CreateDriverWithButtons("nonexistent", nil, testNames, testButtons)
	if !errors.Is(err, ErrUnknownDriver) {
		t.Errorf("expected ErrUnknownDriver, got %v", err)
	}
}

func TestRegistry_CreateDriverWithButtons_StopsDriverOnAddFailure(t *testing.T) {
	factory := &mockFactory{failAdd: 2}
	registry := newTestRegistry(t, factory)

	_, err := registry.CreateDriverWithButtons("test", nil, testNames, testButtons)
	if !errors.Is(err, errAddButton) {
		t.Fatalf("expected errAddButton, got %v", err)
	}
	if !strings.Contains(err.Error(), "middle") {
		t.Errorf("expected the failing button in %q", err)
	}
	if !factory.driver.stopped {
		t.Error("driver should be stopped after a failed AddButton")
	}
}

func TestRegistry_CreateDriverWithButtons_BadSpecCreatesNothing(t *testing.T) {
	factory := &mockFactory{}
	registry := newTestRegistry(t, factory)

	buttons := map[string]string{"top": "GPIO17", "middle": "GPIO27"}
	_, err := registry.CreateDriverWithButtons("test", nil, testNames, buttons)
	if err == nil || !strings.Contains(err.Error(), "bottom") {
		t.Fatalf("expected an error naming the bottom button, got %v", err)
	}
	if factory.created != 0 {
		t.Errorf("expected no driver to be created, got %d", factory.created)
	}
}

func TestRegistry_Validate(t *testing.T) {
	registry := newTestRegistry(t, &mockFactory{})

	if err := registry.Validate("test", nil, testNames, testButtons); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if err := registry.Validate("test", map[string]interface{}{"bogus": 1}, testNames, testButtons); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig, got %v", err)
	}
	if err := registry.Validate("test", nil, testNames, map[string]string{}); err == nil {
		t.Error("expected an error for missing button specs")
	}
	if err := registry.Validate("usb", nil, testNames, testButtons); !errors.Is(err, ErrUnknownDriver) {
		t.Errorf("expected ErrUnknownDriver, got %v", err)
	}
}

func TestRegistry_ListDrivers(t *testing.T) {
	registry := NewRegistry()
	for _, name := range []string{"b", "a"} {
		if err := registry.Register(name, &mockFactory{}); err != nil {
			t.Fatalf("failed to register driver: %v", err)
		}
	}

	if got := registry.ListDrivers(); !reflect.DeepEqual(got, []string{"a", "b"}) {
		t.Errorf("expected [a b], got %v", got)
	}
}

func TestDefaultRegistry(t *testing.T) {
	want := []string{"dummy", "event", "gpio"}
	if got := ListDrivers(); !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestCreateDriverWithButtons_Dummy(t *testing.T) {
	driver, err := CreateDriverWithButtons("dummy", nil, testNames, map[string]string{})
	if err != nil {
		t.Fatalf("failed to open dummy driver: %v", err)
	}
	if err := driver.Start(); err != nil {
		t.Fatalf("failed to start dummy driver: %v", err)
	}
	defer driver.Stop()

	d := driver.(*dummy.ButtonDriver)
	if err := d.Set("middle", true); err != nil {
		t.Fatal(err)
	}
	if !driver.IsPressed("middle") || driver.IsPressed("top") {
		t.Error("expected only middle to be pressed")
	}
}

func TestDummyFactory_RejectsConfig(t *testing.T) {
	err := Validate("dummy", map[string]interface{}{"chip": "x"}, testNames, map[string]string{})
	if !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig, got %v", err)
	}
}

func TestGPIOFactory_ParseConfig(t *testing.T) {
	f := &GPIODriverFactory{}

	cfg, err := f.parseConfig(map[string]interface{}{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Chip != "gpiochip0" || cfg.Debounce != 20*time.Millisecond {
		t.Errorf("unexpected defaults: %+v", cfg)
	}

	cfg, err = f.parseConfig(map[string]interface{}{"chip": "gpiochip4", "debounce": "35ms"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Chip != "gpiochip4" || cfg.Debounce != 35*time.Millisecond {
		t.Errorf("unexpected config: %+v", cfg)
	}

	for _, bad := range []map[string]interface{}{
		{"debounce": "soon"},
		{"debounce": "-5ms"},
		{"pull-mode": "up"},
	} {
		if err := f.ValidateConfig(bad); !errors.Is(err, ErrInvalidConfig) {
			t.Errorf("expected ErrInvalidConfig for %v, got %v", bad, err)
		}
	}
}
