package buttondriver

import (
	"fmt"
	"maps"
	"slices"
	"sync"

	"github.com/larsks/deskclock/internal/buttondriver/common"
)

// Factory creates a button driver from configuration and parses button
// specifications in the driver's own format
type Factory interface {
	// CreateDriver creates a new button driver instance with the given configuration
	CreateDriver(config map[string]interface{}) (common.ButtonDriver, error)

	// ParseButtonSpec parses a button specification string into a button spec object
	ParseButtonSpec(spec string) (interface{}, error)

	// ValidateConfig validates the driver configuration
	ValidateConfig(config map[string]interface{}) error
}

// Registry maps driver names to factories. Drivers add themselves to the
// default registry from init.
type Registry struct {
	mu      sync.RWMutex
	drivers map[string]Factory
}

// NewRegistry creates a new button driver registry
func NewRegistry() *Registry {
	return &Registry{
		drivers: make(map[string]Factory),
	}
}

// Register adds a driver factory to the registry
func (r *Registry) Register(name string, factory Factory) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.drivers[name]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateDriver, name)
	}

	r.drivers[name] = factory
	return nil
}

func (r *Registry) factory(driverType string) (Factory, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	factory, exists := r.drivers[driverType]
	if !exists {
		return nil, fmt.Errorf("%w: %s", ErrUnknownDriver, driverType)
	}
	return factory, nil
}

// ButtonSpecs parses the spec of every button in names, in order. Each
// value in buttons is the driver-specific part of the spec, without the
// button name.
func (r *Registry) ButtonSpecs(driverType string, names []string, buttons map[string]string) ([]interface{}, error) {
	factory, err := r.factory(driverType)
	if err != nil {
		return nil, err
	}

	specs := make([]interface{}, 0, len(names))
	for _, name := range names {
		spec, err := factory.ParseButtonSpec(name + ":" + buttons[name])
		if err != nil {
			return nil, fmt.Errorf("%s button: %w", name, err)
		}
		specs = append(specs, spec)
	}
	return specs, nil
}

// Validate checks the driver configuration and every button spec without
// touching any hardware
func (r *Registry) Validate(driverType string, config map[string]interface{}, names []string, buttons map[string]string) error {
	factory, err := r.factory(driverType)
	if err != nil {
		return err
	}

	if err := factory.ValidateConfig(config); err != nil {
		return err
	}

	_, err = r.ButtonSpecs(driverType, names, buttons)
	return err
}

// CreateDriverWithButtons creates a driver of type driverType and adds
// one button per entry in names. The driver is returned unstarted. If a
// button cannot be added the driver is stopped, releasing whatever it
// had already claimed.
func (r *Registry) CreateDriverWithButtons(driverType string, config map[string]interface{}, names []string, buttons map[string]string) (common.ButtonDriver, error) {
	specs, err := r.ButtonSpecs(driverType, names, buttons)
	if err != nil {
		return nil, err
	}

	factory, err := r.factory(driverType)
	if err != nil {
		return nil, err
	}

	driver, err := factory.CreateDriver(config)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s button driver: %w", driverType, err)
	}

	for i, spec := range specs {
		if err := driver.AddButton(spec); err != nil {
			driver.Stop()
			return nil, fmt.Errorf("failed to add %s button: %w", names[i], err)
		}
	}

	return driver, nil
}

// ListDrivers returns the sorted names of all registered button drivers
func (r *Registry) ListDrivers() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return slices.Sorted(maps.Keys(r.drivers))
}

var defaultRegistry = NewRegistry()

// Register adds a driver factory to the default registry
func Register(name string, factory Factory) error {
	return defaultRegistry.Register(name, factory)
}

// MustRegister adds a driver factory to the default registry and panics on error
func MustRegister(name string, factory Factory) {
	if err := Register(name, factory); err != nil {
		panic(fmt.Sprintf("failed to register button driver %s: %v", name, err))
	}
}

// Validate checks a driver configuration using the default registry
func Validate(driverType string, config map[string]interface{}, names []string, buttons map[string]string) error {
	return defaultRegistry.Validate(driverType, config, names, buttons)
}

// CreateDriverWithButtons creates a driver using the default registry
func CreateDriverWithButtons(driverType string, config map[string]interface{}, names []string, buttons map[string]string) (common.ButtonDriver, error) {
	return defaultRegistry.CreateDriverWithButtons(driverType, config, names, buttons)
}

// ListDrivers returns the names of all registered button drivers in the default registry
func ListDrivers() []string {
	return defaultRegistry.ListDrivers()
}
