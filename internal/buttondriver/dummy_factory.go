package buttondriver

import (
	"fmt"
	"sort"
	"strings"

	"github.com/larsks/deskclock/internal/buttondriver/common"
	"github.com/larsks/deskclock/internal/buttondriver/dummy"
)

// DummyDriverFactory implements Factory for the in-memory driver
type DummyDriverFactory struct{}

func (f *DummyDriverFactory) CreateDriver(config map[string]interface{}) (common.ButtonDriver, error) {
	if err := f.ValidateConfig(config); err != nil {
		return nil, err
	}
	return dummy.NewButtonDriver(), nil
}

func (f *DummyDriverFactory) ParseButtonSpec(spec string) (interface{}, error) {
	return dummy.ParseButtonSpec(spec)
}

func (f *DummyDriverFactory) ValidateConfig(config map[string]interface{}) error {
	return rejectConfig("dummy", config)
}

func init() {
	MustRegister("dummy", &DummyDriverFactory{})
}

// rejectConfig fails for any driver-config keys, for drivers that take none
func rejectConfig(driver string, config map[string]interface{}) error {
	if len(config) == 0 {
		return nil
	}

	keys := make([]string, 0, len(config))
	for key := range config {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	return fmt.Errorf("%w: %s: unknown parameters %s", ErrInvalidConfig, driver, strings.Join(keys, ", "))
}
