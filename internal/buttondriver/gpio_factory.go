package buttondriver

import (
	"fmt"
	"time"

	"github.com/mitchellh/mapstructure"

	"github.com/larsks/deskclock/internal/buttondriver/common"
	"github.com/larsks/deskclock/internal/buttondriver/gpio"
)

// GPIODriverConfig is the driver-config section for the gpio driver
type GPIODriverConfig struct {
	Chip     string        `mapstructure:"chip"`
	Debounce time.Duration `mapstructure:"debounce"`
}

// GPIODriverFactory implements Factory for GPIO button drivers
type GPIODriverFactory struct{}

func (f *GPIODriverFactory) CreateDriver(config map[string]interface{}) (common.ButtonDriver, error) {
	cfg, err := f.parseConfig(config)
	if err != nil {
		return nil, err
	}
	return gpio.NewButtonDriver(cfg.Chip, cfg.Debounce)
}

func (f *GPIODriverFactory) ParseButtonSpec(spec string) (interface{}, error) {
	return gpio.ParseButtonSpec(spec)
}

func (f *GPIODriverFactory) ValidateConfig(config map[string]interface{}) error {
	_, err := f.parseConfig(config)
	return err
}

func (f *GPIODriverFactory) parseConfig(config map[string]interface{}) (*GPIODriverConfig, error) {
	cfg := &GPIODriverConfig{
		Chip:     gpio.DefaultChip,
		Debounce: gpio.DefaultDebounce,
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:       mapstructure.StringToTimeDurationHookFunc(),
		ErrorUnused:      true,
		WeaklyTypedInput: true,
		Result:           cfg,
	})
	if err != nil {
		return nil, err
	}

	if err := decoder.Decode(config); err != nil {
		return nil, fmt.Errorf("%w: gpio: %w", ErrInvalidConfig, err)
	}

	if cfg.Debounce < 0 {
		return nil, fmt.Errorf("%w: gpio: debounce must be non-negative", ErrInvalidConfig)
	}

	return cfg, nil
}

func init() {
	MustRegister("gpio", &GPIODriverFactory{})
}
