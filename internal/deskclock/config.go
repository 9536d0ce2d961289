// Package deskclock wires the clock core to buttons, a display, a speaker
// and a state file, and runs the tick loop.
package deskclock

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	"github.com/larsks/deskclock/internal/buttondriver"
	"github.com/larsks/deskclock/internal/config"
	"github.com/larsks/deskclock/internal/core"
	"github.com/larsks/deskclock/internal/display"
	"github.com/larsks/deskclock/internal/gesture"
	"github.com/larsks/deskclock/internal/gpio"
	"github.com/larsks/deskclock/internal/pomodoro"
	"github.com/larsks/deskclock/internal/store"
	"github.com/spf13/pflag"
)

// ButtonsConfig selects the button driver and the spec for each button
type ButtonsConfig struct {
	Driver       string                 `mapstructure:"driver" toml:"driver"`
	DriverConfig map[string]interface{} `mapstructure:"driver-config" toml:"driver-config,omitempty"`
	Top          string                 `mapstructure:"top" toml:"top"`
	Middle       string                 `mapstructure:"middle" toml:"middle"`
	Bottom       string                 `mapstructure:"bottom" toml:"bottom"`
}

// Specs maps button names to their driver-specific specs
func (b ButtonsConfig) Specs() map[string]string {
	return map[string]string{
		gesture.Top.String():    b.Top,
		gesture.Middle.String(): b.Middle,
		gesture.Bottom.String(): b.Bottom,
	}
}

type SpeakerConfig struct {
	Enabled bool   `mapstructure:"enabled" toml:"enabled"`
	Pin     string `mapstructure:"pin" toml:"pin"`
}

type ClockConfig struct {
	display.Options `mapstructure:",squash"`
	HourlyChime     bool `mapstructure:"hourly-chime" toml:"hourly-chime"`
}

type PomodoroConfig struct {
	DefaultMinutes int `mapstructure:"default-minutes" toml:"default-minutes"`
}

type SettingsConfig struct {
	ExitAfterLast bool `mapstructure:"exit-after-last" toml:"exit-after-last"`
}

// Config holds the deskclock configuration
type Config struct {
	ConfigFile string        `mapstructure:"config" toml:"-"`
	TickRate   int           `mapstructure:"tick-rate" toml:"tick-rate"`
	LongPress  time.Duration `mapstructure:"long-press" toml:"long-press"`
	DryRun     bool          `mapstructure:"dry-run" toml:"dry-run"`
	StateFile  string        `mapstructure:"state-file" toml:"state-file"`

	Buttons  ButtonsConfig  `mapstructure:"buttons" toml:"buttons"`
	Speaker  SpeakerConfig  `mapstructure:"speaker" toml:"speaker"`
	Clock    ClockConfig    `mapstructure:"clock" toml:"clock"`
	Pomodoro PomodoroConfig `mapstructure:"pomodoro" toml:"pomodoro"`
	Settings SettingsConfig `mapstructure:"settings" toml:"settings"`
}

// Default wiring
const (
	defaultTopButton    = "GPIO2:active-low:pull-up"
	defaultMiddleButton = "GPIO17:active-low:pull-up"
	defaultBottomButton = "GPIO15:active-low:pull-up"
	defaultSpeakerPin   = "GPIO14"
)

func getDefaultConfigFile() string {
	return filepath.Join(xdg.ConfigHome, "deskclock", "deskclock.toml")
}

// NewConfig creates a new Config with default values
func NewConfig() *Config {
	return &Config{
		TickRate:  core.DefaultTickRate,
		LongPress: gesture.DefaultLongPress,
		StateFile: store.DefaultPath(),
		Buttons: ButtonsConfig{
			Driver: "gpio",
			Top:    defaultTopButton,
			Middle: defaultMiddleButton,
			Bottom: defaultBottomButton,
		},
		Speaker: SpeakerConfig{
			Enabled: true,
			Pin:     defaultSpeakerPin,
		},
		Clock: ClockConfig{
			Options: display.Options{
				TwentyFourHour: true,
				BlinkColon:     true,
			},
		},
		Pomodoro: PomodoroConfig{DefaultMinutes: pomodoro.DefaultMinutes},
		Settings: SettingsConfig{ExitAfterLast: true},
	}
}

func (c *Config) defaults() map[string]any {
	return map[string]any{
		"tick-rate":                c.TickRate,
		"long-press":               c.LongPress,
		"dry-run":                  c.DryRun,
		"state-file":               c.StateFile,
		"buttons.driver":           c.Buttons.Driver,
		"buttons.top":              c.Buttons.Top,
		"buttons.middle":           c.Buttons.Middle,
		"buttons.bottom":           c.Buttons.Bottom,
		"speaker.enabled":          c.Speaker.Enabled,
		"speaker.pin":              c.Speaker.Pin,
		"clock.24-hour":            c.Clock.TwentyFourHour,
		"clock.blink-colon":        c.Clock.BlinkColon,
		"clock.hourly-chime":       c.Clock.HourlyChime,
		"pomodoro.default-minutes": c.Pomodoro.DefaultMinutes,
		"settings.exit-after-last": c.Settings.ExitAfterLast,
	}
}

// AddFlags adds command-line flags for all configuration options
func (c *Config) AddFlags(fs *pflag.FlagSet) {
	fs.StringVar(&c.ConfigFile, "config", getDefaultConfigFile(), "Config file to use")
	fs.IntVar(&c.TickRate, "tick-rate", c.TickRate, "Button samples per second")
	fs.DurationVar(&c.LongPress, "long-press", c.LongPress, "Hold time for a long press")
	fs.BoolVarP(&c.DryRun, "dry-run", "n", c.DryRun, "Use dummy buttons, a fake display and a silent speaker; read button presses from stdin")
	fs.StringVar(&c.StateFile, "state-file", c.StateFile, "Where to save the clock state (empty to disable)")

	fs.StringVar(&c.Buttons.Driver, "buttons.driver", c.Buttons.Driver, fmt.Sprintf("Button driver (%v)", buttondriver.ListDrivers()))
	fs.StringVar(&c.Buttons.Top, "buttons.top", c.Buttons.Top, "Top button spec")
	fs.StringVar(&c.Buttons.Middle, "buttons.middle", c.Buttons.Middle, "Middle button spec")
	fs.StringVar(&c.Buttons.Bottom, "buttons.bottom", c.Buttons.Bottom, "Bottom button spec")

	fs.BoolVar(&c.Speaker.Enabled, "speaker.enabled", c.Speaker.Enabled, "Enable the speaker")
	fs.StringVar(&c.Speaker.Pin, "speaker.pin", c.Speaker.Pin, "Speaker pin spec")

	fs.BoolVar(&c.Clock.TwentyFourHour, "clock.24-hour", c.Clock.TwentyFourHour, "Show time on a 24 hour clock")
	fs.BoolVar(&c.Clock.BlinkColon, "clock.blink-colon", c.Clock.BlinkColon, "Blink the colon once per second")
	fs.BoolVar(&c.Clock.HourlyChime, "clock.hourly-chime", c.Clock.HourlyChime, "Beep at the top of every hour")

	fs.IntVar(&c.Pomodoro.DefaultMinutes, "pomodoro.default-minutes", c.Pomodoro.DefaultMinutes, "Pomodoro length a long press resets to")
	fs.BoolVar(&c.Settings.ExitAfterLast, "settings.exit-after-last", c.Settings.ExitAfterLast, "Return to the clock after the last setting")
}

// LoadConfigWithFlagSet loads configuration with precedence defaults <
// config file < explicitly set flags
func (c *Config) LoadConfigWithFlagSet(fs *pflag.FlagSet) error {
	defaultConfigFile := getDefaultConfigFile()
	explicitConfigFile := c.ConfigFile != defaultConfigFile

	if _, err := os.Stat(c.ConfigFile); os.IsNotExist(err) {
		if explicitConfigFile {
			return fmt.Errorf("%w: %s", config.ErrConfigFileNotFound, c.ConfigFile)
		}
		c.ConfigFile = ""
	}

	loader := config.NewConfigLoader()
	loader.SetConfigFile(c.ConfigFile)
	loader.SetDefaults(NewConfig().defaults())
	loader.SetStrictMode(true)

	if err := loader.LoadConfigWithFlagSet(c, fs); err != nil {
		return err
	}

	return c.Validate()
}

// Validate checks values the flag and file parsers cannot
func (c *Config) Validate() error {
	if c.TickRate < 1 || c.TickRate > core.MaxTickRate {
		return fmt.Errorf("%w: tick-rate must be between 1 and %d (got %d)", ErrInvalidConfig, core.MaxTickRate, c.TickRate)
	}
	if c.LongPress <= 0 {
		return fmt.Errorf("%w: long-press must be positive (got %s)", ErrInvalidConfig, c.LongPress)
	}
	if m := c.Pomodoro.DefaultMinutes; m < pomodoro.MinMinutes || m > pomodoro.MaxMinutes {
		return fmt.Errorf("%w: pomodoro.default-minutes must be between %d and %d (got %d)",
			ErrInvalidConfig, pomodoro.MinMinutes, pomodoro.MaxMinutes, m)
	}

	if !c.DryRun {
		if err := buttondriver.Validate(c.Buttons.Driver, c.Buttons.DriverConfig, buttonNames, c.Buttons.Specs()); err != nil {
			return fmt.Errorf("%w: buttons: %w", ErrInvalidConfig, err)
		}
		if c.Speaker.Enabled {
			if _, err := gpio.ParsePin(c.Speaker.Pin); err != nil {
				return fmt.Errorf("%w: speaker.pin: %w", ErrInvalidConfig, err)
			}
		}
	}

	return nil
}

// CoreOptions returns the engine options the configuration describes
func (c *Config) CoreOptions() core.Options {
	opts := core.DefaultOptions()
	opts.TickRate = c.TickRate
	opts.LongPress = c.LongPress
	opts.PomodoroDefaultMinutes = c.Pomodoro.DefaultMinutes
	opts.ExitAfterLast = c.Settings.ExitAfterLast
	return opts
}

// buttonNames lists the button names in routing order
var buttonNames = func() []string {
	names := make([]string, 0, gesture.NumButtons)
	for _, b := range gesture.Buttons {
		names = append(names, b.String())
	}
	return names
}()
