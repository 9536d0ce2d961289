// Package config loads command configuration from defaults, a TOML file
// and command line flags.
package config

import (
	"fmt"
	"os"
	"reflect"
	"regexp"
	"strings"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// SkipAnnotation marks flags that control the command itself rather than
// the configuration; the loader ignores them.
const SkipAnnotation = "config-skip"

// Configurable represents a type that can be configured via flags and config files.
type Configurable interface {
	// AddFlags should add command-line flags to the provided FlagSet
	AddFlags(fs *pflag.FlagSet)
}

// ConfigLoader provides common configuration loading functionality.
type ConfigLoader struct {
	configFile string
	defaults   map[string]any
	strictMode bool
}

// NewConfigLoader creates a new ConfigLoader instance.
func NewConfigLoader() *ConfigLoader {
	return &ConfigLoader{
		defaults: make(map[string]any),
	}
}

// SetConfigFile sets the configuration file path. An empty path means no file.
func (cl *ConfigLoader) SetConfigFile(configFile string) {
	cl.configFile = configFile
}

// SetDefault sets a default value for a configuration key.
func (cl *ConfigLoader) SetDefault(key string, value any) {
	cl.defaults[key] = value
}

// SetDefaults sets multiple default values at once.
func (cl *ConfigLoader) SetDefaults(defaults map[string]any) {
	for key, value := range defaults {
		cl.defaults[key] = value
	}
}

// SetStrictMode enables or disables strict mode. In strict mode, keys in
// the config file that do not map to a struct field cause an error.
func (cl *ConfigLoader) SetStrictMode(strict bool) {
	cl.strictMode = strict
}

// LoadConfig loads configuration using the flags in pflag.CommandLine
func (cl *ConfigLoader) LoadConfig(config any) error {
	return cl.LoadConfigWithFlagSet(config, pflag.CommandLine)
}

// LoadConfigWithFlagSet loads configuration with precedence
// defaults < config file < flags explicitly set in fs. The config
// parameter must be a pointer to the struct to populate.
func (cl *ConfigLoader) LoadConfigWithFlagSet(config any, fs *pflag.FlagSet) error {
	if err := checkPointerToStruct(config); err != nil {
		return err
	}

	v := viper.New()

	for key, value := range cl.defaults {
		v.SetDefault(key, value)
	}

	if cl.configFile != "" {
		v.SetConfigFile(cl.configFile)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("%w %s: %w", ErrConfigFileRead, cl.configFile, err)
		}
	}

	// Flag names are the viper keys: "clock.24-hour" sets 24-hour in
	// the [clock] table.
	fs.Visit(func(flag *pflag.Flag) {
		if _, skip := flag.Annotations[SkipAnnotation]; skip {
			return
		}
		if slice, ok := flag.Value.(pflag.SliceValue); ok {
			v.Set(flag.Name, slice.GetSlice())
			return
		}
		v.Set(flag.Name, flag.Value.String())
	})

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			expandEnvHook,
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
		ErrorUnused:      cl.strictMode,
		WeaklyTypedInput: true,
		TagName:          "mapstructure",
		Result:           config,
	})
	if err != nil {
		return fmt.Errorf("%w: failed to create decoder: %w", ErrConfigUnmarshal, err)
	}

	if err := decoder.Decode(v.AllSettings()); err != nil {
		if cl.configFile != "" {
			return fmt.Errorf("%w: %s: %w", ErrConfigUnmarshal, cl.configFile, err)
		}
		return fmt.Errorf("%w: %w", ErrConfigUnmarshal, err)
	}

	return nil
}

var envRef = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)\}|\$([A-Za-z_][A-Za-z0-9_]*)`)

// expandEnv replaces $VAR and ${VAR} with the value of environment
// variables. References to unset variables are left as written.
func expandEnv(s string) string {
	if !strings.Contains(s, "$") {
		return s
	}
	return envRef.ReplaceAllStringFunc(s, func(ref string) string {
		m := envRef.FindStringSubmatch(ref)
		name := m[1]
		if name == "" {
			name = m[2]
		}
		if value, ok := os.LookupEnv(name); ok {
			return value
		}
		return ref
	})
}

func expandEnvHook(f reflect.Type, t reflect.Type, data any) (any, error) {
	if f.Kind() != reflect.String {
		return data, nil
	}
	return expandEnv(reflect.ValueOf(data).String()), nil
}

func checkPointerToStruct(config any) error {
	v := reflect.ValueOf(config)
	if v.Kind() != reflect.Ptr || v.IsNil() {
		return fmt.Errorf("%w: got %T", ErrConfigNotPointer, config)
	}
	if v.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("%w: got %s", ErrConfigNotStruct, v.Elem().Kind())
	}
	return nil
}

// StandardConfigPattern loads config from configFile and the default flag
// set on top of defaults.
func StandardConfigPattern(config Configurable, configFile string, defaults map[string]any) error {
	loader := NewConfigLoader()
	loader.SetConfigFile(configFile)
	loader.SetDefaults(defaults)
	return loader.LoadConfig(config)
}
