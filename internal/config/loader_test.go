package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type clockSection struct {
	TwentyFourHour bool `mapstructure:"24-hour"`
	BlinkColon     bool `mapstructure:"blink-colon"`
}

// TestConfig is a sample config struct for testing
type TestConfig struct {
	ConfigFile string        `mapstructure:"config"`
	TickRate   int           `mapstructure:"tick-rate"`
	LongPress  time.Duration `mapstructure:"long-press"`
	StateFile  string        `mapstructure:"state-file"`
	Clock      clockSection  `mapstructure:"clock"`
}

func (c *TestConfig) AddFlags(fs *pflag.FlagSet) {
	fs.StringVar(&c.ConfigFile, "config", c.ConfigFile, "Config file to use")
	fs.IntVar(&c.TickRate, "tick-rate", c.TickRate, "Ticks per second")
	fs.DurationVar(&c.LongPress, "long-press", c.LongPress, "Long press duration")
	fs.StringVar(&c.StateFile, "state-file", c.StateFile, "State file")
	fs.BoolVar(&c.Clock.TwentyFourHour, "clock.24-hour", c.Clock.TwentyFourHour, "Use a 24 hour clock")
	fs.BoolVar(&c.Clock.BlinkColon, "clock.blink-colon", c.Clock.BlinkColon, "Blink the colon")
}

var testDefaults = map[string]any{
	"tick-rate":         100,
	"long-press":        500 * time.Millisecond,
	"clock.24-hour":     false,
	"clock.blink-colon": true,
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "deskclock.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func load(t *testing.T, configFile string, args []string, strict bool) (*TestConfig, error) {
	t.Helper()

	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	cfg := &TestConfig{ConfigFile: configFile}
	cfg.AddFlags(fs)
	require.NoError(t, fs.Parse(args))

	loader := NewConfigLoader()
	loader.SetConfigFile(configFile)
	loader.SetDefaults(testDefaults)
	loader.SetStrictMode(strict)

	return cfg, loader.LoadConfigWithFlagSet(cfg, fs)
}

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := load(t, "", nil, false)
	require.NoError(t, err)

	assert.Equal(t, 100, cfg.TickRate)
	assert.Equal(t, 500*time.Millisecond, cfg.LongPress)
	assert.False(t, cfg.Clock.TwentyFourHour)
	assert.True(t, cfg.Clock.BlinkColon)
}

func TestLoadConfig_FileOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
tick-rate = 50
long-press = "750ms"

[clock]
24-hour = true
`)

	cfg, err := load(t, path, nil, false)
	require.NoError(t, err)

	assert.Equal(t, 50, cfg.TickRate)
	assert.Equal(t, 750*time.Millisecond, cfg.LongPress)
	assert.True(t, cfg.Clock.TwentyFourHour)
	assert.True(t, cfg.Clock.BlinkColon, "keys missing from the file keep their defaults")
	assert.Equal(t, path, cfg.ConfigFile)
}

func TestLoadConfig_FlagPrecedence(t *testing.T) {
	path := writeConfig(t, `
tick-rate = 50

[clock]
24-hour = true
blink-colon = true
`)

	cfg, err := load(t, path, []string{"--tick-rate", "200", "--clock.blink-colon=false", "--long-press", "1s"}, false)
	require.NoError(t, err)

	assert.Equal(t, 200, cfg.TickRate, "explicit flag beats the file")
	assert.Equal(t, time.Second, cfg.LongPress)
	assert.False(t, cfg.Clock.BlinkColon, "explicit nested flag beats the file")
	assert.True(t, cfg.Clock.TwentyFourHour, "file beats the default")
}

func TestLoadConfig_EnvironmentVariables(t *testing.T) {
	t.Setenv("DESKCLOCK_TEST_DIR", "/var/lib/deskclock")
	path := writeConfig(t, `
state-file = "${DESKCLOCK_TEST_DIR}/state.toml"
`)

	cfg, err := load(t, path, nil, false)
	require.NoError(t, err)
	assert.Equal(t, "/var/lib/deskclock/state.toml", cfg.StateFile)
}

func TestLoadConfig_EnvironmentVariablesNotSet(t *testing.T) {
	os.Unsetenv("DESKCLOCK_NONEXISTENT_VAR")
	path := writeConfig(t, `
state-file = "$DESKCLOCK_NONEXISTENT_VAR/state.toml"
`)

	cfg, err := load(t, path, nil, false)
	require.NoError(t, err)
	assert.Equal(t, "$DESKCLOCK_NONEXISTENT_VAR/state.toml", cfg.StateFile)
}

func TestLoadConfig_StrictMode(t *testing.T) {
	path := writeConfig(t, `
tick-rate = 50
tick-rat = 60
`)

	_, err := load(t, path, nil, false)
	assert.NoError(t, err, "unknown keys are ignored by default")

	_, err = load(t, path, nil, true)
	assert.ErrorIs(t, err, ErrConfigUnmarshal)
	assert.Contains(t, err.Error(), "tick-rat")
}

func TestLoadConfig_Errors(t *testing.T) {
	_, err := load(t, filepath.Join(t.TempDir(), "missing.toml"), nil, false)
	assert.ErrorIs(t, err, ErrConfigFileRead)

	path := writeConfig(t, `tick-rate = "fast"`)
	_, err = load(t, path, nil, false)
	assert.ErrorIs(t, err, ErrConfigUnmarshal)

	loader := NewConfigLoader()
	var notStruct int
	assert.ErrorIs(t, loader.LoadConfigWithFlagSet(&notStruct, pflag.NewFlagSet("x", pflag.ContinueOnError)), ErrConfigNotStruct)
	assert.ErrorIs(t, loader.LoadConfigWithFlagSet(TestConfig{}, pflag.NewFlagSet("x", pflag.ContinueOnError)), ErrConfigNotPointer)
}

func TestExpandEnv(t *testing.T) {
	t.Setenv("DESKCLOCK_A", "alpha")

	tests := []struct {
		in, want string
	}{
		{"plain", "plain"},
		{"$DESKCLOCK_A", "alpha"},
		{"${DESKCLOCK_A}-x", "alpha-x"},
		{"${DESKCLOCK_UNSET_B}", "${DESKCLOCK_UNSET_B}"},
		{"cost: $5", "cost: $5"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, expandEnv(tt.in))
		})
	}
}

func TestStandardConfigPattern(t *testing.T) {
	path := writeConfig(t, `tick-rate = 25`)

	pflag.CommandLine = pflag.NewFlagSet("test", pflag.ContinueOnError)
	cfg := &TestConfig{}
	cfg.AddFlags(pflag.CommandLine)
	require.NoError(t, pflag.CommandLine.Parse(nil))

	require.NoError(t, StandardConfigPattern(cfg, path, testDefaults))
	assert.Equal(t, 25, cfg.TickRate)
	assert.Equal(t, 500*time.Millisecond, cfg.LongPress)
}

func TestLoadConfig_SkipAnnotatedFlags(t *testing.T) {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.Bool("version", false, "Show version")
	require.NoError(t, fs.SetAnnotation("version", SkipAnnotation, []string{"true"}))

	cfg := &TestConfig{}
	cfg.AddFlags(fs)
	require.NoError(t, fs.Parse([]string{"--version", "--tick-rate", "10"}))

	loader := NewConfigLoader()
	loader.SetDefaults(testDefaults)
	loader.SetStrictMode(true)

	require.NoError(t, loader.LoadConfigWithFlagSet(cfg, fs))
	assert.Equal(t, 10, cfg.TickRate)
}
