// Package cli holds the flag parsing and command dispatch shared by the
// deskclock commands.
package cli

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/larsks/deskclock/internal/config"
	"github.com/larsks/deskclock/internal/version"
	"github.com/spf13/pflag"
)

var ErrUnknownCommand = errors.New("unknown command")

// Configurable represents a type that can be configured via flags and config files
type Configurable interface {
	AddFlags(fs *pflag.FlagSet)
	LoadConfigWithFlagSet(fs *pflag.FlagSet) error
}

// CommandHandler represents a command that can be executed
type CommandHandler interface {
	Start(config Configurable) error
}

// Command selects what Execute does with the parsed configuration
type Command string

const (
	CommandStart      Command = "start"
	CommandVersion    Command = "version"
	CommandDumpConfig Command = "dump-config"
)

// BaseCLI provides common CLI functionality
type BaseCLI struct {
	stdout io.Writer
	stderr io.Writer
}

// NewBaseCLI creates a new BaseCLI instance
func NewBaseCLI(stdout, stderr io.Writer) *BaseCLI {
	return &BaseCLI{
		stdout: stdout,
		stderr: stderr,
	}
}

// CommandArgs represents parsed command line arguments
type CommandArgs struct {
	Command Command
	Config  Configurable
}

// ParseArgsStandard parses os-style arguments using pflag.CommandLine
func (c *BaseCLI) ParseArgsStandard(args []string, configFactory func() Configurable) (*CommandArgs, error) {
	return c.ParseArgsStandardWithFlagSet(args, configFactory, pflag.CommandLine)
}

// ParseArgsStandardWithFlagSet parses args with a custom flag set. The
// configuration is loaded for every command except --version, so
// --dump-config shows the effective values after defaults, the config
// file and flags have been merged.
func (c *BaseCLI) ParseArgsStandardWithFlagSet(args []string, configFactory func() Configurable, fs *pflag.FlagSet) (*CommandArgs, error) {
	versionFlag := fs.Bool("version", false, "Show version and exit")
	dumpFlag := fs.Bool("dump-config", false, "Print the effective configuration as TOML and exit")

	for _, name := range []string{"version", "dump-config"} {
		_ = fs.SetAnnotation(name, config.SkipAnnotation, []string{"true"})
	}

	cfg := configFactory()
	cfg.AddFlags(fs)

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("failed to parse flags: %w", err)
	}

	if *versionFlag {
		return &CommandArgs{Command: CommandVersion, Config: cfg}, nil
	}

	if err := cfg.LoadConfigWithFlagSet(fs); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if *dumpFlag {
		return &CommandArgs{Command: CommandDumpConfig, Config: cfg}, nil
	}

	return &CommandArgs{Command: CommandStart, Config: cfg}, nil
}

// Execute runs the specified command
func (c *BaseCLI) Execute(cmdArgs *CommandArgs, handler CommandHandler) error {
	switch cmdArgs.Command {
	case CommandVersion:
		fmt.Fprintln(c.stdout, version.Get())
		return nil
	case CommandDumpConfig:
		if err := toml.NewEncoder(c.stdout).Encode(cmdArgs.Config); err != nil {
			return fmt.Errorf("failed to encode config: %w", err)
		}
		return nil
	case CommandStart:
		return handler.Start(cmdArgs.Config)
	default:
		return fmt.Errorf("%w: %s", ErrUnknownCommand, cmdArgs.Command)
	}
}

// StandardMain parses os.Args, loads the configuration and runs handler
func StandardMain(configFactory func() Configurable, handler CommandHandler) {
	cli := NewBaseCLI(os.Stdout, os.Stderr)

	cmdArgs, err := cli.ParseArgsStandard(os.Args[1:], configFactory)
	if err != nil {
		log.Fatalf("Error: %v", err)
	}

	if err := cli.Execute(cmdArgs, handler); err != nil {
		log.Fatalf("Error: %v", err)
	}
}
