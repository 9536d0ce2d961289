package deskclock

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/larsks/deskclock/internal/buttondriver"
	"github.com/larsks/deskclock/internal/buttondriver/common"
	"github.com/larsks/deskclock/internal/cli"
	"github.com/larsks/deskclock/internal/display"
	"github.com/larsks/deskclock/internal/gpio"
	"github.com/larsks/deskclock/internal/speaker"
	"github.com/larsks/deskclock/internal/store"
)

// Handler implements the CLI handler for deskclock
type Handler struct {
	stdin io.Reader
}

// NewHandler creates a new Handler instance
func NewHandler() *Handler {
	return &Handler{stdin: os.Stdin}
}

// Start implements the CommandHandler interface
func (h *Handler) Start(config cli.Configurable) error {
	cfg := config.(*Config)

	driver, err := openButtons(cfg)
	if err != nil {
		return err
	}

	sink, err := openDisplay(cfg)
	if err != nil {
		release(driver, nil, nil)
		return err
	}

	beeper, err := openSpeaker(cfg)
	if err != nil {
		release(driver, sink, nil)
		return err
	}

	runner, err := NewRunner(cfg, driver, sink, beeper, openStore(cfg))
	if err != nil {
		release(driver, sink, beeper)
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	go func() {
		select {
		case <-sigChan:
			log.Println("received shutdown signal")
			cancel()
		case <-ctx.Done():
		}
	}()

	if cfg.DryRun {
		startInput(ctx, cfg, driver, h.stdin)
	}

	log.Printf("starting deskclock at %s, %d ticks/s, long press after %d ticks",
		runner.Engine().Now(), cfg.TickRate, runner.Engine().LongPressTicks())

	return runner.Run(ctx)
}

// startInput reads button presses from stdin in dry-run mode
func startInput(ctx context.Context, cfg *Config, driver common.ButtonDriver, stdin io.Reader) {
	p, ok := driver.(Presser)
	if !ok {
		return
	}

	short, long := holdTimes(cfg.LongPress, interval(cfg.TickRate))
	log.Printf("reading button presses from stdin: t, m, b (short) or T, M, B (long)")
	go feedInput(ctx, stdin, p, short, long)
}

func openButtons(cfg *Config) (common.ButtonDriver, error) {
	driverType := cfg.Buttons.Driver
	driverConfig := cfg.Buttons.DriverConfig
	if cfg.DryRun {
		driverType = "dummy"
		driverConfig = nil
	}

	driver, err := buttondriver.CreateDriverWithButtons(driverType, driverConfig, buttonNames, cfg.Buttons.Specs())
	if err != nil {
		return nil, fmt.Errorf("failed to open buttons: %w", err)
	}
	return driver, nil
}

func openDisplay(cfg *Config) (display.Sink, error) {
	oled, err := display.NewOLED(cfg.DryRun, cfg.Clock.Options)
	if err != nil {
		return nil, err
	}

	if cfg.DryRun {
		return display.Tee{oled, display.NewLogSink(cfg.Clock.Options)}, nil
	}
	return oled, nil
}

func openSpeaker(cfg *Config) (Beeper, error) {
	if !cfg.Speaker.Enabled {
		return nil, nil
	}

	var out speaker.Output = speaker.LogOutput{}
	if !cfg.DryRun {
		spec, err := gpio.ParsePin(cfg.Speaker.Pin)
		if err != nil {
			return nil, fmt.Errorf("%w: speaker.pin: %w", ErrInvalidConfig, err)
		}
		out, err = speaker.NewPinOutput(spec)
		if err != nil {
			return nil, fmt.Errorf("failed to open speaker: %w", err)
		}
	}

	s, err := speaker.New(out)
	if err != nil {
		return nil, err
	}
	return s, nil
}

func openStore(cfg *Config) *store.Store {
	if cfg.StateFile == "" {
		return nil
	}
	return store.New(cfg.StateFile)
}
