package deskclock

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/larsks/deskclock/internal/buttondriver/common"
	"github.com/larsks/deskclock/internal/cli"
	"github.com/larsks/deskclock/internal/gesture"
)

// ButtonTestHandler prints the gestures classified from the configured
// buttons, for checking wiring and the long press threshold.
type ButtonTestHandler struct {
	stdin  io.Reader
	stdout io.Writer
}

func NewButtonTestHandler() *ButtonTestHandler {
	return &ButtonTestHandler{stdin: os.Stdin, stdout: os.Stdout}
}

// Start implements the CommandHandler interface
func (h *ButtonTestHandler) Start(config cli.Configurable) error {
	cfg := config.(*Config)

	driver, err := openButtons(cfg)
	if err != nil {
		return err
	}
	defer driver.Stop()

	classifier, err := gesture.NewClassifier(gesture.ThresholdTicks(cfg.LongPress, cfg.TickRate))
	if err != nil {
		return fmt.Errorf("failed to create gesture classifier: %w", err)
	}

	if err := driver.Start(); err != nil {
		return fmt.Errorf("failed to start button driver: %w", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if cfg.DryRun {
		startInput(ctx, cfg, driver, h.stdin)
	}

	go logButtonEvents(driver.Events())

	fmt.Fprintf(h.stdout, "Buttons: %v\n", driver.GetButtons())
	fmt.Fprintf(h.stdout, "Long press after %d ticks at %d ticks/s\n", classifier.Threshold(), cfg.TickRate)
	fmt.Fprintln(h.stdout, "Press Ctrl+C to stop...")

	ticker := time.NewTicker(interval(cfg.TickRate))
	defer ticker.Stop()
	counter := newTickCounter(cfg.TickRate, time.Now())

	for {
		select {
		case <-ctx.Done():
			log.Println("received shutdown signal")
			return nil
		case now := <-ticker.C:
			n := counter.elapsed(time.Now())
			if n == 0 {
				continue
			}
			for _, g := range classify(driver, classifier, n) {
				fmt.Fprintf(h.stdout, "[%s] %s %s\n", now.Format("15:04:05.000"), g.Button, g.Kind)
			}
		}
	}
}

// classify samples every button once and returns the gestures completed,
// in routing order
func classify(driver common.ButtonDriver, classifier *gesture.Classifier, elapsed int) []gesture.Gesture {
	var gestures []gesture.Gesture
	for _, b := range gesture.Buttons {
		if g, ok := classifier.Observe(b, driver.IsPressed(b.String()), elapsed); ok {
			gestures = append(gestures, g)
		}
	}
	return gestures
}
