package display

import (
	"errors"
	"fmt"
	"log"
	"slices"
	"strings"

	"github.com/larsks/deskclock/internal/core"
	ssd1306 "github.com/larsks/display1306/v2/display"
	"github.com/larsks/display1306/v2/display/fakedriver"
)

// Sink receives a frame after every tick
type Sink interface {
	Render(f core.Frame) error
	Close() error
}

// OLED draws frames on an SSD1306 display. The panel is only redrawn when
// the formatted text changes.
type OLED struct {
	display *ssd1306.Display
	opts    Options
	last    []string
	redraws int
}

// NewOLED opens the display. With dryRun set it uses the in-memory fake
// driver instead of the hardware.
func NewOLED(dryRun bool, opts Options) (*OLED, error) {
	var d *ssd1306.Display
	var err error

	if dryRun {
		d, err = ssd1306.NewDisplay().WithDriver(fakedriver.NewFakeSSD1306()).Build()
	} else {
		d, err = ssd1306.NewDisplay().Build()
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDisplayInit, err)
	}

	return NewOLEDWithDisplay(d, opts)
}

// NewOLEDWithDisplay wraps an already built display
func NewOLEDWithDisplay(d *ssd1306.Display, opts Options) (*OLED, error) {
	if err := d.Init(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDisplayInit, err)
	}
	return &OLED{display: d, opts: opts}, nil
}

func (o *OLED) Render(f core.Frame) error {
	lines := Lines(f, o.opts)
	if o.last != nil && slices.Equal(lines, o.last) {
		return nil
	}

	// shorter screens would leave stale text behind
	if err := o.display.ClearScreen(); err != nil {
		return fmt.Errorf("%w: %w", ErrDisplayUpdate, err)
	}
	if err := o.display.PrintLines(0, lines); err != nil {
		return fmt.Errorf("%w: %w", ErrDisplayUpdate, err)
	}
	if err := o.display.Update(); err != nil {
		return fmt.Errorf("%w: %w", ErrDisplayUpdate, err)
	}

	o.last = lines
	o.redraws++
	return nil
}

func (o *OLED) Close() error {
	return errors.Join(o.display.ClearScreen(), o.display.Close())
}

// LogSink writes every changed screen to the log. It is used in dry-run
// mode so the screen contents are visible on a terminal.
type LogSink struct {
	opts Options
	last string
	logf func(format string, v ...any)
}

func NewLogSink(opts Options) *LogSink {
	return &LogSink{opts: opts, logf: log.Printf}
}

func (l *LogSink) Render(f core.Frame) error {
	text := strings.Join(Lines(f, l.opts), " | ")
	if text != l.last {
		l.logf("[display] %s", text)
		l.last = text
	}
	return nil
}

func (l *LogSink) Close() error {
	return nil
}

// Tee renders every frame on all of its sinks
type Tee []Sink

func (t Tee) Render(f core.Frame) error {
	var errs []error
	for _, s := range t {
		errs = append(errs, s.Render(f))
	}
	return errors.Join(errs...)
}

func (t Tee) Close() error {
	var errs []error
	for _, s := range t {
		errs = append(errs, s.Close())
	}
	return errors.Join(errs...)
}
