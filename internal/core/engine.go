// Package core runs one tick of the desk clock: classify button samples,
// route the resulting gestures, then advance time.
package core

import (
	"fmt"
	"time"

	"github.com/larsks/deskclock/internal/gesture"
	"github.com/larsks/deskclock/internal/modes"
	"github.com/larsks/deskclock/internal/pomodoro"
	"github.com/larsks/deskclock/internal/settings"
	"github.com/larsks/deskclock/internal/timekeeper"
)

const (
	DefaultTickRate = 100
	MaxTickRate     = 1000
)

// Options configures a new Engine
type Options struct {
	// TickRate is the number of Step calls per second of elapsed time
	TickRate int

	// LongPress is how long a button must be held to fire a long press
	LongPress time.Duration

	PomodoroDefaultMinutes int

	// ExitAfterLast makes the settings wizard return to the clock after
	// the last field is committed
	ExitAfterLast bool

	// Start is the initial clock time
	Start timekeeper.ClockTime
}

// DefaultOptions returns the options the appliance ships with
func DefaultOptions() Options {
	return Options{
		TickRate:               DefaultTickRate,
		LongPress:              gesture.DefaultLongPress,
		PomodoroDefaultMinutes: pomodoro.DefaultMinutes,
		ExitAfterLast:          true,
	}
}

// Result reports what happened during one Step
type Result struct {
	// Gestures lists the gestures produced, in routing order
	Gestures []gesture.Gesture

	// AppChanged is set when any gesture changed the active app
	AppChanged bool

	// Committed lists the settings fields written this tick
	Committed []settings.FieldID

	// Seconds is the number of whole seconds the clock advanced
	Seconds int

	PomodoroCompleted bool

	// HourChime is set when the clock crossed the top of an hour
	HourChime bool
}

// Engine holds all of the appliance state
type Engine struct {
	tickRate int
	ticks    int

	classifier *gesture.Classifier
	clock      *timekeeper.Engine
	timer      *pomodoro.Timer
	wizard     *settings.Wizard
	modes      *modes.Controller
}

// New returns an engine with the clock app active
func New(opts Options) (*Engine, error) {
	if opts.TickRate < 1 || opts.TickRate > MaxTickRate {
		return nil, fmt.Errorf("%w: %d", ErrInvalidTickRate, opts.TickRate)
	}

	classifier, err := gesture.NewClassifier(gesture.ThresholdTicks(opts.LongPress, opts.TickRate))
	if err != nil {
		return nil, fmt.Errorf("failed to create gesture classifier: %w", err)
	}

	clock := timekeeper.NewEngine(opts.Start)
	timer := pomodoro.New(opts.PomodoroDefaultMinutes)
	wizard := settings.NewWizard(clock, timer, opts.ExitAfterLast)

	return &Engine{
		tickRate:   opts.TickRate,
		classifier: classifier,
		clock:      clock,
		timer:      timer,
		wizard:     wizard,
		modes:      modes.NewController(timer, wizard),
	}, nil
}

// Step processes one sample of every button, taken elapsed ticks after
// the previous one. Buttons are classified and routed in the order Top,
// Middle, Bottom before time is advanced.
func (e *Engine) Step(samples [gesture.NumButtons]bool, elapsed int) Result {
	if elapsed < 1 {
		elapsed = 1
	}

	var res Result

	for _, b := range gesture.Buttons {
		g, ok := e.classifier.Observe(b, samples[b], elapsed)
		if !ok {
			continue
		}
		res.Gestures = append(res.Gestures, g)

		r := e.modes.Handle(g)
		if r.Changed() {
			res.AppChanged = true
		}
		if r.Settings.Committed {
			res.Committed = append(res.Committed, r.Settings.Field)
		}
	}

	e.ticks += elapsed
	for e.ticks >= e.tickRate {
		e.ticks -= e.tickRate
		e.advanceSecond(&res)
	}

	return res
}

func (e *Engine) advanceSecond(res *Result) {
	e.clock.AdvanceOneSecond()
	res.Seconds++

	now := e.clock.Now()
	if now.Seconds == 0 && now.Minutes == 0 {
		res.HourChime = true
	}

	if e.timer.TickSecond() {
		res.PomodoroCompleted = true
	}
}

// TickRate returns the number of ticks per second
func (e *Engine) TickRate() int {
	return e.tickRate
}

// LongPressTicks returns the long press threshold in ticks
func (e *Engine) LongPressTicks() int {
	return e.classifier.Threshold()
}

// Active returns the active app
func (e *Engine) Active() modes.AppID {
	return e.modes.Active()
}

// Activate switches to app without going through the switcher
func (e *Engine) Activate(app modes.AppID) {
	e.modes.Activate(app)
}

// Now returns the current clock time
func (e *Engine) Now() timekeeper.ClockTime {
	return e.clock.Now()
}

// SetTime replaces the clock time and restarts the current second
func (e *Engine) SetTime(t timekeeper.ClockTime) {
	e.clock.Set(t)
	e.ticks = 0
}

// Pomodoro returns the pomodoro timer state
func (e *Engine) Pomodoro() pomodoro.State {
	return e.timer.State()
}

// PomodoroDefaultMinutes returns the minutes a long press resets to
func (e *Engine) PomodoroDefaultMinutes() int {
	return e.timer.DefaultMinutes()
}
