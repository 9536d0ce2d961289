package deskclock

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/larsks/deskclock/internal/buttondriver/common"
	"github.com/larsks/deskclock/internal/core"
	"github.com/larsks/deskclock/internal/display"
	"github.com/larsks/deskclock/internal/gesture"
	"github.com/larsks/deskclock/internal/speaker"
	"github.com/larsks/deskclock/internal/store"
	"github.com/larsks/deskclock/internal/timekeeper"
)

// Beeper plays speaker patterns
type Beeper interface {
	Play(p speaker.Pattern) error
	Close() error
}

// Runner owns the core engine and is the only goroutine that touches it
type Runner struct {
	engine *core.Engine
	driver common.ButtonDriver
	sink   display.Sink

	// beeper and store are nil when disabled
	beeper Beeper
	store  *store.Store

	hourlyChime bool
	now         func() time.Time
}

// NewRunner builds the engine, restoring the clock from st when a saved
// state is available and from the system clock otherwise.
func NewRunner(cfg *Config, driver common.ButtonDriver, sink display.Sink, beeper Beeper, st *store.Store) (*Runner, error) {
	return newRunner(cfg, driver, sink, beeper, st, time.Now)
}

func newRunner(cfg *Config, driver common.ButtonDriver, sink display.Sink, beeper Beeper, st *store.Store, now func() time.Time) (*Runner, error) {
	opts := cfg.CoreOptions()
	opts.Start, opts.PomodoroDefaultMinutes = restore(st, now(), opts.PomodoroDefaultMinutes)

	engine, err := core.New(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to create engine: %w", err)
	}

	return &Runner{
		engine:      engine,
		driver:      driver,
		sink:        sink,
		beeper:      beeper,
		store:       st,
		hourlyChime: cfg.Clock.HourlyChime,
		now:         now,
	}, nil
}

// restore returns the starting clock time and pomodoro default. A saved
// pomodoro default wins over the configured one since it was last set on
// the device itself.
func restore(st *store.Store, now time.Time, pomodoroDefault int) (timekeeper.ClockTime, int) {
	if st == nil {
		return timekeeper.FromTime(now), pomodoroDefault
	}

	state, err := st.Load()
	if err != nil {
		if errors.Is(err, store.ErrNoState) {
			log.Printf("no saved state in %s, using system clock", st.Path())
		} else {
			log.Printf("failed to load state, using system clock: %v", err)
		}
		return timekeeper.FromTime(now), pomodoroDefault
	}

	clock := state.ClockAt(now)
	log.Printf("restored clock %s from %s", clock, st.Path())
	return clock, state.PomodoroDefaultMinutes
}

// Engine returns the engine driven by the runner
func (r *Runner) Engine() *core.Engine {
	return r.engine
}

// Tick samples every button, steps the engine by elapsed ticks and hands
// the results to the speaker, the state file and the display.
func (r *Runner) Tick(elapsed int) core.Result {
	var samples [gesture.NumButtons]bool
	for _, b := range gesture.Buttons {
		samples[b] = r.driver.IsPressed(b.String())
	}

	res := r.engine.Step(samples, elapsed)

	for _, g := range res.Gestures {
		log.Printf("[%s] %s", g.Button, g.Kind)
	}
	if res.AppChanged {
		log.Printf("[modes] active app: %s", r.engine.Active())
	}

	switch {
	case res.PomodoroCompleted:
		log.Printf("[pomodoro] completed")
		r.beep(speaker.Completion)
	case res.HourChime && r.hourlyChime:
		r.beep(speaker.HourChime)
	}

	if len(res.Committed) > 0 {
		r.save()
	}

	r.render()
	return res
}

// Run starts the button driver and ticks the engine until ctx is
// canceled. The state is saved and every collaborator closed on return.
func (r *Runner) Run(ctx context.Context) error {
	if err := r.driver.Start(); err != nil {
		release(r.driver, r.sink, r.beeper)
		return fmt.Errorf("failed to start button driver: %w", err)
	}
	defer r.shutdown()

	go logButtonEvents(r.driver.Events())

	rate := r.engine.TickRate()
	ticker := time.NewTicker(interval(rate))
	defer ticker.Stop()

	counter := newTickCounter(rate, r.now())
	r.render()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if n := counter.elapsed(r.now()); n > 0 {
				r.Tick(n)
			}
		}
	}
}

func (r *Runner) shutdown() {
	log.Println("shutting down")

	r.save()
	release(r.driver, r.sink, r.beeper)
}

// release stops the button driver and closes the display and speaker.
// Nil collaborators are skipped.
func release(driver common.ButtonDriver, sink display.Sink, beeper Beeper) {
	if driver != nil {
		driver.Stop()
	}
	if sink != nil {
		if err := sink.Close(); err != nil {
			log.Printf("failed to close display: %v", err)
		}
	}
	if beeper != nil {
		if err := beeper.Close(); err != nil {
			log.Printf("failed to close speaker: %v", err)
		}
	}
}

func (r *Runner) beep(p speaker.Pattern) {
	if r.beeper == nil {
		return
	}
	if err := r.beeper.Play(p); err != nil {
		log.Printf("failed to play %s: %v", p, err)
	}
}

func (r *Runner) save() {
	if r.store == nil {
		return
	}

	state := store.State{
		Clock:                  r.engine.Now(),
		PomodoroDefaultMinutes: r.engine.PomodoroDefaultMinutes(),
	}
	if err := r.store.Save(state); err != nil {
		log.Printf("failed to save state: %v", err)
	}
}

func (r *Runner) render() {
	if err := r.sink.Render(r.engine.Frame()); err != nil {
		log.Printf("failed to render frame: %v", err)
	}
}

// logButtonEvents drains the driver's transitions until it is stopped
func logButtonEvents(events <-chan common.ButtonEvent) {
	for ev := range events {
		log.Printf("[%s] %s (%s)", ev.Source, ev.Type, ev.Device)
	}
}
