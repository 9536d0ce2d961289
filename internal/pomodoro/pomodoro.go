// Package pomodoro implements the countdown timer app.
package pomodoro

import (
	"fmt"

	"github.com/larsks/deskclock/internal/gesture"
)

const (
	MinMinutes     = 1
	MaxMinutes     = 60
	DefaultMinutes = 30
)

// Mode is the running state of the timer
type Mode int

const (
	// Configuring is the initial mode. Minutes may be changed.
	Configuring Mode = iota

	// Running counts down once per second. Minutes may not be changed.
	Running

	// Paused holds the remaining time. Minutes may be changed.
	Paused

	// Completed is entered when the countdown reaches zero. Minutes may be changed.
	Completed
)

func (m Mode) String() string {
	switch m {
	case Configuring:
		return "Configuring"
	case Running:
		return "Running"
	case Paused:
		return "Paused"
	case Completed:
		return "Completed"
	default:
		return "Unknown"
	}
}

// State is a snapshot of the timer for display
type State struct {
	Mode             Mode
	Minutes          int
	RemainingSeconds int
}

// Timer is the pomodoro state machine. It is only driven by gestures while
// it is the active app, but its countdown keeps running in the background.
type Timer struct {
	mode           Mode
	minutes        int
	remaining      int
	defaultMinutes int

	// set when minutes change while paused so resume restarts from them
	dirty bool
}

// New returns a timer in Configuring mode set to defaultMinutes
func New(defaultMinutes int) *Timer {
	d := clamp(defaultMinutes)
	return &Timer{
		mode:           Configuring,
		minutes:        d,
		remaining:      d * 60,
		defaultMinutes: d,
	}
}

// State returns the current mode, configured minutes and remaining seconds
func (t *Timer) State() State {
	return State{
		Mode:             t.mode,
		Minutes:          t.minutes,
		RemainingSeconds: t.remaining,
	}
}

// Mode returns the current mode
func (t *Timer) Mode() Mode {
	return t.mode
}

// DefaultMinutes returns the value a long press resets the minutes to
func (t *Timer) DefaultMinutes() int {
	return t.defaultMinutes
}

// SetDefaultMinutes changes the reset value. The configured minutes follow
// the new default when the timer has not been started yet.
func (t *Timer) SetDefaultMinutes(minutes int) {
	t.defaultMinutes = clamp(minutes)
	if t.mode == Configuring {
		t.setMinutes(t.defaultMinutes)
	}
}

// Handle applies a gesture routed to the pomodoro app. The long top press
// never reaches here; the mode controller intercepts it.
func (t *Timer) Handle(g gesture.Gesture) {
	switch g.Button {
	case gesture.Top:
		if g.Kind == gesture.ShortPress {
			t.toggle()
		}
	case gesture.Middle:
		if g.Kind == gesture.LongPress {
			t.setMinutes(t.defaultMinutes)
		} else {
			t.setMinutes(t.minutes + 1)
		}
	case gesture.Bottom:
		if g.Kind == gesture.LongPress {
			t.setMinutes(t.defaultMinutes)
		} else {
			t.setMinutes(t.minutes - 1)
		}
	}
}

func (t *Timer) toggle() {
	switch t.mode {
	case Configuring, Completed:
		t.start()
	case Running:
		t.mode = Paused
	case Paused:
		if t.dirty {
			t.start()
			return
		}
		t.mode = Running
	}
}

func (t *Timer) start() {
	t.mode = Running
	t.remaining = t.minutes * 60
	t.dirty = false
}

// setMinutes is a no-op while running
func (t *Timer) setMinutes(minutes int) {
	if t.mode == Running {
		return
	}

	minutes = clamp(minutes)
	if minutes == t.minutes {
		return
	}
	t.minutes = minutes

	switch t.mode {
	case Configuring:
		t.remaining = minutes * 60
	case Paused:
		t.dirty = true
	}
}

// TickSecond counts one elapsed second. It returns true on the second the
// countdown reaches zero and the timer moves to Completed.
func (t *Timer) TickSecond() bool {
	if t.mode != Running {
		return false
	}

	if t.remaining > 0 {
		t.remaining--
	}
	if t.remaining == 0 {
		t.mode = Completed
		return true
	}
	return false
}

func (s State) String() string {
	return fmt.Sprintf("%s %d min (%02d:%02d left)", s.Mode, s.Minutes, s.RemainingSeconds/60, s.RemainingSeconds%60)
}

func clamp(minutes int) int {
	if minutes < MinMinutes {
		return MinMinutes
	}
	if minutes > MaxMinutes {
		return MaxMinutes
	}
	return minutes
}
