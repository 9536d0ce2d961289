package core

import (
	"github.com/larsks/deskclock/internal/modes"
	"github.com/larsks/deskclock/internal/pomodoro"
	"github.com/larsks/deskclock/internal/settings"
	"github.com/larsks/deskclock/internal/timekeeper"
)

// Frame is a render request for the display. It is a comparable value so
// sinks can skip redrawing when nothing changed.
type Frame struct {
	App  modes.AppID
	Time timekeeper.ClockTime

	// FirstHalf is set during the first half of each second and drives
	// the blinking colon
	FirstHalf bool

	Pomodoro pomodoro.State
	Settings settings.Snapshot

	// Selection is the app under the switcher cursor
	Selection modes.AppID
}

// Frame returns the current render request
func (e *Engine) Frame() Frame {
	return Frame{
		App:       e.modes.Active(),
		Time:      e.clock.Now(),
		FirstHalf: e.ticks*2 < e.tickRate,
		Pomodoro:  e.timer.State(),
		Settings:  e.wizard.Snapshot(),
		Selection: e.modes.Selection(),
	}
}
