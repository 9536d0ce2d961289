package modes

import (
	"fmt"

	"github.com/larsks/deskclock/internal/gesture"
	"github.com/larsks/deskclock/internal/settings"
)

// PomodoroApp is the gesture side of the pomodoro timer
type PomodoroApp interface {
	Handle(g gesture.Gesture)
}

// SettingsApp is the gesture side of the settings wizard
type SettingsApp interface {
	Begin()
	Handle(g gesture.Gesture) settings.Outcome
}

// Result reports what routing a gesture did
type Result struct {
	// From and To are the active app before and after the gesture
	From AppID
	To   AppID

	// Settings is the wizard outcome when the gesture went to Settings
	Settings settings.Outcome
}

// Changed reports whether the active app changed
func (r Result) Changed() bool {
	return r.From != r.To
}

// Controller owns the active app. The long top press is checked before
// any per-app dispatch so it reaches the switcher from every app state.
type Controller struct {
	active AppID
	cursor int

	clock    ClockApp
	pomodoro PomodoroApp
	settings SettingsApp
}

// NewController returns a controller with the clock active
func NewController(pomodoro PomodoroApp, settings SettingsApp) *Controller {
	return &Controller{
		active:   Clock,
		pomodoro: pomodoro,
		settings: settings,
	}
}

// Active returns the app currently receiving gestures
func (c *Controller) Active() AppID {
	return c.active
}

// Selection returns the app under the switcher cursor
func (c *Controller) Selection() AppID {
	return Selectable[c.cursor]
}

// Activate makes app the active app as if it had been chosen in the
// switcher. Activating AppSwitcher opens it with the cursor on the app
// that was active.
func (c *Controller) Activate(app AppID) {
	switch app {
	case AppSwitcher:
		c.openSwitcher()
	case Clock, Pomodoro:
		c.active = app
	case Settings:
		c.settings.Begin()
		c.active = app
	default:
		panic(fmt.Sprintf("modes: activate unknown app %d", int(app)))
	}
}

// Handle routes one gesture
func (c *Controller) Handle(g gesture.Gesture) Result {
	res := Result{From: c.active}

	if g.Is(gesture.LongPress, gesture.Top) {
		c.openSwitcher()
		res.To = c.active
		return res
	}

	switch c.active {
	case Clock:
		c.clock.Handle(g)
	case Pomodoro:
		c.pomodoro.Handle(g)
	case Settings:
		res.Settings = c.settings.Handle(g)
		if res.Settings.Exit {
			c.active = Clock
		}
	case AppSwitcher:
		c.handleSwitcher(g)
	default:
		panic(fmt.Sprintf("modes: gesture routed to unknown app %d", int(c.active)))
	}

	res.To = c.active
	return res
}

// openSwitcher is a no-op when the switcher is already open, so a second
// long press keeps the cursor where it is.
func (c *Controller) openSwitcher() {
	if c.active == AppSwitcher {
		return
	}
	if i := selectableIndex(c.active); i >= 0 {
		c.cursor = i
	}
	c.active = AppSwitcher
}

func (c *Controller) handleSwitcher(g gesture.Gesture) {
	if g.Kind != gesture.ShortPress {
		return
	}

	n := len(Selectable)
	switch g.Button {
	case gesture.Middle:
		c.cursor = (c.cursor + 1) % n
	case gesture.Bottom:
		c.cursor = (c.cursor + n - 1) % n
	case gesture.Top:
		c.Activate(Selectable[c.cursor])
	}
}
