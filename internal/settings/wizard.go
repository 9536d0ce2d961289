// Package settings implements the step-by-step settings editor.
//
// The wizard walks a fixed list of fields. A short middle press increments
// the current field and a short bottom press decrements it, both wrapping at
// the field bounds. A short top press commits the field to the component
// that owns it and moves to the next one.
package settings

import (
	"fmt"

	"github.com/larsks/deskclock/internal/gesture"
	"github.com/larsks/deskclock/internal/timekeeper"
)

// Clock is the time-keeping side of the wizard
type Clock interface {
	FieldValue(f timekeeper.Field) int
	CommitField(f timekeeper.Field, value int)
}

// PomodoroDefaults is the pomodoro side of the wizard
type PomodoroDefaults interface {
	DefaultMinutes() int
	SetDefaultMinutes(minutes int)
}

// Outcome reports what a gesture did beyond editing the current value
type Outcome struct {
	// Committed is set when a field was written to its owner
	Committed bool
	Field     FieldID

	// Exit is set when the wizard finished its pass and the mode
	// controller should return to the clock
	Exit bool
}

// Snapshot is the wizard state shown on the display
type Snapshot struct {
	Field Field
	Value int
	Index int
}

// Wizard is the settings state machine
type Wizard struct {
	clock         Clock
	pomodoro      PomodoroDefaults
	exitAfterLast bool

	cursor int

	// value holds the in-progress edit once the current field has been
	// edited; until then the field shows its owner's live value
	value  int
	edited bool
}

// NewWizard returns a wizard writing through to clock and pomodoro. When
// exitAfterLast is set, committing the last field ends the pass and
// returns to the clock; otherwise the wizard wraps to the first field.
func NewWizard(clock Clock, pomodoro PomodoroDefaults, exitAfterLast bool) *Wizard {
	w := &Wizard{
		clock:         clock,
		pomodoro:      pomodoro,
		exitAfterLast: exitAfterLast,
	}
	w.Begin()
	return w
}

// Begin starts a fresh pass at the first field, discarding any edits that
// were not committed.
func (w *Wizard) Begin() {
	w.seek(0)
}

func (w *Wizard) seek(cursor int) {
	w.cursor = cursor
	w.edited = false
}

// current returns the value shown and committed for the current field. An
// unedited field tracks its owner, so stepping past it keeps time that has
// passed since the wizard reached it.
func (w *Wizard) current() int {
	if w.edited {
		return w.value
	}
	return w.load(Fields[w.cursor])
}

// ExitAfterLast reports whether the wizard returns to the clock on wrap
func (w *Wizard) ExitAfterLast() bool {
	return w.exitAfterLast
}

// Cursor returns the index of the field being edited
func (w *Wizard) Cursor() int {
	return w.cursor
}

// Snapshot returns the field being edited and its in-progress value
func (w *Wizard) Snapshot() Snapshot {
	return Snapshot{
		Field: Fields[w.cursor],
		Value: w.current(),
		Index: w.cursor,
	}
}

// Handle applies a gesture routed to the settings app. Long presses are
// not assigned in settings and do nothing.
func (w *Wizard) Handle(g gesture.Gesture) Outcome {
	if g.Kind != gesture.ShortPress {
		return Outcome{}
	}

	f := Fields[w.cursor]

	switch g.Button {
	case gesture.Middle:
		w.value, w.edited = f.increment(w.current()), true
	case gesture.Bottom:
		w.value, w.edited = f.decrement(w.current()), true
	case gesture.Top:
		return w.next()
	}

	return Outcome{}
}

// next commits the current field and advances the cursor
func (w *Wizard) next() Outcome {
	f := Fields[w.cursor]
	w.commit(f, w.current())

	out := Outcome{Committed: true, Field: f.ID}

	w.seek((w.cursor + 1) % NumFields)
	if w.cursor == 0 && w.exitAfterLast {
		out.Exit = true
	}

	return out
}

func (w *Wizard) commit(f Field, value int) {
	if f.OwnedByClock() {
		w.clock.CommitField(f.Clock, value)
		return
	}

	switch f.ID {
	case PomodoroDefault:
		w.pomodoro.SetDefaultMinutes(value)
	default:
		panic(fmt.Sprintf("settings: no owner for field %s", f.ID))
	}
}

func (w *Wizard) load(f Field) int {
	if f.OwnedByClock() {
		return w.clock.FieldValue(f.Clock)
	}

	switch f.ID {
	case PomodoroDefault:
		return w.pomodoro.DefaultMinutes()
	default:
		panic(fmt.Sprintf("settings: no owner for field %s", f.ID))
	}
}
