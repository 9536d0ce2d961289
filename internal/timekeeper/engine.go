package timekeeper

import "fmt"

// Field names a clock value that the settings wizard may commit
type Field int

const (
	FieldHour     Field = iota // 12-hour clock hour, 1-12
	FieldMinute                // 0-59
	FieldMeridiem              // AM or PM
	FieldWeekday               // 0-6, Sunday first
)

func (f Field) String() string {
	switch f {
	case FieldHour:
		return "hour"
	case FieldMinute:
		return "minute"
	case FieldMeridiem:
		return "meridiem"
	case FieldWeekday:
		return "weekday"
	default:
		return fmt.Sprintf("field(%d)", int(f))
	}
}

// InTimeGroup reports whether committing f resets the seconds to zero
func (f Field) InTimeGroup() bool {
	return f == FieldHour || f == FieldMinute || f == FieldMeridiem
}

// Engine owns the clock time. It is advanced once per elapsed second by
// the tick loop and written by the settings wizard through CommitField.
type Engine struct {
	now ClockTime
}

// NewEngine returns an engine starting at t. Out-of-range fields are
// normalized by carrying them into the next larger unit.
func NewEngine(t ClockTime) *Engine {
	e := &Engine{}
	e.Set(t)
	return e
}

// Now returns the current clock time
func (e *Engine) Now() ClockTime {
	return e.now
}

// Set replaces the clock time
func (e *Engine) Set(t ClockTime) {
	e.now = fromWeekSeconds(t.weekSeconds())
}

// AdvanceOneSecond moves the clock forward one second, carrying into
// minutes, hours and, at midnight, the day of week.
func (e *Engine) AdvanceOneSecond() {
	t := &e.now

	t.Seconds++
	if t.Seconds < SecondsPerMinute {
		return
	}
	t.Seconds = 0

	t.Minutes++
	if t.Minutes < MinutesPerHour {
		return
	}
	t.Minutes = 0

	t.Hours++
	if t.Hours < HoursPerDay {
		return
	}
	t.Hours = 0

	t.DayOfWeek = (t.DayOfWeek + 1) % DaysPerWeek
}

// Advance moves the clock forward n seconds. Negative n is ignored.
func (e *Engine) Advance(n int) {
	if n <= 0 {
		return
	}
	e.now = fromWeekSeconds(e.now.weekSeconds() + n%secondsPerWeek)
}

// CommitField writes a value edited in the settings wizard. Values are
// reduced into the field's range. Committing a time-group field resets
// the seconds to zero. An unknown field is a programming error and panics.
func (e *Engine) CommitField(f Field, value int) {
	t := &e.now

	switch f {
	case FieldHour:
		_, m := t.Hour12()
		t.Hours = To24(wrap(value, 1, 12), m)
	case FieldMinute:
		t.Minutes = wrap(value, 0, MinutesPerHour-1)
	case FieldMeridiem:
		h, _ := t.Hour12()
		t.Hours = To24(h, Meridiem(wrap(value, int(AM), int(PM))))
	case FieldWeekday:
		t.DayOfWeek = wrap(value, 0, DaysPerWeek-1)
	default:
		panic(fmt.Sprintf("timekeeper: commit of unknown field %d", int(f)))
	}

	if f.InTimeGroup() {
		t.Seconds = 0
	}
}

// FieldValue returns the value the settings wizard shows for f
func (e *Engine) FieldValue(f Field) int {
	h, m := e.now.Hour12()

	switch f {
	case FieldHour:
		return h
	case FieldMinute:
		return e.now.Minutes
	case FieldMeridiem:
		return int(m)
	case FieldWeekday:
		return e.now.DayOfWeek
	default:
		panic(fmt.Sprintf("timekeeper: value of unknown field %d", int(f)))
	}
}

// wrap reduces v into [lo, hi] cyclically
func wrap(v, lo, hi int) int {
	n := hi - lo + 1
	return ((v-lo)%n+n)%n + lo
}
