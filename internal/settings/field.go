package settings

import (
	"fmt"
	"strconv"

	"github.com/larsks/deskclock/internal/pomodoro"
	"github.com/larsks/deskclock/internal/timekeeper"
)

// FieldID identifies an editable setting
type FieldID int

const (
	Hour FieldID = iota
	Minute
	Meridiem
	Weekday
	PomodoroDefault
)

// Field describes the range and ownership of one editable setting
type Field struct {
	ID    FieldID
	Label string
	Min   int
	Max   int

	// Clock is the time-keeping field this setting commits to. It is
	// ignored for fields that are not owned by the clock.
	Clock timekeeper.Field
	clock bool
}

// Fields is the fixed order the wizard steps through
var Fields = [...]Field{
	{ID: Hour, Label: "HOUR", Min: 1, Max: 12, Clock: timekeeper.FieldHour, clock: true},
	{ID: Minute, Label: "MIN", Min: 0, Max: 59, Clock: timekeeper.FieldMinute, clock: true},
	{ID: Meridiem, Label: "AM/PM", Min: int(timekeeper.AM), Max: int(timekeeper.PM), Clock: timekeeper.FieldMeridiem, clock: true},
	{ID: Weekday, Label: "DAY", Min: 0, Max: timekeeper.DaysPerWeek - 1, Clock: timekeeper.FieldWeekday, clock: true},
	{ID: PomodoroDefault, Label: "POMO", Min: pomodoro.MinMinutes, Max: pomodoro.MaxMinutes},
}

// NumFields is the number of editable settings
const NumFields = len(Fields)

// OwnedByClock reports whether the field commits to the time-keeping engine
func (f Field) OwnedByClock() bool {
	return f.clock
}

// InTimeGroup reports whether committing the field zeroes the seconds
func (f Field) InTimeGroup() bool {
	return f.clock && f.Clock.InTimeGroup()
}

// Format renders a field value the way the display shows it
func (f Field) Format(value int) string {
	switch f.ID {
	case Hour, Minute:
		return fmt.Sprintf("%02d", value)
	case Meridiem:
		return timekeeper.Meridiem(value).String()
	case Weekday:
		return timekeeper.WeekdayName(value)
	default:
		return strconv.Itoa(value)
	}
}

func (id FieldID) String() string {
	if id < 0 || int(id) >= NumFields {
		return fmt.Sprintf("field(%d)", int(id))
	}
	return Fields[id].Label
}

// increment and decrement wrap at the field bounds
func (f Field) increment(v int) int {
	if v >= f.Max {
		return f.Min
	}
	return v + 1
}

func (f Field) decrement(v int) int {
	if v <= f.Min {
		return f.Max
	}
	return v - 1
}
