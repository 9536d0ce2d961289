// Package timekeeper keeps the appliance's wall-clock time.
package timekeeper

import (
	"fmt"
	"time"
)

const (
	SecondsPerMinute = 60
	MinutesPerHour   = 60
	HoursPerDay      = 24
	DaysPerWeek      = 7

	secondsPerWeek = SecondsPerMinute * MinutesPerHour * HoursPerDay * DaysPerWeek
)

// Meridiem is the AM/PM half of a 12-hour time
type Meridiem int

const (
	AM Meridiem = iota
	PM
)

func (m Meridiem) String() string {
	if m == PM {
		return "PM"
	}
	return "AM"
}

var weekdayNames = [DaysPerWeek]string{"SUN", "MON", "TUE", "WED", "THU", "FRI", "SAT"}

// WeekdayName returns the three letter display name for a day of week in [0,6]
func WeekdayName(day int) string {
	return weekdayNames[((day%DaysPerWeek)+DaysPerWeek)%DaysPerWeek]
}

// ClockTime is a time of day plus day of week. Hours are kept on a
// 24-hour clock; Day 0 is Sunday.
type ClockTime struct {
	Seconds   int `toml:"seconds"`
	Minutes   int `toml:"minutes"`
	Hours     int `toml:"hours"`
	DayOfWeek int `toml:"day-of-week"`
}

// FromTime captures the time of day and weekday of t
func FromTime(t time.Time) ClockTime {
	return ClockTime{
		Seconds:   t.Second(),
		Minutes:   t.Minute(),
		Hours:     t.Hour(),
		DayOfWeek: int(t.Weekday()),
	}
}

// Valid reports whether every field is inside its range
func (ct ClockTime) Valid() bool {
	return inRange(ct.Seconds, 0, SecondsPerMinute-1) &&
		inRange(ct.Minutes, 0, MinutesPerHour-1) &&
		inRange(ct.Hours, 0, HoursPerDay-1) &&
		inRange(ct.DayOfWeek, 0, DaysPerWeek-1)
}

// Hour12 returns the hour on a 12-hour clock (1-12) and its meridiem
func (ct ClockTime) Hour12() (int, Meridiem) {
	m := AM
	if ct.Hours >= 12 {
		m = PM
	}
	h := ct.Hours % 12
	if h == 0 {
		h = 12
	}
	return h, m
}

// To24 converts a 12-hour clock hour and meridiem to a 24-hour clock hour
func To24(hour12 int, m Meridiem) int {
	h := hour12 % 12
	if m == PM {
		h += 12
	}
	return h
}

// weekSeconds flattens the time into seconds since Sunday midnight
func (ct ClockTime) weekSeconds() int {
	return ((ct.DayOfWeek*HoursPerDay+ct.Hours)*MinutesPerHour+ct.Minutes)*SecondsPerMinute + ct.Seconds
}

func fromWeekSeconds(s int) ClockTime {
	s = ((s % secondsPerWeek) + secondsPerWeek) % secondsPerWeek
	return ClockTime{
		Seconds:   s % SecondsPerMinute,
		Minutes:   (s / SecondsPerMinute) % MinutesPerHour,
		Hours:     (s / (SecondsPerMinute * MinutesPerHour)) % HoursPerDay,
		DayOfWeek: s / (SecondsPerMinute * MinutesPerHour * HoursPerDay),
	}
}

func (ct ClockTime) String() string {
	return fmt.Sprintf("%s %02d:%02d:%02d", WeekdayName(ct.DayOfWeek), ct.Hours, ct.Minutes, ct.Seconds)
}

func inRange(v, lo, hi int) bool {
	return v >= lo && v <= hi
}
