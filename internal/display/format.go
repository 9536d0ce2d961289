// Package display renders core frames as lines of text.
package display

import (
	"fmt"
	"strings"

	"github.com/larsks/deskclock/internal/core"
	"github.com/larsks/deskclock/internal/modes"
	"github.com/larsks/deskclock/internal/pomodoro"
	"github.com/larsks/deskclock/internal/settings"
	"github.com/larsks/deskclock/internal/timekeeper"
)

// Options controls how frames are formatted
type Options struct {
	TwentyFourHour bool `mapstructure:"24-hour" toml:"24-hour"`
	BlinkColon     bool `mapstructure:"blink-colon" toml:"blink-colon"`
}

// Lines formats a frame as the text lines shown on the display. It is a
// pure function of its arguments.
func Lines(f core.Frame, opts Options) []string {
	switch f.App {
	case modes.Clock:
		return clockLines(f, opts)
	case modes.Pomodoro:
		return pomodoroLines(f.Pomodoro)
	case modes.Settings:
		return settingsLines(f.Settings)
	case modes.AppSwitcher:
		return switcherLines(f.Selection)
	default:
		return []string{fmt.Sprintf("?? %s", f.App)}
	}
}

func clockLines(f core.Frame, opts Options) []string {
	lines := []string{
		FormatTime(f.Time, opts, f.FirstHalf),
		timekeeper.WeekdayName(f.Time.DayOfWeek),
	}

	// a countdown left running in the background stays visible
	switch f.Pomodoro.Mode {
	case pomodoro.Running, pomodoro.Paused:
		lines = append(lines, fmt.Sprintf("POMO %s", formatRemaining(f.Pomodoro.RemainingSeconds)))
	}

	return lines
}

// FormatTime formats a clock time as HH:MM:SS, with an AM/PM suffix on a
// 12-hour clock. When blinking is enabled the colons are blanked during
// the second half of each second.
func FormatTime(t timekeeper.ClockTime, opts Options, firstHalf bool) string {
	sep := ":"
	if opts.BlinkColon && !firstHalf {
		sep = " "
	}

	if opts.TwentyFourHour {
		return fmt.Sprintf("%02d%s%02d%s%02d", t.Hours, sep, t.Minutes, sep, t.Seconds)
	}

	h, m := t.Hour12()
	return fmt.Sprintf("%2d%s%02d%s%02d %s", h, sep, t.Minutes, sep, t.Seconds, m)
}

var pomodoroLabels = map[pomodoro.Mode]string{
	pomodoro.Configuring: "SET",
	pomodoro.Running:     "RUN",
	pomodoro.Paused:      "PAUSE",
	pomodoro.Completed:   "DONE",
}

func pomodoroLines(s pomodoro.State) []string {
	return []string{
		"POMODORO",
		formatRemaining(s.RemainingSeconds),
		fmt.Sprintf("%s %dm", pomodoroLabels[s.Mode], s.Minutes),
	}
}

func formatRemaining(seconds int) string {
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}

func settingsLines(s settings.Snapshot) []string {
	return []string{
		fmt.Sprintf("SETTINGS %d/%d", s.Index+1, settings.NumFields),
		s.Field.Label,
		fmt.Sprintf("< %s >", s.Field.Format(s.Value)),
	}
}

func switcherLines(selection modes.AppID) []string {
	lines := []string{"APPS"}
	for _, app := range modes.Selectable {
		marker := "  "
		if app == selection {
			marker = "> "
		}
		lines = append(lines, marker+strings.ToUpper(app.String()))
	}
	return lines
}
