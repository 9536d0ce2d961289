// Package store persists the clock time and pomodoro default between runs.
package store

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/adrg/xdg"
	"github.com/larsks/deskclock/internal/pomodoro"
	"github.com/larsks/deskclock/internal/timekeeper"
)

const formatVersion = 1

// State is the content of the state file
type State struct {
	Version                int                  `toml:"version"`
	SavedAt                time.Time            `toml:"saved-at"`
	Clock                  timekeeper.ClockTime `toml:"clock"`
	PomodoroDefaultMinutes int                  `toml:"pomodoro-default-minutes"`
}

// Validate checks that every value is inside its range
func (st State) Validate() error {
	if st.Version != formatVersion {
		return fmt.Errorf("%w: unsupported version %d", ErrInvalidState, st.Version)
	}
	if !st.Clock.Valid() {
		return fmt.Errorf("%w: clock %+v out of range", ErrInvalidState, st.Clock)
	}
	if st.PomodoroDefaultMinutes < pomodoro.MinMinutes || st.PomodoroDefaultMinutes > pomodoro.MaxMinutes {
		return fmt.Errorf("%w: pomodoro default %d out of range", ErrInvalidState, st.PomodoroDefaultMinutes)
	}
	return nil
}

// ClockAt returns the saved clock advanced by the whole seconds of wall
// time between SavedAt and now. A now before SavedAt leaves the clock
// where it was saved.
func (st State) ClockAt(now time.Time) timekeeper.ClockTime {
	clock := timekeeper.NewEngine(st.Clock)
	clock.Advance(int(now.Sub(st.SavedAt) / time.Second))
	return clock.Now()
}

// DefaultPath returns $XDG_STATE_HOME/deskclock/state.toml
func DefaultPath() string {
	return filepath.Join(xdg.StateHome, "deskclock", "state.toml")
}

// Store reads and writes a state file
type Store struct {
	path string
	now  func() time.Time
}

func New(path string) *Store {
	return &Store{path: path, now: time.Now}
}

func (s *Store) Path() string {
	return s.path
}

// Load reads the state file. A missing file returns ErrNoState.
func (s *Store) Load() (State, error) {
	var st State

	if _, err := toml.DecodeFile(s.path, &st); err != nil {
		if os.IsNotExist(err) {
			return st, fmt.Errorf("%w: %s", ErrNoState, s.path)
		}
		return st, fmt.Errorf("%w %s: %w", ErrStateRead, s.path, err)
	}

	if err := st.Validate(); err != nil {
		return st, fmt.Errorf("%s: %w", s.path, err)
	}

	return st, nil
}

// Save stamps st with the current time and writes it atomically
func (s *Store) Save(st State) error {
	st.Version = formatVersion
	st.SavedAt = s.now().UTC().Truncate(time.Second)

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("%w: %w", ErrStateWrite, err)
	}

	tmpFile, err := os.CreateTemp(dir, ".state-*.toml")
	if err != nil {
		return fmt.Errorf("%w: %w", ErrStateWrite, err)
	}
	tmpPath := tmpFile.Name()

	if err := toml.NewEncoder(tmpFile).Encode(st); err != nil {
		tmpFile.Close()    //nolint:errcheck
		os.Remove(tmpPath) //nolint:errcheck
		return fmt.Errorf("%w: encoding state: %w", ErrStateWrite, err)
	}

	if err := tmpFile.Close(); err != nil {
		os.Remove(tmpPath) //nolint:errcheck
		return fmt.Errorf("%w: %w", ErrStateWrite, err)
	}

	if err := os.Rename(tmpPath, s.path); err != nil {
		os.Remove(tmpPath) //nolint:errcheck
		return fmt.Errorf("%w: %w", ErrStateWrite, err)
	}

	return nil
}
