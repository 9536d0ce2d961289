package speaker

import (
	"fmt"
	"time"
)

const (
	ShortBeep = 100 * time.Millisecond
	LongBeep  = 500 * time.Millisecond
)

// Pattern is a beep repeated Times times. Each beep is followed by a
// silence of the same length.
type Pattern struct {
	Times    int
	Duration time.Duration
}

var (
	// Completion plays when a pomodoro countdown reaches zero
	Completion = Pattern{Times: 3, Duration: LongBeep}

	// HourChime plays at the top of each hour when enabled
	HourChime = Pattern{Times: 2, Duration: ShortBeep}
)

// Validate checks that the pattern would make a sound
func (p Pattern) Validate() error {
	if p.Times < 1 || p.Duration <= 0 {
		return fmt.Errorf("%w: %s", ErrInvalidPattern, p)
	}
	return nil
}

// Length is how long the pattern takes to play
func (p Pattern) Length() time.Duration {
	return time.Duration(2*p.Times) * p.Duration
}

func (p Pattern) String() string {
	return fmt.Sprintf("%dx%s", p.Times, p.Duration)
}
