package gesture

import (
	"time"
)

// DefaultLongPress is the hold time after which a press becomes a long press
const DefaultLongPress = 500 * time.Millisecond

// PressState tracks where a single button is in its press/release cycle
type PressState int

const (
	Idle PressState = iota
	Holding
	LongFired
)

func (s PressState) String() string {
	switch s {
	case Idle:
		return "idle"
	case Holding:
		return "holding"
	case LongFired:
		return "long-fired"
	default:
		return "unknown"
	}
}

type buttonState struct {
	state PressState
	held  int
}

// Classifier converts debounced button samples into gestures. It keeps
// one PressState per button and is not safe for concurrent use; the tick
// loop owns it.
type Classifier struct {
	threshold int
	buttons   [NumButtons]buttonState
}

// NewClassifier returns a Classifier that fires a long press once a button
// has been held for threshold ticks.
func NewClassifier(threshold int) (*Classifier, error) {
	if threshold < 1 {
		return nil, ErrInvalidThreshold
	}
	return &Classifier{threshold: threshold}, nil
}

// ThresholdTicks converts a hold duration into a tick count at the given
// tick rate, rounding up so a press is never classified early.
func ThresholdTicks(hold time.Duration, tickRate int) int {
	tick := time.Second / time.Duration(tickRate)
	ticks := int((hold + tick - 1) / tick)
	if ticks < 1 {
		return 1
	}
	return ticks
}

// Threshold returns the long press threshold in ticks
func (c *Classifier) Threshold() int {
	return c.threshold
}

// State returns the current press state and held tick count for a button
func (c *Classifier) State(b ButtonID) (PressState, int) {
	bs := c.buttons[b]
	return bs.state, bs.held
}

// Observe feeds one sample for button b, taken elapsed ticks after the
// previous sample, and returns the gesture it completes, if any.
//
// The press edge counts as a single tick of hold time however late the
// sample that saw it; elapsed ticks are added only while the button stays
// down. A long press fires on the tick the hold reaches the threshold; the
// release that follows is silent.
func (c *Classifier) Observe(b ButtonID, pressed bool, elapsed int) (Gesture, bool) {
	if elapsed < 1 {
		elapsed = 1
	}

	bs := &c.buttons[b]

	switch bs.state {
	case Idle:
		if !pressed {
			return Gesture{}, false
		}
		bs.state = Holding
		bs.held = 1
		return c.checkLong(b, bs)

	case Holding:
		if !pressed {
			bs.state = Idle
			bs.held = 0
			return Short(b), true
		}
		bs.held += elapsed
		return c.checkLong(b, bs)

	case LongFired:
		if !pressed {
			bs.state = Idle
			bs.held = 0
			return Gesture{}, false
		}
		bs.held += elapsed
	}

	return Gesture{}, false
}

func (c *Classifier) checkLong(b ButtonID, bs *buttonState) (Gesture, bool) {
	if bs.held >= c.threshold {
		bs.state = LongFired
		return Long(b), true
	}
	return Gesture{}, false
}

// Reset returns every button to Idle without emitting anything
func (c *Classifier) Reset() {
	for i := range c.buttons {
		c.buttons[i] = buttonState{}
	}
}
