package deskclock

import "time"

// tickCounter converts monotonic elapsed time into whole ticks. Ticks the
// loop was too late to see are reported on the next call, not dropped.
type tickCounter struct {
	rate  int64
	start time.Time
	seen  int64
}

func newTickCounter(rate int, start time.Time) *tickCounter {
	return &tickCounter{rate: int64(rate), start: start}
}

// elapsed returns the number of ticks since the previous call
func (tc *tickCounter) elapsed(now time.Time) int {
	d := now.Sub(tc.start)
	if d < 0 {
		return 0
	}

	// split to keep long uptimes from overflowing
	total := int64(d/time.Second)*tc.rate + int64(d%time.Second)*tc.rate/int64(time.Second)

	n := total - tc.seen
	if n <= 0 {
		return 0
	}
	tc.seen = total
	return int(n)
}

// interval is the ticker period for rate ticks per second
func interval(rate int) time.Duration {
	return time.Second / time.Duration(rate)
}
