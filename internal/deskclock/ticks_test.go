package deskclock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTickCounter(t *testing.T) {
	start := time.Now()
	tc := newTickCounter(100, start)

	assert.Equal(t, 0, tc.elapsed(start.Add(5*time.Millisecond)))
	assert.Equal(t, 1, tc.elapsed(start.Add(10*time.Millisecond)))
	assert.Equal(t, 0, tc.elapsed(start.Add(19*time.Millisecond)))
	assert.Equal(t, 1, tc.elapsed(start.Add(20*time.Millisecond)))

	// a stalled loop catches up
	assert.Equal(t, 250, tc.elapsed(start.Add(2520*time.Millisecond)))

	// clock going backwards is ignored
	assert.Equal(t, 0, tc.elapsed(start.Add(-time.Second)))
}

func TestTickCounter_LongUptime(t *testing.T) {
	start := time.Now()
	tc := newTickCounter(1000, start)

	uptime := 3 * 365 * 24 * time.Hour
	assert.Equal(t, int(uptime/time.Millisecond), tc.elapsed(start.Add(uptime)))
}

func TestInterval(t *testing.T) {
	assert.Equal(t, 10*time.Millisecond, interval(100))
	assert.Equal(t, time.Second, interval(1))
}
