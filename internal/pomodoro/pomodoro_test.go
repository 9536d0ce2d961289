package pomodoro

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/larsks/deskclock/internal/gesture"
)

func TestNew_Defaults(t *testing.T) {
	p := New(DefaultMinutes)
	assert.Equal(t, State{Mode: Configuring, Minutes: 30, RemainingSeconds: 1800}, p.State())

	assert.Equal(t, MaxMinutes, New(500).DefaultMinutes())
	assert.Equal(t, MinMinutes, New(0).DefaultMinutes())
}

func TestStartAndCompleteCountdown(t *testing.T) {
	p := New(DefaultMinutes)

	p.Handle(gesture.Short(gesture.Top))
	require.Equal(t, Running, p.Mode())
	assert.Equal(t, 1800, p.State().RemainingSeconds)

	completed := 0
	for i := 0; i < 1799; i++ {
		if p.TickSecond() {
			completed++
		}
	}
	assert.Zero(t, completed)
	assert.Equal(t, Running, p.Mode())
	assert.Equal(t, 1, p.State().RemainingSeconds)

	assert.True(t, p.TickSecond())
	assert.Equal(t, Completed, p.Mode())
	assert.Zero(t, p.State().RemainingSeconds)

	assert.False(t, p.TickSecond(), "completion is reported once")
}

func TestClamping(t *testing.T) {
	t.Run("max", func(t *testing.T) {
		p := New(MaxMinutes)
		p.Handle(gesture.Short(gesture.Middle))
		assert.Equal(t, 60, p.State().Minutes)
	})

	t.Run("min", func(t *testing.T) {
		p := New(MinMinutes)
		p.Handle(gesture.Short(gesture.Bottom))
		assert.Equal(t, 1, p.State().Minutes)
	})
}

func TestConfiguringAdjustments(t *testing.T) {
	tests := []struct {
		name    string
		presses []gesture.Gesture
		want    int
	}{
		{"increment", []gesture.Gesture{gesture.Short(gesture.Middle)}, 31},
		{"decrement", []gesture.Gesture{gesture.Short(gesture.Bottom)}, 29},
		{"long middle resets", []gesture.Gesture{gesture.Short(gesture.Middle), gesture.Short(gesture.Middle), gesture.Long(gesture.Middle)}, 30},
		{"long bottom resets", []gesture.Gesture{gesture.Short(gesture.Bottom), gesture.Long(gesture.Bottom)}, 30},
		{"long top ignored", []gesture.Gesture{gesture.Long(gesture.Top)}, 30},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := New(DefaultMinutes)
			for _, g := range tt.presses {
				p.Handle(g)
			}
			assert.Equal(t, Configuring, p.Mode())
			assert.Equal(t, tt.want, p.State().Minutes)
			assert.Equal(t, tt.want*60, p.State().RemainingSeconds)
		})
	}
}

func TestRunningIgnoresAdjustments(t *testing.T) {
	p := New(DefaultMinutes)
	p.Handle(gesture.Short(gesture.Top))
	p.TickSecond()

	before := p.State()
	for _, g := range []gesture.Gesture{
		gesture.Short(gesture.Middle),
		gesture.Long(gesture.Middle),
		gesture.Short(gesture.Bottom),
		gesture.Long(gesture.Bottom),
	} {
		p.Handle(g)
	}
	assert.Equal(t, before, p.State())
}

func TestPauseResume(t *testing.T) {
	p := New(DefaultMinutes)
	p.Handle(gesture.Short(gesture.Top))
	for i := 0; i < 10; i++ {
		p.TickSecond()
	}

	p.Handle(gesture.Short(gesture.Top))
	require.Equal(t, Paused, p.Mode())
	assert.Equal(t, 1790, p.State().RemainingSeconds)

	// paused time does not count down
	p.TickSecond()
	assert.Equal(t, 1790, p.State().RemainingSeconds)

	p.Handle(gesture.Short(gesture.Top))
	require.Equal(t, Running, p.Mode())
	assert.Equal(t, 1790, p.State().RemainingSeconds)
}

func TestPausedAdjustmentRestartsOnResume(t *testing.T) {
	p := New(DefaultMinutes)
	p.Handle(gesture.Short(gesture.Top))
	p.TickSecond()
	p.Handle(gesture.Short(gesture.Top))

	p.Handle(gesture.Short(gesture.Middle))
	assert.Equal(t, 31, p.State().Minutes)
	assert.Equal(t, 1799, p.State().RemainingSeconds, "remaining is kept until resume")

	p.Handle(gesture.Short(gesture.Top))
	assert.Equal(t, Running, p.Mode())
	assert.Equal(t, 31*60, p.State().RemainingSeconds)
}

func TestCompletedRestart(t *testing.T) {
	p := New(1)
	p.Handle(gesture.Short(gesture.Top))
	for i := 0; i < 60; i++ {
		p.TickSecond()
	}
	require.Equal(t, Completed, p.Mode())

	p.Handle(gesture.Short(gesture.Middle))
	assert.Equal(t, 2, p.State().Minutes)

	p.Handle(gesture.Short(gesture.Top))
	assert.Equal(t, Running, p.Mode())
	assert.Equal(t, 120, p.State().RemainingSeconds)
}

func TestSetDefaultMinutes(t *testing.T) {
	p := New(DefaultMinutes)
	p.SetDefaultMinutes(25)
	assert.Equal(t, 25, p.State().Minutes, "unstarted timer follows the default")

	p.Handle(gesture.Short(gesture.Middle))
	p.Handle(gesture.Short(gesture.Top))
	p.SetDefaultMinutes(45)
	assert.Equal(t, 26, p.State().Minutes, "running timer keeps its minutes")

	p.Handle(gesture.Short(gesture.Top))
	p.Handle(gesture.Long(gesture.Bottom))
	assert.Equal(t, 45, p.State().Minutes)
}
