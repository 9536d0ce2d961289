package deskclock

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/larsks/deskclock/internal/gesture"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCommand(t *testing.T) {
	tests := []struct {
		line    string
		want    pressCommand
		wantErr bool
	}{
		{line: "t", want: pressCommand{button: gesture.Top}},
		{line: "m", want: pressCommand{button: gesture.Middle}},
		{line: " b ", want: pressCommand{button: gesture.Bottom}},
		{line: "T", want: pressCommand{button: gesture.Top, long: true}},
		{line: "B", want: pressCommand{button: gesture.Bottom, long: true}},
		{line: "middle", want: pressCommand{button: gesture.Middle}},
		{line: "Top long", want: pressCommand{button: gesture.Top, long: true}},
		{line: "x", wantErr: true},
		{line: "left", wantErr: true},
		{line: "top short", wantErr: true},
		{line: "top long now", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			got, err := parseCommand(tt.line)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidInput)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestHoldTimes(t *testing.T) {
	short, long := holdTimes(500*time.Millisecond, 10*time.Millisecond)
	assert.Equal(t, 50*time.Millisecond, short)
	assert.Equal(t, 550*time.Millisecond, long)

	// a short press must stay below the threshold at slow tick rates
	short, _ = holdTimes(500*time.Millisecond, 200*time.Millisecond)
	assert.Equal(t, 250*time.Millisecond, short)
}

type recordingPresser struct {
	calls []string
}

func (p *recordingPresser) Set(name string, pressed bool) error {
	p.calls = append(p.calls, fmt.Sprintf("%s=%t", name, pressed))
	return nil
}

func TestFeedInput(t *testing.T) {
	p := &recordingPresser{}
	input := strings.NewReader("t\n\nnonsense\nM\nbottom\n")

	feedInput(context.Background(), input, p, 0, 0)

	assert.Equal(t, []string{
		"top=true", "top=false",
		"middle=true", "middle=false",
		"bottom=true", "bottom=false",
	}, p.calls)
}

func TestFeedInput_Canceled(t *testing.T) {
	p := &recordingPresser{}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	feedInput(ctx, strings.NewReader("t\nm\n"), p, time.Hour, time.Hour)

	assert.Equal(t, []string{"top=true", "top=false"}, p.calls, "a canceled context releases the button and stops")
}
