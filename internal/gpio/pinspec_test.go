package gpio

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePinNumber(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected int
		wantErr  bool
	}{
		{"direct number", "17", 17, false},
		{"GPIO prefix uppercase", "GPIO17", 17, false},
		{"GPIO prefix lowercase", "gpio27", 27, false},
		{"zero pin number", "GPIO0", 0, false},
		{"letters only", "button", 0, true},
		{"GPIO without number", "GPIO", 0, true},
		{"GPIO with non-numeric", "GPIOabc", 0, true},
		{"empty string", "", 0, true},
		{"negative number", "-5", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParsePinNumber(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidPin)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestParsePin(t *testing.T) {
	tests := []struct {
		input    string
		expected PinSpec
	}{
		{"GPIO17", PinSpec{LineNum: 17, Polarity: ActiveHigh, PullMode: PullAuto}},
		{"GPIO17:active-low", PinSpec{LineNum: 17, Polarity: ActiveLow, PullMode: PullAuto}},
		{"22:active-low:pull-up", PinSpec{LineNum: 22, Polarity: ActiveLow, PullMode: PullUp}},
		{"GPIO27:PULL-DOWN:Active-High", PinSpec{LineNum: 27, Polarity: ActiveHigh, PullMode: PullDown}},
		{"GPIO18:pull-none", PinSpec{LineNum: 18, Polarity: ActiveHigh, PullMode: PullNone}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			spec, err := ParsePin(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, *spec)
		})
	}
}

func TestParsePin_Errors(t *testing.T) {
	_, err := ParsePin("GPIO17:sideways")
	assert.ErrorIs(t, err, ErrUnknownParameter)

	_, err = ParsePin("pin17")
	assert.ErrorIs(t, err, ErrInvalidPin)
}

func TestPinSpec_Pull(t *testing.T) {
	tests := []struct {
		spec PinSpec
		want PullMode
	}{
		{PinSpec{Polarity: ActiveHigh, PullMode: PullAuto}, PullDown},
		{PinSpec{Polarity: ActiveLow, PullMode: PullAuto}, PullUp},
		{PinSpec{Polarity: ActiveLow, PullMode: PullNone}, PullNone},
		{PinSpec{Polarity: ActiveHigh, PullMode: PullUp}, PullUp},
	}

	for _, tt := range tests {
		t.Run(tt.spec.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.spec.Pull())
		})
	}
}

func TestPinSpec_ActiveLevel(t *testing.T) {
	assert.Equal(t, 1, (&PinSpec{Polarity: ActiveHigh}).ActiveLevel())
	assert.Equal(t, 0, (&PinSpec{Polarity: ActiveLow}).ActiveLevel())
}

func TestPinSpecRoundTrip(t *testing.T) {
	for _, input := range []string{"GPIO17:active-low:pull-up", "GPIO4:active-high:pull-auto"} {
		spec, err := ParsePin(input)
		require.NoError(t, err)
		assert.Equal(t, input, spec.String())

		again, err := ParsePin(spec.String())
		require.NoError(t, err)
		assert.Equal(t, spec, again)
	}
}
