package modes

import "github.com/larsks/deskclock/internal/gesture"

// ClockApp shows the time and ignores every button. The long top press
// that opens the switcher is handled by the controller before dispatch.
type ClockApp struct{}

func (ClockApp) Handle(gesture.Gesture) {}
