// Package modes tracks the active app and routes gestures to it.
package modes

import "fmt"

// AppID identifies one of the built-in apps
type AppID int

const (
	Clock AppID = iota
	Pomodoro
	Settings
	AppSwitcher
)

// Selectable is the order apps are offered in the app switcher
var Selectable = [...]AppID{Clock, Pomodoro, Settings}

func (a AppID) String() string {
	switch a {
	case Clock:
		return "clock"
	case Pomodoro:
		return "pomodoro"
	case Settings:
		return "settings"
	case AppSwitcher:
		return "switcher"
	default:
		return fmt.Sprintf("app(%d)", int(a))
	}
}

// ParseAppID maps an app name back to its AppID
func ParseAppID(name string) (AppID, error) {
	for _, a := range []AppID{Clock, Pomodoro, Settings, AppSwitcher} {
		if a.String() == name {
			return a, nil
		}
	}
	return 0, fmt.Errorf("%w: %s", ErrUnknownApp, name)
}

func selectableIndex(a AppID) int {
	for i, s := range Selectable {
		if s == a {
			return i
		}
	}
	return -1
}
