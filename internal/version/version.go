// Package version reports build information for the deskclock commands.
package version

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime/debug"
)

// Set at build time with -ldflags "-X github.com/larsks/deskclock/internal/version.BuildVersion=..."
var (
	BuildVersion = "dev"
	BuildRef     = "unknown"
	BuildDate    = "unknown"
)

// Info describes the running binary
type Info struct {
	Command   string
	Version   string
	Ref       string
	Date      string
	GoVersion string
}

// Get collects version information, filling in the VCS revision from the
// embedded build info when it was not set by the linker.
func Get() Info {
	info := Info{
		Command: filepath.Base(os.Args[0]),
		Version: BuildVersion,
		Ref:     BuildRef,
		Date:    BuildDate,
	}

	if bi, ok := debug.ReadBuildInfo(); ok {
		info.GoVersion = bi.GoVersion
		for _, setting := range bi.Settings {
			switch setting.Key {
			case "vcs.revision":
				if info.Ref == "unknown" {
					info.Ref = setting.Value
				}
			case "vcs.time":
				if info.Date == "unknown" {
					info.Date = setting.Value
				}
			}
		}
	}

	return info
}

func (i Info) String() string {
	s := fmt.Sprintf("%s version %s (ref %s, built %s)", i.Command, i.Version, i.Ref, i.Date)
	if i.GoVersion != "" {
		s += " " + i.GoVersion
	}
	return s
}
