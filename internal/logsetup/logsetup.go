// Package logsetup configures the standard logger. Commands import it for
// its side effect.
package logsetup

import (
	"log"
	"os"
)

func init() {
	log.SetFlags(Flags(os.Getenv))
}

// Flags returns the log flags to use. Under systemd the journal already
// timestamps every line, so the logger's own timestamp is dropped.
func Flags(getenv func(string) string) int {
	if getenv("INVOCATION_ID") != "" || getenv("JOURNAL_STREAM") != "" {
		return 0
	}
	return log.LstdFlags | log.Lmicroseconds
}
