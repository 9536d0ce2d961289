package logsetup

import (
	"log"
	"testing"
)

func TestFlags(t *testing.T) {
	env := map[string]string{}
	getenv := func(k string) string { return env[k] }

	if got := Flags(getenv); got != log.LstdFlags|log.Lmicroseconds {
		t.Errorf("expected timestamps on a terminal, got flags %d", got)
	}

	env["INVOCATION_ID"] = "abc"
	if got := Flags(getenv); got != 0 {
		t.Errorf("expected no flags under systemd, got %d", got)
	}
}
