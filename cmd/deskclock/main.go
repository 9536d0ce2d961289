package main

import (
	"github.com/larsks/deskclock/internal/cli"
	"github.com/larsks/deskclock/internal/deskclock"
	_ "github.com/larsks/deskclock/internal/logsetup"
)

func main() {
	cli.StandardMain(
		func() cli.Configurable { return deskclock.NewConfig() },
		deskclock.NewHandler(),
	)
}
