package main

import (
	"os"

	"github.com/demaconsulting/SarifMark/cmd"
)

// version is set at build time via ldflags.
var version = "dev"

func main() {
	command := cmd.NewRootCommand(cmd.CLIConfig{Version: version})
	if err := command.Execute(); err != nil {
		os.Exit(1)
	}
}
