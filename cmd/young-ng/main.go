package main

import (
	"os"

	"github.com/young-ng/young-ng/cmd/young-ng/commands"
)

// Version information - set during build
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	commands.SetVersionInfo(version, commit, date)

	// Errors are printed by the printer package with the [scaffold] prefix
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
