// fleetchat – dual-mode fleet maintenance assistant.
//
// Entry point: initializes Cobra root command and launches
// the Bubble Tea chat TUI by default (no subcommand required).
package main

import (
	"os"

	"github.com/fleetops/fleetchat/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
