// Package cmd contains all Cobra commands for fleetchat.
//
// Design decision: the root command launches the TUI directly.
// Configuration comes from the environment (plus an optional .env file),
// not from CLI flags. Running `fleetchat` with no arguments starts the
// interactive chat.
package cmd

import (
	"github.com/fleetops/fleetchat/tui"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "fleetchat",
	Short: "Dual-mode fleet maintenance chat assistant",
	Long: `fleetchat is an intelligent fleet maintenance assistant featuring:
  • User Mode: general vehicle-maintenance advice
  • Fleet Manager Mode: natural-language questions answered from the
    fleet warehouse via AI-generated SQL
  • Persistent chat history (SQLite)

Run 'fleetchat' to start the chat TUI.`,
	// Running with no subcommand launches the TUI.
	RunE: func(cmd *cobra.Command, args []string) error {
		return tui.Start()
	},
}

// Execute runs the root command.
func Execute() error {
	// A .env file is optional; real environment variables win either way.
	_ = godotenv.Load()
	return rootCmd.Execute()
}
