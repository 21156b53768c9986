package cmd

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/fleetops/fleetchat/config"
	"github.com/fleetops/fleetchat/store"
	"github.com/spf13/cobra"
)

var (
	sessionTitleStyle = lipgloss.NewStyle().Bold(true)
	sessionMetaStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

// sessionsCmd prints persisted chat sessions, newest first.
var sessionsCmd = &cobra.Command{
	Use:   "sessions",
	Short: "List persisted chat sessions",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadFromEnv()
		if err != nil {
			return err
		}

		st, err := store.Open(cfg.Store.Path)
		if err != nil {
			return fmt.Errorf("open session store: %w", err)
		}
		defer st.Close()

		records, err := st.ListAll()
		if err != nil {
			return fmt.Errorf("list sessions: %w", err)
		}
		if len(records) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No previous chats found.")
			return nil
		}

		for _, rec := range records {
			fmt.Fprintf(cmd.OutOrStdout(), "• %s\n  %s\n",
				sessionTitleStyle.Render(rec.Title),
				sessionMetaStyle.Render(fmt.Sprintf("%s — %s, %d turns",
					rec.Mode, rec.Timestamp.Format("2006-01-02 15:04"), len(rec.Turns))))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(sessionsCmd)
}
