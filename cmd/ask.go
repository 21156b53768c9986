package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/fleetops/fleetchat/ai"
	"github.com/fleetops/fleetchat/applog"
	"github.com/fleetops/fleetchat/chat"
	"github.com/fleetops/fleetchat/config"
	"github.com/fleetops/fleetchat/warehouse"
	"github.com/spf13/cobra"
)

var askFleet bool

// askCmd answers a single question and exits, without starting the TUI.
// Useful for scripting and for smoke-testing the pipeline configuration.
var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Ask one question without starting the TUI",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadFromEnv()
		if err != nil {
			return err
		}

		question := strings.Join(args, " ")
		mode := chat.ModeUser
		if askFleet {
			mode = chat.ModeFleetManager
		}

		provider, err := ai.NewProvider(cfg.AI)
		if err != nil {
			// Degrade: the orchestrator answers with a fixed notice.
			applog.Error("ai provider unavailable: %v", err)
			provider = nil
		}

		var executor chat.Executor
		if cfg.WarehouseAvailable() {
			wh, err := warehouse.Connect(cmd.Context(), cfg.Warehouse, cfg.Chat.RowLimit)
			if err != nil {
				applog.Error("warehouse unavailable: %v", err)
			} else {
				defer wh.Close()
				executor = wh
			}
		}

		orch := chat.NewOrchestrator(provider, executor, cfg.Warehouse.Table, cfg.Chat.Progress)
		sess := chat.NewSession(mode)

		response := orch.Respond(context.Background(), sess, mode, question, func(ev chat.Event) {
			if !ev.Final {
				fmt.Fprintln(cmd.ErrOrStderr(), ev.Text)
			}
		})
		fmt.Fprintln(cmd.OutOrStdout(), response)
		return nil
	},
}

func init() {
	askCmd.Flags().BoolVar(&askFleet, "fleet", false, "use Fleet Manager Mode (warehouse access)")
	rootCmd.AddCommand(askCmd)
}
