package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fleetops/fleetchat/ai"
	"github.com/fleetops/fleetchat/applog"
	"github.com/fleetops/fleetchat/chat"
	"github.com/fleetops/fleetchat/config"
	"github.com/fleetops/fleetchat/store"
	"github.com/fleetops/fleetchat/warehouse"
)

// Start wires the capabilities from the environment and launches the TUI.
// Missing AI, warehouse or store configuration degrades the matching
// capability instead of aborting: chat always starts.
func Start() error {
	cfg, err := config.LoadFromEnv()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	applog.Info("fleetchat starting")
	defer applog.Info("fleetchat stopped")

	provider, err := ai.NewProvider(cfg.AI)
	if err != nil {
		applog.Error("ai provider unavailable: %v", err)
		provider = nil
	}

	ctx := context.Background()
	var wh *warehouse.Warehouse
	var executor chat.Executor
	if cfg.WarehouseAvailable() {
		wh, err = warehouse.Connect(ctx, cfg.Warehouse, cfg.Chat.RowLimit)
		if err != nil {
			applog.Error("warehouse unavailable: %v", err)
		} else {
			executor = wh
		}
	}
	defer func() {
		if wh != nil {
			wh.Close()
		}
	}()

	st, err := store.Open(cfg.Store.Path)
	if err != nil {
		applog.Error("session store unavailable: %v", err)
		st = nil
	}
	defer st.Close()

	orch := chat.NewOrchestrator(provider, executor, cfg.Warehouse.Table, cfg.Chat.Progress)

	providerName := "not configured"
	if provider != nil {
		providerName = provider.Name()
	}

	app := NewApp(orch, st, providerName)
	p := tea.NewProgram(app, tea.WithAltScreen())

	_, err = p.Run()
	return err
}
