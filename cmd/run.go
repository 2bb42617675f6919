package cmd

import (
	"fmt"

	"github.com/abhisek/codeval/internal/app"
	"github.com/abhisek/codeval/internal/store"
	"github.com/spf13/cobra"
)

// runApp opens the store, builds dependencies, and launches the TUI.
func runApp(cmd *cobra.Command) error {
	st, cfg, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer st.Close()

	logPath := cfg.LogPath
	if logPath == "" {
		if logPath, err = store.DefaultLogPath(); err != nil {
			return fmt.Errorf("resolve log path: %w", err)
		}
	} else if err := store.EnsureDir(logPath); err != nil {
		return fmt.Errorf("resolve log path: %w", err)
	}

	opts := app.Options{
		Config:  cfg,
		Backend: newBackend(cfg, st),
		KV:      st.KV(),
	}
	return app.Run(opts, logPath)
}
