package cmd

import (
	"fmt"
	"time"

	"github.com/abhisek/codeval/internal/api"
	"github.com/abhisek/codeval/internal/config"
	"github.com/abhisek/codeval/internal/store"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "codeval",
	Short: "Terminal client for the code evaluator service",
	Long:  "codeval lets you pick a practice question, write a solution and get it graded by a code evaluator service.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("server", "", "Analysis service base URL (overrides CODEVAL_SERVER env var)")
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides CODEVAL_DB env var)")
	rootCmd.PersistentFlags().String("log", "", "Path to the TUI log file (overrides CODEVAL_LOG env var)")
	rootCmd.PersistentFlags().Duration("timeout", 0, "Per-request timeout (overrides CODEVAL_TIMEOUT env var)")

	rootCmd.AddCommand(questionsCmd)
	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(requestsCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveConfig layers flags over environment variables over defaults.
func resolveConfig(cmd *cobra.Command) (config.Config, error) {
	cfg := config.FromEnv()
	if s, _ := cmd.Flags().GetString("server"); s != "" {
		cfg.ServerURL = s
	}
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		cfg.DBPath = p
	}
	if p, _ := cmd.Flags().GetString("log"); p != "" {
		cfg.LogPath = p
	}
	if d, _ := cmd.Flags().GetDuration("timeout"); d > 0 {
		cfg.Timeout = d
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// resolveDBPath returns the database path from the configuration,
// then the default XDG path.
func resolveDBPath(cfg config.Config) (string, error) {
	if cfg.DBPath != "" {
		return cfg.DBPath, store.EnsureDir(cfg.DBPath)
	}
	return store.DefaultDBPath()
}

// openStore resolves the configuration and opens the local database.
func openStore(cmd *cobra.Command) (*store.Store, config.Config, error) {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return nil, cfg, err
	}
	dbPath, err := resolveDBPath(cfg)
	if err != nil {
		return nil, cfg, fmt.Errorf("resolve database path: %w", err)
	}
	s, err := store.Open(dbPath)
	if err != nil {
		return nil, cfg, fmt.Errorf("open database: %w", err)
	}
	return s, cfg, nil
}

// newBackend builds a service client that records every request in s.
func newBackend(cfg config.Config, s *store.Store) api.Backend {
	client := api.NewClient(cfg.ServerURL, api.WithTimeout(cfg.Timeout))
	return api.WithLogging(client, s.EventRepo())
}

func formatTimestamp(t time.Time) string {
	return t.Local().Format("2006-01-02 15:04:05")
}
