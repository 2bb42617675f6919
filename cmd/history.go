package cmd

import (
	"fmt"
	"strings"

	"github.com/abhisek/codeval/internal/evaluator"
	"github.com/abhisek/codeval/internal/history"
	"github.com/spf13/cobra"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent analyses",
	RunE: func(cmd *cobra.Command, args []string) error {
		server, _ := cmd.Flags().GetBool("server")
		clearLocal, _ := cmd.Flags().GetBool("clear")

		s, cfg, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		ctx := cmd.Context()
		hs := history.New(s.KV())

		if clearLocal {
			if err := hs.Clear(ctx); err != nil {
				return fmt.Errorf("clear history: %w", err)
			}
			fmt.Println("Local history cleared.")
			return nil
		}

		if server {
			entries, err := newBackend(cfg, s).History(ctx)
			if err != nil {
				return fmt.Errorf("%s", evaluator.UserMessage(err))
			}
			if len(entries) == 0 {
				fmt.Println("The service has no analyses yet.")
				return nil
			}
			fmt.Printf("%-5s  %-19s  %-7s  %6s  %-5s  %-12s  %s\n",
				"ID", "Timestamp", "Lang", "Score", "Grade", "Level", "Mistakes")
			fmt.Println(strings.Repeat("─", 80))
			for _, e := range entries {
				fmt.Printf("%-5d  %-19s  %-7s  %6.1f  %-5s  %-12s  %d\n",
					e.ID, truncate(e.Timestamp, 19), e.Language, e.Score, e.Grade, e.SkillLevel, e.MistakesCount)
			}
			return nil
		}

		entries, err := hs.List(ctx)
		if err != nil {
			return fmt.Errorf("read history: %w", err)
		}
		if len(entries) == 0 {
			fmt.Println("No analyses yet.")
			return nil
		}
		for _, e := range entries {
			fmt.Printf("%s  %-7s  %5.0f  %-3s  %s\n",
				truncate(e.Timestamp, 19), e.Language, e.Score, e.Grade, e.Summary)
			fmt.Printf("    %s\n", strings.ReplaceAll(e.CodePreview, "\n", " ⏎ "))
		}
		return nil
	},
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}

func init() {
	historyCmd.Flags().Bool("server", false, "Show the service's history instead of local history")
	historyCmd.Flags().Bool("clear", false, "Delete local history")
}
