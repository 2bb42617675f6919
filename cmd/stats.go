package cmd

import (
	"fmt"
	"sort"
	"strings"

	"github.com/abhisek/codeval/internal/evaluator"
	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show the analysis service's statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, cfg, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		st, err := newBackend(cfg, s).Stats(cmd.Context())
		if err != nil {
			return fmt.Errorf("%s", evaluator.UserMessage(err))
		}

		if st.Message != "" {
			fmt.Println(st.Message)
			return nil
		}

		fmt.Println("Service Statistics")
		fmt.Println(strings.Repeat("─", 40))
		fmt.Printf("%-18s %10d\n", "Analyses", st.TotalAnalyses)
		fmt.Printf("%-18s %10.1f\n", "Average score", st.AverageScore)
		fmt.Printf("%-18s %10.1f\n", "Best score", st.BestScore)
		fmt.Printf("%-18s %10.1f\n", "Worst score", st.WorstScore)
		fmt.Printf("%-18s %10d\n", "Mistakes", st.TotalMistakes)
		fmt.Printf("%-18s %10.1f\n", "Avg mistakes", st.AverageMistakes)

		printCounts("Languages", st.Languages)
		printCounts("Skill levels", st.SkillLevels)
		return nil
	},
}

func printCounts(title string, counts map[string]int) {
	if len(counts) == 0 {
		return
	}
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	fmt.Println()
	fmt.Println(title)
	fmt.Println(strings.Repeat("─", 40))
	for _, k := range keys {
		fmt.Printf("%-18s %10d\n", k, counts[k])
	}
}
