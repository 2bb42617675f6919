package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/abhisek/codeval/internal/catalog"
	"github.com/spf13/cobra"
)

var questionsCmd = &cobra.Command{
	Use:   "questions",
	Short: "List practice questions by topic",
	RunE: func(cmd *cobra.Command, args []string) error {
		difficulty, _ := cmd.Flags().GetString("difficulty")
		search, _ := cmd.Flags().GetString("search")
		concept, _ := cmd.Flags().GetString("concept")

		s, cfg, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		cat, err := catalog.Load(cmd.Context(), newBackend(cfg, s))
		var fe *catalog.FallbackError
		if errors.As(err, &fe) {
			fmt.Fprintln(os.Stderr, "Cannot load questions from the service:", fe.Cause)
			fmt.Fprintln(os.Stderr, "Showing built-in questions.")
		} else if err != nil {
			return fmt.Errorf("load questions: %w", err)
		}

		filter := catalog.Filter{Difficulty: difficulty, Search: search}
		var withConcept map[int]bool
		if concept != "" {
			withConcept = make(map[int]bool)
			for _, q := range cat.ByConcept(concept) {
				withConcept[q.ID] = true
			}
		}

		shown := 0
		for _, topic := range cat.Topics() {
			questions, _ := cat.Topic(topic)
			questions = filter.Apply(questions)
			if withConcept != nil {
				kept := questions[:0]
				for _, q := range questions {
					if withConcept[q.ID] {
						kept = append(kept, q)
					}
				}
				questions = kept
			}
			if len(questions) == 0 {
				continue
			}

			fmt.Println(topic)
			fmt.Println(strings.Repeat("─", 60))
			for _, q := range questions {
				fmt.Printf("%4d  %-7s %s\n", q.ID, q.Difficulty, q.Question)
				if len(q.Concepts) > 0 {
					fmt.Printf("      concepts: %s\n", strings.Join(q.Concepts, ", "))
				}
			}
			fmt.Println()
			shown += len(questions)
		}

		if shown == 0 {
			fmt.Println("No questions match.")
		}
		return nil
	},
}

func init() {
	questionsCmd.Flags().StringP("difficulty", "d", catalog.DifficultyAll, "Filter by difficulty (all, easy, medium, hard)")
	questionsCmd.Flags().StringP("search", "s", "", "Case-insensitive text search")
	questionsCmd.Flags().StringP("concept", "c", "", "Only questions using this concept")
}
