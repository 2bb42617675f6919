package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/abhisek/codeval/internal/analysis"
	"github.com/abhisek/codeval/internal/config"
	"github.com/abhisek/codeval/internal/evaluator"
	"github.com/abhisek/codeval/internal/history"
	"github.com/spf13/cobra"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [file]",
	Short: "Submit code for analysis (reads stdin when no file is given)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		quick, _ := cmd.Flags().GetBool("quick")
		questionID, _ := cmd.Flags().GetInt("question")
		language, _ := cmd.Flags().GetString("language")

		code, err := readSource(cmd, args)
		if err != nil {
			return err
		}

		s, cfg, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		if language == "" {
			language = cfg.Language
		}
		if !config.IsLanguage(language) {
			return fmt.Errorf("unknown language %q (want one of %s)", language, strings.Join(config.Languages, ", "))
		}

		ev := evaluator.New(newBackend(cfg, s), history.New(s.KV()))

		var out *evaluator.Outcome
		if quick {
			out, err = ev.AnalyzeQuick(cmd.Context(), code, language)
		} else {
			out, err = ev.Analyze(cmd.Context(), evaluator.Submission{
				Code:       code,
				QuestionID: questionID,
				Language:   language,
			})
		}
		if err != nil {
			return fmt.Errorf("%s", evaluator.UserMessage(err))
		}

		if out.Offline {
			fmt.Fprintln(os.Stderr, "Cannot reach", cfg.ServerURL+":", out.Cause)
			fmt.Fprintln(os.Stderr, "Showing an OFFLINE PREVIEW, not a real grade.")
		}
		printCard(cmd.OutOrStdout(), out.Card)
		return nil
	},
}

func readSource(cmd *cobra.Command, args []string) (string, error) {
	var data []byte
	var err error
	if len(args) == 1 && args[0] != "-" {
		data, err = os.ReadFile(args[0])
	} else {
		data, err = io.ReadAll(cmd.InOrStdin())
	}
	if err != nil {
		return "", fmt.Errorf("read source: %w", err)
	}
	return string(data), nil
}

func printCard(w io.Writer, c analysis.Card) {
	sep := strings.Repeat("─", 60)

	fmt.Fprintf(w, "Score:   %.0f/100\n", c.Score)
	fmt.Fprintf(w, "Grade:   %s\n", c.Grade)
	fmt.Fprintf(w, "Status:  %s\n", c.Status())
	fmt.Fprintf(w, "Level:   %s\n", c.SkillLevel)
	fmt.Fprintln(w, sep)
	fmt.Fprintln(w, c.Summary)

	for _, s := range c.SubScores {
		fmt.Fprintf(w, "  %-20s %6.1f\n", s.Name, s.Value)
	}
	if c.AIWarning != "" {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "! "+c.AIWarning)
	}

	printList(w, "Concepts found", c.ConceptsFound)
	printList(w, "Concepts missing", c.ConceptsMissing)
	printList(w, "Feedback", c.Feedback)
	printList(w, "Suggestions", c.Suggestions)
	printList(w, "Strengths", c.Strengths)
	printList(w, "Next steps", c.NextSteps)
}

func printList(w io.Writer, title string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, title)
	for _, it := range items {
		fmt.Fprintln(w, "  - "+it)
	}
}

func init() {
	analyzeCmd.Flags().Bool("quick", false, "Analyze without question context")
	analyzeCmd.Flags().IntP("question", "q", 0, "Question ID the code answers")
	analyzeCmd.Flags().StringP("language", "l", "", "Code language (python, c, cpp)")
}
