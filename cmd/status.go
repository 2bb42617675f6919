package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/abhisek/codeval/internal/api"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

// probeResult is the outcome of one endpoint check.
type probeResult struct {
	endpoint string
	detail   string
	latency  time.Duration
	err      error
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Check that the analysis service is reachable",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, cfg, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		results := probeAll(cmd.Context(), newBackend(cfg, s))

		fmt.Println("Service:", cfg.ServerURL)
		failed := 0
		for _, r := range results {
			mark := "✓"
			detail := r.detail
			if r.err != nil {
				mark = "✗"
				detail = r.err.Error()
				failed++
			}
			fmt.Printf("  %s %-11s %6dms  %s\n", mark, r.endpoint, r.latency.Milliseconds(), detail)
		}
		if failed > 0 {
			return fmt.Errorf("%d of %d checks failed", failed, len(results))
		}
		return nil
	},
}

// probeAll checks /health, /questions and /stats concurrently. Each probe
// reports its own error so one failure does not cancel the others.
func probeAll(ctx context.Context, b api.Backend) []probeResult {
	results := make([]probeResult, 3)
	g, ctx := errgroup.WithContext(ctx)

	timed := func(i int, endpoint string, fn func() (string, error)) {
		g.Go(func() error {
			start := time.Now()
			detail, err := fn()
			results[i] = probeResult{endpoint: endpoint, detail: detail, latency: time.Since(start), err: err}
			return nil
		})
	}

	timed(0, "/health", func() (string, error) {
		h, err := b.Health(ctx)
		if err != nil {
			return "", err
		}
		if err := api.CheckVersion(h); err != nil {
			return "", err
		}
		return fmt.Sprintf("%s %s (%s)", h.Service, h.Version, h.Status), nil
	})
	timed(1, "/questions", func() (string, error) {
		topics, err := b.Questions(ctx)
		if err != nil {
			return "", err
		}
		n := 0
		for _, t := range topics {
			n += len(t.Questions)
		}
		return fmt.Sprintf("%d topics, %d questions", len(topics), n), nil
	})
	timed(2, "/stats", func() (string, error) {
		st, err := b.Stats(ctx)
		if err != nil {
			return "", err
		}
		if st.Message != "" {
			return st.Message, nil
		}
		return fmt.Sprintf("%d analyses", st.TotalAnalyses), nil
	})

	_ = g.Wait()
	return results
}
