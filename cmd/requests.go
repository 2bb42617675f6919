package cmd

import (
	"fmt"
	"strings"

	"github.com/abhisek/codeval/internal/store"
	"github.com/spf13/cobra"
)

var requestsCmd = &cobra.Command{
	Use:   "requests",
	Short: "Inspect recorded requests to the analysis service",
}

var requestsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent requests",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		endpoint, _ := cmd.Flags().GetString("endpoint")

		s, _, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		events, err := s.EventRepo().QueryRequests(cmd.Context(), store.QueryOpts{Limit: limit, Endpoint: endpoint})
		if err != nil {
			return fmt.Errorf("query events: %w", err)
		}

		if len(events) == 0 {
			fmt.Println("No requests recorded.")
			return nil
		}

		fmt.Printf("%-5s  %-19s  %-6s  %-12s  %-6s  %-7s  %s\n",
			"ID", "Timestamp", "Method", "Endpoint", "Status", "Ms", "OK")
		fmt.Println(strings.Repeat("─", 72))

		for _, e := range events {
			ok := "✓"
			if !e.Success {
				ok = "✗"
			}
			fmt.Printf("%-5d  %-19s  %-6s  %-12s  %-6d  %-7d  %s\n",
				e.ID,
				formatTimestamp(e.Timestamp),
				e.Method,
				truncate(e.Endpoint, 12),
				e.StatusCode,
				e.LatencyMs,
				ok,
			)
		}
		return nil
	},
}

var requestsViewCmd = &cobra.Command{
	Use:   "view <id>",
	Short: "View the full request and response of a recorded call",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var id int
		if _, err := fmt.Sscanf(args[0], "%d", &id); err != nil {
			return fmt.Errorf("invalid ID %q: %w", args[0], err)
		}

		s, _, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		e, err := s.EventRepo().GetRequest(cmd.Context(), id)
		if err != nil {
			return fmt.Errorf("get event: %w", err)
		}
		if e == nil {
			return fmt.Errorf("request %d not found", id)
		}

		sep := strings.Repeat("─", 60)

		fmt.Printf("ID:        %d\n", e.ID)
		fmt.Printf("Time:      %s\n", formatTimestamp(e.Timestamp))
		fmt.Printf("RequestID: %s\n", e.RequestID)
		fmt.Printf("Call:      %s %s\n", e.Method, e.Endpoint)
		fmt.Printf("Status:    %d\n", e.StatusCode)
		fmt.Printf("Latency:   %dms\n", e.LatencyMs)
		fmt.Printf("Success:   %v\n", e.Success)
		if e.ErrorMessage != "" {
			fmt.Printf("Error:     %s\n", e.ErrorMessage)
		}

		fmt.Println()
		fmt.Println(sep)
		fmt.Println("REQUEST")
		fmt.Println(sep)
		if e.RequestBody != "" {
			fmt.Println(e.RequestBody)
		} else {
			fmt.Println("(no body)")
		}

		fmt.Println(sep)
		fmt.Println("RESPONSE")
		fmt.Println(sep)
		if e.ResponseBody != "" {
			fmt.Println(e.ResponseBody)
		} else {
			fmt.Println("(not captured)")
		}

		return nil
	},
}

var requestsStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show call counts and latency per endpoint",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, _, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		usage, err := s.EventRepo().UsageByEndpoint(cmd.Context())
		if err != nil {
			return fmt.Errorf("query usage: %w", err)
		}

		if len(usage) == 0 {
			fmt.Println("No requests recorded yet.")
			return nil
		}

		fmt.Println("Usage by Endpoint")
		fmt.Println(strings.Repeat("─", 56))
		fmt.Printf("%-16s  %8s  %8s  %10s\n", "Endpoint", "Calls", "Failed", "Avg Ms")
		fmt.Println(strings.Repeat("─", 56))

		var totalCalls, totalFailed int
		for _, u := range usage {
			fmt.Printf("%-16s  %8d  %8d  %10d\n", u.Endpoint, u.Calls, u.Failures, u.AvgLatencyMs)
			totalCalls += u.Calls
			totalFailed += u.Failures
		}

		fmt.Println(strings.Repeat("─", 56))
		fmt.Printf("%-16s  %8d  %8d\n", "TOTAL", totalCalls, totalFailed)
		return nil
	},
}

func init() {
	requestsListCmd.Flags().IntP("limit", "n", 20, "Number of requests to show")
	requestsListCmd.Flags().StringP("endpoint", "e", "", "Filter by endpoint (e.g. /analyze)")

	requestsCmd.AddCommand(requestsListCmd)
	requestsCmd.AddCommand(requestsViewCmd)
	requestsCmd.AddCommand(requestsStatsCmd)
}
