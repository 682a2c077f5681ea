package cli

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/gzhole/dlprotocol/internal/logger"
)

var (
	logFilterDecision string
	logLast           int
	logSummary        bool
)

var logCmd = &cobra.Command{
	Use:   "log",
	Short: "View and filter the state audit log",
	Long: `View the audit log of state updates with filtering and summary options.

Examples:
  dlprotocol log                        # Show all entries
  dlprotocol log --last 20              # Show last 20 entries
  dlprotocol log --decision BLOCK       # Show only blocked updates
  dlprotocol log --summary              # Show summary stats`,
	Args: cobra.NoArgs,
	RunE: logCommand,
}

func init() {
	logCmd.Flags().StringVar(&logFilterDecision, "decision", "", "Filter by decision (ACCEPT, BLOCK)")
	logCmd.Flags().IntVar(&logLast, "last", 0, "Show last N entries")
	logCmd.Flags().BoolVar(&logSummary, "summary", false, "Show summary statistics")
	rootCmd.AddCommand(logCmd)
}

func logCommand(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	if cfg.AuditLog == "" {
		fmt.Fprintln(out, "Audit log is disabled.")
		return nil
	}

	events, err := readAuditLog(cfg.AuditLog)
	if err != nil {
		return fmt.Errorf("failed to read audit log: %w", err)
	}

	if len(events) == 0 {
		fmt.Fprintln(out, "No audit log entries found.")
		return nil
	}

	if logSummary {
		printSummary(out, events)
		return nil
	}

	filtered := filterEvents(events, logFilterDecision)
	if logLast > 0 && logLast < len(filtered) {
		filtered = filtered[len(filtered)-logLast:]
	}

	printEvents(out, filtered)
	return nil
}

func readAuditLog(path string) ([]logger.AuditEvent, error) {
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	defer file.Close()

	var events []logger.AuditEvent
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1<<20)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		var event logger.AuditEvent
		if err := json.Unmarshal([]byte(line), &event); err != nil {
			continue // skip malformed lines
		}
		events = append(events, event)
	}
	return events, scanner.Err()
}

func filterEvents(events []logger.AuditEvent, decision string) []logger.AuditEvent {
	if decision == "" {
		return events
	}

	var filtered []logger.AuditEvent
	for _, e := range events {
		if strings.EqualFold(e.Decision, decision) {
			filtered = append(filtered, e)
		}
	}
	return filtered
}

func printEvents(out io.Writer, events []logger.AuditEvent) {
	for _, e := range events {
		fmt.Fprintf(out, "%s %s %s\n", decisionIcon(e.Decision), formatTimestamp(e.Timestamp), e.State)
		fmt.Fprintf(out, "     Proposed: %s\n", e.Proposed)
		fmt.Fprintf(out, "     Previous: %s\n", e.Previous)
		if len(e.Signals) > 0 {
			fmt.Fprintf(out, "     Signals:  %s\n", strings.Join(e.Signals, ", "))
		}
		fmt.Fprintln(out)
	}
}

func printSummary(out io.Writer, all []logger.AuditEvent) {
	counts := map[string]int{}
	signals := map[string]int{}
	for _, e := range all {
		counts[e.Decision]++
		for _, s := range e.Signals {
			signals[s]++
		}
	}

	fmt.Fprintln(out, "═══════════════════════════════════════════")
	fmt.Fprintln(out, "  dlprotocol Audit Summary")
	fmt.Fprintln(out, "═══════════════════════════════════════════")
	fmt.Fprintf(out, "  Total updates:   %d\n", len(all))
	fmt.Fprintf(out, "  ACCEPT:          %d\n", counts[logger.DecisionAccept])
	fmt.Fprintf(out, "  BLOCK:           %d\n", counts[logger.DecisionBlock])
	fmt.Fprintln(out, "═══════════════════════════════════════════")
	fmt.Fprintf(out, "  First event:     %s\n", formatTimestamp(all[0].Timestamp))
	fmt.Fprintf(out, "  Last event:      %s\n", formatTimestamp(all[len(all)-1].Timestamp))

	if len(signals) > 0 {
		fmt.Fprintln(out)
		fmt.Fprintln(out, "  Signals:")
		for _, id := range sortedKeys(signals) {
			fmt.Fprintf(out, "    %-22s %d\n", id, signals[id])
		}
	}

	fmt.Fprintln(out)
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func decisionIcon(decision string) string {
	switch decision {
	case logger.DecisionBlock:
		return "\xf0\x9f\x9b\x91" // stop sign
	case logger.DecisionAccept:
		return "\xe2\x9c\x85" // check mark
	default:
		return "\xe2\x9d\x93" // question mark
	}
}

func formatTimestamp(ts string) string {
	t, err := time.Parse(time.RFC3339Nano, ts)
	if err != nil {
		return ts
	}
	return t.Local().Format("2006-01-02 15:04:05")
}
