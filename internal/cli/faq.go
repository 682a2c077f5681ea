package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/gzhole/dlprotocol/internal/shell"
)

var faqCmd = &cobra.Command{
	Use:   "faq [number]",
	Short: "Show frequently asked questions",
	Long: `List the FAQ questions, or print the answer to one of them.

  dlprotocol faq
  dlprotocol faq 3`,
	Args: cobra.MaximumNArgs(1),
	RunE: faqCommand,
}

func init() {
	rootCmd.AddCommand(faqCmd)
}

func faqCommand(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	if len(args) == 0 {
		for i, f := range shell.FAQs() {
			fmt.Fprintf(out, "%2d. %s\n", i+1, f.Question)
		}
		return nil
	}

	n, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid FAQ number %q", args[0])
	}
	entry, ok := shell.LookupFAQ(n)
	if !ok {
		return fmt.Errorf("no FAQ entry %d (valid: 1-%d)", n, len(shell.FAQs()))
	}

	fmt.Fprintf(out, "Q: %s\n\nA: %s\n", entry.Question, entry.Answer)
	return nil
}
