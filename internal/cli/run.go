package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	runInput string
	runGoal  string
	runDepth int
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Execute the protocol once and print the result",
	Long: `Execute the full protocol once: set the aim, process the input at the
given depth, then pursue the aim with the depth output.

Unset flags fall back to the configured defaults. The depth is passed
through as given; zero or negative depths apply no processing.

Example:
  dlprotocol run
  dlprotocol run --input "Raw Data" --goal "Test Goal" --depth 2`,
	Args: cobra.NoArgs,
	RunE: runCommand,
}

func init() {
	runCmd.Flags().StringVar(&runInput, "input", "", "Initial input (default from config: Raw sensory data)")
	runCmd.Flags().StringVar(&runGoal, "goal", "", "Goal to pursue (default from config: Solve complex problem)")
	runCmd.Flags().IntVar(&runDepth, "depth", 0, "Processing depth (default from config: 5)")
	rootCmd.AddCommand(runCmd)
}

func runCommand(cmd *cobra.Command, args []string) error {
	sess, err := openSession()
	if err != nil {
		return err
	}
	defer sess.Close()

	input := sess.cfg.Defaults.Input
	if cmd.Flags().Changed("input") {
		input = runInput
	}
	goal := sess.cfg.Defaults.Goal
	if cmd.Flags().Changed("goal") {
		goal = runGoal
	}
	depth := sess.cfg.Defaults.Depth
	if cmd.Flags().Changed("depth") {
		depth = runDepth
	}

	engine := sess.newEngine()
	out := cmd.OutOrStdout()

	fmt.Fprintf(out, "Initial state: %s\n", engine.GetCurrentState())

	result := engine.ExecuteProtocol(input, goal, depth)

	fmt.Fprintln(out, "\nResult:")
	fmt.Fprintln(out, result)
	fmt.Fprintf(out, "\nFinal State: %s\n", engine.GetCurrentState())
	return nil
}
