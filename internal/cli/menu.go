package cli

import (
	"errors"
	"os"

	"github.com/spf13/cobra"

	"github.com/gzhole/dlprotocol/internal/shell"
)

var forceMenu bool

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Open the interactive menu",
	Long: `Open the interactive menu: run the protocol with your own input, goal and
depth, or browse the FAQ.

  dlprotocol menu
  dlprotocol menu --backup-dir /tmp/dlp`,
	RunE: menuCommand,
}

func init() {
	menuCmd.Flags().BoolVar(&forceMenu, "force", false, "Start even when stdin is not a terminal")
	rootCmd.AddCommand(menuCmd)
}

func menuCommand(cmd *cobra.Command, args []string) error {
	if !forceMenu && !shell.IsInteractive(os.Stdin) {
		return errors.New("stdin is not a terminal; use 'dlprotocol run' or pass --force")
	}

	sess, err := openSession()
	if err != nil {
		return err
	}
	defer sess.Close()

	sh := shell.New(cmd.InOrStdin(), cmd.OutOrStdout(),
		func() shell.Protocol { return sess.newEngine() },
		shell.WithDefaults(sess.cfg.Defaults),
		shell.WithClearScreen(shell.IsInteractive(os.Stdout)),
	)
	return sh.Run()
}
