package cli

import (
	"github.com/spf13/cobra"
)

var (
	configPath string
	backupDir  string
	auditLog   string
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:   "dlprotocol",
	Short: "Deep Learning Protocol - hierarchical reasoning demo with a DLP guard",
	Long: `dlprotocol simulates a hierarchical reasoning protocol. Input is wrapped in
repeated layers of abstract processing, pursued towards a goal, and every
state change passes through a data loss prevention guard that blocks
meme-like or binary content and backs up the previous state to disk.

Run without a subcommand to open the interactive menu.`,
	SilenceUsage: true,
	RunE:         menuCommand,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config YAML file (default: ~/.dlprotocol/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&backupDir, "backup-dir", "", "Directory for state backups (default: ./.dlp_backups)")
	rootCmd.PersistentFlags().StringVar(&auditLog, "audit-log", "", "Path to audit log file, or \"off\" (default: ~/.dlprotocol/audit.jsonl)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.Flags().BoolVar(&forceMenu, "force", false, "Start the interactive menu even when stdin is not a terminal")
}

func Execute() error {
	return rootCmd.Execute()
}
