package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gzhole/dlprotocol/internal/backup"
	"github.com/gzhole/dlprotocol/internal/redact"
)

var (
	backupsLast int
	backupsShow bool
)

var backupsCmd = &cobra.Command{
	Use:   "backups",
	Short: "List state backups",
	Long: `List the state snapshots written before every state update.

Examples:
  dlprotocol backups              # Show all snapshots
  dlprotocol backups --last 5     # Show the 5 most recent
  dlprotocol backups --show       # Include snapshot contents`,
	Args: cobra.NoArgs,
	RunE: backupsCommand,
}

func init() {
	backupsCmd.Flags().IntVar(&backupsLast, "last", 0, "Show last N snapshots")
	backupsCmd.Flags().BoolVar(&backupsShow, "show", false, "Print snapshot contents")
	rootCmd.AddCommand(backupsCmd)
}

func backupsCommand(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	// Open rather than New so listing never creates the directory.
	store := backup.Open(cfg.BackupDir)
	records, err := store.List()
	if err != nil {
		return fmt.Errorf("failed to list backups: %w", err)
	}

	out := cmd.OutOrStdout()
	if len(records) == 0 {
		fmt.Fprintf(out, "No backups found in %s.\n", store.Dir())
		return nil
	}

	if backupsLast > 0 && backupsLast < len(records) {
		records = records[len(records)-backupsLast:]
	}

	for _, r := range records {
		fmt.Fprintf(out, "%s  %6d B  %s\n", r.Timestamp.Local().Format("2006-01-02 15:04:05.000"), r.Size, r.Name)
		if backupsShow {
			data, err := os.ReadFile(r.Path)
			if err != nil {
				fmt.Fprintf(out, "     (unreadable: %v)\n", err)
				continue
			}
			fmt.Fprintf(out, "     %s\n", redact.Truncate(string(data), redact.MaxAuditChars))
		}
	}
	return nil
}
