package caltrack

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/saadjs/caltrack/internal/service"
)

var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Manage database backups",
}

var (
	backupOut    string
	restoreFile  string
	restoreForce bool
)

var backupCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create database backup",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := backupOut
		if out == "" {
			out = filepath.Join(rt.cfg.BackupDir, fmt.Sprintf("caltrack-%s.db", time.Now().Format("20060102-150405")))
		}
		return withDB(cmd, func(ctx context.Context, sqldb *sql.DB) error {
			info, err := service.CreateBackup(ctx, sqldb, out)
			if err != nil {
				return err
			}
			rt.log.Info(ctx, "backup created", "path", info.Path, "bytes", info.SizeBytes)
			fmt.Fprintf(cmd.OutOrStdout(), "Created backup: %s\n", info.Path)
			fmt.Fprintf(cmd.OutOrStdout(), "Checksum: %s\n", info.Checksum)
			return nil
		})
	},
}

var backupListCmd = &cobra.Command{
	Use:   "list",
	Short: "List backups",
	RunE: func(cmd *cobra.Command, args []string) error {
		items, err := service.ListBackups(rt.cfg.BackupDir)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "FILE\tSIZE\tCREATED\tCHECKSUM")
		for _, it := range items {
			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%d\t%s\t%s\n", it.Path, it.SizeBytes, it.CreatedAt.Format(time.RFC3339), it.Checksum)
		}
		return nil
	},
}

var backupRestoreCmd = &cobra.Command{
	Use:   "restore",
	Short: "Restore database from backup",
	RunE: func(cmd *cobra.Command, args []string) error {
		if restoreFile == "" {
			return fmt.Errorf("--file is required")
		}
		if err := service.RestoreBackup(restoreFile, rt.cfg.DBPath, restoreForce); err != nil {
			return err
		}
		rt.log.Info(cmd.Context(), "backup restored", "from", restoreFile, "db", rt.cfg.DBPath)
		fmt.Fprintf(cmd.OutOrStdout(), "Restored backup from %s\n", restoreFile)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(backupCmd)
	backupCmd.AddCommand(backupCreateCmd, backupListCmd, backupRestoreCmd)

	backupCreateCmd.Flags().StringVar(&backupOut, "out", "", "Backup output file path (default: timestamped file in --backup-dir)")
	backupRestoreCmd.Flags().StringVar(&restoreFile, "file", "", "Backup .db file path")
	backupRestoreCmd.Flags().BoolVar(&restoreForce, "force", false, "Overwrite existing DB if present")
}
