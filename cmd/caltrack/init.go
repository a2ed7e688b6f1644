package caltrack

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/saadjs/caltrack/internal/db"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize local caltrack database",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(cmd, func(ctx context.Context, sqldb *sql.DB) error {
			version, err := db.SchemaVersion(ctx, sqldb)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Initialized caltrack database at %s (schema v%d)\n", rt.cfg.DBPath, version)
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
