package caltrack

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/saadjs/caltrack/internal/service"
)

var doctorFix bool

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Run data integrity checks",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(cmd, func(ctx context.Context, sqldb *sql.DB) error {
			report, err := service.RunDoctor(ctx, sqldb, rt.log, doctorFix)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Schema version: %d\n", report.SchemaVersion)
			fmt.Fprintf(out, "Entries: %d\n", report.Entries)
			fmt.Fprintf(out, "Zero-calorie entries: %d\n", report.ZeroCalorieEntries)
			fmt.Fprintf(out, "Duplicate entry rows: %d\n", report.DuplicateEntryRows)
			fmt.Fprintf(out, "Stale goal cache: %t\n", report.StaleGoalCache)
			if report.FixedGoalCache {
				fmt.Fprintln(out, "Fixed goal cache")
			}
			if !report.Healthy() {
				return fmt.Errorf("doctor found integrity issues")
			}
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(doctorCmd)
	doctorCmd.Flags().BoolVar(&doctorFix, "fix", false, "Rewrite a stale calculated goal")
}
