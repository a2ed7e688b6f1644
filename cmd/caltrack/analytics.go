package caltrack

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/saadjs/caltrack/internal/nutrition"
	"github.com/saadjs/caltrack/internal/service"
)

var (
	analyticsFrom string
	analyticsTo   string
	analyticsJSON bool
)

var analyticsCmd = &cobra.Command{
	Use:   "analytics",
	Short: "Summarize a date range against the goal",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(cmd, func(ctx context.Context, sqldb *sql.DB) error {
			r, err := service.Analytics(ctx, sqldb, rt.log, analyticsFrom, analyticsTo, rt.loc)
			if err != nil {
				return err
			}
			if analyticsJSON {
				return writeJSON(cmd.OutOrStdout(), r)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Range: %s to %s\n", r.FromDate, r.ToDate)
			fmt.Fprintf(out, "Goal: %d kcal\n", r.Goal)
			fmt.Fprintf(out, "Total: %d kcal over %d logged day(s)\n", r.TotalCalories, r.DaysWithEntries)
			fmt.Fprintf(out, "Average: %.0f kcal/day\n", r.AverageCaloriesPerDay)
			if r.HighestDay != nil {
				fmt.Fprintf(out, "Highest: %s %d kcal\n", r.HighestDay.Date, r.HighestDay.Calories)
			}
			if r.LowestDay != nil {
				fmt.Fprintf(out, "Lowest: %s %d kcal\n", r.LowestDay.Date, r.LowestDay.Calories)
			}
			fmt.Fprintf(out, "Days: under %d | warning %d | danger %d\n",
				r.BandCounts[nutrition.BandUnder], r.BandCounts[nutrition.BandWarning], r.BandCounts[nutrition.BandDanger])
			fmt.Fprintf(out, "Logging streak: %d (longest %d)\n", r.LoggingStreak.Current, r.LoggingStreak.Longest)
			fmt.Fprintf(out, "Not-over streak: %d (longest %d)\n", r.NotOverStreak.Current, r.NotOverStreak.Longest)
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(analyticsCmd)
	analyticsCmd.Flags().StringVar(&analyticsFrom, "from", "", "First day YYYY-MM-DD (inclusive)")
	analyticsCmd.Flags().StringVar(&analyticsTo, "to", "", "Last day YYYY-MM-DD (inclusive)")
	analyticsCmd.Flags().BoolVar(&analyticsJSON, "json", false, "Print JSON")
}
