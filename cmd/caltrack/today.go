package caltrack

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/saadjs/caltrack/internal/i18n"
	"github.com/saadjs/caltrack/internal/model"
	"github.com/saadjs/caltrack/internal/service"
)

var (
	todayDate string
	todayJSON bool
)

var todayCmd = &cobra.Command{
	Use:   "today",
	Short: "Show the day's intake and goal progress",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(cmd, func(ctx context.Context, sqldb *sql.DB) error {
			status, err := service.TodaySummary(ctx, sqldb, rt.log, todayDate, rt.loc)
			if err != nil {
				return err
			}
			if todayJSON {
				return writeJSON(cmd.OutOrStdout(), status)
			}
			printToday(cmd, status)
			return nil
		})
	},
}

func printToday(cmd *cobra.Command, s *service.TodayStatus) {
	out := cmd.OutOrStdout()
	tr := rt.tr
	fmt.Fprintln(out, tr.Sprintf(i18n.MsgDate, s.Date))
	fmt.Fprintln(out, tr.Sprintf(i18n.MsgMode, tr.Word(string(s.Mode))))
	fmt.Fprintln(out, tr.Sprintf(i18n.MsgGoal, s.GoalCalories, tr.Word(string(s.GoalType))))
	if s.Mode == model.ModeAdvanced && !s.InputsComplete {
		fmt.Fprintln(out, tr.Sprintf(i18n.MsgIncompleteInputs))
	}
	fmt.Fprintln(out, tr.Sprintf(i18n.MsgConsumed, s.ConsumedCalories))
	if s.RemainingCalories >= 0 {
		fmt.Fprintln(out, tr.Sprintf(i18n.MsgRemaining, s.RemainingCalories))
	} else {
		fmt.Fprintln(out, tr.Sprintf(i18n.MsgOver, -s.RemainingCalories))
	}
	fmt.Fprintln(out, tr.Sprintf(i18n.MsgProgress, s.Percent, bandLabel(out, s.Band)))
	fmt.Fprintln(out, tr.Sprintf(i18n.MsgNutrients, s.Nutrients.ProteinG, s.Nutrients.CarbsG, s.Nutrients.FatG))

	if len(s.Entries) == 0 {
		fmt.Fprintln(out, tr.Sprintf(i18n.MsgNoEntries, s.Date))
		return
	}
	fmt.Fprintln(out)
	for _, e := range s.Entries {
		fmt.Fprintf(out, "%d\t%s\t%s\t%.0f g\t%d kcal\n", e.ID, formatCreatedAt(e.CreatedAt)[11:], e.Name, e.AmountG, e.Calories)
	}
	if s.InvalidEntries > 0 {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: %d entries have invalid values and count as 0 kcal\n", s.InvalidEntries)
	}
}

func init() {
	rootCmd.AddCommand(todayCmd)
	todayCmd.Flags().StringVar(&todayDate, "date", "", "Date YYYY-MM-DD (default today)")
	todayCmd.Flags().BoolVar(&todayJSON, "json", false, "Print JSON")
}
