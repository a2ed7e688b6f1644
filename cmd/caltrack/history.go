package caltrack

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/saadjs/caltrack/internal/i18n"
	"github.com/saadjs/caltrack/internal/model"
	"github.com/saadjs/caltrack/internal/service"
	"github.com/saadjs/caltrack/internal/tui"
)

var (
	historyFrom        string
	historyTo          string
	historyLimit       int
	historyJSON        bool
	historyInteractive bool
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show daily totals, newest day first",
	RunE: func(cmd *cobra.Command, args []string) error {
		filter := service.HistoryFilter{From: historyFrom, To: historyTo, Limit: historyLimit}
		return withDB(cmd, func(ctx context.Context, sqldb *sql.DB) error {
			if historyInteractive {
				return tui.Run(ctx, dbSource{db: sqldb, filter: filter}, rt.tr)
			}
			report, err := service.History(ctx, sqldb, rt.log, filter, rt.loc)
			if err != nil {
				return err
			}
			if historyJSON {
				return writeJSON(cmd.OutOrStdout(), report)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, rt.tr.Sprintf(i18n.MsgGoal, report.Goal, rt.tr.Word(string(report.GoalType))))
			if len(report.Days) == 0 {
				fmt.Fprintln(out, rt.tr.Sprintf(i18n.MsgNoHistory))
				return nil
			}
			for _, d := range report.Days {
				fmt.Fprintf(out, "%s  %s\n", rt.tr.Sprintf(i18n.MsgHistoryDay, d.Date, d.TotalCalories, len(d.Entries)), bandLabel(out, d.Band))
			}
			return nil
		})
	},
}

// dbSource feeds the interactive browser from an open database.
type dbSource struct {
	db     *sql.DB
	filter service.HistoryFilter
}

func (s dbSource) History(ctx context.Context) (*service.HistoryReport, error) {
	return service.History(ctx, s.db, rt.log, s.filter, rt.loc)
}

func (s dbSource) AddEntry(ctx context.Context, in model.NewEntry) (service.EntryLine, error) {
	return service.AddEntry(ctx, s.db, rt.log, in)
}

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Browse history and quick-add entries interactively",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(cmd, func(ctx context.Context, sqldb *sql.DB) error {
			return tui.Run(ctx, dbSource{db: sqldb}, rt.tr)
		})
	},
}

func init() {
	rootCmd.AddCommand(historyCmd, tuiCmd)
	historyCmd.Flags().StringVar(&historyFrom, "from", "", "First day YYYY-MM-DD (inclusive)")
	historyCmd.Flags().StringVar(&historyTo, "to", "", "Last day YYYY-MM-DD (inclusive)")
	historyCmd.Flags().IntVar(&historyLimit, "limit", 0, "Maximum number of days (0 = all)")
	historyCmd.Flags().BoolVar(&historyJSON, "json", false, "Print JSON")
	historyCmd.Flags().BoolVarP(&historyInteractive, "interactive", "i", false, "Open the interactive browser")
}
