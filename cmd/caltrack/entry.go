package caltrack

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/saadjs/caltrack/internal/i18n"
	"github.com/saadjs/caltrack/internal/model"
	"github.com/saadjs/caltrack/internal/service"
)

var entryCmd = &cobra.Command{
	Use:   "entry",
	Short: "Manage diary entries",
}

var (
	entryName         string
	entryAmount       float64
	entryUnit         string
	entryDensity      float64
	entryCalories     float64
	entryProtein      float64
	entryCarbs        float64
	entryFat          float64
	entrySaturatedFat float64
	entrySugars       float64
	entrySalt         float64
	entryJSON         bool
)

var entryAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add an entry (nutrient values are per 100 g)",
	RunE: func(cmd *cobra.Command, args []string) error {
		grams, err := service.AmountInGrams(entryAmount, entryUnit, entryDensity)
		if err != nil {
			return err
		}
		in := model.NewEntry{
			Name:                entryName,
			AmountG:             grams,
			CaloriesPer100G:     entryCalories,
			ProteinPer100G:      entryProtein,
			CarbsPer100G:        entryCarbs,
			FatPer100G:          entryFat,
			SaturatedFatPer100G: entrySaturatedFat,
			SugarsPer100G:       entrySugars,
			SaltPer100G:         entrySalt,
		}
		return withDB(cmd, func(ctx context.Context, sqldb *sql.DB) error {
			line, err := service.AddEntry(ctx, sqldb, rt.log, in)
			if err != nil {
				return err
			}
			if entryJSON {
				return writeJSON(cmd.OutOrStdout(), line)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s (id %d)\n", rt.tr.Sprintf(i18n.MsgEntryAdded, line.Name, line.Calories), line.ID)
			return nil
		})
	},
}

var (
	listDate  string
	listLimit int
	listJSON  bool
)

var entryListCmd = &cobra.Command{
	Use:   "list",
	Short: "List entries, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		filter := service.ListEntriesFilter{Date: listDate, Location: rt.loc, Limit: listLimit}
		return withDB(cmd, func(ctx context.Context, sqldb *sql.DB) error {
			lines, err := service.ListEntries(ctx, sqldb, filter)
			if err != nil {
				return err
			}
			if listJSON {
				return writeJSON(cmd.OutOrStdout(), lines)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "ID\tDATE\tNAME\tGRAMS\tKCAL\tP\tC\tF")
			for _, l := range lines {
				fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\t%s\t%.0f\t%d\t%.1f\t%.1f\t%.1f\n",
					l.ID, formatCreatedAt(l.CreatedAt), l.Name, l.AmountG, l.Calories,
					l.Nutrients.ProteinG, l.Nutrients.CarbsG, l.Nutrients.FatG)
			}
			return nil
		})
	},
}

var entryShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a single entry",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseInt64Arg("entry id", args[0])
		if err != nil {
			return err
		}
		return withDB(cmd, func(ctx context.Context, sqldb *sql.DB) error {
			l, err := service.EntryByID(ctx, sqldb, id)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "ID: %d\n", l.ID)
			fmt.Fprintf(out, "Date: %s\n", formatCreatedAt(l.CreatedAt))
			fmt.Fprintf(out, "Name: %s\n", l.Name)
			fmt.Fprintf(out, "Amount: %.1f g\n", l.AmountG)
			fmt.Fprintf(out, "Calories: %d (%.1f per 100 g)\n", l.Calories, l.CaloriesPer100G)
			n := l.Nutrients
			fmt.Fprintf(out, "Protein: %.1f g\nCarbs: %.1f g\nFat: %.1f g\n", n.ProteinG, n.CarbsG, n.FatG)
			fmt.Fprintf(out, "Saturated fat: %.1f g\nSugars: %.1f g\nSalt: %.2f g\n", n.SaturatedFatG, n.SugarsG, n.SaltG)
			return nil
		})
	},
}

var entryDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete an entry",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseInt64Arg("entry id", args[0])
		if err != nil {
			return err
		}
		return withDB(cmd, func(ctx context.Context, sqldb *sql.DB) error {
			if err := service.DeleteEntry(ctx, sqldb, rt.log, id); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), rt.tr.Sprintf(i18n.MsgEntryDeleted, id))
			return nil
		})
	},
}

func formatCreatedAt(ms int64) string {
	return time.UnixMilli(ms).In(rt.loc).Format("2006-01-02 15:04")
}

func init() {
	rootCmd.AddCommand(entryCmd)
	entryCmd.AddCommand(entryAddCmd, entryListCmd, entryShowCmd, entryDeleteCmd)

	entryAddCmd.Flags().StringVar(&entryName, "name", "", "Food name")
	entryAddCmd.Flags().Float64Var(&entryAmount, "amount", 0, "Amount eaten (grams unless --unit is set)")
	entryAddCmd.Flags().StringVar(&entryUnit, "unit", "", "Amount unit: g, kg, oz, lb, ml, cup, ...")
	entryAddCmd.Flags().Float64Var(&entryDensity, "density", 0, "Density in g/ml for volume units")
	entryAddCmd.Flags().Float64Var(&entryCalories, "kcal", 0, "Calories per 100 g")
	entryAddCmd.Flags().Float64Var(&entryProtein, "protein", 0, "Protein grams per 100 g")
	entryAddCmd.Flags().Float64Var(&entryCarbs, "carbs", 0, "Carbs grams per 100 g")
	entryAddCmd.Flags().Float64Var(&entryFat, "fat", 0, "Fat grams per 100 g")
	entryAddCmd.Flags().Float64Var(&entrySaturatedFat, "saturated-fat", 0, "Saturated fat grams per 100 g")
	entryAddCmd.Flags().Float64Var(&entrySugars, "sugars", 0, "Sugar grams per 100 g")
	entryAddCmd.Flags().Float64Var(&entrySalt, "salt", 0, "Salt grams per 100 g")
	entryAddCmd.Flags().BoolVar(&entryJSON, "json", false, "Print the stored entry as JSON")
	_ = entryAddCmd.MarkFlagRequired("name")
	_ = entryAddCmd.MarkFlagRequired("amount")
	_ = entryAddCmd.MarkFlagRequired("kcal")

	entryListCmd.Flags().StringVar(&listDate, "date", "", "Only entries of this day YYYY-MM-DD")
	entryListCmd.Flags().IntVar(&listLimit, "limit", 0, "Maximum number of entries (0 = all)")
	entryListCmd.Flags().BoolVar(&listJSON, "json", false, "Print JSON")
}
