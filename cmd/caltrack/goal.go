package caltrack

import (
	"context"
	"database/sql"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/saadjs/caltrack/internal/i18n"
	"github.com/saadjs/caltrack/internal/model"
	"github.com/saadjs/caltrack/internal/service"
)

var goalCmd = &cobra.Command{
	Use:   "goal",
	Short: "Show the active daily calorie goal",
}

var goalJSON bool

var goalShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the active goal and how it was derived",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(cmd, func(ctx context.Context, sqldb *sql.DB) error {
			status, err := service.CurrentGoal(ctx, sqldb, rt.log)
			if err != nil {
				return err
			}
			if goalJSON {
				return writeJSON(cmd.OutOrStdout(), goalJSONView(status))
			}
			printGoal(cmd.OutOrStdout(), status)
			return nil
		})
	},
}

type goalView struct {
	Goal           int     `json:"goal"`
	GoalType       string  `json:"goal_type"`
	Mode           string  `json:"mode"`
	InputsComplete bool    `json:"inputs_complete"`
	CalculatedGoal int     `json:"calculated_goal,omitempty"`
	BMR            float64 `json:"bmr,omitempty"`
	TDEE           float64 `json:"tdee,omitempty"`
	ProfileVersion int     `json:"profile_version"`
}

func goalJSONView(s service.GoalStatus) goalView {
	return goalView{
		Goal:           s.Resolution.Goal,
		GoalType:       string(s.Resolution.Type),
		Mode:           string(s.Profile.Mode),
		InputsComplete: s.Resolution.Complete,
		CalculatedGoal: s.Resolution.Calculated,
		BMR:            s.Resolution.BMR,
		TDEE:           s.Resolution.TDEE,
		ProfileVersion: s.Profile.Version,
	}
}

func printGoal(out io.Writer, s service.GoalStatus) {
	tr := rt.tr
	fmt.Fprintln(out, tr.Sprintf(i18n.MsgMode, tr.Word(string(s.Profile.Mode))))
	fmt.Fprintln(out, tr.Sprintf(i18n.MsgGoal, s.Resolution.Goal, tr.Word(string(s.Resolution.Type))))
	if s.Resolution.Complete {
		fmt.Fprintln(out, tr.Sprintf(i18n.MsgBMR, s.Resolution.BMR, s.Resolution.TDEE))
	} else if s.Profile.Mode == model.ModeAdvanced {
		fmt.Fprintln(out, tr.Sprintf(i18n.MsgIncompleteInputs))
	}
}

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Manage goal mode, manual goal and biometrics",
}

var (
	profileMode       string
	profileManualGoal string
	profileAge        string
	profileSex        string
	profileHeight     string
	profileWeight     string
	profileActivity   string
	profileWeekly     string
)

var profileSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Update profile values (pass an empty value to clear one)",
	RunE: func(cmd *cobra.Command, args []string) error {
		changed := func(name string, v *string) *string {
			if cmd.Flags().Changed(name) {
				return v
			}
			return nil
		}
		u := service.ProfileUpdate{
			Mode:               changed("mode", &profileMode),
			ManualGoal:         changed("manual-goal", &profileManualGoal),
			Age:                changed("age", &profileAge),
			Sex:                changed("sex", &profileSex),
			HeightCm:           changed("height", &profileHeight),
			WeightKg:           changed("weight", &profileWeight),
			ActivityLevel:      changed("activity", &profileActivity),
			WeeklyWeightGoalKg: changed("weekly-goal", &profileWeekly),
		}
		return withDB(cmd, func(ctx context.Context, sqldb *sql.DB) error {
			status, err := service.UpdateProfile(ctx, sqldb, rt.log, u)
			if err != nil {
				return err
			}
			printGoal(cmd.OutOrStdout(), status)
			return nil
		})
	},
}

var profileShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show stored profile values",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(cmd, func(ctx context.Context, sqldb *sql.DB) error {
			status, err := service.CurrentGoal(ctx, sqldb, rt.log)
			if err != nil {
				return err
			}
			p := status.Profile
			out := cmd.OutOrStdout()
			show := func(label, v string) {
				if v == "" {
					v = "-"
				}
				fmt.Fprintf(out, "%s: %s\n", label, v)
			}
			show("Mode", string(p.Mode))
			show("Manual goal", p.ManualGoal)
			show("Age", p.Age)
			show("Sex", p.Sex)
			show("Height (cm)", p.HeightCm)
			show("Weight (kg)", p.WeightKg)
			show("Activity", p.ActivityLevel)
			show("Weekly weight goal (kg)", p.WeeklyWeightGoalKg)
			fmt.Fprintf(out, "Version: %d\n", p.Version)
			printGoal(out, status)
			return nil
		})
	},
}

var modeCmd = &cobra.Command{
	Use:       "mode <simple|advanced>",
	Short:     "Switch between manual and calculated goals",
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"simple", "advanced"},
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(cmd, func(ctx context.Context, sqldb *sql.DB) error {
			status, err := service.SetMode(ctx, sqldb, rt.log, args[0])
			if err != nil {
				return err
			}
			printGoal(cmd.OutOrStdout(), status)
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(goalCmd, profileCmd)
	goalCmd.AddCommand(goalShowCmd)
	profileCmd.AddCommand(profileSetCmd, profileShowCmd, modeCmd)

	goalShowCmd.Flags().BoolVar(&goalJSON, "json", false, "Print JSON")

	profileSetCmd.Flags().StringVar(&profileMode, "mode", "", "simple or advanced")
	profileSetCmd.Flags().StringVar(&profileManualGoal, "manual-goal", "", "Manual daily goal in kcal")
	profileSetCmd.Flags().StringVar(&profileAge, "age", "", "Age in years")
	profileSetCmd.Flags().StringVar(&profileSex, "sex", "", "male or female")
	profileSetCmd.Flags().StringVar(&profileHeight, "height", "", "Height in cm")
	profileSetCmd.Flags().StringVar(&profileWeight, "weight", "", "Weight in kg")
	profileSetCmd.Flags().StringVar(&profileActivity, "activity", "", "sedentary, light, moderate or very")
	profileSetCmd.Flags().StringVar(&profileWeekly, "weekly-goal", "", "Weekly weight change in kg, -2 to 2 in 0.25 steps")
}
