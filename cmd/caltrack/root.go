package caltrack

import (
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/saadjs/caltrack/internal/config"
	"github.com/saadjs/caltrack/internal/i18n"
	"github.com/saadjs/caltrack/internal/logging"
)

// runtime is the per-invocation state resolved before any subcommand runs.
type runtime struct {
	cfg *config.Config
	log logging.Logger
	loc *time.Location
	tr  *i18n.Translator
	// localeFlag is set when --locale was given, so the stored locale
	// preference must not override it.
	localeFlag bool
}

var rt runtime

var rootCmd = &cobra.Command{
	Use:           "caltrack",
	Short:         "caltrack tracks calories per 100 g from your terminal",
	Long:          "caltrack is a local-first calorie diary: log foods by weight, compare each day against a manual or calculated goal, and browse your history.",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cmd.Flags())
		if err != nil {
			return err
		}
		log, err := logging.New(cmd.ErrOrStderr(), cfg.LogLevel, cfg.LogFormat)
		if err != nil {
			return err
		}
		loc, err := cfg.Location()
		if err != nil {
			return err
		}
		tr, err := i18n.New(cfg.Locale)
		if err != nil {
			return err
		}
		rt = runtime{
			cfg:        cfg,
			log:        log.With("run_id", uuid.NewString(), "cmd", cmd.CommandPath()),
			loc:        loc,
			tr:         tr,
			localeFlag: cmd.Flags().Changed(config.FlagLocale),
		}
		return nil
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	config.RegisterFlags(rootCmd.PersistentFlags())
}
