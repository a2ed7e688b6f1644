package caltrack

import (
	"context"
	"database/sql"
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/saadjs/caltrack/internal/service"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage stored preferences",
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a stored preference (an empty value clears it)",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(cmd, func(ctx context.Context, sqldb *sql.DB) error {
			if err := service.SetConfig(ctx, sqldb, args[0], args[1]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated %s\n", args[0])
			return nil
		})
	},
}

var configGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Show one stored preference",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(cmd, func(ctx context.Context, sqldb *sql.DB) error {
			v, ok, err := service.GetConfig(ctx, sqldb, args[0])
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("%s is not set", args[0])
			}
			fmt.Fprintln(cmd.OutOrStdout(), v)
			return nil
		})
	},
}

var configListCmd = &cobra.Command{
	Use:   "list",
	Short: "Show all stored preferences",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(cmd, func(ctx context.Context, sqldb *sql.DB) error {
			cfg, err := service.ListConfig(ctx, sqldb)
			if err != nil {
				return err
			}
			keys := make([]string, 0, len(cfg))
			for k := range cfg {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			fmt.Fprintln(cmd.OutOrStdout(), "KEY\tVALUE")
			for _, k := range keys {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", k, cfg[k])
			}
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configSetCmd, configGetCmd, configListCmd)
}
