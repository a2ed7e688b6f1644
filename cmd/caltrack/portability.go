package caltrack

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/saadjs/caltrack/internal/service"
)

var (
	exportFormat string
	exportOut    string
	importFormat string
	importIn     string
	importMode   string
	importDryRun bool
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export entries and profile (json) or entries only (csv)",
	RunE: func(cmd *cobra.Command, args []string) error {
		if strings.TrimSpace(exportOut) == "" {
			return fmt.Errorf("--out is required")
		}
		return withDB(cmd, func(ctx context.Context, sqldb *sql.DB) error {
			switch strings.ToLower(strings.TrimSpace(exportFormat)) {
			case "json":
				data, err := service.ExportDataSnapshot(ctx, sqldb)
				if err != nil {
					return err
				}
				b, err := json.MarshalIndent(data, "", "  ")
				if err != nil {
					return fmt.Errorf("marshal export json: %w", err)
				}
				if err := os.WriteFile(exportOut, b, 0o644); err != nil {
					return fmt.Errorf("write export file: %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Exported %d entries to %s\n", len(data.Entries), exportOut)
			case "csv":
				f, err := os.Create(exportOut)
				if err != nil {
					return fmt.Errorf("create export csv: %w", err)
				}
				n, err := service.ExportEntriesCSV(ctx, sqldb, f)
				if cerr := f.Close(); err == nil && cerr != nil {
					err = fmt.Errorf("close export csv: %w", cerr)
				}
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Exported %d entries to %s\n", n, exportOut)
			default:
				return fmt.Errorf("unsupported --format %q (use json or csv)", exportFormat)
			}
			return nil
		})
	},
}

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Import a json or csv export",
	RunE: func(cmd *cobra.Command, args []string) error {
		if strings.TrimSpace(importIn) == "" {
			return fmt.Errorf("--in is required")
		}
		mode, err := service.ParseImportMode(importMode)
		if err != nil {
			return err
		}
		payload, err := readImportFile(importIn, importFormat)
		if err != nil {
			return err
		}
		return withDB(cmd, func(ctx context.Context, sqldb *sql.DB) error {
			report, err := service.ImportDataSnapshot(ctx, sqldb, rt.log, payload, service.ImportOptions{
				Mode:   mode,
				DryRun: importDryRun,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Import report: inserted=%d updated=%d skipped=%d conflicts=%d\n", report.Inserted, report.Updated, report.Skipped, report.Conflicts)
			for _, w := range report.Warnings {
				fmt.Fprintf(cmd.OutOrStdout(), "warning: %s\n", w)
			}
			if importDryRun {
				fmt.Fprintf(cmd.OutOrStdout(), "Dry-run import validated %s\n", importIn)
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported data from %s\n", importIn)
			return nil
		})
	},
}

func readImportFile(path, format string) (*service.ExportData, error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "json":
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read import file: %w", err)
		}
		var payload service.ExportData
		if err := json.Unmarshal(raw, &payload); err != nil {
			return nil, fmt.Errorf("parse import json: %w", err)
		}
		return &payload, nil
	case "csv":
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open import csv: %w", err)
		}
		defer f.Close()
		return service.ReadEntriesCSV(f)
	}
	return nil, fmt.Errorf("unsupported --format %q (use json or csv)", format)
}

func init() {
	rootCmd.AddCommand(exportCmd, importCmd)
	exportCmd.Flags().StringVar(&exportFormat, "format", "json", "Export format: json or csv")
	exportCmd.Flags().StringVar(&exportOut, "out", "", "Output file path")
	importCmd.Flags().StringVar(&importFormat, "format", "json", "Import format: json or csv")
	importCmd.Flags().StringVar(&importIn, "in", "", "Input file path")
	importCmd.Flags().StringVar(&importMode, "mode", "merge", "Conflict handling: fail|skip|merge")
	importCmd.Flags().BoolVar(&importDryRun, "dry-run", false, "Validate and report without writing data")
}
