package caltrack

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/saadjs/caltrack/internal/scan"
)

var scanFile string

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Print text recognized from a label capture (file or stdin)",
	RunE: func(cmd *cobra.Command, args []string) error {
		var (
			frame []byte
			err   error
		)
		if scanFile == "" || scanFile == "-" {
			frame, err = io.ReadAll(io.LimitReader(cmd.InOrStdin(), scan.DefaultMaxBytes+1))
		} else {
			frame, err = readFileLimited(scanFile, scan.DefaultMaxBytes+1)
		}
		if err != nil {
			return fmt.Errorf("read scan input: %w", err)
		}
		var s scan.Scanner = scan.TextScanner{}
		text, err := s.ScanFrame(cmd.Context(), frame)
		if err != nil {
			return err
		}
		rt.log.Debug(cmd.Context(), "frame scanned", "bytes", len(frame), "chars", len([]rune(text)))
		fmt.Fprintln(cmd.OutOrStdout(), text)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(scanCmd)
	scanCmd.Flags().StringVar(&scanFile, "file", "", "Capture file to read (default stdin)")
}
