package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/punchcardhq/punchcard/internal/export"
	"github.com/punchcardhq/punchcard/pkg/domain"
)

var (
	exportMonth  string
	exportUser   string
	exportOutput string
)

// exportCmd writes an attendance CSV without entering the TUI, for piping
// into other tools. It reuses the session stored by a previous sign-in.
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export attendance records as CSV",
	RunE: func(cmd *cobra.Command, args []string) error {
		period, err := domain.ParsePeriod(exportMonth)
		if err != nil {
			return err
		}

		e, err := openEnv()
		if err != nil {
			return err
		}
		defer e.close()

		if !e.store.Current().LoggedIn() {
			return fmt.Errorf("not signed in: run punchcard and log in first")
		}

		records, err := e.client.AdminAttendance(cmd.Context(), exportUser, period)
		if err != nil {
			return err
		}

		out := os.Stdout
		if exportOutput != "" {
			f, err := os.Create(exportOutput)
			if err != nil {
				return err
			}
			defer f.Close() //nolint:errcheck
			out = f
		}
		if err := export.Write(out, records); err != nil {
			return err
		}
		if exportOutput != "" {
			fmt.Fprintf(os.Stderr, "wrote %d records to %s\n", len(records), exportOutput)
		}
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVar(&exportMonth, "month", domain.PeriodCurrent, `period to export: "current" or YYYY-MM`)
	exportCmd.Flags().StringVar(&exportUser, "user", "", "limit to one employee id")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "write to a file instead of stdout")
	rootCmd.AddCommand(exportCmd)
}
