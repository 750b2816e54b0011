package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:   "export-sheets",
	Short: "Export today's dashboard row to Google Sheets",
	Long: `Export the dashboard statistics as one row per day to the configured
spreadsheet. Today's row is updated if it already exists.

Required configuration (config file or environment):
  GOOGLE_SHEETS_SPREADSHEET_ID   - target spreadsheet
  GOOGLE_SHEETS_CREDENTIALS_FILE - service account JSON file`,
	RunE: runExport,
}

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().Bool("test", false, "Only check that the spreadsheet is reachable")
	exportCmd.Flags().Duration("timeout", time.Minute, "Give up after this long")
}

func runExport(cmd *cobra.Command, args []string) error {
	testOnly, _ := cmd.Flags().GetBool("test")
	timeout, _ := cmd.Flags().GetDuration("timeout")

	a, err := loadApp(true)
	if err != nil {
		return err
	}
	defer a.LoggerService.Close()
	defer a.Close()

	if !a.GoogleSheetsService.Enabled() {
		return fmt.Errorf("Google Sheets export is not configured")
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
	defer cancel()

	out := cmd.OutOrStdout()
	if testOnly {
		if err := a.GoogleSheetsService.TestConnection(ctx); err != nil {
			return err
		}
		fmt.Fprintln(out, "Spreadsheet is reachable")
		return nil
	}

	report, err := a.GoogleSheetsService.SyncNow(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Exported %s: %d sales, total %s, commission %s\n",
		report.Date, report.Sales, report.TotalSales, report.TotalCommission)
	return nil
}
