package cmd

import (
	"fmt"
	"io"
	"text/tabwriter"

	"SalesDashboard/app/pricing"
	"SalesDashboard/app/services"

	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print dashboard statistics",
	Long: `Print the dashboard totals, the most recent sales and per-employee
performance for the configured data set.`,
	Example: `  # Totals with the demo data
  salesdash stats

  # Include the employee performance table
  salesdash stats --employees`,
	RunE: runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)

	statsCmd.Flags().Bool("employees", false, "Also print per-employee performance")
}

func runStats(cmd *cobra.Command, args []string) error {
	withEmployees, _ := cmd.Flags().GetBool("employees")

	a, err := loadApp(true)
	if err != nil {
		return err
	}
	defer a.LoggerService.Close()
	defer a.Close()

	out := cmd.OutOrStdout()
	printStats(out, a.DashboardService.GetDashboardStats())
	if withEmployees {
		fmt.Fprintln(out)
		printPerformance(out, a.DashboardService.GetEmployeePerformance())
	}
	return nil
}

func printStats(out io.Writer, stats services.DashboardStats) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "Total Employees\t%d\n", stats.TotalEmployees)
	fmt.Fprintf(w, "Total Products\t%d\n", stats.TotalProducts)
	fmt.Fprintf(w, "Total Sales\t%s\n", stats.TotalSalesLabel)
	fmt.Fprintf(w, "Total Commission\t%s\n", stats.TotalCommissionLabel)
	fmt.Fprintf(w, "Pending Reconciliations\t%d\n", stats.PendingReconciliations)
	w.Flush()

	if len(stats.RecentSales) == 0 {
		fmt.Fprintln(out, "\nNo sales yet")
		return
	}

	fmt.Fprintln(out, "\nRecent Sales")
	w = tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tEMPLOYEE\tDATE\tTOTAL\tCOMMISSION")
	for _, s := range stats.RecentSales {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n", s.ID, s.EmployeeName, s.Date, pricing.FormatKES(s.Total), pricing.FormatKES(s.Commission))
	}
	w.Flush()
}

func printPerformance(out io.Writer, rows []services.EmployeePerformance) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "EMPLOYEE\tSALES\tTOTAL\tCOMMISSION\tPROFIT")
	for _, p := range rows {
		fmt.Fprintf(w, "%s\t%d\t%s\t%s\t%s\n", p.EmployeeName, p.SalesCount,
			pricing.FormatKES(p.TotalSales), pricing.FormatKES(p.TotalCommission), pricing.FormatKES(p.TotalProfit))
	}
	w.Flush()
}
