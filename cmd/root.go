package cmd

import (
	"fmt"
	"os"

	"SalesDashboard/app"
	"SalesDashboard/app/config"
	"SalesDashboard/app/services"

	"github.com/spf13/cobra"
)

var version = "1.0.0"

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "salesdash",
	Short: "Sales Dashboard - employees, products, sales and reconciliations",
	Long: `Sales Dashboard tracks sales employees, the products they sell, the sales
they record and the goods returned against those sales.

Run "salesdash serve" to start the HTTP API and the live change feed.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error executing command: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is <data dir>/config.json)")
}

// loadConfig reads the --config file, or the default one
func loadConfig() (*config.AppConfig, error) {
	if cfgFile != "" {
		return config.Load(cfgFile)
	}
	return config.LoadConfig()
}

// loadApp builds the application. One-shot commands only log warnings so
// their output stays readable.
func loadApp(quiet bool) (*app.App, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	if quiet {
		cfg.Log.Level = "warn"
	}
	return app.New(cfg, services.NewLoggerService(cfg))
}
