// =============================================================================
// Bakery Order Report - Root Command
// =============================================================================
//
// This file defines the root command for the Cobra CLI. Every other command
// is attached to it.
//
// COBRA CLI STRUCTURE:
//   rootCmd (bakery)
//   ├── processCmd  (bakery process)        upload -> report workbook
//   ├── inspectCmd  (bakery inspect)        show what would be used
//   ├── pricesCmd   (bakery prices export)  save the price table
//   └── versionCmd  (bakery version)
//
// CONFIGURATION:
//   Before any subcommand runs, the root command:
//   1. Loads the main configuration (--config, then BAKERY_* variables)
//   2. Sets up the slog logger (--verbose forces debug level)
//
// =============================================================================

package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/ginjaninja78/bakery-order-report/internal/config"
	"github.com/ginjaninja78/bakery-order-report/pkg/logger"
)

// =============================================================================
// GLOBAL VARIABLES
// =============================================================================

// cfgFile holds the path to the main configuration file.
var cfgFile string

// verbose enables debug logging when set to true.
var verbose bool

// mainConfig is loaded once per invocation by PersistentPreRunE.
var mainConfig *config.MainConfig

// log is the application logger, also installed as slog's default.
var log *slog.Logger

// =============================================================================
// ROOT COMMAND DEFINITION
// =============================================================================

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "bakery",
	Short: "Bakery Order Report - Turn pre-order form exports into order sheets",

	Long: `Bakery Order Report reads the spreadsheet exported from a pre-order form
(CSV or XLSX), prices every order, splits orders into pickup and shipping,
groups them by date, and writes a multi-sheet XLSX report.

Key Features:
  - Column mapping and prices inferred from the form's headers
  - Per-sale job files for overrides and date groups
  - Price files that can be saved and reused across sales
  - Summary row on every sheet

Example Usage:
  bakery inspect --input orders.csv              # Show the inferred settings
  bakery process --input orders.xlsx --job job.yaml
  bakery prices export --input orders.xlsx       # Save prices for next time`,

	SilenceUsage: true,

	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initialize()
	},

	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

// =============================================================================
// EXECUTE FUNCTION
// =============================================================================

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// initialize loads the configuration and sets up logging.
func initialize() error {
	cfg, err := config.LoadMainConfig(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load main config: %w", err)
	}

	level := cfg.LogLevel
	if verbose {
		level = "debug"
	}

	mainConfig = cfg
	log = logger.Init(&logger.Config{Level: level, Format: cfg.LogFormat})
	log.Debug("configuration loaded",
		slog.String("config", cfgFile),
		slog.String("output_dir", cfg.OutputDir))
	return nil
}

// =============================================================================
// INITIALIZATION
// =============================================================================

// init sets up the global flags.
func init() {
	// --config flag: A missing file is fine; the defaults apply.
	rootCmd.PersistentFlags().StringVar(
		&cfgFile,
		"config",
		"config.yaml",
		"Path to the main configuration file",
	)

	// --verbose flag: Enables debug logging.
	rootCmd.PersistentFlags().BoolVarP(
		&verbose,
		"verbose",
		"v",
		false,
		"Enable verbose output for debugging",
	)
}
