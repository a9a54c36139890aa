// =============================================================================
// Bakery Order Report - Process Command
// =============================================================================
//
// This file defines the 'process' command, which runs the whole pipeline for
// one upload.
//
// COMMAND USAGE:
//   bakery process --input FILE [flags]
//
// FLAGS:
//   --input          : The form export (.csv, .xlsx or .xlsm)
//   --job            : Job file with mapping/price overrides and date groups
//   --prices         : Saved price file to merge into the inferred prices
//   --group-by-date  : One group per distinct date (when the job has none)
//   --output-dir     : Overrides the configured output directory
//   --dry-run        : Print the summary without writing the report
//
// PROCESSING PIPELINE:
//   1. Load the upload and infer the mapping and prices
//   2. Apply the job file and the saved price file
//   3. Check the configuration (warnings are logged, errors stop the run)
//   4. Transform the orders
//   5. Print a summary per sheet
//   6. Write the report workbook
//
// =============================================================================

package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/ginjaninja78/bakery-order-report/internal/report"
	"github.com/ginjaninja78/bakery-order-report/internal/session"
	"github.com/ginjaninja78/bakery-order-report/internal/types"
	"github.com/ginjaninja78/bakery-order-report/internal/validation"
	"github.com/ginjaninja78/bakery-order-report/pkg/utils"
)

// =============================================================================
// COMMAND FLAGS
// =============================================================================

// processOpts holds the upload and job flags.
var processOpts loadOptions

// dryRun prints the summary without writing output files.
var dryRun bool

// outputDir overrides the configured output directory.
var outputDir string

// =============================================================================
// PROCESS COMMAND DEFINITION
// =============================================================================

// processCmd represents the 'process' command.
var processCmd = &cobra.Command{
	Use:   "process",
	Short: "Build the order report from a form export",
	Long: `The process command reads the form export, prices and classifies every
order, and writes a workbook with one sheet for all orders, one each for
shipping and pickup orders, and one per date group.

Mapped columns that are missing from the upload are reported as warnings;
the run still completes, with those values left empty.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		return runProcess(cmd.OutOrStdout())
	},
}

// init registers the process command with the root command and sets up flags.
func init() {
	rootCmd.AddCommand(processCmd)

	addLoadFlags(processCmd, &processOpts)

	processCmd.Flags().BoolVar(
		&dryRun,
		"dry-run",
		false,
		"Print the summary without writing the report",
	)

	processCmd.Flags().StringVar(
		&outputDir,
		"output-dir",
		"",
		"Directory for the report (default from config)",
	)
}

// addLoadFlags registers the flags read by loadSession.
func addLoadFlags(cmd *cobra.Command, opts *loadOptions) {
	cmd.Flags().StringVarP(&opts.input, "input", "i", "", "Form export to read (.csv, .xlsx, .xlsm)")
	cmd.Flags().StringVar(&opts.jobFile, "job", "", "Job file with overrides and date groups")
	cmd.Flags().StringVar(&opts.pricesFile, "prices", "", "Saved price file to merge")
	cmd.Flags().BoolVar(&opts.groupByDate, "group-by-date", false, "Create one group per distinct date")
}

// =============================================================================
// MAIN PROCESSING FUNCTION
// =============================================================================

// runProcess orchestrates the pipeline for one upload.
func runProcess(out io.Writer) error {
	startTime := time.Now()

	// =========================================================================
	// STEP 1-2: LOAD AND CONFIGURE
	// =========================================================================

	s, err := loadSession(processOpts)
	if err != nil {
		return err
	}

	// =========================================================================
	// STEP 3: CHECK CONFIGURATION
	// =========================================================================

	findings := s.Check()
	logFindings(findings)
	if validation.HasErrors(findings) {
		return fmt.Errorf("configuration rejected:\n%s", validation.FormatErrors(findings))
	}

	// =========================================================================
	// STEP 4-5: TRANSFORM AND SUMMARIZE
	// =========================================================================

	run := s.Run()
	if err := printSummary(out, run.Results(), reportLabels(mainConfig)); err != nil {
		return err
	}

	if dryRun {
		fmt.Fprintln(out, "\nDry run: no report written.")
		return nil
	}

	// =========================================================================
	// STEP 6: WRITE THE REPORT
	// =========================================================================

	dir := mainConfig.OutputDir
	if outputDir != "" {
		dir = outputDir
	}

	exporter := session.NewExporter(utils.NewFileManager(dir), mainConfig.ReportFileFormat, reportLabels(mainConfig), log)
	path, err := exporter.Export(run)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "\nReport written: %s\n", path)
	fmt.Fprintf(out, "Time elapsed:   %s\n", time.Since(startTime).Round(time.Millisecond))
	return nil
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// logFindings logs each configuration finding at a level matching its severity.
func logFindings(findings []*validation.ValidationError) {
	for _, f := range findings {
		level := slog.LevelWarn
		if f.Severity == validation.SeverityError {
			level = slog.LevelError
		}
		log.Log(context.Background(), level, f.Message,
			slog.String("field", f.Field),
			slog.String("value", f.Value))
	}
}

// printSummary prints order counts and totals per result view.
func printSummary(out io.Writer, results *types.ProcessedResults, labels report.Labels) error {
	type view struct {
		label  string
		orders []*types.ProcessedOrder
	}

	views := []view{
		{labels.AllSheet, results.All},
		{labels.ShippingSheet, results.Shipping},
		{labels.PickupSheet, results.Pickup},
	}
	for _, bucket := range results.Groups {
		views = append(views, view{bucket.Name, bucket.Orders})
	}

	fmt.Fprintln(out, "=== Bakery Order Report ===")
	for _, v := range views {
		summary, err := report.Describe(v.orders)
		if err != nil {
			return fmt.Errorf("failed to summarize %s: %w", v.label, err)
		}
		fmt.Fprintf(out, "%-12s orders: %4d   total: %10.2f   mean: %8.2f   median: %8.2f   max: %8.2f\n",
			v.label, summary.Count, summary.Sum, summary.Mean, summary.Median, summary.Max)
	}
	return nil
}
