// =============================================================================
// Bakery Order Report - Prices Command
// =============================================================================
//
// COMMAND USAGE:
//   bakery prices export --input FILE [--prices old.json] [--output-dir DIR]
//
// Writes the price table of an upload (inferred, then merged with the job
// file and any saved price file) to prices_YYYY-MM-DD.json, so the next sale
// can start from it with --prices. --output-dir - writes to stdout instead.
//
// =============================================================================

package cmd

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/ginjaninja78/bakery-order-report/internal/pricing"
	"github.com/ginjaninja78/bakery-order-report/pkg/utils"
)

// pricesOpts holds the upload and job flags.
var pricesOpts loadOptions

// pricesOutputDir overrides the configured output directory.
var pricesOutputDir string

// pricesCmd groups the price file subcommands.
var pricesCmd = &cobra.Command{
	Use:   "prices",
	Short: "Manage saved price files",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

// pricesExportCmd represents the 'prices export' command.
var pricesExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Save the price table of a form export",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := loadSession(pricesOpts)
		if err != nil {
			return err
		}

		if pricesOutputDir == "-" {
			return pricing.Export(cmd.OutOrStdout(), s.Prices())
		}

		dir := mainConfig.OutputDir
		if pricesOutputDir != "" {
			dir = pricesOutputDir
		}
		files := utils.NewFileManager(dir)
		if err := files.EnsureOutputDir(); err != nil {
			return err
		}

		path := files.OutputPath(mainConfig.PriceFileFormat, nil)
		err = utils.WriteFileAtomic(path, func(w io.Writer) error {
			return pricing.Export(w, s.Prices())
		})
		if err != nil {
			return fmt.Errorf("failed to write price file: %w", err)
		}

		log.Info("price file written", slog.String("path", path), slog.Int("entries", len(s.Prices())))
		fmt.Fprintf(cmd.OutOrStdout(), "Price file written: %s\n", path)
		return nil
	},
}

// init registers the prices commands with the root command.
func init() {
	rootCmd.AddCommand(pricesCmd)
	pricesCmd.AddCommand(pricesExportCmd)

	addLoadFlags(pricesExportCmd, &pricesOpts)
	pricesExportCmd.Flags().StringVar(
		&pricesOutputDir,
		"output-dir",
		"",
		"Directory for the price file, or - for stdout (default from config)",
	)
}
