// =============================================================================
// Bakery Order Report - Inspect Command
// =============================================================================
//
// This file defines the 'inspect' command, which shows the settings a run
// would use without transforming anything. It is the command-line version of
// stepping through the mapping, price and group screens.
//
// COMMAND USAGE:
//   bakery inspect --input FILE [--job job.yaml] [--prices prices.json]
//
// OUTPUT:
//   - Column mapping
//   - Price table (header, label, unit price)
//   - Groups, distinct dates and the dates no group claims
//   - Configuration findings
//
// =============================================================================

package cmd

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/ginjaninja78/bakery-order-report/internal/session"
	"github.com/ginjaninja78/bakery-order-report/internal/validation"
)

// inspectOpts holds the upload and job flags.
var inspectOpts loadOptions

// inspectCmd represents the 'inspect' command.
var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "Show the inferred mapping, prices and dates of a form export",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := loadSession(inspectOpts)
		if err != nil {
			return err
		}
		return printInspection(cmd.OutOrStdout(), s)
	},
}

// init registers the inspect command with the root command.
func init() {
	rootCmd.AddCommand(inspectCmd)
	addLoadFlags(inspectCmd, &inspectOpts)
}

// printInspection writes the session's configuration to out.
func printInspection(out io.Writer, s *session.Session) error {
	mapping := s.Mapping()
	fmt.Fprintf(out, "Source: %s (%d columns, %d orders)\n\n", s.Table().Source, len(s.Table().Headers), len(s.Table().Rows))

	fmt.Fprintln(out, "=== Column Mapping ===")
	fmt.Fprintf(out, "Identity:    %s\n", mapping.IdentityColumn)
	fmt.Fprintf(out, "Date:        %s\n", mapping.DateColumn)
	fmt.Fprintf(out, "Fulfillment: %s\n\n", mapping.FulfillmentColumn)

	fmt.Fprintln(out, "=== Prices ===")
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "HEADER\tLABEL\tUNIT PRICE")
	for _, p := range s.Prices() {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", p.SourceHeader, p.DisplayLabel, p.UnitPrice.String())
	}
	if err := tw.Flush(); err != nil {
		return fmt.Errorf("failed to write price table: %w", err)
	}

	fmt.Fprintln(out, "\n=== Groups ===")
	for _, g := range s.Groups() {
		fmt.Fprintf(out, "%s: %s\n", g.Name, strings.Join(g.DateValues, ", "))
	}
	fmt.Fprintf(out, "Dates:      %s\n", strings.Join(s.Dates(), ", "))
	fmt.Fprintf(out, "Unassigned: %s\n\n", strings.Join(s.UnassignedDates(), ", "))

	fmt.Fprint(out, validation.FormatErrors(s.Check()))
	return nil
}
