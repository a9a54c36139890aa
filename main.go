// =============================================================================
// Bakery Order Report - Main Entry Point
// =============================================================================
//
// USAGE:
//   bakery process   - Build the order report from a form export
//   bakery inspect   - Show the inferred mapping, prices and dates
//   bakery prices    - Save the price table for reuse
//   bakery version   - Display the application version
//
// ARCHITECTURE:
//   - cmd/       : CLI command definitions (Cobra)
//   - internal/  : Parsing, inference, transformation and report building
//   - pkg/       : Shared utilities (file naming, atomic writes, logging)
//
// =============================================================================

package main

import (
	"github.com/ginjaninja78/bakery-order-report/cmd"
)

func main() {
	cmd.Execute()
}
