// =============================================================================
// Bakery Order Report - Wizard Session
// =============================================================================
//
// This module threads one upload through the configuration steps:
//
//   upload -> mapping -> prices -> groups -> run -> export
//
// A Session is immutable. Every step returns a new Session that shares the
// unchanged parts with the previous one, so an earlier step can be revisited
// by simply keeping the earlier value. Changing any configuration drops the
// results of the previous run.
//
// =============================================================================

package session

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"github.com/google/uuid"

	"github.com/ginjaninja78/bakery-order-report/internal/converter"
	"github.com/ginjaninja78/bakery-order-report/internal/grouping"
	"github.com/ginjaninja78/bakery-order-report/internal/inference"
	"github.com/ginjaninja78/bakery-order-report/internal/pricing"
	"github.com/ginjaninja78/bakery-order-report/internal/types"
	"github.com/ginjaninja78/bakery-order-report/internal/validation"
)

// ErrNotRun is returned when results are needed before Run was called.
var ErrNotRun = errors.New("session has not been run")

// Session is one upload and the configuration chosen for it so far.
type Session struct {
	table   *types.RawTable
	mapping types.ColumnMapping
	prices  []types.PriceEntry
	groups  []types.GroupDefinition

	results *types.ProcessedResults
	runID   string

	engine *converter.Engine
	logger *slog.Logger
}

// New starts a session for table, seeded with the inferred mapping and price
// list. A nil engine uses the default options; a nil logger means
// slog.Default().
func New(table *types.RawTable, engine *converter.Engine, logger *slog.Logger) *Session {
	if engine == nil {
		engine = converter.New(converter.DefaultOptions(), logger)
	}
	if logger == nil {
		logger = slog.Default()
	}

	mapping, prices := inference.Infer(table.Headers)
	return &Session{
		table:   table,
		mapping: mapping,
		prices:  prices,
		engine:  engine,
		logger:  logger.With(slog.String("component", "session")),
	}
}

// next copies s without its results.
func (s *Session) next() *Session {
	n := *s
	n.results = nil
	n.runID = ""
	return &n
}

// =============================================================================
// ACCESSORS
// =============================================================================

// Table returns the uploaded table.
func (s *Session) Table() *types.RawTable { return s.table }

// Mapping returns the current column mapping.
func (s *Session) Mapping() types.ColumnMapping { return s.mapping }

// Prices returns a copy of the current price list.
func (s *Session) Prices() []types.PriceEntry { return slices.Clone(s.prices) }

// Groups returns a copy of the current group list.
func (s *Session) Groups() []types.GroupDefinition { return slices.Clone(s.groups) }

// Results returns the results of the last Run, or nil.
func (s *Session) Results() *types.ProcessedResults { return s.results }

// RunID identifies the last Run in logs, or is "" before Run.
func (s *Session) RunID() string { return s.runID }

// Dates returns the distinct non-empty values of the mapped date column.
func (s *Session) Dates() []string {
	return grouping.DistinctDates(s.table, s.mapping.DateColumn)
}

// UnassignedDates returns the dates no group claims.
func (s *Session) UnassignedDates() []string {
	return grouping.Unassigned(s.Dates(), s.groups)
}

// Check collects the configuration findings for the current settings.
func (s *Session) Check() []*validation.ValidationError {
	findings := validation.CheckMapping(s.table.Headers, s.mapping)
	findings = append(findings, validation.CheckPrices(s.prices)...)
	findings = append(findings, validation.CheckGroups(s.groups)...)
	return findings
}

// =============================================================================
// STEPS
// =============================================================================

// WithMapping returns a session using mapping.
func (s *Session) WithMapping(mapping types.ColumnMapping) *Session {
	n := s.next()
	n.mapping = mapping
	return n
}

// WithPrices returns a session using a copy of prices.
func (s *Session) WithPrices(prices []types.PriceEntry) *Session {
	n := s.next()
	n.prices = slices.Clone(prices)
	return n
}

// WithGroups returns a session using a copy of groups.
func (s *Session) WithGroups(groups []types.GroupDefinition) *Session {
	n := s.next()
	n.groups = slices.Clone(groups)
	return n
}

// ImportPrices merges a saved price file into the price list. On error the
// receiver is still valid and unchanged.
func (s *Session) ImportPrices(data []byte) (*Session, error) {
	merged, err := pricing.Import(data, s.prices)
	if err != nil {
		return nil, fmt.Errorf("failed to import prices: %w", err)
	}
	n := s.next()
	n.prices = merged
	return n, nil
}

// Run transforms the table with the current configuration.
func (s *Session) Run() *Session {
	n := s.next()
	n.runID = uuid.New().String()
	n.results = s.engine.Transform(s.table, s.mapping, s.prices, s.groups)

	s.logger.Info("run complete",
		slog.String("run_id", n.runID),
		slog.Int("orders", len(n.results.All)),
		slog.Int("shipping", len(n.results.Shipping)),
		slog.Int("pickup", len(n.results.Pickup)),
		slog.Int("groups", len(n.results.Groups)))

	return n
}
