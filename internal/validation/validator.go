// =============================================================================
// Bakery Order Report - Configuration Checks
// =============================================================================
//
// This module checks the user's configuration (column mapping, price list and
// group definitions) before a run. It never blocks a run on business data:
// the engine degrades silently on a bad mapping, so these checks exist to
// tell the operator *why* a column came out empty.
//
// VALIDATION STRATEGY:
//   1. Mapping: every mapped header should exist in the uploaded table
//   2. Groups:  names should be unique and each date should sit in one group
//   3. Prices:  struct-tag validation (non-negative unit price)
//
// ERROR HANDLING:
//   - Findings are collected, not returned one at a time
//   - Each finding carries a severity: "warning" (the run can go ahead) or
//     "error" (the configuration is rejected, for example a negative price)
//
// =============================================================================

package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/ginjaninja78/bakery-order-report/internal/types"
)

// Severity levels.
const (
	SeverityWarning = "warning"
	SeverityError   = "error"
)

// =============================================================================
// VALIDATION ERROR TYPES
// =============================================================================

// ValidationError represents a single finding.
type ValidationError struct {
	// Severity is SeverityWarning or SeverityError.
	Severity string

	// Field names the configuration value, e.g. "date_column" or "prices[3]".
	Field string

	// Value is the offending value.
	Value string

	// Message is a human-readable description.
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("[%s] %s: %s (value: '%s')",
		strings.ToUpper(e.Severity),
		e.Field,
		e.Message,
		e.Value,
	)
}

// HasErrors reports whether any finding has error severity.
func HasErrors(findings []*ValidationError) bool {
	for _, f := range findings {
		if f.Severity == SeverityError {
			return true
		}
	}
	return false
}

// =============================================================================
// STRUCT VALIDATOR
// =============================================================================

// New returns a validator that understands decimal amounts, so tags such as
// `validate:"gte=0"` work on types.Money fields.
func New() *validator.Validate {
	v := validator.New()
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := d.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
	return v
}

var structValidator = New()

// Struct validates s against its struct tags.
func Struct(s interface{}) error {
	return structValidator.Struct(s)
}

// =============================================================================
// CHECKS
// =============================================================================

// CheckMapping warns about every mapped header that is missing from headers.
// An empty mapping field is reported too, since it can never resolve.
func CheckMapping(headers []string, mapping types.ColumnMapping) []*ValidationError {
	present := make(map[string]bool, len(headers))
	for _, h := range headers {
		present[h] = true
	}

	fields := []struct {
		name  string
		value string
		role  string
	}{
		{"identity_column", mapping.IdentityColumn, "identity URLs will be blank handles"},
		{"date_column", mapping.DateColumn, "no order will match a group"},
		{"fulfillment_column", mapping.FulfillmentColumn, "every order will be treated as shipping"},
	}

	var findings []*ValidationError
	for _, f := range fields {
		if present[f.value] {
			continue
		}
		findings = append(findings, &ValidationError{
			Severity: SeverityWarning,
			Field:    f.name,
			Value:    f.value,
			Message:  "column not found in the uploaded sheet; " + f.role,
		})
	}
	return findings
}

// CheckGroups warns about duplicate group names and about dates that appear
// in more than one group. Only the first group holding a date receives its
// orders.
func CheckGroups(groups []types.GroupDefinition) []*ValidationError {
	var findings []*ValidationError

	names := make(map[string]int)
	owner := make(map[string]string)
	for i, g := range groups {
		if strings.TrimSpace(g.Name) == "" {
			findings = append(findings, &ValidationError{
				Severity: SeverityError,
				Field:    fmt.Sprintf("groups[%d].name", i),
				Message:  "group name is required",
			})
		}

		if first, ok := names[g.Name]; ok {
			findings = append(findings, &ValidationError{
				Severity: SeverityWarning,
				Field:    fmt.Sprintf("groups[%d].name", i),
				Value:    g.Name,
				Message:  fmt.Sprintf("duplicate group name (first used by groups[%d]); orders are merged into one sheet", first),
			})
		} else {
			names[g.Name] = i
		}

		for _, d := range g.DateValues {
			if prev, ok := owner[d]; ok && prev != g.Name {
				findings = append(findings, &ValidationError{
					Severity: SeverityWarning,
					Field:    fmt.Sprintf("groups[%d].dates", i),
					Value:    d,
					Message:  fmt.Sprintf("date already belongs to group '%s', which takes precedence", prev),
				})
				continue
			}
			owner[d] = g.Name
		}
	}

	return findings
}

// CheckPrices validates every price entry against its struct tags.
func CheckPrices(prices []types.PriceEntry) []*ValidationError {
	var findings []*ValidationError
	for i := range prices {
		err := structValidator.Struct(prices[i])
		if err == nil {
			continue
		}

		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) {
			findings = append(findings, &ValidationError{
				Severity: SeverityError,
				Field:    fmt.Sprintf("prices[%d]", i),
				Value:    prices[i].SourceHeader,
				Message:  err.Error(),
			})
			continue
		}

		for _, fe := range fieldErrs {
			findings = append(findings, &ValidationError{
				Severity: SeverityError,
				Field:    fmt.Sprintf("prices[%d].%s", i, fe.Field()),
				Value:    fmt.Sprint(fe.Value()),
				Message:  fmt.Sprintf("failed '%s' check for '%s'", fe.Tag(), prices[i].SourceHeader),
			})
		}
	}
	return findings
}

// =============================================================================
// OUTPUT
// =============================================================================

// FormatErrors formats findings for display.
func FormatErrors(findings []*ValidationError) string {
	if len(findings) == 0 {
		return "No validation issues."
	}

	var builder strings.Builder
	builder.WriteString(fmt.Sprintf("Validation found %d issue(s):\n\n", len(findings)))
	for i, f := range findings {
		builder.WriteString(fmt.Sprintf("%d. %s\n", i+1, f.Error()))
	}
	return builder.String()
}
