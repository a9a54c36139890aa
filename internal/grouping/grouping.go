// Package grouping edits the list of date groups. Every function is pure: it
// returns a new slice and never modifies the groups it is given, so a caller
// can keep the previous list for undo or comparison.
package grouping

import (
	"slices"
	"strings"

	"github.com/ginjaninja78/bakery-order-report/internal/types"
)

// Unassign is the Move target that removes a date from every group.
const Unassign = -1

// DistinctDates returns the non-empty values of the date column, without
// duplicates, in ascending text order. An unresolved column yields nil.
func DistinctDates(table *types.RawTable, dateColumn string) []string {
	idx := table.ColumnIndex(dateColumn)
	if idx == types.NotFound {
		return nil
	}

	seen := make(map[string]bool)
	var dates []string
	for _, row := range table.Rows {
		d := row.At(idx).String()
		if d == "" || seen[d] {
			continue
		}
		seen[d] = true
		dates = append(dates, d)
	}

	slices.Sort(dates)
	return dates
}

// Unassigned returns the dates that belong to no group, keeping their order.
func Unassigned(dates []string, groups []types.GroupDefinition) []string {
	var out []string
	for _, d := range dates {
		if !assigned(d, groups) {
			out = append(out, d)
		}
	}
	return out
}

func assigned(date string, groups []types.GroupDefinition) bool {
	for _, g := range groups {
		if g.Contains(date) {
			return true
		}
	}
	return false
}

// Add appends an empty group. The name is trimmed; a blank name leaves the
// list as it is.
func Add(groups []types.GroupDefinition, name string) []types.GroupDefinition {
	name = strings.TrimSpace(name)
	if name == "" {
		return clone(groups)
	}
	return append(clone(groups), types.GroupDefinition{Name: name, DateValues: []string{}})
}

// QuickCreate appends a group named after date that holds only date.
func QuickCreate(groups []types.GroupDefinition, date string) []types.GroupDefinition {
	return append(clone(groups), types.GroupDefinition{Name: date, DateValues: []string{date}})
}

// Remove drops the group at index. An out-of-range index changes nothing.
// Dates of the removed group become unassigned.
func Remove(groups []types.GroupDefinition, index int) []types.GroupDefinition {
	out := clone(groups)
	if index < 0 || index >= len(out) {
		return out
	}
	return slices.Delete(out, index, index+1)
}

// Move takes date out of every group and, unless target is Unassign, adds it
// to the group at target. A date therefore sits in at most one group after a
// Move. An out-of-range target behaves like Unassign.
func Move(groups []types.GroupDefinition, date string, target int) []types.GroupDefinition {
	out := clone(groups)
	for i := range out {
		out[i].DateValues = slices.DeleteFunc(out[i].DateValues, func(d string) bool {
			return d == date
		})
	}

	if target >= 0 && target < len(out) {
		out[target].DateValues = append(out[target].DateValues, date)
	}
	return out
}

// PerDate returns one group per date, each named after its date.
func PerDate(dates []string) []types.GroupDefinition {
	groups := make([]types.GroupDefinition, 0, len(dates))
	for _, d := range dates {
		groups = append(groups, types.GroupDefinition{Name: d, DateValues: []string{d}})
	}
	return groups
}

// clone deep-copies groups, including each date slice.
func clone(groups []types.GroupDefinition) []types.GroupDefinition {
	out := make([]types.GroupDefinition, len(groups))
	for i, g := range groups {
		out[i] = types.GroupDefinition{
			Name:       g.Name,
			DateValues: slices.Clone(g.DateValues),
		}
	}
	return out
}
