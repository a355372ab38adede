// Copyright (c) 2025 The restadmin Authors
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package query holds the mutable view state of one resource listing:
// the active filters, the ordering and the current page.
package query

import (
	"maps"
	"slices"
	"strings"
)

// Filters maps a column name to the value it is constrained to.
// Keys are not checked against the resource columns and empty values are kept.
type Filters map[string]string

// Clone returns an independent copy; a nil receiver yields an empty set.
func (f Filters) Clone() Filters {
	out := make(Filters, len(f))
	maps.Copy(out, f)
	return out
}

// Keys returns the filter columns in sorted order.
func (f Filters) Keys() []string {
	return slices.Sorted(maps.Keys(f))
}

// Ordering is the list of sort keys, primary key first. A leading "-" means descending.
type Ordering []string

// Reverse flips the direction of a sort key: "name" <-> "-name".
func Reverse(column string) string {
	if rest, ok := strings.CutPrefix(column, "-"); ok {
		return rest
	}
	return "-" + column
}

// Toggle applies one click on a column header and returns the new ordering.
//
//   - column already present: it is removed and its reverse appended at the end
//   - its reverse present: both are removed
//   - otherwise: column is appended as the lowest priority key
func (o Ordering) Toggle(column string) Ordering {
	reverse := Reverse(column)
	switch {
	case slices.Contains(o, column):
		out := slices.DeleteFunc(slices.Clone(o), func(e string) bool { return e == column })
		return append(out, reverse)
	case slices.Contains(o, reverse):
		return slices.DeleteFunc(slices.Clone(o), func(e string) bool { return e == column || e == reverse })
	default:
		return append(slices.Clone(o), column)
	}
}

// Param renders the ordering as the comma separated value of the "ordering" argument.
func (o Ordering) Param() string {
	return strings.Join(o, ",")
}

// Query is the complete listing state for a single resource.
type Query struct {
	Filters  Filters
	Ordering Ordering
	Page     int
}

// New returns a query on page 1 with a copy of the given default filters and no ordering.
func New(defaults Filters) Query {
	return Query{Filters: defaults.Clone(), Ordering: Ordering{}, Page: 1}
}

// Clone returns a deep copy safe to hand to another goroutine.
func (q Query) Clone() Query {
	return Query{Filters: q.Filters.Clone(), Ordering: slices.Clone(q.Ordering), Page: q.Page}
}

// SetFilter constrains column to value. The page is reset because the result set changes.
func (q *Query) SetFilter(column, value string) {
	if q.Filters == nil {
		q.Filters = Filters{}
	}
	q.Filters[column] = value
	q.Page = 1
}

// ToggleOrdering applies Ordering.Toggle. It reports false for an empty column name,
// which leaves the query untouched.
func (q *Query) ToggleOrdering(column string) bool {
	if column == "" || column == "-" {
		return false
	}
	q.Ordering = q.Ordering.Toggle(column)
	return true
}
