// Copyright (c) 2025 The restadmin Authors
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package view coordinates the listing of one selected resource: it owns the
// query state, issues fetches for every mutation and applies only the newest result.
package view

import (
	"restadmin/cli/internal/fetcher"
	"restadmin/cli/internal/query"
)

// State is the lifecycle position of the coordinator.
type State int

const (
	// Idle means no resource is selected.
	Idle State = iota
	// Loading means a fetch for the current query is in flight.
	Loading
	// Loaded means the newest fetch succeeded and its page is displayed.
	Loaded
	// Failed means the newest fetch failed; Retry re-issues it.
	Failed
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Loading:
		return "loading"
	case Loaded:
		return "loaded"
	case Failed:
		return "failed"
	}
	return "unknown"
}

// Snapshot is a consistent copy of everything a renderer needs.
type Snapshot struct {
	State    State
	Resource string
	Filters  query.Filters
	Ordering query.Ordering
	// Page is the requested page; it follows the backend's page once a result is applied.
	Page       int
	TotalPages int
	Total      int
	Records    []fetcher.Record
	// Columns are the displayed columns of the last applied page.
	Columns []string
	// FilterColumns are the columns of the last non-empty page, offered by the filter editor.
	FilterColumns []string
	// Window is the visible range of page links.
	Window      []int
	FiltersOpen bool
	Err         error
	// Seq is the sequence number of the newest issued fetch.
	Seq uint64
}

// HasPrev reports whether a previous page exists.
func (s Snapshot) HasPrev() bool { return s.Page > 1 }

// HasNext reports whether a next page exists.
func (s Snapshot) HasNext() bool { return s.Page < s.TotalPages }
