// Copyright (c) 2025 The restadmin Authors
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package pagination computes the visible page window and the guarded page
// transitions used by the resource table.
package pagination

// windowSize is the maximum number of page links shown at once.
const windowSize = 5

// lookBehind is how many pages before the current one the window tries to show.
const lookBehind = 3

// State is the pagination position of a loaded page.
type State struct {
	Page       int
	TotalPages int
}

// Window returns the page numbers to offer as links:
// [max(1, page-3), min(start+5, totalPages+1)).
func Window(page, totalPages int) []int {
	if totalPages <= 0 {
		return nil
	}
	start := max(1, page-lookBehind)
	end := min(start+windowSize, totalPages+1)
	out := make([]int, 0, windowSize)
	for p := start; p < end; p++ {
		out = append(out, p)
	}
	return out
}

// Prev moves one page back. The bool is false when already on the first page.
func Prev(s State) (State, bool) {
	if s.Page > 1 {
		s.Page--
		return s, true
	}
	return s, false
}

// Next moves one page forward. The bool is false when already on the last page.
func Next(s State) (State, bool) {
	if s.Page < s.TotalPages {
		s.Page++
		return s, true
	}
	return s, false
}

// GoTo jumps to page p when 1 <= p <= TotalPages.
func GoTo(s State, p int) (State, bool) {
	if 1 <= p && p <= s.TotalPages {
		s.Page = p
		return s, true
	}
	return s, false
}
