// Copyright (c) 2025 The restadmin Authors
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package render prints resource listings as a table, JSON or YAML.
package render

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/pterm/pterm"
	"gopkg.in/yaml.v3"

	"restadmin/cli/internal/catalog"
	"restadmin/cli/internal/fetcher"
)

// Format selects the output encoding of a listing.
type Format string

const (
	Table Format = "table"
	JSON  Format = "json"
	YAML  Format = "yaml"
)

// Formats lists the accepted --output values.
var Formats = []Format{Table, JSON, YAML}

// ParseFormat validates an --output value.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Formats {
		if f == known {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown output format %q (want table, json or yaml)", s)
}

// minCell is the narrowest a cell is truncated to.
const minCell = 6

// Listing is the machine-readable form of one page.
type Listing struct {
	Resource   string           `json:"resource" yaml:"resource"`
	Page       int              `json:"page" yaml:"page"`
	TotalPages int              `json:"total_pages" yaml:"total_pages"`
	Total      int              `json:"total,omitempty" yaml:"total,omitempty"`
	Columns    []string         `json:"columns" yaml:"columns"`
	Results    []map[string]any `json:"results" yaml:"results"`
}

// NewListing converts a fetched page. Numbers are normalized to int64 or float64.
func NewListing(resource string, p *fetcher.Page) Listing {
	l := Listing{
		Resource:   resource,
		Page:       p.CurrentPage,
		TotalPages: p.TotalPages,
		Total:      p.Total,
		Columns:    append([]string{}, p.Columns...),
		Results:    make([]map[string]any, 0, len(p.Records)),
	}
	for _, r := range p.Records {
		l.Results = append(l.Results, normalize(map[string]any(r)).(map[string]any))
	}
	return l
}

// Page writes p to w in the given format. width bounds the table width.
func Page(w io.Writer, format Format, resource string, p *fetcher.Page, width int) error {
	switch format {
	case JSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(NewListing(resource, p))
	case YAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(NewListing(resource, p)); err != nil {
			return err
		}
		return enc.Close()
	case Table, "":
		return pageTable(w, p, width)
	}
	return fmt.Errorf("unknown output format %q", format)
}

func pageTable(w io.Writer, p *fetcher.Page, width int) error {
	if len(p.Records) == 0 {
		_, err := fmt.Fprintln(w, pterm.Gray("No records."))
		return err
	}

	limit := CellWidth(width, len(p.Columns))
	data := pterm.TableData{p.Columns}
	for _, r := range p.Records {
		row := make([]string, len(p.Columns))
		for i, col := range p.Columns {
			row[i] = Truncate(Cell(r[col]), limit)
		}
		data = append(data, row)
	}
	out, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w, out); err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, pterm.Gray(Footer(p.CurrentPage, p.TotalPages, p.Total)))
	return err
}

// Footer describes the position of a page, e.g. "page 2 of 5 (93 records)".
func Footer(page, totalPages, total int) string {
	if totalPages <= 0 {
		return "no pages"
	}
	s := fmt.Sprintf("page %d of %d", page, totalPages)
	if total > 0 {
		s += fmt.Sprintf(" (%d records)", total)
	}
	return s
}

// Resources writes the catalog as a NAME / ENDPOINT table.
func Resources(w io.Writer, items []catalog.Descriptor) error {
	data := pterm.TableData{{"NAME", "ENDPOINT"}}
	for _, d := range items {
		data = append(data, []string{d.Name, d.Endpoint})
	}
	out, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, out)
	return err
}

// CellWidth splits width between n columns, leaving room for separators.
func CellWidth(width, n int) int {
	if n <= 0 {
		return width
	}
	per := width/n - 3
	if per < minCell {
		return minCell
	}
	return per
}

// Cell formats a decoded JSON value for display. Objects and arrays are shown
// as compact JSON, null as an empty cell.
func Cell(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return strings.ReplaceAll(t, "\n", " ")
	case json.Number:
		return t.String()
	case bool:
		return strconv.FormatBool(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case map[string]any, []any:
		b, err := json.Marshal(t)
		if err != nil {
			return fmt.Sprint(t)
		}
		return string(b)
	}
	return fmt.Sprint(v)
}

// Truncate shortens s to at most n runes, marking the cut with an ellipsis.
func Truncate(s string, n int) string {
	if n <= 0 {
		return s
	}
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n == 1 {
		return "…"
	}
	return string(r[:n-1]) + "…"
}

// normalize replaces json.Number values so YAML prints them as numbers.
func normalize(v any) any {
	switch t := v.(type) {
	case json.Number:
		if i, err := t.Int64(); err == nil {
			return i
		}
		if f, err := t.Float64(); err == nil {
			return f
		}
		return t.String()
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[k] = normalize(val)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, val := range t {
			out[i] = normalize(val)
		}
		return out
	}
	return v
}
