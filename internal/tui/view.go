// Copyright (c) 2025 The restadmin Authors
// Licensed under the MIT License. See LICENSE file in the project root for details.

package tui

import (
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"restadmin/cli/internal/httperrors"
	"restadmin/cli/internal/render"
	"restadmin/cli/internal/view"
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63"))
	helpStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	selectedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	headerStyle   = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle     = lipgloss.NewStyle().Padding(0, 1)
	currentStyle  = lipgloss.NewStyle().Bold(true).Reverse(true).Padding(0, 1)
	pageStyle     = lipgloss.NewStyle().Padding(0, 1)
	borderStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
)

// View renders the current screen.
func (m *Model) View() string {
	if m.screen == menuScreen {
		return m.menuView()
	}
	return m.tableView()
}

func (m *Model) menuView() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Resources"))
	b.WriteString("\n\n")
	switch {
	case m.menuErr != nil:
		b.WriteString(errorStyle.Render("Error: " + httperrors.Describe(m.menuErr)))
		b.WriteString("\n")
	case m.menuBusy && len(m.resources) == 0:
		b.WriteString("Loading resources…\n")
	case len(m.resources) == 0:
		b.WriteString("The backend exposes no resources.\n")
	}
	for i, d := range m.resources {
		if i == m.cursor {
			b.WriteString(selectedStyle.Render("> " + d.Name))
		} else {
			b.WriteString("  " + d.Name)
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("↑/↓ move • enter open • r reload • q quit"))
	return b.String()
}

func (m *Model) tableView() string {
	s := m.snap
	var b strings.Builder

	b.WriteString(titleStyle.Render(s.Resource))
	if len(s.Filters) > 0 {
		b.WriteString("  ")
		b.WriteString(helpStyle.Render(filterSummary(s)))
	}
	b.WriteString("\n\n")

	switch s.State {
	case view.Loading:
		b.WriteString(fmt.Sprintf("Loading %s…\n", s.Resource))
	case view.Failed:
		b.WriteString(errorStyle.Render("Error: " + httperrors.Describe(s.Err)))
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("press r to retry"))
		b.WriteString("\n")
	}

	if len(s.Columns) > 0 {
		b.WriteString(m.recordsTable())
		b.WriteString("\n")
	} else if s.State == view.Loaded {
		b.WriteString("No records.\n")
	}

	if line := pagesLine(s); line != "" {
		b.WriteString(line)
		b.WriteString("\n")
	}
	if s.FiltersOpen {
		b.WriteString("\n")
		b.WriteString(m.filterEditor())
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("tab next column • enter apply • esc close"))
		return b.String()
	}
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("←/→ column • s/S sort asc/desc • f filter • n/p page • 1-9 jump • r reload • esc back • q quit"))
	return b.String()
}

func (m *Model) recordsTable() string {
	s := m.snap
	limit := render.CellWidth(m.width, len(s.Columns))
	headers := make([]string, len(s.Columns))
	for i, col := range s.Columns {
		headers[i] = render.Truncate(col+orderMark(s, col), limit)
	}
	rows := make([][]string, len(s.Records))
	for r, rec := range s.Records {
		row := make([]string, len(s.Columns))
		for i, col := range s.Columns {
			row[i] = render.Truncate(render.Cell(rec[col]), limit)
		}
		rows[r] = row
	}

	selected := m.column
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(borderStyle).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				if col == selected {
					return headerStyle.Reverse(true)
				}
				return headerStyle
			}
			return cellStyle
		})
	return t.Render()
}

// orderMark shows the direction and rank of col in the ordering, e.g. " ▲1".
func orderMark(s view.Snapshot, col string) string {
	for i, key := range s.Ordering {
		switch key {
		case col:
			return fmt.Sprintf(" ▲%d", i+1)
		case "-" + col:
			return fmt.Sprintf(" ▼%d", i+1)
		}
	}
	return ""
}

func pagesLine(s view.Snapshot) string {
	if len(s.Window) == 0 {
		return ""
	}
	parts := make([]string, 0, len(s.Window)+3)
	if s.HasPrev() {
		parts = append(parts, pageStyle.Render("‹ prev"))
	}
	for _, p := range s.Window {
		if p == s.Page {
			parts = append(parts, currentStyle.Render(fmt.Sprint(p)))
		} else {
			parts = append(parts, pageStyle.Render(fmt.Sprint(p)))
		}
	}
	if s.HasNext() {
		parts = append(parts, pageStyle.Render("next ›"))
	}
	parts = append(parts, helpStyle.Render(render.Footer(s.Page, s.TotalPages, s.Total)))
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func filterSummary(s view.Snapshot) string {
	keys := s.Filters.Keys()
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = k + "=" + s.Filters[k]
	}
	return "filters: " + strings.Join(parts, ", ")
}

func (m *Model) filterEditor() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Filter"))
	b.WriteString("\n")
	cols := m.snap.FilterColumns
	for i, col := range cols {
		current, set := m.snap.Filters[col]
		line := col
		if set {
			line += " = " + current
		}
		if i == m.filterCol {
			b.WriteString(selectedStyle.Render("> " + col + ": " + string(m.input) + "▏"))
		} else {
			b.WriteString("  " + line)
		}
		b.WriteString("\n")
	}
	if extra := unknownFilters(m.snap); len(extra) > 0 {
		b.WriteString(helpStyle.Render("also active: " + strings.Join(extra, ", ")))
		b.WriteString("\n")
	}
	return b.String()
}

// unknownFilters lists active filters on columns the current listing does not show.
func unknownFilters(s view.Snapshot) []string {
	var out []string
	for _, k := range s.Filters.Keys() {
		if !slices.Contains(s.FilterColumns, k) {
			out = append(out, k+"="+s.Filters[k])
		}
	}
	return out
}
