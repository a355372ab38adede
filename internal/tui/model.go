// Copyright (c) 2025 The restadmin Authors
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package tui is the interactive resource browser behind "restadmin browse".
//
// The model owns no listing state of its own: every key that changes the
// listing is forwarded to a view.Coordinator, the returned fetch runs as a
// tea.Cmd, and its result is handed back to the coordinator, which drops
// results that have been superseded in the meantime.
package tui

import (
	"context"
	"slices"
	"strconv"

	tea "github.com/charmbracelet/bubbletea"

	"restadmin/cli/internal/catalog"
	"restadmin/cli/internal/view"
)

// Lister provides the resource index. *catalog.Catalog implements it.
type Lister interface {
	List(ctx context.Context) ([]catalog.Descriptor, error)
}

type screen int

const (
	menuScreen screen = iota
	tableScreen
)

// resourcesMsg carries the outcome of loading the resource index.
type resourcesMsg struct {
	items []catalog.Descriptor
	err   error
}

// fetchedMsg carries the outcome of a listing fetch.
type fetchedMsg struct{ result view.Result }

// Model is the bubbletea model of the browser.
type Model struct {
	ctx     context.Context
	lister  Lister
	coord   *view.Coordinator
	initial string

	screen    screen
	resources []catalog.Descriptor
	menuErr   error
	menuBusy  bool
	cursor    int

	snap      view.Snapshot
	column    int
	filterCol int
	input     []rune

	width, height int
}

// New creates the browser. When initial is set the listing of that resource
// opens directly.
func New(ctx context.Context, lister Lister, coord *view.Coordinator, initial string) *Model {
	return &Model{
		ctx:     ctx,
		lister:  lister,
		coord:   coord,
		initial: initial,
		snap:    coord.Snapshot(),
		width:   80,
		height:  24,
	}
}

// Init loads the resource index and, if requested, the initial listing.
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.loadResources()}
	if m.initial != "" {
		m.screen = tableScreen
		cmds = append(cmds, m.run(m.coord.Select(m.initial)))
	}
	return tea.Batch(cmds...)
}

func (m *Model) loadResources() tea.Cmd {
	m.menuBusy = true
	ctx, lister := m.ctx, m.lister
	return func() tea.Msg {
		items, err := lister.List(ctx)
		return resourcesMsg{items: items, err: err}
	}
}

// run turns a coordinator fetch into a command. A nil fetch means the key was a no-op.
func (m *Model) run(f *view.Fetch) tea.Cmd {
	m.snap = m.coord.Snapshot()
	if f == nil {
		return nil
	}
	ctx := m.ctx
	return func() tea.Msg { return fetchedMsg{result: f.Run(ctx)} }
}

// Update handles messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil
	case resourcesMsg:
		m.menuBusy = false
		m.menuErr = msg.err
		if msg.err == nil {
			m.resources = msg.items
			m.cursor = min(m.cursor, max(len(m.resources)-1, 0))
		}
		return m, nil
	case fetchedMsg:
		m.coord.Apply(msg.result)
		m.snap = m.coord.Snapshot()
		m.column = clamp(m.column, len(m.snap.Columns))
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		switch {
		case m.screen == menuScreen:
			return m, m.menuKey(msg)
		case m.snap.FiltersOpen:
			return m, m.filterKey(msg)
		default:
			return m, m.tableKey(msg)
		}
	}
	return m, nil
}

func (m *Model) menuKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "q", "esc":
		return tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.resources)-1 {
			m.cursor++
		}
	case "r":
		return m.loadResources()
	case "enter":
		if m.cursor < len(m.resources) {
			return m.open(m.resources[m.cursor].Name)
		}
	}
	return nil
}

func (m *Model) open(resource string) tea.Cmd {
	m.screen = tableScreen
	if resource != m.snap.Resource {
		m.column = 0
	}
	return m.run(m.coord.Select(resource))
}

func (m *Model) tableKey(msg tea.KeyMsg) tea.Cmd {
	switch key := msg.String(); key {
	case "q":
		return tea.Quit
	case "esc":
		m.screen = menuScreen
	case "left", "h":
		if m.column > 0 {
			m.column--
		}
	case "right", "l":
		if m.column < len(m.snap.Columns)-1 {
			m.column++
		}
	case "s", "S":
		if m.column < len(m.snap.Columns) {
			col := m.snap.Columns[m.column]
			if key == "S" {
				col = "-" + col
			}
			return m.run(m.coord.ToggleOrdering(col))
		}
	case "n", "pgdown":
		return m.run(m.coord.NextPage())
	case "p", "pgup":
		return m.run(m.coord.PrevPage())
	case "r":
		return m.run(m.coord.Retry())
	case "f":
		if len(m.snap.FilterColumns) > 0 {
			m.coord.OpenFilters()
			m.snap = m.coord.Snapshot()
			m.filterCol = 0
			if m.column < len(m.snap.Columns) {
				if i := slices.Index(m.snap.FilterColumns, m.snap.Columns[m.column]); i >= 0 {
					m.filterCol = i
				}
			}
			m.resetInput()
		}
	default:
		// 1-9 pick an entry of the page window.
		if n, err := strconv.Atoi(key); err == nil && n >= 1 && n <= len(m.snap.Window) {
			return m.run(m.coord.GoToPage(m.snap.Window[n-1]))
		}
	}
	return nil
}

func (m *Model) filterKey(msg tea.KeyMsg) tea.Cmd {
	if len(m.snap.FilterColumns) == 0 {
		m.coord.CloseFilters()
		m.snap = m.coord.Snapshot()
		return nil
	}
	switch msg.Type {
	case tea.KeyEsc:
		m.coord.CloseFilters()
		m.snap = m.coord.Snapshot()
	case tea.KeyEnter:
		col := m.snap.FilterColumns[m.filterCol]
		return m.run(m.coord.SetFilter(col, string(m.input)))
	case tea.KeyTab, tea.KeyDown:
		m.filterCol = (m.filterCol + 1) % len(m.snap.FilterColumns)
		m.resetInput()
	case tea.KeyShiftTab, tea.KeyUp:
		m.filterCol = (m.filterCol + len(m.snap.FilterColumns) - 1) % len(m.snap.FilterColumns)
		m.resetInput()
	case tea.KeyBackspace:
		if len(m.input) > 0 {
			m.input = m.input[:len(m.input)-1]
		}
	case tea.KeySpace:
		m.input = append(m.input, ' ')
	case tea.KeyRunes:
		m.input = append(m.input, msg.Runes...)
	}
	return nil
}

// resetInput loads the current value of the selected filter column into the editor.
func (m *Model) resetInput() {
	m.input = []rune(m.snap.Filters[m.snap.FilterColumns[m.filterCol]])
}

func clamp(i, n int) int {
	if i >= n {
		i = n - 1
	}
	return max(i, 0)
}
