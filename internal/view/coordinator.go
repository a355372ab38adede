// Copyright (c) 2025 The restadmin Authors
// Licensed under the MIT License. See LICENSE file in the project root for details.

package view

import (
	"context"
	"slices"
	"sync"

	"github.com/pterm/pterm"

	"restadmin/cli/internal/fetcher"
	"restadmin/cli/internal/logging"
	"restadmin/cli/internal/pagination"
	"restadmin/cli/internal/query"
)

// Fetcher loads a page. *fetcher.Fetcher implements it.
type Fetcher interface {
	Fetch(ctx context.Context, req fetcher.Request) (*fetcher.Page, error)
}

// DefaultsFunc returns the filters a freshly selected resource starts with.
type DefaultsFunc func(resource string) query.Filters

// Option configures a Coordinator.
type Option func(*Coordinator)

// WithDefaults sets the per-resource default filters.
func WithDefaults(fn DefaultsFunc) Option {
	return func(c *Coordinator) {
		if fn != nil {
			c.defaults = fn
		}
	}
}

// WithPageSize requests pages of n rows. 0 leaves the size to the backend.
func WithPageSize(n int) Option {
	return func(c *Coordinator) { c.pageSize = n }
}

// WithLogger sets the logger.
func WithLogger(l *pterm.Logger) Option {
	return func(c *Coordinator) { c.log = l }
}

// Coordinator is the view state machine of the resource listing.
//
// Every mutation returns the *Fetch it requires, or nil when the mutation was a
// no-op. Running the fetch and handing its Result to Apply completes the
// transition. Results of fetches that were superseded by a later mutation are
// discarded by Apply, and their context is cancelled when the newer fetch is issued.
//
// All methods are safe for concurrent use.
type Coordinator struct {
	fetcher  Fetcher
	defaults DefaultsFunc
	pageSize int
	log      *pterm.Logger

	mu            sync.Mutex
	state         State
	resource      string
	query         query.Query
	page          *fetcher.Page
	filterColumns []string
	filtersOpen   bool
	err           error
	seq           uint64
	cancel        context.CancelFunc
}

// New creates an idle coordinator.
func New(f Fetcher, opts ...Option) *Coordinator {
	c := &Coordinator{
		fetcher:  f,
		defaults: func(string) query.Filters { return query.Filters{} },
		log:      logging.Discard(),
		query:    query.New(nil),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Select switches to resource. A different resource starts from a fresh query
// (default filters, no ordering, page 1); the current one is reloaded as it is.
func (c *Coordinator) Select(resource string) *Fetch {
	c.mu.Lock()
	defer c.mu.Unlock()
	if resource == "" {
		return nil
	}
	if resource != c.resource {
		c.log.Debug("resource selected", c.log.Args("resource", resource))
		c.resource = resource
		c.query = query.New(c.defaults(resource))
		c.page = nil
		c.filterColumns = nil
		c.filtersOpen = false
	}
	return c.issueLocked()
}

// SetFilter constrains column to value, closes the filter editor and reloads from page 1.
func (c *Coordinator) SetFilter(column, value string) *Fetch {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.resource == "" || column == "" {
		return nil
	}
	c.query.SetFilter(column, value)
	c.filtersOpen = false
	return c.issueLocked()
}

// ToggleOrdering applies a click on a column header; column may carry a "-" prefix.
func (c *Coordinator) ToggleOrdering(column string) *Fetch {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.resource == "" || !c.query.ToggleOrdering(column) {
		return nil
	}
	return c.issueLocked()
}

// PrevPage moves one page back; nil on the first page.
func (c *Coordinator) PrevPage() *Fetch {
	return c.movePage(pagination.Prev)
}

// NextPage moves one page forward; nil on the last page.
func (c *Coordinator) NextPage() *Fetch {
	return c.movePage(pagination.Next)
}

// GoToPage jumps to page p; nil when p is outside [1, total pages].
func (c *Coordinator) GoToPage(p int) *Fetch {
	return c.movePage(func(s pagination.State) (pagination.State, bool) {
		return pagination.GoTo(s, p)
	})
}

func (c *Coordinator) movePage(move func(pagination.State) (pagination.State, bool)) *Fetch {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.resource == "" {
		return nil
	}
	next, ok := move(c.paginationLocked())
	if !ok {
		return nil
	}
	c.query.Page = next.Page
	return c.issueLocked()
}

// Retry re-issues the fetch for the current query.
func (c *Coordinator) Retry() *Fetch {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.resource == "" {
		return nil
	}
	return c.issueLocked()
}

// OpenFilters shows the filter editor.
func (c *Coordinator) OpenFilters() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.filtersOpen = c.resource != ""
}

// CloseFilters hides the filter editor without changing any filter.
func (c *Coordinator) CloseFilters() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.filtersOpen = false
}

// Apply installs the outcome of a fetch. It reports false, changing nothing,
// when a newer fetch has been issued since r's fetch.
func (c *Coordinator) Apply(r Result) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if r.Seq != c.seq {
		c.log.Trace("discarding superseded result", c.log.Args("seq", r.Seq, "latest", c.seq))
		return false
	}
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}

	if r.Err != nil {
		c.state = Failed
		c.err = r.Err
		c.log.Error("fetch failed", c.log.Args("resource", c.resource, "error", logging.Mask(r.Err.Error())))
		return true
	}

	if r.Page == nil {
		r.Page = &fetcher.Page{Columns: []string{}}
	}
	c.state = Loaded
	c.err = nil
	c.page = r.Page
	if r.Page.CurrentPage > 0 {
		c.query.Page = r.Page.CurrentPage
	}
	if len(r.Page.Columns) > 0 {
		c.filterColumns = slices.Clone(r.Page.Columns)
	}
	return true
}

// Run executes f and applies its result. It is the synchronous form of
// Apply(f.Run(ctx)) and reports whether the result was applied. A nil f is a no-op.
func (c *Coordinator) Run(ctx context.Context, f *Fetch) bool {
	if f == nil {
		return false
	}
	return c.Apply(f.Run(ctx))
}

// Snapshot returns a copy of the current view state.
func (c *Coordinator) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	p := c.paginationLocked()
	s := Snapshot{
		State:         c.state,
		Resource:      c.resource,
		Filters:       c.query.Filters.Clone(),
		Ordering:      slices.Clone(c.query.Ordering),
		Page:          p.Page,
		TotalPages:    p.TotalPages,
		FilterColumns: slices.Clone(c.filterColumns),
		FiltersOpen:   c.filtersOpen,
		Err:           c.err,
		Seq:           c.seq,
		Columns:       []string{},
	}
	if c.page != nil {
		s.Total = c.page.Total
		s.Records = slices.Clone(c.page.Records)
		s.Columns = slices.Clone(c.page.Columns)
	}
	s.Window = pagination.Window(p.Page, p.TotalPages)
	return s
}

func (c *Coordinator) paginationLocked() pagination.State {
	s := pagination.State{Page: c.query.Page}
	if c.page != nil {
		s.TotalPages = c.page.TotalPages
	}
	return s
}

// issueLocked starts the lifecycle of a fetch for the current query and
// supersedes any fetch still in flight.
func (c *Coordinator) issueLocked() *Fetch {
	if c.cancel != nil {
		c.cancel()
	}
	ctx, cancel := context.WithCancel(context.Background())
	c.cancel = cancel
	c.seq++
	c.state = Loading

	return &Fetch{
		Seq:        c.seq,
		Request:    fetcher.RequestFor(c.resource, c.query, c.pageSize),
		fetcher:    c.fetcher,
		superseded: ctx,
	}
}
