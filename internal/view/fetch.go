// Copyright (c) 2025 The restadmin Authors
// Licensed under the MIT License. See LICENSE file in the project root for details.

package view

import (
	"context"

	"restadmin/cli/internal/fetcher"
)

// Fetch is a fetch issued by the coordinator for one query snapshot.
type Fetch struct {
	// Seq orders fetches; only the highest issued Seq is ever applied.
	Seq     uint64
	Request fetcher.Request

	fetcher    Fetcher
	superseded context.Context
}

// Result is the outcome of a Fetch.
type Result struct {
	Seq      uint64
	Resource string
	Page     *fetcher.Page
	Err      error
}

// Run performs the fetch. The request is cancelled early when ctx is done or
// when the coordinator issues a newer fetch.
func (f *Fetch) Run(ctx context.Context) Result {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	stop := context.AfterFunc(f.superseded, cancel)
	defer stop()

	page, err := f.fetcher.Fetch(ctx, f.Request)
	return Result{Seq: f.Seq, Resource: f.Request.Resource, Page: page, Err: err}
}
