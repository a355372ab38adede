// Copyright (c) 2025 The restadmin Authors
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package fetcher loads one page of a resource listing from the backend.
package fetcher

import (
	"context"

	"github.com/pterm/pterm"

	"restadmin/cli/internal/logging"
)

// Resolver maps a resource name to its absolute list URL. *catalog.Catalog implements it.
type Resolver interface {
	Endpoint(ctx context.Context, name string) (string, error)
}

// Getter fetches a JSON document. *backend.Client implements it.
type Getter interface {
	GetJSON(ctx context.Context, rawURL string) ([]byte, error)
}

// Fetcher builds listing requests and decodes their pages.
type Fetcher struct {
	resolver Resolver
	client   Getter
	log      *pterm.Logger
}

// New creates a Fetcher. A nil logger discards output.
func New(resolver Resolver, client Getter, log *pterm.Logger) *Fetcher {
	if log == nil {
		log = logging.Discard()
	}
	return &Fetcher{resolver: resolver, client: client, log: log}
}

// Fetch resolves req.Resource, requests the page and decodes it.
// Errors carry the unknown_resource, network_error or parse_error kind.
func (f *Fetcher) Fetch(ctx context.Context, req Request) (*Page, error) {
	endpoint, err := f.resolver.Endpoint(ctx, req.Resource)
	if err != nil {
		return nil, err
	}

	url := BuildURL(endpoint, req)
	body, err := f.client.GetJSON(ctx, url)
	if err != nil {
		return nil, err
	}

	page, err := ParsePage(body, req)
	if err != nil {
		return nil, err
	}
	f.log.Debug("fetched page", f.log.Args(
		"resource", req.Resource,
		"page", page.CurrentPage,
		"pages", page.TotalPages,
		"rows", len(page.Records),
	))
	return page, nil
}
