// Copyright (c) 2025 The restadmin Authors
// Licensed under the MIT License. See LICENSE file in the project root for details.

package fetcher

import (
	"net/url"
	"strconv"
	"strings"

	"restadmin/cli/internal/query"
)

// Request describes one listing fetch.
type Request struct {
	Resource string
	Filters  query.Filters
	Ordering query.Ordering
	// Page is 1-based; pages <= 1 are not sent so the backend default applies.
	Page int
	// PageSize is sent only when positive.
	PageSize int
}

// RequestFor builds a Request for resource from a query snapshot.
func RequestFor(resource string, q query.Query, pageSize int) Request {
	q = q.Clone()
	return Request{
		Resource: resource,
		Filters:  q.Filters,
		Ordering: q.Ordering,
		Page:     q.Page,
		PageSize: pageSize,
	}
}

// BuildURL appends the listing arguments to endpoint:
// ordering first (always present, possibly empty), then one argument per filter in
// key order, then page and page_size when set.
func BuildURL(endpoint string, req Request) string {
	var b strings.Builder
	b.WriteString(endpoint)
	switch {
	case strings.HasSuffix(endpoint, "?"), strings.HasSuffix(endpoint, "&"):
	case strings.Contains(endpoint, "?"):
		b.WriteByte('&')
	default:
		b.WriteByte('?')
	}

	b.WriteString("ordering=")
	for i, entry := range req.Ordering {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(encodeComponent(entry))
	}

	for _, key := range req.Filters.Keys() {
		b.WriteByte('&')
		b.WriteString(encodeComponent(key))
		b.WriteByte('=')
		b.WriteString(encodeComponent(req.Filters[key]))
	}

	if req.Page > 1 {
		b.WriteString("&page=")
		b.WriteString(strconv.Itoa(req.Page))
	}
	if req.PageSize > 0 {
		b.WriteString("&page_size=")
		b.WriteString(strconv.Itoa(req.PageSize))
	}
	return b.String()
}

// encodeComponent percent-encodes s for a query component, spaces as %20.
func encodeComponent(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
