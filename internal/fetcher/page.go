// Copyright (c) 2025 The restadmin Authors
// Licensed under the MIT License. See LICENSE file in the project root for details.

package fetcher

import (
	"bytes"
	"encoding/json"
	"fmt"

	apperrors "restadmin/cli/internal/errors"
)

// Record is one row of a listing, decoded with json.Number for numeric values.
type Record map[string]any

// Page is one page of a resource listing.
type Page struct {
	Records []Record
	// Columns are the keys of the first record in document order; empty for an empty page.
	Columns     []string
	CurrentPage int
	TotalPages  int
	Total       int
	PageSize    int
}

// envelope is the list response. Both the flask-restframework field names
// (total, pages) and the common alternatives (count, total_pages) are accepted.
type envelope struct {
	Results    json.RawMessage `json:"results"`
	Total      *int            `json:"total"`
	Count      *int            `json:"count"`
	Pages      *int            `json:"pages"`
	TotalPages *int            `json:"total_pages"`
	Page       *int            `json:"page"`
	PageSize   *int            `json:"page_size"`
}

// ParsePage decodes a list response. requested supplies the page and page size
// when the backend omits them.
func ParsePage(body []byte, requested Request) (*Page, error) {
	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, apperrors.Wrap(apperrors.Parse, "list response is not a JSON object", err)
	}
	if len(env.Results) == 0 || bytes.Equal(bytes.TrimSpace(env.Results), []byte("null")) {
		return nil, apperrors.New(apperrors.Parse, `list response has no "results"`)
	}

	var rows []json.RawMessage
	if err := json.Unmarshal(env.Results, &rows); err != nil {
		return nil, apperrors.Wrap(apperrors.Parse, `"results" is not an array`, err)
	}

	page := &Page{Records: make([]Record, 0, len(rows)), Columns: []string{}}
	for i, raw := range rows {
		rec, err := decodeRecord(raw)
		if err != nil {
			return nil, apperrors.Wrap(apperrors.Parse, fmt.Sprintf("result #%d is not an object", i), err)
		}
		page.Records = append(page.Records, rec)
	}
	if len(rows) > 0 {
		cols, err := objectKeys(rows[0])
		if err != nil {
			return nil, apperrors.Wrap(apperrors.Parse, "read columns", err)
		}
		page.Columns = cols
	}

	page.PageSize = firstSet(requested.PageSize, env.PageSize)
	page.CurrentPage = firstSet(max(requested.Page, 1), env.Page)
	page.Total = firstSet(len(page.Records), env.Total, env.Count)
	page.TotalPages = totalPages(env, page)
	return page, nil
}

// totalPages prefers explicit page counts, then derives one from total and page size.
// Without any metadata a non-empty response is a single page.
func totalPages(env envelope, page *Page) int {
	if env.Pages != nil {
		return *env.Pages
	}
	if env.TotalPages != nil {
		return *env.TotalPages
	}
	total := env.Total
	if total == nil {
		total = env.Count
	}
	if total != nil && page.PageSize > 0 {
		return (*total + page.PageSize - 1) / page.PageSize
	}
	if len(page.Records) > 0 {
		return 1
	}
	return 0
}

// firstSet returns the first non-nil candidate, or fallback when none is set.
// Candidates are listed from highest to lowest priority.
func firstSet(fallback int, candidates ...*int) int {
	for _, c := range candidates {
		if c != nil {
			return *c
		}
	}
	return fallback
}

func decodeRecord(raw json.RawMessage) (Record, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil, fmt.Errorf("got %.20s", trimmed)
	}
	dec := json.NewDecoder(bytes.NewReader(trimmed))
	dec.UseNumber()
	var rec Record
	if err := dec.Decode(&rec); err != nil {
		return nil, err
	}
	return rec, nil
}

// objectKeys returns the keys of a JSON object in the order they appear.
func objectKeys(raw json.RawMessage) ([]string, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	var keys []string
	seen := make(map[string]struct{})
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("unexpected token %v", tok)
		}
		var skip json.RawMessage
		if err := dec.Decode(&skip); err != nil {
			return nil, err
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		keys = append(keys, key)
	}
	return keys, nil
}
