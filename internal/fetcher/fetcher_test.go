// Copyright (c) 2025 The restadmin Authors
// Licensed under the MIT License. See LICENSE file in the project root for details.

package fetcher

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"restadmin/cli/internal/backend"
	"restadmin/cli/internal/catalog"
	apperrors "restadmin/cli/internal/errors"
	"restadmin/cli/internal/query"
)

func TestBuildURL(t *testing.T) {
	tests := []struct {
		name     string
		endpoint string
		req      Request
		want     string
	}{
		{
			name:     "empty ordering is still sent",
			endpoint: "/api/users",
			req:      Request{},
			want:     "/api/users?ordering=",
		},
		{
			name:     "ordering joined by comma",
			endpoint: "/api/users",
			req:      Request{Ordering: query.Ordering{"name", "-age"}},
			want:     "/api/users?ordering=name,-age",
		},
		{
			name:     "filters follow ordering in key order",
			endpoint: "/api/users",
			req:      Request{Filters: query.Filters{"name": "A", "country_code": "US"}},
			want:     "/api/users?ordering=&country_code=US&name=A",
		},
		{
			name:     "values are percent encoded",
			endpoint: "/api/users",
			req:      Request{Filters: query.Filters{"name": "Anna Lee & co/x"}},
			want:     "/api/users?ordering=&name=Anna%20Lee%20%26%20co%2Fx",
		},
		{
			name:     "empty filter value is kept",
			endpoint: "/api/users",
			req:      Request{Filters: query.Filters{"name": ""}},
			want:     "/api/users?ordering=&name=",
		},
		{
			name:     "first page is implicit",
			endpoint: "/api/users",
			req:      Request{Page: 1},
			want:     "/api/users?ordering=",
		},
		{
			name:     "page and page size",
			endpoint: "/api/users",
			req:      Request{Page: 3, PageSize: 25},
			want:     "/api/users?ordering=&page=3&page_size=25",
		},
		{
			name:     "endpoint with existing query",
			endpoint: "/api/users?tenant=1",
			req:      Request{},
			want:     "/api/users?tenant=1&ordering=",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, BuildURL(tt.endpoint, tt.req))
		})
	}
}

func TestParsePage(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		req       Request
		wantCols  []string
		wantRows  int
		wantPage  int
		wantPages int
		wantTotal int
	}{
		{
			name:      "results only",
			body:      `{"results":[{"id":1,"name":"A"}]}`,
			wantCols:  []string{"id", "name"},
			wantRows:  1,
			wantPage:  1,
			wantPages: 1,
			wantTotal: 1,
		},
		{
			name:      "flask pagination metadata",
			body:      `{"results":[{"name":"B","id":2}],"total":31,"pages":4,"page":2,"page_size":10}`,
			req:       Request{Page: 2},
			wantCols:  []string{"name", "id"},
			wantRows:  1,
			wantPage:  2,
			wantPages: 4,
			wantTotal: 31,
		},
		{
			name:      "count and page size derive pages",
			body:      `{"results":[{"id":1}],"count":21,"page_size":10}`,
			wantCols:  []string{"id"},
			wantRows:  1,
			wantPage:  1,
			wantPages: 3,
			wantTotal: 21,
		},
		{
			name:      "total pages alias",
			body:      `{"results":[{"id":1}],"total_pages":7,"page":5}`,
			req:       Request{Page: 5},
			wantCols:  []string{"id"},
			wantRows:  1,
			wantPage:  5,
			wantPages: 7,
			wantTotal: 1,
		},
		{
			name:      "empty page has no columns",
			body:      `{"results":[],"total":0,"pages":0,"page":1}`,
			wantCols:  []string{},
			wantRows:  0,
			wantPage:  1,
			wantPages: 0,
			wantTotal: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, err := ParsePage([]byte(tt.body), tt.req)
			require.NoError(t, err)
			assert.Equal(t, tt.wantCols, page.Columns)
			assert.Len(t, page.Records, tt.wantRows)
			assert.Equal(t, tt.wantPage, page.CurrentPage)
			assert.Equal(t, tt.wantPages, page.TotalPages)
			assert.Equal(t, tt.wantTotal, page.Total)
		})
	}
}

func TestParsePageKeepsNumbers(t *testing.T) {
	page, err := ParsePage([]byte(`{"results":[{"id":12345678901234567,"score":1.5,"tags":["a"],"owner":{"id":1},"deleted":null}]}`), Request{})
	require.NoError(t, err)
	rec := page.Records[0]
	assert.Equal(t, json.Number("12345678901234567"), rec["id"])
	assert.Equal(t, json.Number("1.5"), rec["score"])
	assert.Nil(t, rec["deleted"])
	assert.Equal(t, []string{"id", "score", "tags", "owner", "deleted"}, page.Columns)
}

func TestParsePageErrors(t *testing.T) {
	for name, body := range map[string]string{
		"not json":          `<html>`,
		"array body":        `[{"id":1}]`,
		"missing results":   `{"total":0}`,
		"null results":      `{"results":null}`,
		"results not array": `{"results":{"id":1}}`,
		"row not object":    `{"results":[1,2]}`,
		"bad metadata":      `{"results":[],"pages":"many"}`,
	} {
		t.Run(name, func(t *testing.T) {
			_, err := ParsePage([]byte(body), Request{})
			require.Error(t, err)
			assert.Equal(t, apperrors.Parse, apperrors.KindOf(err))
		})
	}
}

func newBackend(t *testing.T, list http.HandlerFunc) (*httptest.Server, *Fetcher) {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/admin/resources", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[{"name":"users","url":"/api/users"}]`))
	})
	mux.HandleFunc("/api/users", list)
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	client := backend.New(srv.URL)
	return srv, New(catalog.New(client, catalog.NewCache()), client, nil)
}

func TestFetchEndToEnd(t *testing.T) {
	var gotQuery string
	_, f := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		_, _ = w.Write([]byte(`{"results":[{"id":1,"name":"A"}]}`))
	})

	page, err := f.Fetch(context.Background(), Request{Resource: "users", Filters: query.Filters{}, Ordering: query.Ordering{}})
	require.NoError(t, err)
	assert.Equal(t, "ordering=", gotQuery)
	assert.Equal(t, []string{"id", "name"}, page.Columns)
	assert.Equal(t, 1, page.CurrentPage)
	assert.Equal(t, 1, page.TotalPages)
}

func TestFetchSendsFilter(t *testing.T) {
	var gotQuery string
	_, f := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		_, _ = w.Write([]byte(`{"results":[]}`))
	})

	q := query.New(nil)
	q.SetFilter("country_code", "US")
	_, err := f.Fetch(context.Background(), RequestFor("users", q, 0))
	require.NoError(t, err)
	assert.Contains(t, gotQuery, "country_code=US")
}

func TestFetchErrors(t *testing.T) {
	_, f := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})

	_, err := f.Fetch(context.Background(), Request{Resource: "books"})
	assert.Equal(t, apperrors.UnknownResource, apperrors.KindOf(err))

	_, err = f.Fetch(context.Background(), Request{Resource: "users"})
	assert.Equal(t, apperrors.Network, apperrors.KindOf(err))
}
