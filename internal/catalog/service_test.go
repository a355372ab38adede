// Copyright (c) 2025 The restadmin Authors
// Licensed under the MIT License. See LICENSE file in the project root for details.

package catalog

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"restadmin/cli/internal/backend"
	apperrors "restadmin/cli/internal/errors"
)

func discoveryServer(t *testing.T, status int, body string) (*httptest.Server, *atomic.Int32) {
	t.Helper()
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != DefaultDiscoveryPath {
			http.NotFound(w, r)
			return
		}
		calls.Add(1)
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv, &calls
}

func TestListMemoizes(t *testing.T) {
	srv, calls := discoveryServer(t, http.StatusOK, `[{"name":"users","url":"/api/users"},{"name":"todos","url":"/api/todos"}]`)
	c := New(backend.New(srv.URL), NewCache())

	for i := 0; i < 3; i++ {
		items, err := c.List(context.Background())
		require.NoError(t, err)
		assert.Equal(t, []Descriptor{{Name: "users", Endpoint: "/api/users"}, {Name: "todos", Endpoint: "/api/todos"}}, items)
	}
	assert.Equal(t, int32(1), calls.Load(), "discovery should run once")
}

func TestListReturnsCopies(t *testing.T) {
	srv, _ := discoveryServer(t, http.StatusOK, `[{"name":"users","url":"/api/users"}]`)
	c := New(backend.New(srv.URL), nil)

	first, err := c.List(context.Background())
	require.NoError(t, err)
	first[0].Name = "mutated"

	second, err := c.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "users", second[0].Name)
}

func TestListCoalescesConcurrentDiscovery(t *testing.T) {
	release := make(chan struct{})
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		<-release
		_, _ = w.Write([]byte(`[{"name":"users","url":"/api/users"}]`))
	}))
	defer srv.Close()

	c := New(backend.New(srv.URL), NewCache())
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			items, err := c.List(context.Background())
			assert.NoError(t, err)
			assert.Len(t, items, 1)
		}()
	}
	for calls.Load() == 0 {
		time.Sleep(time.Millisecond)
	}
	close(release)
	wg.Wait()

	_, err := c.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int32(1), calls.Load())
}

func TestListCallerCancellationDoesNotFailOthers(t *testing.T) {
	release := make(chan struct{})
	var once sync.Once
	unblock := func() { once.Do(func() { close(release) }) }
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		<-release
		_, _ = w.Write([]byte(`[{"name":"users","url":"/api/users"}]`))
	}))
	defer srv.Close()
	defer unblock()

	c := New(backend.New(srv.URL), NewCache())

	firstCtx, cancelFirst := context.WithCancel(context.Background())
	first := make(chan error, 1)
	go func() {
		_, err := c.List(firstCtx)
		first <- err
	}()
	for calls.Load() == 0 {
		time.Sleep(time.Millisecond)
	}

	second := make(chan []Descriptor, 1)
	go func() {
		items, err := c.List(context.Background())
		assert.NoError(t, err)
		second <- items
	}()
	time.Sleep(20 * time.Millisecond)

	cancelFirst()
	select {
	case err := <-first:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("cancelled caller kept waiting for discovery")
	}

	unblock()
	select {
	case items := <-second:
		assert.Equal(t, []Descriptor{{Name: "users", Endpoint: "/api/users"}}, items)
	case <-time.After(2 * time.Second):
		t.Fatal("remaining caller never got the discovery result")
	}
	assert.Equal(t, int32(1), calls.Load())

	items, err := c.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, items, 1, "detached discovery fills the cache")
}

func TestListErrors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		want   apperrors.Kind
	}{
		{name: "server error", status: http.StatusInternalServerError, body: `oops`, want: apperrors.Network},
		{name: "not found", status: http.StatusNotFound, body: ``, want: apperrors.Network},
		{name: "malformed json", status: http.StatusOK, body: `[{"name":`, want: apperrors.Parse},
		{name: "null", status: http.StatusOK, body: `null`, want: apperrors.Parse},
		{name: "object instead of list", status: http.StatusOK, body: `{"name":"users"}`, want: apperrors.Parse},
		{name: "entry not an object", status: http.StatusOK, body: `["users"]`, want: apperrors.Parse},
		{name: "missing name", status: http.StatusOK, body: `[{"url":"/api/users"}]`, want: apperrors.Parse},
		{name: "missing url", status: http.StatusOK, body: `[{"name":"users"}]`, want: apperrors.Parse},
		{name: "duplicate name", status: http.StatusOK, body: `[{"name":"users","url":"/a"},{"name":"users","url":"/b"}]`, want: apperrors.Parse},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, calls := discoveryServer(t, tt.status, tt.body)
			c := New(backend.New(srv.URL), NewCache())

			_, err := c.List(context.Background())
			require.Error(t, err)
			assert.Equal(t, tt.want, apperrors.KindOf(err))

			_, err = c.List(context.Background())
			require.Error(t, err)
			assert.Equal(t, int32(2), calls.Load(), "failures must not be cached")
		})
	}
}

func TestLookupAndEndpoint(t *testing.T) {
	srv, _ := discoveryServer(t, http.StatusOK, `[{"name":"users","url":"/api/users"}]`)
	c := New(backend.New(srv.URL), NewCache())

	d, err := c.Lookup(context.Background(), "users")
	require.NoError(t, err)
	assert.Equal(t, "/api/users", d.Endpoint)

	endpoint, err := c.Endpoint(context.Background(), "users")
	require.NoError(t, err)
	assert.Equal(t, srv.URL+"/api/users", endpoint)

	_, err = c.Lookup(context.Background(), "books")
	require.Error(t, err)
	assert.Equal(t, apperrors.UnknownResource, apperrors.KindOf(err))
}

func TestDiscoveryPathOption(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	items, err := New(backend.New(srv.URL), nil, WithDiscoveryPath("/resources")).List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, items)
	assert.Equal(t, "/resources", gotPath)
}

func TestCacheFillOnce(t *testing.T) {
	var c Cache
	_, ok := c.Get()
	assert.False(t, ok)

	got := c.Fill([]Descriptor{{Name: "a", Endpoint: "/a"}})
	assert.Equal(t, []Descriptor{{Name: "a", Endpoint: "/a"}}, got)

	got = c.Fill([]Descriptor{{Name: "b", Endpoint: "/b"}})
	assert.Equal(t, []Descriptor{{Name: "a", Endpoint: "/a"}}, got, "second fill is ignored")
}
