// Copyright (c) 2025 The restadmin Authors
// Licensed under the MIT License. See LICENSE file in the project root for details.

package catalog

import (
	"context"
	"fmt"

	"github.com/pterm/pterm"
	"golang.org/x/sync/singleflight"

	apperrors "restadmin/cli/internal/errors"
	"restadmin/cli/internal/logging"
)

// Getter fetches a JSON document. *backend.Client implements it.
type Getter interface {
	GetJSON(ctx context.Context, rawURL string) ([]byte, error)
	Resolve(ref string) string
}

// Catalog lists the backend's resources, memoizing the first successful discovery.
type Catalog struct {
	client        Getter
	cache         *Cache
	discoveryPath string
	group         singleflight.Group
	log           *pterm.Logger
}

// Option configures a Catalog.
type Option func(*Catalog)

// WithDiscoveryPath overrides DefaultDiscoveryPath.
func WithDiscoveryPath(p string) Option {
	return func(c *Catalog) {
		if p != "" {
			c.discoveryPath = p
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *pterm.Logger) Option {
	return func(c *Catalog) { c.log = l }
}

// New creates a catalog backed by client and cache. A nil cache gets a private one.
func New(client Getter, cache *Cache, opts ...Option) *Catalog {
	if cache == nil {
		cache = NewCache()
	}
	c := &Catalog{
		client:        client,
		cache:         cache,
		discoveryPath: DefaultDiscoveryPath,
		log:           logging.Discard(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// List returns the resources, using the cache if available.
// If not cached, it runs discovery once (concurrent callers share the request)
// and caches the result. Failures are not cached.
//
// The shared discovery is detached from any single caller's context: a caller
// whose ctx is done stops waiting, while the others still get the result.
func (c *Catalog) List(ctx context.Context) ([]Descriptor, error) {
	if cached, ok := c.cache.Get(); ok {
		return cached, nil
	}

	ch := c.group.DoChan("discover", func() (any, error) {
		if cached, ok := c.cache.Get(); ok {
			return cached, nil
		}
		items, err := c.discover(context.WithoutCancel(ctx))
		if err != nil {
			return nil, err
		}
		return c.cache.Fill(items), nil
	})

	select {
	case <-ctx.Done():
		return nil, apperrors.Wrap(apperrors.Network, "resource discovery", ctx.Err())
	case res := <-ch:
		if res.Err != nil {
			c.log.Warn("resource discovery failed", c.log.Args("error", logging.Mask(res.Err.Error())))
			return nil, res.Err
		}
		if res.Shared {
			c.log.Trace("joined in-flight discovery")
		}
		return append([]Descriptor(nil), res.Val.([]Descriptor)...), nil
	}
}

// Lookup returns the descriptor named name.
func (c *Catalog) Lookup(ctx context.Context, name string) (Descriptor, error) {
	items, err := c.List(ctx)
	if err != nil {
		return Descriptor{}, err
	}
	for _, d := range items {
		if d.Name == name {
			return d, nil
		}
	}
	return Descriptor{}, apperrors.New(apperrors.UnknownResource, fmt.Sprintf("no resource named %q", name))
}

// Endpoint returns the absolute list URL of the named resource.
func (c *Catalog) Endpoint(ctx context.Context, name string) (string, error) {
	d, err := c.Lookup(ctx, name)
	if err != nil {
		return "", err
	}
	return c.client.Resolve(d.Endpoint), nil
}

func (c *Catalog) discover(ctx context.Context) ([]Descriptor, error) {
	url := c.client.Resolve(c.discoveryPath)
	body, err := c.client.GetJSON(ctx, url)
	if err != nil {
		return nil, err
	}
	items, err := parseDescriptors(body)
	if err != nil {
		return nil, err
	}
	c.log.Debug("discovered resources", c.log.Args("count", len(items), "url", url))
	return items, nil
}
