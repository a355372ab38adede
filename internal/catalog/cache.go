// Copyright (c) 2025 The restadmin Authors
// Licensed under the MIT License. See LICENSE file in the project root for details.

package catalog

import (
	"slices"
	"sync"
)

// Cache holds the discovered descriptors in process memory. It is filled once;
// later fills are ignored so every reader sees the same sequence.
// The zero value is ready to use.
type Cache struct {
	mu     sync.RWMutex
	items  []Descriptor
	filled bool
}

// NewCache returns an empty cache. The composition root owns it and hands it to New.
func NewCache() *Cache { return &Cache{} }

// Get returns a copy of the cached descriptors and whether the cache is filled.
func (c *Cache) Get() ([]Descriptor, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if !c.filled {
		return nil, false
	}
	return slices.Clone(c.items), true
}

// Fill stores items unless the cache already holds a result, and returns what the cache holds.
func (c *Cache) Fill(items []Descriptor) []Descriptor {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.filled {
		c.items = slices.Clone(items)
		c.filled = true
	}
	return slices.Clone(c.items)
}
