package cache

import (
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// Lists memoizes read-mostly list responses for a short window. There is no
// write-through: every code path that mutates an owner's data must call
// Invalidate for that owner's keys, or readers will see the stale entry
// until the TTL runs out.
type Lists struct {
	lru *expirable.LRU[string, interface{}]
}

// NewLists creates a list cache whose entries expire after ttl.
func NewLists(ttl time.Duration) *Lists {
	return &Lists{lru: expirable.NewLRU[string, interface{}](128, nil, ttl)}
}

// Get returns the cached value for key, if present and unexpired.
func (c *Lists) Get(key string) (interface{}, bool) {
	return c.lru.Get(key)
}

// Set stores a value under key.
func (c *Lists) Set(key string, value interface{}) {
	c.lru.Add(key, value)
}

// Invalidate drops the given keys.
func (c *Lists) Invalidate(keys ...string) {
	for _, key := range keys {
		c.lru.Remove(key)
	}
}
