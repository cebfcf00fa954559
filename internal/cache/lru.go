// Package cache provides caching utilities for the MCP server.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/usestring/jsonclass/pkg/jsonclass"
)

// ResultCache provides thread-safe LRU caching of generation results keyed by
// the content that produced them.
type ResultCache struct {
	cache *lru.Cache[string, *jsonclass.Result]
}

// NewResultCache creates a new LRU cache with the specified maximum number of items.
func NewResultCache(maxItems int) (*ResultCache, error) {
	c, err := lru.New[string, *jsonclass.Result](maxItems)
	if err != nil {
		return nil, err
	}
	return &ResultCache{cache: c}, nil
}

// Key derives a deterministic cache key from the inputs of a generation call.
// Parts are NUL-separated so that ("ab", "c") and ("a", "bc") differ.
func Key(parts ...string) string {
	hash := sha256.Sum256([]byte(strings.Join(parts, "\x00")))
	return hex.EncodeToString(hash[:])
}

// Get retrieves a result from the cache by key.
// Returns the result and true if found, nil and false otherwise.
func (c *ResultCache) Get(key string) (*jsonclass.Result, bool) {
	return c.cache.Get(key)
}

// Put adds or updates a result in the cache.
func (c *ResultCache) Put(key string, res *jsonclass.Result) {
	c.cache.Add(key, res)
}

// Len returns the current number of items in the cache.
func (c *ResultCache) Len() int {
	return c.cache.Len()
}
