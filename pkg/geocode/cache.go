package geocode

import (
	"crypto/sha256"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"
)

// cacheKey returns SHA-256 hex of the normalized address for cache lookup.
func cacheKey(oneLine string) string {
	h := sha256.Sum256([]byte(strings.ToLower(oneLine)))
	return fmt.Sprintf("%x", h)
}

// memoryCache holds geocode results, including non-matches, keyed by address hash.
type memoryCache struct {
	mu      sync.RWMutex
	entries map[string]Result
}

func newMemoryCache() *memoryCache {
	return &memoryCache{entries: make(map[string]Result)}
}

func (c *memoryCache) get(key string) (*Result, bool) {
	c.mu.RLock()
	r, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok {
		return nil, false
	}
	zap.L().Debug("geocode cache hit", zap.String("key", key[:12]), zap.Bool("matched", r.Matched))
	return &r, true
}

func (c *memoryCache) put(key string, r *Result) {
	c.mu.Lock()
	c.entries[key] = *r
	c.mu.Unlock()
}
