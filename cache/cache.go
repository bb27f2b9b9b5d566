// Package cache holds discovered form schemas for the serve mode. CLI runs
// never cache: a one-shot invocation rediscovers the form every time, which
// is the whole point of dynamic discovery.
package cache

import (
	"sync"
	"time"

	"github.com/herdscout/herdscout/form"
)

// entry holds a cached schema with its creation timestamp.
type entry struct {
	schema    *form.Schema
	createdAt time.Time
}

// SchemaCache is a TTL cache keyed by form kind. Safe for concurrent use.
type SchemaCache struct {
	mu    sync.RWMutex
	store map[form.Kind]*entry
	ttl   time.Duration
}

// New creates a schema cache. A non-positive ttl disables caching entirely.
func New(ttl time.Duration) *SchemaCache {
	return &SchemaCache{
		store: make(map[form.Kind]*entry),
		ttl:   ttl,
	}
}

// Get returns the cached schema for the kind if it is still fresh.
func (c *SchemaCache) Get(kind form.Kind) (*form.Schema, bool) {
	if c.ttl <= 0 {
		return nil, false
	}

	c.mu.RLock()
	e, ok := c.store[kind]
	c.mu.RUnlock()

	if !ok || time.Since(e.createdAt) > c.ttl {
		return nil, false
	}
	return e.schema, true
}

// Set stores a freshly discovered schema.
func (c *SchemaCache) Set(kind form.Kind, schema *form.Schema) {
	if c.ttl <= 0 {
		return
	}

	c.mu.Lock()
	c.store[kind] = &entry{schema: schema, createdAt: time.Now()}
	c.mu.Unlock()
}

// Invalidate drops the cached schema for one kind, used when a fingerprint
// drift check says the live form no longer matches what was cached.
func (c *SchemaCache) Invalidate(kind form.Kind) {
	c.mu.Lock()
	delete(c.store, kind)
	c.mu.Unlock()
}
