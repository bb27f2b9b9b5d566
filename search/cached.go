package search

import (
	"context"
	"log/slog"
	"sync"

	"github.com/herdscout/herdscout/cache"
	"github.com/herdscout/herdscout/form"
)

// Cached wraps a Searcher with a schema cache for the long-running serve
// mode. Only the read-only schema lookups are cached; searches always drive
// the live form. Embedding keeps the search methods untouched.
type Cached struct {
	*Searcher
	schemas *cache.SchemaCache

	mu sync.Mutex
	// last fingerprint seen per kind, for drift detection across refreshes
	lastFP map[form.Kind]uint64
}

// NewCached wraps a searcher with schema caching.
func NewCached(s *Searcher, schemas *cache.SchemaCache) *Cached {
	return &Cached{
		Searcher: s,
		schemas:  schemas,
		lastFP:   make(map[form.Kind]uint64),
	}
}

// FormInfo serves the schema from cache when fresh, rediscovering otherwise.
// When a rediscovered schema's structure has drifted from the last one seen,
// that is worth knowing about operationally: the site changed under us.
func (c *Cached) FormInfo(ctx context.Context, kind form.Kind) (*form.Schema, error) {
	if schema, ok := c.schemas.Get(kind); ok {
		return schema, nil
	}

	schema, err := c.Searcher.FormInfo(ctx, kind)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	if prev, seen := c.lastFP[kind]; seen && form.Drifted(prev, schema.Fingerprint) {
		slog.Warn("form structure drifted since last discovery",
			"kind", kind,
			"distance", form.FingerprintDistance(prev, schema.Fingerprint))
		c.schemas.Invalidate(kind)
	}
	c.lastFP[kind] = schema.Fingerprint
	c.mu.Unlock()

	c.schemas.Set(kind, schema)
	return schema, nil
}

// Locations reads the location dropdown out of the (possibly cached) ranch
// schema.
func (c *Cached) Locations(ctx context.Context) ([]form.Option, error) {
	schema, err := c.FormInfo(ctx, form.KindRanch)
	if err != nil {
		return nil, err
	}
	return schema.Dropdown(form.RanchFieldLocation)
}
