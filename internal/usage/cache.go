// Package usage caches usage summaries per source so switching between
// views does not refetch on every navigation.
package usage

import (
	"sync"
	"time"

	"retrace/internal/types"
)

// ttl is how long a cached summary stays fresh.
const ttl = 10 * time.Minute

type entry struct {
	summary types.UsageSummary
	at      time.Time
}

// SummaryCache holds one usage summary per source with a freshness
// window. Safe for concurrent use.
type SummaryCache struct {
	mu      sync.Mutex
	now     func() time.Time
	entries map[string]entry
}

// NewSummaryCache builds a cache; now may be nil to use wall time.
func NewSummaryCache(now func() time.Time) *SummaryCache {
	if now == nil {
		now = time.Now
	}
	return &SummaryCache{now: now, entries: map[string]entry{}}
}

// Get returns the cached summary for a source when it is still fresh.
func (c *SummaryCache) Get(source string) (types.UsageSummary, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[source]
	if !ok {
		return types.UsageSummary{}, false
	}
	if c.now().Sub(e.at) >= ttl {
		delete(c.entries, source)
		return types.UsageSummary{}, false
	}
	return e.summary, true
}

// Put stores a summary for a source, replacing any prior entry.
func (c *SummaryCache) Put(source string, summary types.UsageSummary) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[source] = entry{summary: summary, at: c.now()}
}

// Invalidate drops the entry for a source, forcing the next fetch.
func (c *SummaryCache) Invalidate(source string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, source)
}
