package crawl

import (
	"sync"

	"github.com/stayharvest/stayharvest/models"
)

// Collector accumulates search results across pages, deduplicating by
// listing id. First sighting wins; later pages re-listing the same id never
// overwrite it. Safe for concurrent use.
type Collector struct {
	mu      sync.Mutex
	seen    map[string]struct{}
	entries []models.ListingSummary
	limit   int
}

// NewCollector caps the collection at limit entries; limit <= 0 means
// unbounded.
func NewCollector(limit int) *Collector {
	return &Collector{seen: make(map[string]struct{}), limit: limit}
}

// Add records a summary unless its id was already seen or the cap is
// reached. Reports whether the entry was kept.
func (c *Collector) Add(s models.ListingSummary) bool {
	if s.ListingID == "" {
		return false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.limit > 0 && len(c.entries) >= c.limit {
		return false
	}
	if _, dup := c.seen[s.ListingID]; dup {
		return false
	}
	c.seen[s.ListingID] = struct{}{}
	c.entries = append(c.entries, s)
	return true
}

// Full reports whether the cap has been reached.
func (c *Collector) Full() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.limit > 0 && len(c.entries) >= c.limit
}

// Len is the current entry count.
func (c *Collector) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Listings returns a copy of the collected entries in insertion order.
func (c *Collector) Listings() []models.ListingSummary {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]models.ListingSummary, len(c.entries))
	copy(out, c.entries)
	return out
}
