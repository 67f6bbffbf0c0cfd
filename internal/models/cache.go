package models

import (
	"sync"
)

// Cache keeps the deepest known analysis per position in memory.
type Cache struct {
	// data maps position keys to analyses
	data map[string]Analysis

	// dataMutex protects data
	dataMutex sync.Mutex
}

// NewCache creates a new cache.
func NewCache() *Cache {
	return &Cache{
		data: make(map[string]Analysis),
	}
}

// Upsert will add or update an entry in the cache if it adds more reliable information.
func (c *Cache) Upsert(analysis Analysis) {
	c.dataMutex.Lock()
	defer c.dataMutex.Unlock()

	c.upsertIfBetter(analysis)
}

// BulkUpsert works like Upsert, but for multiple analyses.
func (c *Cache) BulkUpsert(analyses []Analysis) {
	c.dataMutex.Lock()
	defer c.dataMutex.Unlock()

	for _, analysis := range analyses {
		c.upsertIfBetter(analysis)
	}
}

// upsertIfBetter does an actual upsert. It assumes dataMutex is locked.
func (c *Cache) upsertIfBetter(analysis Analysis) {
	if analysis.Column == -1 {
		return
	}

	found, ok := c.data[analysis.Position]

	if !ok || analysis.Depth > found.Depth {
		analysis.Cached = false
		c.data[analysis.Position] = analysis
	}
}

// Lookup looks up an analysis by position key.
func (c *Cache) Lookup(position string) (Analysis, bool) {
	c.dataMutex.Lock()
	defer c.dataMutex.Unlock()

	analysis, ok := c.data[position]
	return analysis, ok
}

// Len returns the number of items in the cache.
func (c *Cache) Len() int {
	c.dataMutex.Lock()
	defer c.dataMutex.Unlock()

	return len(c.data)
}
