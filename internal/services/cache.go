package services

import (
	"fmt"
	"sync"

	"pawsuite_backend/internal/models"
)

// reportCache memoizes computed reports. Because every computation is a pure
// function of (dataset version, report id, resolved filters) and datasets are
// immutable, entries never go stale; a new dataset version simply produces
// new keys.
type reportCache struct {
	mu      sync.RWMutex
	entries map[string]*models.ReportData
}

func newReportCache() *reportCache {
	return &reportCache{entries: make(map[string]*models.ReportData)}
}

func cacheKey(version int64, reportID string, rf models.ResolvedFilters) string {
	return fmt.Sprintf("%d|%s|%s", version, reportID, rf.CacheKey())
}

func (c *reportCache) get(key string) (*models.ReportData, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	data, ok := c.entries[key]
	return data, ok
}

func (c *reportCache) put(key string, data *models.ReportData) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = data
}
