package data

import (
	"sync"

	"github.com/hoangnd25/glidepath/pkg/types"
)

// MemoryCache implements SeriesCache using in-memory storage.
type MemoryCache struct {
	cache map[string]types.MarketSeries
	mutex sync.RWMutex
}

// NewMemoryCache creates a new in-memory cache.
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{
		cache: make(map[string]types.MarketSeries),
	}
}

// Get retrieves a series from cache if available.
func (c *MemoryCache) Get(key string) (types.MarketSeries, bool) {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	series, exists := c.cache[key]
	return series, exists
}

// Set stores a series in cache. The series is shared, not copied: it is
// immutable once loaded.
func (c *MemoryCache) Set(key string, series types.MarketSeries) {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.cache[key] = series
}

// Clear removes all cached series.
func (c *MemoryCache) Clear() {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.cache = make(map[string]types.MarketSeries)
}

// Size returns the number of cached entries.
func (c *MemoryCache) Size() int {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	return len(c.cache)
}

// CachedProvider wraps a SeriesProvider with a MemoryCache so repeated runs
// against the same file parse it once.
type CachedProvider struct {
	provider SeriesProvider
	cache    SeriesCache
}

// NewCachedProvider creates a caching wrapper around the given provider.
func NewCachedProvider(provider SeriesProvider) *CachedProvider {
	return &CachedProvider{
		provider: provider,
		cache:    NewMemoryCache(),
	}
}

// GetName returns the name of the underlying provider.
func (p *CachedProvider) GetName() string {
	return p.provider.GetName() + " (cached)"
}

// LoadSeries returns the cached series when available, loading it otherwise.
func (p *CachedProvider) LoadSeries(source string) (types.MarketSeries, error) {
	if series, ok := p.cache.Get(source); ok {
		return series, nil
	}
	series, err := p.provider.LoadSeries(source)
	if err != nil {
		return nil, err
	}
	p.cache.Set(source, series)
	return series, nil
}
