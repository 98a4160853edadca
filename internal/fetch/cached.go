package fetch

import (
	"context"
	"sync"
	"time"
)

// DefaultCacheTTL is how long a fetched page is served from memory.
const DefaultCacheTTL = 6 * time.Hour

// Loader fetches a page. URL and FetchRendered both fit once their options
// are bound.
type Loader func(ctx context.Context, url string) (*Result, error)

// CachedFetcher memoizes successful fetches for a fixed TTL. Failed fetches
// are never cached.
type CachedFetcher struct {
	load Loader
	ttl  time.Duration
	now  func() time.Time

	mu    sync.Mutex
	pages map[string]cachedPage
}

type cachedPage struct {
	result  *Result
	expires time.Time
}

// CachedResult extends Result with cache metadata.
type CachedResult struct {
	*Result
	FromCache bool
}

// NewCachedFetcher wraps load. A non-positive ttl uses DefaultCacheTTL.
func NewCachedFetcher(load Loader, ttl time.Duration) *CachedFetcher {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &CachedFetcher{
		load:  load,
		ttl:   ttl,
		now:   time.Now,
		pages: make(map[string]cachedPage),
	}
}

// Fetch returns the cached page for url when fresh, otherwise loads it.
func (f *CachedFetcher) Fetch(ctx context.Context, url string) (*CachedResult, error) {
	f.mu.Lock()
	page, ok := f.pages[url]
	f.mu.Unlock()
	if ok && f.now().Before(page.expires) {
		return &CachedResult{Result: page.result, FromCache: true}, nil
	}

	result, err := f.load(ctx, url)
	if err != nil {
		return nil, err
	}

	f.mu.Lock()
	f.pages[url] = cachedPage{result: result, expires: f.now().Add(f.ttl)}
	f.mu.Unlock()

	return &CachedResult{Result: result}, nil
}

// Invalidate drops url from the cache.
func (f *CachedFetcher) Invalidate(url string) {
	f.mu.Lock()
	delete(f.pages, url)
	f.mu.Unlock()
}

// Len returns the number of cached pages, fresh or not.
func (f *CachedFetcher) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.pages)
}
