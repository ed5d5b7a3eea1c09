package stormglass

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"golang.org/x/sync/singleflight"

	"github.com/couchcryptid/crop-advisory-service/internal/domain"
	"github.com/couchcryptid/crop-advisory-service/internal/observability"
)

// CachedProvider wraps a WeatherProvider with an in-memory LRU cache whose
// entries expire after a fixed TTL. Concurrent misses for the same coordinate
// share one upstream call, which outlives any one caller's cancellation.
// Errors are never cached. Returned snapshots never alias cached ones.
type CachedProvider struct {
	inner   domain.WeatherProvider
	cache   *lruCache
	ttl     time.Duration
	clock   clockwork.Clock
	group   singleflight.Group
	metrics *observability.Metrics
}

// NewCachedProvider creates a cache decorator around a weather provider.
func NewCachedProvider(inner domain.WeatherProvider, maxEntries int, ttl time.Duration, clock clockwork.Clock, metrics *observability.Metrics) *CachedProvider {
	return &CachedProvider{
		inner:   inner,
		cache:   newLRUCache(maxEntries),
		ttl:     ttl,
		clock:   clock,
		metrics: metrics,
	}
}

func (c *CachedProvider) CurrentWeather(ctx context.Context, lat, lon float64) (domain.WeatherSnapshot, error) {
	key := cacheKey(lat, lon)
	if snap, ok := c.cache.get(key, c.clock.Now()); ok {
		c.metrics.WeatherCache.WithLabelValues("hit").Inc()
		return snap, nil
	}
	c.metrics.WeatherCache.WithLabelValues("miss").Inc()

	ch := c.group.DoChan(key, func() (any, error) {
		snap, err := c.inner.CurrentWeather(context.WithoutCancel(ctx), lat, lon)
		if err != nil {
			return domain.WeatherSnapshot{}, err
		}
		c.cache.put(key, snap, c.clock.Now().Add(c.ttl))
		return snap, nil
	})

	select {
	case <-ctx.Done():
		return domain.WeatherSnapshot{}, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return domain.WeatherSnapshot{}, res.Err
		}
		return res.Val.(domain.WeatherSnapshot).Clone(), nil
	}
}

func cacheKey(lat, lon float64) string {
	return fmt.Sprintf("%.4f,%.4f", lat, lon)
}

// lruCache is a thread-safe LRU cache of weather snapshots with per-entry expiry.
type lruCache struct {
	maxEntries int
	mu         sync.Mutex
	entries    map[string]*entry
	head       *entry // most recently used
	tail       *entry // least recently used
}

type entry struct {
	key       string
	value     domain.WeatherSnapshot
	expiresAt time.Time
	prev      *entry
	next      *entry
}

func newLRUCache(maxEntries int) *lruCache {
	return &lruCache{
		maxEntries: maxEntries,
		entries:    make(map[string]*entry),
	}
}

// get returns the entry if present and not yet expired at now. Expired
// entries are dropped.
func (c *lruCache) get(key string, now time.Time) (domain.WeatherSnapshot, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return domain.WeatherSnapshot{}, false
	}
	if !now.Before(e.expiresAt) {
		delete(c.entries, key)
		c.remove(e)
		return domain.WeatherSnapshot{}, false
	}
	c.moveToFront(e)
	return e.value.Clone(), true
}

func (c *lruCache) put(key string, value domain.WeatherSnapshot, expiresAt time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.entries[key]; ok {
		e.value = value.Clone()
		e.expiresAt = expiresAt
		c.moveToFront(e)
		return
	}

	e := &entry{key: key, value: value.Clone(), expiresAt: expiresAt}
	c.entries[key] = e
	c.addToFront(e)

	if len(c.entries) > c.maxEntries {
		c.evictTail()
	}
}

func (c *lruCache) size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

func (c *lruCache) moveToFront(e *entry) {
	if e == c.head {
		return
	}
	c.remove(e)
	c.addToFront(e)
}

func (c *lruCache) addToFront(e *entry) {
	e.next = c.head
	e.prev = nil
	if c.head != nil {
		c.head.prev = e
	}
	c.head = e
	if c.tail == nil {
		c.tail = e
	}
}

func (c *lruCache) remove(e *entry) {
	if e.prev != nil {
		e.prev.next = e.next
	} else {
		c.head = e.next
	}
	if e.next != nil {
		e.next.prev = e.prev
	} else {
		c.tail = e.prev
	}
}

func (c *lruCache) evictTail() {
	if c.tail == nil {
		return
	}
	delete(c.entries, c.tail.key)
	c.remove(c.tail)
}
