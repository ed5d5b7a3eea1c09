package stormglass

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/crop-advisory-service/internal/domain"
	"github.com/couchcryptid/crop-advisory-service/internal/observability"
)

// --- mock for cache tests ---

type countingProvider struct {
	calls atomic.Int32
	err   error
	snap  domain.WeatherSnapshot
	gate  chan struct{} // when set, calls block until closed
}

func (m *countingProvider) CurrentWeather(ctx context.Context, lat, _ float64) (domain.WeatherSnapshot, error) {
	m.calls.Add(1)
	if m.gate != nil {
		<-m.gate
	}
	if err := ctx.Err(); err != nil {
		return domain.WeatherSnapshot{}, err
	}
	if m.err != nil {
		return domain.WeatherSnapshot{}, m.err
	}
	snap := m.snap
	snap.Temperature.Air = lat
	return snap, nil
}

func newTestCache(inner domain.WeatherProvider, size int) (*CachedProvider, *clockwork.FakeClock, *observability.Metrics) {
	clock := clockwork.NewFakeClockAt(testNow)
	metrics := observability.NewMetricsForTesting()
	return NewCachedProvider(inner, size, 30*time.Minute, clock, metrics), clock, metrics
}

// --- CachedProvider tests ---

func TestCachedProvider_Hit(t *testing.T) {
	inner := &countingProvider{}
	cached, _, metrics := newTestCache(inner, 10)

	s1, err := cached.CurrentWeather(context.Background(), 12.0022, 8.592)
	require.NoError(t, err)
	s2, err := cached.CurrentWeather(context.Background(), 12.0022, 8.592)
	require.NoError(t, err)

	assert.Equal(t, s1, s2)
	assert.Equal(t, int32(1), inner.calls.Load(), "should only call inner once")
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.WeatherCache.WithLabelValues("hit")))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.WeatherCache.WithLabelValues("miss")))
}

func TestCachedProvider_KeyPrecision(t *testing.T) {
	inner := &countingProvider{}
	cached, _, _ := newTestCache(inner, 10)

	_, _ = cached.CurrentWeather(context.Background(), 12.00221, 8.59201)
	_, _ = cached.CurrentWeather(context.Background(), 12.00219, 8.59199)
	assert.Equal(t, int32(1), inner.calls.Load(), "coordinates equal at 4 decimals share an entry")

	_, _ = cached.CurrentWeather(context.Background(), 12.0023, 8.592)
	assert.Equal(t, int32(2), inner.calls.Load())
}

func TestCachedProvider_TTLExpiry(t *testing.T) {
	inner := &countingProvider{}
	cached, clock, _ := newTestCache(inner, 10)

	_, _ = cached.CurrentWeather(context.Background(), 1, 2)
	clock.Advance(29 * time.Minute)
	_, _ = cached.CurrentWeather(context.Background(), 1, 2)
	assert.Equal(t, int32(1), inner.calls.Load())

	clock.Advance(time.Minute)
	_, _ = cached.CurrentWeather(context.Background(), 1, 2)
	assert.Equal(t, int32(2), inner.calls.Load(), "entry expires at exactly the TTL")
}

func TestCachedProvider_ErrorsNotCached(t *testing.T) {
	inner := &countingProvider{err: errors.New("boom")}
	cached, _, _ := newTestCache(inner, 10)

	_, err := cached.CurrentWeather(context.Background(), 1, 2)
	require.Error(t, err)
	_, err = cached.CurrentWeather(context.Background(), 1, 2)
	require.Error(t, err)

	assert.Equal(t, int32(2), inner.calls.Load())
	assert.Equal(t, 0, cached.cache.size())
}

func TestCachedProvider_CollapsesConcurrentMisses(t *testing.T) {
	inner := &countingProvider{gate: make(chan struct{})}
	cached, _, _ := newTestCache(inner, 10)

	var wg sync.WaitGroup
	for range 5 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := cached.CurrentWeather(context.Background(), 1, 2)
			assert.NoError(t, err)
		}()
	}

	require.Eventually(t, func() bool { return inner.calls.Load() == 1 }, time.Second, 5*time.Millisecond)
	time.Sleep(20 * time.Millisecond)
	close(inner.gate)
	wg.Wait()

	assert.Equal(t, int32(1), inner.calls.Load())
	assert.Equal(t, 1, cached.cache.size())
}

func TestCachedProvider_CanceledCallerDoesNotFailSharedFetch(t *testing.T) {
	inner := &countingProvider{gate: make(chan struct{})}
	cached, _, _ := newTestCache(inner, 10)

	ctx, cancel := context.WithCancel(context.Background())
	firstErr := make(chan error, 1)
	go func() {
		_, err := cached.CurrentWeather(ctx, 1, 2)
		firstErr <- err
	}()
	require.Eventually(t, func() bool { return inner.calls.Load() == 1 }, time.Second, 5*time.Millisecond)

	type result struct {
		snap domain.WeatherSnapshot
		err  error
	}
	second := make(chan result, 1)
	go func() {
		snap, err := cached.CurrentWeather(context.Background(), 1, 2)
		second <- result{snap, err}
	}()
	time.Sleep(20 * time.Millisecond)

	cancel()
	assert.ErrorIs(t, <-firstErr, context.Canceled, "the canceled caller returns without waiting")

	close(inner.gate)
	got := <-second
	require.NoError(t, got.err)
	assert.Equal(t, 1.0, got.snap.Temperature.Air)
	assert.Equal(t, int32(1), inner.calls.Load())
	assert.Equal(t, 1, cached.cache.size())
}

func TestCachedProvider_ReturnsIndependentCopies(t *testing.T) {
	moisture := 0.4
	inner := &countingProvider{snap: domain.WeatherSnapshot{SoilMoisture: &moisture}}
	cached, _, _ := newTestCache(inner, 10)

	first, err := cached.CurrentWeather(context.Background(), 1, 2)
	require.NoError(t, err)
	require.NotNil(t, first.SoilMoisture)
	*first.SoilMoisture = 0.9
	moisture = 0.1

	again, err := cached.CurrentWeather(context.Background(), 1, 2)
	require.NoError(t, err)
	assert.Equal(t, int32(1), inner.calls.Load())
	require.NotNil(t, again.SoilMoisture)
	assert.Equal(t, 0.4, *again.SoilMoisture)
}

// --- LRU cache unit tests ---

func TestLRUCache_BasicGetPut(t *testing.T) {
	c := newLRUCache(3)
	exp := testNow.Add(time.Hour)

	c.put("a", domain.WeatherSnapshot{Humidity: 1}, exp)
	c.put("b", domain.WeatherSnapshot{Humidity: 2}, exp)

	result, ok := c.get("a", testNow)
	assert.True(t, ok)
	assert.Equal(t, 1.0, result.Humidity)

	_, ok = c.get("missing", testNow)
	assert.False(t, ok)
}

func TestLRUCache_Eviction(t *testing.T) {
	c := newLRUCache(2)
	exp := testNow.Add(time.Hour)

	c.put("a", domain.WeatherSnapshot{Humidity: 1}, exp)
	c.put("b", domain.WeatherSnapshot{Humidity: 2}, exp)
	c.put("c", domain.WeatherSnapshot{Humidity: 3}, exp) // evicts "a"

	_, ok := c.get("a", testNow)
	assert.False(t, ok, "a should have been evicted")

	result, ok := c.get("c", testNow)
	assert.True(t, ok)
	assert.Equal(t, 3.0, result.Humidity)
}

func TestLRUCache_AccessPromotesEntry(t *testing.T) {
	c := newLRUCache(2)
	exp := testNow.Add(time.Hour)

	c.put("a", domain.WeatherSnapshot{}, exp)
	c.put("b", domain.WeatherSnapshot{}, exp)
	c.get("a", testNow)
	c.put("c", domain.WeatherSnapshot{}, exp)

	_, ok := c.get("a", testNow)
	assert.True(t, ok, "a was accessed recently, should not be evicted")
	_, ok = c.get("b", testNow)
	assert.False(t, ok, "b should have been evicted")
}

func TestLRUCache_ExpiredEntriesAreDropped(t *testing.T) {
	c := newLRUCache(2)
	c.put("a", domain.WeatherSnapshot{}, testNow.Add(time.Minute))

	_, ok := c.get("a", testNow.Add(time.Minute))
	assert.False(t, ok)
	assert.Equal(t, 0, c.size())
}

func TestLRUCache_GetDoesNotAliasEntry(t *testing.T) {
	c := newLRUCache(2)
	m := 0.3
	c.put("a", domain.WeatherSnapshot{SoilMoisture: &m}, testNow.Add(time.Hour))

	got, ok := c.get("a", testNow)
	require.True(t, ok)
	*got.SoilMoisture = 1

	got, ok = c.get("a", testNow)
	require.True(t, ok)
	assert.Equal(t, 0.3, *got.SoilMoisture)
}

func TestLRUCache_UpdateRefreshesExpiry(t *testing.T) {
	c := newLRUCache(2)
	c.put("a", domain.WeatherSnapshot{Humidity: 1}, testNow.Add(time.Minute))
	c.put("a", domain.WeatherSnapshot{Humidity: 2}, testNow.Add(time.Hour))

	result, ok := c.get("a", testNow.Add(30*time.Minute))
	assert.True(t, ok)
	assert.Equal(t, 2.0, result.Humidity)
}
