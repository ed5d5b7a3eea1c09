package advisory

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/crop-advisory-service/internal/domain"
	"github.com/couchcryptid/crop-advisory-service/internal/observability"
)

var julyNoon = time.Date(2025, 7, 15, 12, 0, 0, 0, time.UTC)

type fakeProvider struct {
	mu       sync.Mutex
	byLat    map[float64]domain.WeatherSnapshot
	failLat  map[float64]error
	inFlight atomic.Int32
	peak     atomic.Int32
	delay    time.Duration
}

func (f *fakeProvider) CurrentWeather(_ context.Context, lat, _ float64) (domain.WeatherSnapshot, error) {
	cur := f.inFlight.Add(1)
	defer f.inFlight.Add(-1)
	for {
		p := f.peak.Load()
		if cur <= p || f.peak.CompareAndSwap(p, cur) {
			break
		}
	}
	if f.delay > 0 {
		time.Sleep(f.delay)
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if err, ok := f.failLat[lat]; ok {
		return domain.WeatherSnapshot{}, err
	}
	if snap, ok := f.byLat[lat]; ok {
		return snap, nil
	}
	return riceWeather(), nil
}

func riceWeather() domain.WeatherSnapshot {
	m := 0.40
	return domain.WeatherSnapshot{
		Timestamp:    julyNoon,
		Temperature:  domain.Temperature{Air: 30, Soil: 27},
		Humidity:     80,
		Rainfall:     5,
		WindSpeed:    2,
		UVIndex:      4,
		SoilMoisture: &m,
	}
}

func newTestService(p domain.WeatherProvider, opts ...Option) (*Service, *observability.Metrics) {
	metrics := observability.NewMetricsForTesting()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return New(p, domain.DefaultCatalog(), clockwork.NewFakeClockAt(julyNoon), metrics, logger, opts...), metrics
}

func place(name string, lat float64) domain.Place {
	return domain.Place{Continent: "Africa", Name: name, Geo: domain.Geo{Lat: lat, Lon: 1}}
}

func TestService_Evaluate(t *testing.T) {
	svc, metrics := newTestService(&fakeProvider{})

	eval, err := svc.Evaluate(riceWeather(), time.July, 0)
	require.NoError(t, err)

	require.Len(t, eval.RecommendedCrops, defaultTopN)
	assert.Equal(t, "Rice", eval.RecommendedCrops[0].Crop)
	assert.Equal(t, 100.0, eval.RecommendedCrops[0].Score)
	for i := 1; i < len(eval.RecommendedCrops); i++ {
		assert.GreaterOrEqual(t, eval.RecommendedCrops[i-1].Score, eval.RecommendedCrops[i].Score)
	}
	assert.Equal(t, []domain.Alert{domain.AlertNone}, eval.Alerts)

	assert.Equal(t, 10.0, testutil.ToFloat64(metrics.CropsScored))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.AlertsRaised.WithLabelValues(string(domain.AlertNone))))
}

func TestService_Evaluate_TopN(t *testing.T) {
	svc, _ := newTestService(&fakeProvider{}, WithTopN(3))

	eval, err := svc.Evaluate(riceWeather(), time.July, 0)
	require.NoError(t, err)
	assert.Len(t, eval.RecommendedCrops, 3)

	eval, err = svc.Evaluate(riceWeather(), time.July, 20)
	require.NoError(t, err)
	assert.Len(t, eval.RecommendedCrops, 10)
}

func TestService_Evaluate_InvalidSnapshot(t *testing.T) {
	svc, _ := newTestService(&fakeProvider{})
	snap := riceWeather()
	snap.UVIndex = -1

	_, err := svc.Evaluate(snap, time.July, 0)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestService_Advise(t *testing.T) {
	svc, _ := newTestService(&fakeProvider{})
	p := place("Nigeria - Kano", 12)

	adv, err := svc.Advise(context.Background(), p)
	require.NoError(t, err)

	_, err = uuid.Parse(adv.ID)
	assert.NoError(t, err)
	assert.Equal(t, p, adv.Place)
	assert.Equal(t, julyNoon, adv.GeneratedAt)
	assert.Equal(t, riceWeather().Temperature, adv.Weather.Temperature)
	require.NotEmpty(t, adv.RecommendedCrops)
	assert.Equal(t, "Rice", adv.RecommendedCrops[0].Crop, "July is in rice season")
	assert.NotEmpty(t, adv.Alerts)
}

func TestService_Advise_UsesClockMonth(t *testing.T) {
	metrics := observability.NewMetricsForTesting()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	january := time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)
	svc := New(&fakeProvider{}, domain.DefaultCatalog(), clockwork.NewFakeClockAt(january), metrics, logger, WithTopN(10))

	adv, err := svc.Advise(context.Background(), place("x", 1))
	require.NoError(t, err)

	for _, r := range adv.RecommendedCrops {
		if r.Crop == "Rice" {
			assert.Equal(t, 60.0, r.Score)
			assert.Equal(t, []string{domain.ReasonWrongSeason}, r.Reasons)
		}
	}
}

func TestService_Advise_UpstreamError(t *testing.T) {
	upstream := fmt.Errorf("%w: boom", domain.ErrUpstream)
	svc, _ := newTestService(&fakeProvider{failLat: map[float64]error{7: upstream}})

	_, err := svc.Advise(context.Background(), place("Nigeria - Lagos", 7))
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrUpstream)
	assert.Contains(t, err.Error(), "Nigeria Lagos")
}

func TestService_ScoreCrop(t *testing.T) {
	svc, metrics := newTestService(&fakeProvider{})

	r, err := svc.ScoreCrop("Wheat", riceWeather(), time.July)
	require.NoError(t, err)
	assert.Equal(t, "Wheat", r.Crop)
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.CropsScored))

	_, err = svc.ScoreCrop("Quinoa", riceWeather(), time.July)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestService_Alerts(t *testing.T) {
	svc, metrics := newTestService(&fakeProvider{})

	frost := riceWeather()
	frost.Temperature.Air = 2
	alerts, err := svc.Alerts(frost)
	require.NoError(t, err)
	assert.Equal(t, []domain.Alert{domain.AlertFrost}, alerts)
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.AlertsRaised.WithLabelValues(string(domain.AlertFrost))))

	bad := riceWeather()
	bad.Rainfall = -1
	_, err = svc.Alerts(bad)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestService_AllWeather_IsolatesFailures(t *testing.T) {
	fp := &fakeProvider{failLat: map[float64]error{2: errors.New("upstream down")}}
	svc, _ := newTestService(fp)
	places := []domain.Place{place("a", 1), place("b", 2), place("c", 3)}

	got := svc.AllWeather(context.Background(), places)
	require.Len(t, got, 3)

	for i, r := range got {
		assert.Equal(t, places[i], r.Place)
	}
	assert.NotNil(t, got[0].Weather)
	assert.NoError(t, got[0].Err)
	assert.Nil(t, got[1].Weather)
	assert.ErrorContains(t, got[1].Err, "upstream down")
	assert.NotNil(t, got[2].Weather)
}

func TestService_AdviseAll_BoundedConcurrency(t *testing.T) {
	fp := &fakeProvider{delay: 10 * time.Millisecond}
	svc, _ := newTestService(fp, WithConcurrency(2))

	places := make([]domain.Place, 8)
	for i := range places {
		places[i] = place(fmt.Sprintf("p%d", i), float64(i))
	}

	got := svc.AdviseAll(context.Background(), places)
	require.Len(t, got, 8)
	for _, r := range got {
		require.NoError(t, r.Err)
		require.NotNil(t, r.Advisory)
	}
	assert.LessOrEqual(t, fp.peak.Load(), int32(2))
}
