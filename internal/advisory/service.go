// Package advisory combines the weather provider with the crop engine to
// produce recommendations for places.
package advisory

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"golang.org/x/sync/errgroup"

	"github.com/couchcryptid/crop-advisory-service/internal/domain"
	"github.com/couchcryptid/crop-advisory-service/internal/observability"
)

const (
	defaultTopN        = 5
	defaultConcurrency = 4
)

// Evaluation is the ranked recommendation and hazard list for one snapshot.
type Evaluation struct {
	RecommendedCrops []domain.ScoreResult `json:"recommended_crops"`
	Alerts           []domain.Alert       `json:"alerts"`
}

// PlaceWeather is the outcome of fetching weather for one place. Exactly one
// of Weather and Err is set.
type PlaceWeather struct {
	Place   domain.Place
	Weather *domain.WeatherSnapshot
	Err     error
}

// PlaceAdvisory is the outcome of advising one place. Exactly one of
// Advisory and Err is set.
type PlaceAdvisory struct {
	Place    domain.Place
	Advisory *domain.Advisory
	Err      error
}

// Option configures a Service.
type Option func(*Service)

// WithTopN sets how many crops a recommendation keeps.
func WithTopN(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.topN = n
		}
	}
}

// WithConcurrency bounds the number of places fetched at once.
func WithConcurrency(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.concurrency = n
		}
	}
}

// Service evaluates weather against the crop catalog. The planting month is
// taken from the injected clock in UTC.
type Service struct {
	provider    domain.WeatherProvider
	catalog     *domain.Catalog
	clock       clockwork.Clock
	metrics     *observability.Metrics
	logger      *slog.Logger
	topN        int
	concurrency int
}

// New creates an advisory service.
func New(provider domain.WeatherProvider, catalog *domain.Catalog, clock clockwork.Clock, metrics *observability.Metrics, logger *slog.Logger, opts ...Option) *Service {
	s := &Service{
		provider:    provider,
		catalog:     catalog,
		clock:       clock,
		metrics:     metrics,
		logger:      logger,
		topN:        defaultTopN,
		concurrency: defaultConcurrency,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Now returns the service clock's current time in UTC.
func (s *Service) Now() time.Time {
	return s.clock.Now().UTC()
}

// Month returns the current planting month.
func (s *Service) Month() time.Month {
	return s.Now().Month()
}

// Catalog returns the crop catalog the service scores against.
func (s *Service) Catalog() *domain.Catalog {
	return s.catalog
}

// Weather fetches the current weather for place.
func (s *Service) Weather(ctx context.Context, place domain.Place) (domain.WeatherSnapshot, error) {
	snap, err := s.provider.CurrentWeather(ctx, place.Geo.Lat, place.Geo.Lon)
	if err != nil {
		return domain.WeatherSnapshot{}, fmt.Errorf("weather for %s: %w", place.DisplayName(), err)
	}
	return snap, nil
}

// Advise fetches weather for place and evaluates it for the current month.
func (s *Service) Advise(ctx context.Context, place domain.Place) (domain.Advisory, error) {
	snap, err := s.Weather(ctx, place)
	if err != nil {
		return domain.Advisory{}, err
	}

	now := s.Now()
	eval, err := s.Evaluate(snap, now.Month(), 0)
	if err != nil {
		return domain.Advisory{}, fmt.Errorf("evaluate %s: %w", place.DisplayName(), err)
	}

	return domain.Advisory{
		ID:               uuid.NewString(),
		Place:            place,
		Weather:          snap,
		RecommendedCrops: eval.RecommendedCrops,
		Alerts:           eval.Alerts,
		GeneratedAt:      now,
	}, nil
}

// Evaluate ranks every crop for snap in month and derives alerts. top <= 0
// uses the service default. Crops that fail to score are logged and left out.
func (s *Service) Evaluate(snap domain.WeatherSnapshot, month time.Month, top int) (Evaluation, error) {
	results, err := domain.ScoreAllCrops(s.catalog, snap, month)
	if results == nil && err != nil {
		return Evaluation{}, err
	}
	if err != nil {
		s.logger.Warn("some crops could not be scored", "error", err)
	}
	s.metrics.CropsScored.Add(float64(len(results)))

	if top <= 0 {
		top = s.topN
	}
	alerts := domain.GenerateAlerts(snap)
	for _, a := range alerts {
		s.metrics.AlertsRaised.WithLabelValues(string(a)).Inc()
	}

	return Evaluation{
		RecommendedCrops: domain.RankScores(results, top),
		Alerts:           alerts,
	}, nil
}

// ScoreCrop scores a single named crop.
func (s *Service) ScoreCrop(name string, snap domain.WeatherSnapshot, month time.Month) (domain.ScoreResult, error) {
	result, err := domain.ScoreCropByName(s.catalog, name, snap, month)
	if err != nil {
		return domain.ScoreResult{}, err
	}
	s.metrics.CropsScored.Inc()
	return result, nil
}

// Alerts validates snap and returns its hazard alerts.
func (s *Service) Alerts(snap domain.WeatherSnapshot) ([]domain.Alert, error) {
	if err := snap.Validate(); err != nil {
		return nil, err
	}
	alerts := domain.GenerateAlerts(snap)
	for _, a := range alerts {
		s.metrics.AlertsRaised.WithLabelValues(string(a)).Inc()
	}
	return alerts, nil
}

// AllWeather fetches weather for every place concurrently. Failures are
// reported per place and never stop the others. Results keep input order.
func (s *Service) AllWeather(ctx context.Context, places []domain.Place) []PlaceWeather {
	out := make([]PlaceWeather, len(places))
	s.fanOut(ctx, len(places), func(ctx context.Context, i int) {
		out[i].Place = places[i]
		snap, err := s.Weather(ctx, places[i])
		if err != nil {
			out[i].Err = err
			return
		}
		out[i].Weather = &snap
	})
	return out
}

// AdviseAll computes advisories for every place concurrently with the same
// isolation as AllWeather.
func (s *Service) AdviseAll(ctx context.Context, places []domain.Place) []PlaceAdvisory {
	out := make([]PlaceAdvisory, len(places))
	s.fanOut(ctx, len(places), func(ctx context.Context, i int) {
		out[i].Place = places[i]
		adv, err := s.Advise(ctx, places[i])
		if err != nil {
			out[i].Err = err
			return
		}
		out[i].Advisory = &adv
	})
	return out
}

// fanOut runs fn for indexes [0, n) with at most s.concurrency in flight.
// fn records its own failures, so the group never short-circuits.
func (s *Service) fanOut(ctx context.Context, n int, fn func(ctx context.Context, i int)) {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)
	for i := range n {
		g.Go(func() error {
			fn(ctx, i)
			return nil
		})
	}
	_ = g.Wait()
}
