// Package pipeline runs the periodic advisory sweep: advise every place,
// then publish the batch.
package pipeline

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/couchcryptid/crop-advisory-service/internal/advisory"
	"github.com/couchcryptid/crop-advisory-service/internal/domain"
	"github.com/couchcryptid/crop-advisory-service/internal/observability"
)

const (
	initialBackoff     = 200 * time.Millisecond
	maxBackoff         = 5 * time.Second
	maxPublishAttempts = 5
)

// Advisor computes advisories for many places, isolating failures per place.
type Advisor interface {
	AdviseAll(ctx context.Context, places []domain.Place) []advisory.PlaceAdvisory
}

// Publisher writes a batch of advisories to the destination.
type Publisher interface {
	Publish(ctx context.Context, advisories []domain.Advisory) error
}

// Pipeline orchestrates the advise-publish loop.
type Pipeline struct {
	advisor   Advisor
	publisher Publisher
	places    []domain.Place
	clock     clockwork.Clock
	interval  time.Duration
	logger    *slog.Logger
	metrics   *observability.Metrics
	ready     atomic.Bool
}

// New creates a Pipeline that sweeps places every interval.
func New(a Advisor, p Publisher, places []domain.Place, clock clockwork.Clock, interval time.Duration, logger *slog.Logger, metrics *observability.Metrics) *Pipeline {
	return &Pipeline{
		advisor:   a,
		publisher: p,
		places:    places,
		clock:     clock,
		interval:  interval,
		logger:    logger,
		metrics:   metrics,
	}
}

// CheckReadiness returns nil once a sweep has been published, or an error
// describing why the service is not yet ready.
func (p *Pipeline) CheckReadiness(_ context.Context) error {
	if !p.ready.Load() {
		return errors.New("no advisory sweep has been published yet")
	}
	return nil
}

// Ready reports whether a sweep has been published.
func (p *Pipeline) Ready() bool {
	return p.ready.Load()
}

// Run sweeps immediately and then on every tick until the context is
// cancelled.
func (p *Pipeline) Run(ctx context.Context) error {
	p.logger.Info("sweep started", "places", len(p.places), "interval", p.interval)
	p.metrics.SweepRunning.Set(1)
	defer p.metrics.SweepRunning.Set(0)

	ticker := p.clock.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		if !p.sweep(ctx) {
			p.logger.Info("sweep stopping", "reason", ctx.Err())
			return nil
		}

		select {
		case <-ctx.Done():
			p.logger.Info("sweep stopping", "reason", ctx.Err())
			return nil
		case <-ticker.Chan():
		}
	}
}

// sweep runs one advise-publish cycle. Returns false if the pipeline should
// stop.
func (p *Pipeline) sweep(ctx context.Context) bool {
	if ctx.Err() != nil {
		return false
	}
	start := p.clock.Now()

	batch := p.collect(p.advisor.AdviseAll(ctx, p.places))
	if ctx.Err() != nil {
		return false
	}
	if len(batch) == 0 {
		p.logger.Warn("sweep produced no advisories", "places", len(p.places))
		return true
	}

	published, ok := p.publish(ctx, batch)
	if !ok {
		return false
	}
	if published {
		p.metrics.AdvisoriesProduced.Add(float64(len(batch)))
		p.metrics.SweepDuration.Observe(p.clock.Since(start).Seconds())
		p.ready.Store(true)
		p.logger.Info("sweep published", "advisories", len(batch), "failed", len(p.places)-len(batch))
	}
	return true
}

// collect keeps the successful advisories and logs the failures.
func (p *Pipeline) collect(results []advisory.PlaceAdvisory) []domain.Advisory {
	batch := make([]domain.Advisory, 0, len(results))
	for _, r := range results {
		if r.Err != nil {
			p.logger.Warn("advise failed, skipping place", "place", r.Place.DisplayName(), "error", r.Err)
			p.metrics.SweepErrors.WithLabelValues("weather").Inc()
			continue
		}
		batch = append(batch, *r.Advisory)
	}
	return batch
}

// publish writes the batch, retrying with exponential backoff. The batch is
// dropped after maxPublishAttempts; the next sweep produces fresh advisories.
// Returns whether the batch was written and false as the second value if the
// pipeline should stop.
func (p *Pipeline) publish(ctx context.Context, batch []domain.Advisory) (bool, bool) {
	backoff := initialBackoff
	for attempt := 1; ; attempt++ {
		err := p.publisher.Publish(ctx, batch)
		if err == nil {
			return true, true
		}
		if ctx.Err() != nil {
			return false, false
		}
		p.metrics.SweepErrors.WithLabelValues("publish").Inc()
		p.logger.Error("publish failed", "error", err, "attempt", attempt, "batch_size", len(batch))

		if attempt == maxPublishAttempts {
			p.logger.Error("dropping advisory batch", "batch_size", len(batch))
			return false, true
		}
		if !sleepWithContext(ctx, p.clock, backoff) {
			return false, false
		}
		backoff = nextBackoff(backoff, maxBackoff)
	}
}

func nextBackoff(current, maxBackoff time.Duration) time.Duration {
	next := current * 2
	if next > maxBackoff {
		return maxBackoff
	}
	return next
}

// sleepWithContext waits d on clock and reports false if ctx ends first.
func sleepWithContext(ctx context.Context, clock clockwork.Clock, d time.Duration) bool {
	if d <= 0 {
		return true
	}

	timer := clock.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-timer.Chan():
		return true
	}
}
