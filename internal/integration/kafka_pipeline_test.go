//go:build integration

package integration_test

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/crop-advisory-service/internal/adapter/kafka"
	"github.com/couchcryptid/crop-advisory-service/internal/advisory"
	"github.com/couchcryptid/crop-advisory-service/internal/config"
	"github.com/couchcryptid/crop-advisory-service/internal/domain"
	"github.com/couchcryptid/crop-advisory-service/internal/location"
	"github.com/couchcryptid/crop-advisory-service/internal/observability"
	"github.com/couchcryptid/crop-advisory-service/internal/pipeline"
)

const testAdvisoryTopic = "test-advisories"

var julyNoon = time.Date(2025, 7, 15, 12, 0, 0, 0, time.UTC)

type staticProvider struct{}

func (staticProvider) CurrentWeather(_ context.Context, _, _ float64) (domain.WeatherSnapshot, error) {
	m := 0.40
	return domain.WeatherSnapshot{
		Timestamp:    julyNoon,
		Temperature:  domain.Temperature{Air: 30, Soil: 27},
		Humidity:     80,
		Rainfall:     5,
		WindSpeed:    2,
		UVIndex:      4,
		SoilMoisture: &m,
	}, nil
}

// publishedAdvisory holds a deserialized message read from the advisory topic.
type publishedAdvisory struct {
	Advisory domain.Advisory
	Key      string
	Headers  map[string]string
}

func readAdvisory(ctx context.Context, t *testing.T, consumer *kafkago.Reader) publishedAdvisory {
	t.Helper()
	readCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	msg, err := consumer.ReadMessage(readCtx)
	require.NoError(t, err, "read from advisory topic")

	headers := make(map[string]string, len(msg.Headers))
	for _, h := range msg.Headers {
		headers[h.Key] = string(h.Value)
	}
	var adv domain.Advisory
	require.NoError(t, json.Unmarshal(msg.Value, &adv), "unmarshal advisory message")

	return publishedAdvisory{Advisory: adv, Key: string(msg.Key), Headers: headers}
}

// TestSweepPublishesAdvisories wires the sweep (advisory service → Kafka
// writer) against a real broker and reads every advisory back.
func TestSweepPublishesAdvisories(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	broker := startKafka(ctx, t)
	createTopic(t, broker, testAdvisoryTopic)

	cfg := &config.Config{
		KafkaBrokers:       []string{broker},
		KafkaAdvisoryTopic: testAdvisoryTopic,
	}

	clock := clockwork.NewFakeClockAt(julyNoon)
	metrics := observability.NewMetricsForTesting()
	svc := advisory.New(staticProvider{}, domain.DefaultCatalog(), clock, metrics, discardLogger(), advisory.WithConcurrency(4))

	places := location.New().All()
	writer := kafka.NewWriter(cfg, discardLogger())
	t.Cleanup(func() { _ = writer.Close() })

	p := pipeline.New(svc, writer, places, clock, time.Hour, discardLogger(), metrics)

	runCtx, stop := context.WithCancel(ctx)
	done := make(chan error, 1)
	go func() { done <- p.Run(runCtx) }()

	require.Eventually(t, p.Ready, 60*time.Second, 100*time.Millisecond, "sweep should publish")
	stop()
	require.NoError(t, <-done)

	consumer := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:     []string{broker},
		Topic:       testAdvisoryTopic,
		GroupID:     fmt.Sprintf("test-consumer-%d", time.Now().UnixNano()),
		StartOffset: kafkago.FirstOffset,
	})
	t.Cleanup(func() { _ = consumer.Close() })

	seen := make(map[string]bool, len(places))
	for range places {
		pa := readAdvisory(ctx, t, consumer)

		assert.Equal(t, pa.Advisory.Place.DisplayName(), pa.Key)
		assert.Equal(t, pa.Advisory.ID, pa.Headers[kafka.HeaderAdvisoryID])
		generated, err := time.Parse(time.RFC3339, pa.Headers[kafka.HeaderGeneratedAt])
		require.NoError(t, err, "generated_at should be valid RFC3339")
		assert.True(t, generated.Equal(julyNoon))

		require.NotEmpty(t, pa.Advisory.RecommendedCrops)
		assert.Equal(t, "Rice", pa.Advisory.RecommendedCrops[0].Crop)
		assert.Equal(t, []domain.Alert{domain.AlertNone}, pa.Advisory.Alerts)
		seen[pa.Key] = true
	}

	assert.Len(t, seen, len(places))
	assert.True(t, seen["Nigeria Kano"])
	assert.True(t, seen["Australia"])
}
