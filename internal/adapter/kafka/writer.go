package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	kafkago "github.com/segmentio/kafka-go"

	"github.com/couchcryptid/crop-advisory-service/internal/config"
	"github.com/couchcryptid/crop-advisory-service/internal/domain"
)

// Header keys set on every advisory message.
const (
	HeaderAdvisoryID  = "advisory_id"
	HeaderGeneratedAt = "generated_at"
)

// Writer produces advisory messages to a Kafka topic.
// It implements pipeline.Publisher.
type Writer struct {
	writer *kafkago.Writer
	logger *slog.Logger
}

// NewWriter creates a Kafka producer for the configured advisory topic.
func NewWriter(cfg *config.Config, logger *slog.Logger) *Writer {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(cfg.KafkaBrokers...),
		Topic:        cfg.KafkaAdvisoryTopic,
		Balancer:     &kafkago.Hash{},
		RequiredAcks: kafkago.RequireAll,
	}
	return &Writer{writer: w, logger: logger}
}

// Publish serializes and writes a batch of advisories in a single
// WriteMessages call. Messages are keyed by place so updates for one place
// stay on one partition.
func (w *Writer) Publish(ctx context.Context, advisories []domain.Advisory) error {
	if len(advisories) == 0 {
		return nil
	}
	msgs := make([]kafkago.Message, len(advisories))
	for i := range advisories {
		msg, err := serializeToMessage(advisories[i])
		if err != nil {
			return err
		}
		msgs[i] = msg
	}
	if err := w.writer.WriteMessages(ctx, msgs...); err != nil {
		return fmt.Errorf("write %d advisories: %w", len(msgs), err)
	}
	w.logger.Debug("advisories published", "count", len(msgs), "topic", w.writer.Topic)
	return nil
}

func (w *Writer) Close() error {
	return w.writer.Close()
}

// serializeToMessage marshals an Advisory into a Kafka message.
func serializeToMessage(adv domain.Advisory) (kafkago.Message, error) {
	data, err := json.Marshal(adv)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize advisory %s: %w", adv.ID, err)
	}
	return kafkago.Message{
		Key:   []byte(adv.Place.DisplayName()),
		Value: data,
		Headers: []kafkago.Header{
			{Key: HeaderAdvisoryID, Value: []byte(adv.ID)},
			{Key: HeaderGeneratedAt, Value: []byte(adv.GeneratedAt.UTC().Format(time.RFC3339))},
		},
	}, nil
}
