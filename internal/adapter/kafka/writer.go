package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	kafkago "github.com/segmentio/kafka-go"

	"github.com/jbacule/ph-earthquakes/internal/config"
	"github.com/jbacule/ph-earthquakes/internal/domain"
)

// Message header keys.
const (
	HeaderAlert     = "alert"
	HeaderFetchedAt = "fetched_at"
)

// alertNone is the alert header value for events without a PAGER level.
const alertNone = "none"

// Writer publishes fetched earthquakes to the feed topic.
// It implements dashboard.Publisher.
type Writer struct {
	writer *kafkago.Writer
	logger *slog.Logger
}

// NewWriter creates a Kafka producer for the configured feed topic.
func NewWriter(cfg *config.Config, logger *slog.Logger) *Writer {
	w := &kafkago.Writer{
		Addr:                   kafkago.TCP(cfg.KafkaBrokers...),
		Topic:                  cfg.KafkaTopic,
		Balancer:               &kafkago.Hash{},
		RequiredAcks:           kafkago.RequireAll,
		AllowAutoTopicCreation: true,
	}
	return &Writer{writer: w, logger: logger}
}

// Publish writes one message per feature in a single WriteMessages call.
// Keys are event ids, so updates to the same event land on one partition.
func (w *Writer) Publish(ctx context.Context, fetchedAt time.Time, features []domain.Feature) error {
	if len(features) == 0 {
		return nil
	}
	msgs := make([]kafkago.Message, len(features))
	for i := range features {
		msg, err := serializeToMessage(features[i], fetchedAt)
		if err != nil {
			return err
		}
		msgs[i] = msg
	}
	if err := w.writer.WriteMessages(ctx, msgs...); err != nil {
		return fmt.Errorf("write %d messages to %s: %w", len(msgs), w.writer.Topic, err)
	}
	w.logger.Debug("earthquakes published", "topic", w.writer.Topic, "count", len(msgs))
	return nil
}

func (w *Writer) Close() error {
	return w.writer.Close()
}

// serializeToMessage marshals a catalog feature into a Kafka message.
func serializeToMessage(f domain.Feature, fetchedAt time.Time) (kafkago.Message, error) {
	data, err := json.Marshal(f)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize earthquake %s: %w", f.ID, err)
	}
	alert := string(f.Properties.Alert)
	if f.Properties.Alert == domain.AlertNone {
		alert = alertNone
	}
	return kafkago.Message{
		Key:   []byte(f.ID),
		Value: data,
		Time:  time.UnixMilli(f.Properties.Time).UTC(),
		Headers: []kafkago.Header{
			{Key: HeaderAlert, Value: []byte(alert)},
			{Key: HeaderFetchedAt, Value: []byte(fetchedAt.UTC().Format(time.RFC3339))},
		},
	}, nil
}
