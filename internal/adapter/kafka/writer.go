package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	kafkago "github.com/segmentio/kafka-go"

	"github.com/couchcryptid/solar-almanac-service/internal/config"
	"github.com/couchcryptid/solar-almanac-service/internal/domain"
)

// Writer produces almanac entries to a Kafka topic.
// It implements almanac.Sink.
type Writer struct {
	writer *kafkago.Writer
	logger *slog.Logger
}

// NewWriter creates a Kafka producer for the configured sink topic.
func NewWriter(cfg *config.Config, logger *slog.Logger) *Writer {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(cfg.KafkaBrokers...),
		Topic:        cfg.KafkaSinkTopic,
		Balancer:     &kafkago.LeastBytes{},
		RequiredAcks: kafkago.RequireAll,
	}
	return &Writer{writer: w, logger: logger}
}

// PublishBatch serializes and publishes multiple almanac entries to the sink
// Kafka topic in a single WriteMessages call for efficiency.
func (w *Writer) PublishBatch(ctx context.Context, entries []domain.AlmanacEntry) error {
	if len(entries) == 0 {
		return nil
	}
	msgs := make([]kafkago.Message, len(entries))
	for i := range entries {
		msg, err := serializeToMessage(entries[i])
		if err != nil {
			return err
		}
		msgs[i] = msg
	}
	return w.writer.WriteMessages(ctx, msgs...)
}

func (w *Writer) Close() error {
	return w.writer.Close()
}

// serializeToMessage marshals an AlmanacEntry into a Kafka message. The
// entry ID keys the message so one place+date always lands on one partition.
func serializeToMessage(entry domain.AlmanacEntry) (kafkago.Message, error) {
	data, err := json.Marshal(entry)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize almanac entry: %w", err)
	}
	return kafkago.Message{
		Key:   []byte(entry.ID),
		Value: data,
		Headers: []kafkago.Header{
			{Key: "date", Value: []byte(entry.Date)},
			{Key: "status", Value: []byte(entry.Status)},
			{Key: "computed_at", Value: []byte(entry.ComputedAt.Format(time.RFC3339))},
		},
	}, nil
}
