// Package kafka broadcasts danger-zone observations to subscribers. The zone
// topic is the push channel consumed by downstream notifiers and dashboards.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	kafkago "github.com/segmentio/kafka-go"

	"github.com/couchcryptid/wildfire-risk-service/internal/zones"
)

// Publisher produces danger-zone observations to a Kafka topic.
// It implements httpapi.Broadcaster.
type Publisher struct {
	writer *kafkago.Writer
	logger *slog.Logger
}

// NewPublisher creates a Kafka producer for the zone topic.
func NewPublisher(brokers []string, topic string, logger *slog.Logger) *Publisher {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafkago.LeastBytes{},
		RequiredAcks: kafkago.RequireAll,
	}
	return &Publisher{writer: w, logger: logger}
}

// Publish serializes one observation and writes it to the zone topic.
func (p *Publisher) Publish(ctx context.Context, obs zones.Observation) error {
	msg, err := serializeObservation(obs)
	if err != nil {
		return err
	}
	return p.writer.WriteMessages(ctx, msg)
}

func (p *Publisher) Close() error {
	return p.writer.Close()
}

// serializeObservation marshals an observation into a Kafka message keyed by
// rounded coordinates so observations for the same area land in one partition.
func serializeObservation(obs zones.Observation) (kafkago.Message, error) {
	data, err := json.Marshal(obs)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize observation: %w", err)
	}
	return kafkago.Message{
		Key:   []byte(fmt.Sprintf("%.4f,%.4f", obs.Location.Lat, obs.Location.Lng)),
		Value: data,
		Headers: []kafkago.Header{
			{Key: "risk_level", Value: []byte(obs.RiskLevel)},
			{Key: "observed_at", Value: []byte(obs.ObservedAt.Format(time.RFC3339))},
		},
	}, nil
}
