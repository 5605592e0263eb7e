// Package events ships state snapshots to external systems.
package events

import (
	"context"
	"time"

	"parkd/pkg/kafka"
	"parkd/pkg/logger"
	"parkd/pkg/model"
)

const (
	eventTypeStateChanged = "parking.state.changed"

	publishTimeout = 5 * time.Second
)

// KafkaPublisher is a broadcast subscriber that forwards every state
// snapshot to a Kafka topic. A failed publish surfaces as a delivery
// error, so the broadcaster drops the publisher instead of blocking
// allocations on a sick broker.
type KafkaPublisher struct {
	producer *kafka.Producer
	lotKey   string
	source   string
	log      *logger.Logger
}

func NewKafkaPublisher(producer *kafka.Producer, lotKey, source string, log *logger.Logger) *KafkaPublisher {
	return &KafkaPublisher{
		producer: producer,
		lotKey:   lotKey,
		source:   source,
		log:      log,
	}
}

func (p *KafkaPublisher) Deliver(view model.StateView) error {
	msg, err := kafka.NewMessage(p.lotKey, view, eventTypeStateChanged, p.source)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
	defer cancel()

	if err := p.producer.Publish(ctx, msg); err != nil {
		p.log.Error("Failed to publish state snapshot", "topic_key", p.lotKey, "error", err)
		return err
	}
	return nil
}

func (p *KafkaPublisher) Close() {
	if err := p.producer.Close(); err != nil {
		p.log.Warn("Failed to close Kafka producer", "error", err)
	}
}
