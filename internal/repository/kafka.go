package repository

import (
	"context"
	"fmt"

	"github.com/tj309c/FLWSTradingLiveUpdates/internal/domain/models"
	xkafka "github.com/tj309c/FLWSTradingLiveUpdates/pkg/kafka"
)

// KafkaNotifier publishes alert payloads to a topic, keyed by symbol so all
// alerts for one security land on the same partition in order.
type KafkaNotifier struct {
	producer *xkafka.Producer
	topic    string
	symbol   string
}

// NewKafkaNotifier creates a topic notifier on an existing producer.
func NewKafkaNotifier(producer *xkafka.Producer, topic, symbol string) *KafkaNotifier {
	return &KafkaNotifier{producer: producer, topic: topic, symbol: symbol}
}

func (n *KafkaNotifier) Name() string { return "kafka" }

func (n *KafkaNotifier) Deliver(ctx context.Context, p *models.AlertPayload) error {
	if err := n.producer.Publish(ctx, n.topic, []byte(n.symbol), p); err != nil {
		return fmt.Errorf("publish alert: %w", err)
	}
	return nil
}

// Close flushes and closes the underlying producer.
func (n *KafkaNotifier) Close() error { return n.producer.Close() }
