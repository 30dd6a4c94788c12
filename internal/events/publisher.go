package events

import (
	"context"
	"fmt"

	"foodmarket-be/internal/config"
)

// Publisher ships order events to a broker. key routes related events
// to the same partition or consumer.
type Publisher interface {
	Publish(ctx context.Context, key string, env Envelope) error
	Close() error
}

type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, string, Envelope) error { return nil }
func (NopPublisher) Close() error                                    { return nil }

// NewPublisher picks the broker from EVENTS_DRIVER.
func NewPublisher(cfg *config.Config) (Publisher, error) {
	switch cfg.EventsDriver {
	case "", "none":
		return NopPublisher{}, nil
	case "kafka":
		return NewKafkaPublisher(cfg.KafkaBrokers, cfg.KafkaTopic), nil
	case "amqp":
		return NewAMQPPublisher(cfg.AMQPURL, cfg.AMQPQueue)
	default:
		return nil, fmt.Errorf("unknown events driver %q", cfg.EventsDriver)
	}
}
