package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	kafkago "github.com/segmentio/kafka-go"
)

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafkago.Message) error
	Close() error
}

type kafkaPublisher struct {
	w messageWriter
}

// NewKafka publishes events to topic on brokers, keyed by order reference.
func NewKafka(brokers []string, topic string) Publisher {
	return &kafkaPublisher{w: &kafkago.Writer{
		Addr:                   kafkago.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafkago.Hash{},
		RequiredAcks:           kafkago.RequireOne,
		AllowAutoTopicCreation: true,
		BatchTimeout:           10 * time.Millisecond,
		WriteTimeout:           5 * time.Second,
	}}
}

func (p *kafkaPublisher) OrderPlaced(ctx context.Context, evt OrderPlaced) error {
	value, err := json.Marshal(evt)
	if err != nil {
		return fmt.Errorf("marshal order placed: %w", err)
	}
	msg := kafkago.Message{
		Key:   []byte(evt.Reference),
		Value: value,
		Time:  evt.PlacedAt,
		Headers: []kafkago.Header{
			{Key: "event_type", Value: []byte("order.placed")},
		},
	}
	if err := p.w.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("write order placed %s: %w", evt.Reference, err)
	}
	return nil
}

func (p *kafkaPublisher) Close() error {
	return p.w.Close()
}
