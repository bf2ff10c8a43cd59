package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/sirupsen/logrus"
)

// KafkaPublisher writes events to a single topic keyed by order id, so all
// events of one order keep their order within a partition. Writes are
// async: Publish only enqueues, delivery failures are logged and Close
// flushes what is pending.
type KafkaPublisher struct {
	Writer *kafka.Writer
}

func NewKafkaPublisher(brokers []string, topic string) *KafkaPublisher {
	return &KafkaPublisher{
		Writer: &kafka.Writer{
			Addr:                   kafka.TCP(brokers...),
			Topic:                  topic,
			Balancer:               &kafka.Hash{},
			RequiredAcks:           kafka.RequireAll,
			AllowAutoTopicCreation: true,
			WriteTimeout:           5 * time.Second,
			BatchTimeout:           10 * time.Millisecond,
			Async:                  true,
			Completion:             logDelivery,
		},
	}
}

func logDelivery(messages []kafka.Message, err error) {
	if err == nil {
		return
	}
	for _, m := range messages {
		log.WithError(err).WithFields(logrus.Fields{
			"topic":    m.Topic,
			"order_id": string(m.Key),
		}).Error("Failed to deliver order event")
	}
}

func (p *KafkaPublisher) Publish(ctx context.Context, ev Envelope) error {
	value, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	return p.Writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(ev.CorrelationID),
		Value: value,
		Time:  ev.OccurredAt,
		Headers: []kafka.Header{
			{Key: "x-event-type", Value: []byte(ev.EventType)},
			{Key: "x-event-version", Value: []byte("1")},
		},
	})
}

func (p *KafkaPublisher) Close() error {
	return p.Writer.Close()
}
