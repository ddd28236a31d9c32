package broker

import (
	"context"
	"time"

	"kilo-share/internal/pkg/config"
	"kilo-share/internal/pkg/errs"

	"github.com/segmentio/kafka-go"
)

type writer interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
}

// Producer publishes outbox events. Topics are prefixed with the configured
// namespace, so "reservation.created" goes to "<prefix>reservation.created".
type Producer struct {
	w      writer
	prefix string
}

func NewProducer(cfg config.KafkaConfig) *Producer {
	return newProducerWithWriter(&kafka.Writer{
		Addr:                   kafka.TCP(cfg.Brokers...),
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireAll,
		AllowAutoTopicCreation: true,
		BatchTimeout:           50 * time.Millisecond,
		Transport:              &kafka.Transport{ClientID: cfg.ClientID},
	}, cfg.TopicPrefix)
}

func newProducerWithWriter(w writer, prefix string) *Producer {
	return &Producer{w: w, prefix: prefix}
}

// Publish keys the message so events of one aggregate stay ordered within a partition.
func (p *Producer) Publish(ctx context.Context, topic string, key, value []byte) error {
	if err := p.w.WriteMessages(ctx, kafka.Message{
		Topic: p.prefix + topic,
		Key:   key,
		Value: value,
	}); err != nil {
		return errs.Wrap(err, "kafka publish")
	}
	return nil
}

func (p *Producer) Close() error {
	if c, ok := p.w.(interface{ Close() error }); ok {
		return c.Close()
	}
	return nil
}
