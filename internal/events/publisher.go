package events

import (
	"context"
	"encoding/json"
	"log/slog"
	"strconv"
	"sync"

	"github.com/segmentio/kafka-go"
)

// Publisher delivers lifecycle events. Publishing is best effort: a
// broker outage must never fail the request that produced the event.
type Publisher interface {
	Publish(topic string, key int64, env *Envelope)
	Close() error
}

// KafkaPublisher writes envelopes asynchronously through a buffered
// channel, keyed by entity id so per-entity ordering is preserved.
type KafkaPublisher struct {
	writer *kafka.Writer
	inbox  chan kafka.Message
	logger *slog.Logger

	once sync.Once
	done chan struct{}
}

// NewKafkaPublisher builds a publisher for the given brokers.
func NewKafkaPublisher(brokers []string, logger *slog.Logger) *KafkaPublisher {
	p := &KafkaPublisher{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Balancer:     &kafka.Hash{},
			RequiredAcks: kafka.RequireOne,
		},
		inbox:  make(chan kafka.Message, 256),
		logger: logger,
		done:   make(chan struct{}),
	}
	go p.loop()
	return p
}

func (p *KafkaPublisher) loop() {
	defer close(p.done)
	for msg := range p.inbox {
		if err := p.writer.WriteMessages(context.Background(), msg); err != nil {
			p.logger.Error("publish event failed",
				slog.String("topic", msg.Topic), slog.String("error", err.Error()))
		}
	}
}

// Publish enqueues the envelope; it drops the event when the buffer is
// full rather than blocking the request path.
func (p *KafkaPublisher) Publish(topic string, key int64, env *Envelope) {
	value, err := json.Marshal(env)
	if err != nil {
		p.logger.Error("marshal event failed", slog.String("error", err.Error()))
		return
	}
	msg := kafka.Message{
		Topic: topic,
		Key:   []byte(strconv.FormatInt(key, 10)),
		Value: value,
	}
	select {
	case p.inbox <- msg:
	default:
		p.logger.Warn("event buffer full, dropping event", slog.String("type", env.EventType))
	}
}

// Close flushes buffered events and releases the writer.
func (p *KafkaPublisher) Close() error {
	p.once.Do(func() {
		close(p.inbox)
	})
	<-p.done
	return p.writer.Close()
}

// NopPublisher is used when no brokers are configured.
type NopPublisher struct{}

func (NopPublisher) Publish(string, int64, *Envelope) {}
func (NopPublisher) Close() error                     { return nil }
