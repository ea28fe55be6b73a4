package kafka

import (
	"context"
	"fmt"

	"github.com/confluentinc/confluent-kafka-go/v2/kafka"
)

// Config carries the producer settings passed through to librdkafka.
// SASL fields are optional; empty values leave the cluster default
// (plaintext) in place.
type Config struct {
	BootstrapServers string
	ClientID         string
	SecurityProtocol string
	SASLMechanism    string
	SASLUsername     string
	SASLPassword     string
}

// Producer publishes loan notifications and waits for broker acknowledgement
// per message, so a publish error is visible to the caller.
type Producer struct {
	p *kafka.Producer
}

func NewProducer(cfg Config) (*Producer, error) {
	cm := &kafka.ConfigMap{
		"bootstrap.servers": cfg.BootstrapServers,
		"client.id":         cfg.ClientID,
		"acks":              "all",
	}
	if cfg.SecurityProtocol != "" {
		_ = cm.SetKey("security.protocol", cfg.SecurityProtocol)
		_ = cm.SetKey("sasl.mechanisms", cfg.SASLMechanism)
		_ = cm.SetKey("sasl.username", cfg.SASLUsername)
		_ = cm.SetKey("sasl.password", cfg.SASLPassword)
	}

	p, err := kafka.NewProducer(cm)
	if err != nil {
		return nil, fmt.Errorf("create kafka producer: %w", err)
	}
	return &Producer{p: p}, nil
}

func (pr *Producer) Publish(ctx context.Context, topic, key string, payload []byte) error {
	delivery := make(chan kafka.Event, 1)
	msg := &kafka.Message{
		TopicPartition: kafka.TopicPartition{Topic: &topic, Partition: kafka.PartitionAny},
		Key:            []byte(key),
		Value:          payload,
	}
	if err := pr.p.Produce(msg, delivery); err != nil {
		return fmt.Errorf("produce to %s: %w", topic, err)
	}

	select {
	case ev := <-delivery:
		m, ok := ev.(*kafka.Message)
		if !ok {
			return fmt.Errorf("produce to %s: unexpected event %T", topic, ev)
		}
		if m.TopicPartition.Error != nil {
			return fmt.Errorf("deliver to %s: %w", topic, m.TopicPartition.Error)
		}
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close flushes outstanding messages before releasing the producer.
func (pr *Producer) Close() {
	pr.p.Flush(5000)
	pr.p.Close()
}
