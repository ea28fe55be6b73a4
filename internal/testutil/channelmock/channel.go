package channelmock

import (
	"context"
	"sync"
)

// Published captures one Publish call.
type Published struct {
	Topic   string
	Key     string
	Payload []byte
}

// Channel is a function-backed mock satisfying notification.Channel. Every
// accepted publish is recorded for assertions.
type Channel struct {
	PublishFn func(ctx context.Context, topic, key string, payload []byte) error

	mu   sync.Mutex
	sent []Published
}

func (m *Channel) Publish(ctx context.Context, topic, key string, payload []byte) error {
	if m.PublishFn != nil {
		if err := m.PublishFn(ctx, topic, key, payload); err != nil {
			return err
		}
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, Published{Topic: topic, Key: key, Payload: payload})
	return nil
}

func (m *Channel) Sent() []Published {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Published, len(m.sent))
	copy(out, m.sent)
	return out
}
