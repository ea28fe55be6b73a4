package notification

import (
	"context"
	"errors"
)

var ErrPublishFailed = errors.New("notification publish failed")

// Channel is the asynchronous event channel contract: at-least-once
// delivery, ordering preserved only among messages sharing the same key.
type Channel interface {
	Publish(ctx context.Context, topic, key string, payload []byte) error
}
