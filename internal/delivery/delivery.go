// Package delivery hands rendered lines to the chat transport.
package delivery

import (
	"context"
	"errors"
	"time"

	"repo-relay/internal/model"
	"repo-relay/pkg/chat"
	"repo-relay/pkg/log"
)

const defaultSendTimeout = 5 * time.Second

// Deliverer sends messages at most once each.
type Deliverer interface {
	Deliver(ctx context.Context, msg model.RenderedMessage) bool
	DeliverAll(ctx context.Context, msgs []model.RenderedMessage) int
}

// Sink delivers through a chat.Sender with a bounded wait per message.
// Failures are logged and dropped; nothing is retried.
type Sink struct {
	sender  chat.Sender
	timeout time.Duration
	l       log.Logger
}

var _ Deliverer = (*Sink)(nil)

func New(sender chat.Sender, timeout time.Duration, l log.Logger) *Sink {
	if timeout <= 0 {
		timeout = defaultSendTimeout
	}
	return &Sink{sender: sender, timeout: timeout, l: l}
}

// Deliver reports whether the transport accepted the message.
func (s *Sink) Deliver(ctx context.Context, msg model.RenderedMessage) bool {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	err := s.sender.Send(ctx, msg.Channel, msg.Text)
	switch {
	case err == nil:
		s.l.Infof(ctx, "delivery.Deliver: sent to %s", msg.Channel)
		return true
	case errors.Is(err, chat.ErrUnreachable):
		s.l.Warnf(ctx, "delivery.Deliver: %s unreachable, dropping message: %v", msg.Channel, err)
	case errors.Is(err, context.DeadlineExceeded):
		s.l.Warnf(ctx, "delivery.Deliver: send to %s timed out after %s", msg.Channel, s.timeout)
	default:
		s.l.Errorf(ctx, "delivery.Deliver: send to %s failed: %v", msg.Channel, err)
	}
	return false
}

// DeliverAll sends each message in order and returns how many succeeded.
func (s *Sink) DeliverAll(ctx context.Context, msgs []model.RenderedMessage) int {
	sent := 0
	for _, msg := range msgs {
		if s.Deliver(ctx, msg) {
			sent++
		}
	}
	return sent
}
