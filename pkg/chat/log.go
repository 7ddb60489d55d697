package chat

import (
	"context"

	"repo-relay/pkg/ircfmt"
	"repo-relay/pkg/log"
)

// LogSender writes lines to the service log instead of a chat network.
type LogSender struct {
	l log.Logger
}

func NewLogSender(l log.Logger) *LogSender {
	return &LogSender{l: l}
}

func (s *LogSender) Send(ctx context.Context, channel, text string) error {
	s.l.Infof(ctx, "chat.LogSender: %s: %s", channel, ircfmt.Strip(text))
	return nil
}
