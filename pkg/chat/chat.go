// Package chat hands rendered lines to the chat bot that owns the network
// connection.
package chat

import (
	"context"
	"errors"
)

// ErrUnreachable means the bot is not in the channel or is disconnected.
var ErrUnreachable = errors.New("chat channel unreachable")

// Sender sends one line to one channel.
type Sender interface {
	Send(ctx context.Context, channel, text string) error
}

// OutgoingMessage is the wire form shared by the HTTP and Redis transports.
type OutgoingMessage struct {
	Channel string `json:"channel"`
	Text    string `json:"text"`
}
