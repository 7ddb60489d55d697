package chat

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// RedisPublisher publishes lines on a pub/sub channel the bot subscribes to.
type RedisPublisher struct {
	rdb     *redis.Client
	channel string
}

// NewRedisPublisher wraps an existing client. topic is the pub/sub channel.
func NewRedisPublisher(rdb *redis.Client, topic string) *RedisPublisher {
	return &RedisPublisher{rdb: rdb, channel: topic}
}

// Send publishes the line. Zero receivers means no bot is listening.
func (p *RedisPublisher) Send(ctx context.Context, channel, text string) error {
	payload, err := json.Marshal(OutgoingMessage{Channel: channel, Text: text})
	if err != nil {
		return fmt.Errorf("failed to marshal message: %w", err)
	}

	receivers, err := p.rdb.Publish(ctx, p.channel, payload).Result()
	if err != nil {
		return fmt.Errorf("failed to publish to %s: %w", p.channel, err)
	}
	if receivers == 0 {
		return fmt.Errorf("%w: no subscriber on %s", ErrUnreachable, p.channel)
	}
	return nil
}

// Close closes the underlying client.
func (p *RedisPublisher) Close() error {
	return p.rdb.Close()
}
