package main

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"repo-relay/config"
	"repo-relay/pkg/chat"
	"repo-relay/pkg/log"
)

// newSender builds the configured chat transport. The returned close func is
// always safe to call.
func newSender(ctx context.Context, cfg config.DeliveryConfig, l log.Logger) (chat.Sender, func(), error) {
	switch cfg.Transport {
	case "http":
		return chat.NewRelay(cfg.HTTP.URL, cfg.HTTP.Token), func() {}, nil
	case "redis":
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := rdb.Ping(ctx).Err(); err != nil {
			// Publishing retries the connection, so an unreachable server is not fatal.
			l.Warnf(ctx, "redis %s not reachable yet: %v", cfg.Redis.Addr, err)
		}
		pub := chat.NewRedisPublisher(rdb, cfg.Redis.Channel)
		return pub, func() {
			if err := pub.Close(); err != nil {
				l.Warnf(ctx, "closing redis publisher: %v", err)
			}
		}, nil
	case "log", "":
		return chat.NewLogSender(l), func() {}, nil
	default:
		return nil, nil, fmt.Errorf("unsupported delivery transport %q", cfg.Transport)
	}
}
