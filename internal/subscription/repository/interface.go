package repository

import (
	"context"

	"repo-relay/internal/model"
)

// Repository is the composed interface for the subscription data store.
type Repository interface {
	SubscriptionRepository
	ChannelRepoRepository
	Close() error
}

// SubscriptionRepository persists (channel, repository) subscriptions.
type SubscriptionRepository interface {
	// GetSubscription returns a zero-value Subscription (Channel == "") when not found.
	GetSubscription(ctx context.Context, opt GetSubscriptionOptions) (model.Subscription, error)
	// UpsertSubscription inserts the pair or flips its enabled flag. Colors are never touched.
	UpsertSubscription(ctx context.Context, opt UpsertSubscriptionOptions) (model.Subscription, bool, error)
	// UpdateColors returns ErrNotFound when the pair has never been linked.
	UpdateColors(ctx context.Context, opt UpdateColorsOptions) (model.Subscription, error)
	ListSubscriptions(ctx context.Context, opt ListSubscriptionsOptions) ([]model.Subscription, error)
}

// ChannelRepoRepository stores the default repository of a channel.
type ChannelRepoRepository interface {
	SetChannelRepo(ctx context.Context, channel, repo string) error
	// GetChannelRepo returns "" when the channel has no default.
	GetChannelRepo(ctx context.Context, channel string) (string, error)
}
