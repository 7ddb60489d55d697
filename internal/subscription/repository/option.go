package repository

import "repo-relay/internal/model"

// GetSubscriptionOptions identifies a single subscription. Both fields are
// expected to be normalized already.
type GetSubscriptionOptions struct {
	Channel string
	Repo    string
}

// UpsertSubscriptionOptions holds parameters for linking a channel to a repository.
type UpsertSubscriptionOptions struct {
	Channel string
	Repo    string
	Enabled bool
}

// UpdateColorsOptions holds the new scheme for an existing subscription.
type UpdateColorsOptions struct {
	Channel string
	Repo    string
	Colors  model.ColorScheme
}

// ListSubscriptionsOptions holds filters for listing subscriptions.
// All non-empty fields are applied as AND conditions.
type ListSubscriptionsOptions struct {
	Channel     string
	Repo        string
	EnabledOnly bool
}
