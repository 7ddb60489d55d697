package subscription

import (
	"context"

	"repo-relay/internal/model"
)

//go:generate mockery --name UseCase
type UseCase interface {
	// Subscription management
	Link(ctx context.Context, input LinkInput) (LinkOutput, error)
	SetColors(ctx context.Context, input SetColorsInput) (SetColorsOutput, error)
	Get(ctx context.Context, channel, repo string) (model.Subscription, error)
	List(ctx context.Context, input ListInput) ([]model.Subscription, error)

	// ListEnabledForRepo returns every enabled subscription of repo, each
	// carrying its channel's color scheme.
	ListEnabledForRepo(ctx context.Context, repo string) ([]model.Subscription, error)

	// Default repository for bare #123 references
	SetChannelRepo(ctx context.Context, channel, repo string) error
	GetChannelRepo(ctx context.Context, channel string) (string, error)
}

// Authorizer produces the link an operator follows to let the relay create
// the repository webhook.
type Authorizer interface {
	AuthorizeURL(ctx context.Context, repo, channel string) (string, error)
}
