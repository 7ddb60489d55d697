package usecase

import (
	"context"

	"repo-relay/internal/subscription"
	repo "repo-relay/internal/subscription/repository"
)

// Link enables or disables relaying of repo into channel. Enabling also
// returns the authorization link used to create the repository webhook.
func (uc *implUseCase) Link(ctx context.Context, input subscription.LinkInput) (subscription.LinkOutput, error) {
	channel, err := normalizeChannel(input.Channel)
	if err != nil {
		return subscription.LinkOutput{}, err
	}
	repoName, err := normalizeRepo(input.Repo)
	if err != nil {
		return subscription.LinkOutput{}, err
	}

	sub, created, err := uc.repo.UpsertSubscription(ctx, repo.UpsertSubscriptionOptions{
		Channel: channel,
		Repo:    repoName,
		Enabled: input.Enabled,
	})
	if err != nil {
		uc.l.Errorf(ctx, "uc.Link UpsertSubscription: %v", err)
		return subscription.LinkOutput{}, err
	}

	out := subscription.LinkOutput{Subscription: sub, Created: created}
	if !input.Enabled || uc.auth == nil {
		return out, nil
	}

	url, err := uc.auth.AuthorizeURL(ctx, repoName, channel)
	if err != nil {
		// The subscription is stored; only the setup link is missing.
		uc.l.Warnf(ctx, "uc.Link AuthorizeURL: %v", err)
		return out, nil
	}
	out.AuthorizeURL = url
	return out, nil
}
