package usecase

import (
	"context"

	"repo-relay/internal/model"
	"repo-relay/internal/subscription"
	repo "repo-relay/internal/subscription/repository"
)

// Get returns one subscription or ErrNotSubscribed.
func (uc *implUseCase) Get(ctx context.Context, channel, repoName string) (model.Subscription, error) {
	ch, err := normalizeChannel(channel)
	if err != nil {
		return model.Subscription{}, err
	}
	name, err := normalizeRepo(repoName)
	if err != nil {
		return model.Subscription{}, err
	}

	sub, err := uc.repo.GetSubscription(ctx, repo.GetSubscriptionOptions{Channel: ch, Repo: name})
	if err != nil {
		uc.l.Errorf(ctx, "uc.Get GetSubscription: %v", err)
		return model.Subscription{}, err
	}
	if sub.Channel == "" {
		return model.Subscription{}, subscription.ErrNotSubscribed
	}
	return sub, nil
}

func (uc *implUseCase) List(ctx context.Context, input subscription.ListInput) ([]model.Subscription, error) {
	opt := repo.ListSubscriptionsOptions{EnabledOnly: input.EnabledOnly}
	if input.Channel != "" {
		opt.Channel = model.NormalizeChannel(input.Channel)
	}
	if input.Repo != "" {
		opt.Repo = model.NormalizeRepo(input.Repo)
	}

	subs, err := uc.repo.ListSubscriptions(ctx, opt)
	if err != nil {
		uc.l.Errorf(ctx, "uc.List ListSubscriptions: %v", err)
		return nil, err
	}
	return subs, nil
}

// ListEnabledForRepo matches repoName case-insensitively on owner/name.
func (uc *implUseCase) ListEnabledForRepo(ctx context.Context, repoName string) ([]model.Subscription, error) {
	name := model.NormalizeRepo(repoName)
	if name == "" {
		return nil, nil
	}

	subs, err := uc.repo.ListSubscriptions(ctx, repo.ListSubscriptionsOptions{Repo: name, EnabledOnly: true})
	if err != nil {
		uc.l.Errorf(ctx, "uc.ListEnabledForRepo ListSubscriptions: %v", err)
		return nil, err
	}
	return subs, nil
}
