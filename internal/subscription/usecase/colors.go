package usecase

import (
	"context"
	"errors"

	"repo-relay/internal/render"
	"repo-relay/internal/subscription"
	repo "repo-relay/internal/subscription/repository"
)

// SetColors replaces all six colors of an existing subscription and returns
// a preview line in the new scheme.
func (uc *implUseCase) SetColors(ctx context.Context, input subscription.SetColorsInput) (subscription.SetColorsOutput, error) {
	channel, err := normalizeChannel(input.Channel)
	if err != nil {
		return subscription.SetColorsOutput{}, err
	}
	repoName, err := normalizeRepo(input.Repo)
	if err != nil {
		return subscription.SetColorsOutput{}, err
	}
	scheme, err := parseColors(input.Colors)
	if err != nil {
		return subscription.SetColorsOutput{}, err
	}

	sub, err := uc.repo.UpdateColors(ctx, repo.UpdateColorsOptions{
		Channel: channel,
		Repo:    repoName,
		Colors:  scheme,
	})
	if errors.Is(err, repo.ErrNotFound) {
		return subscription.SetColorsOutput{}, subscription.ErrNotSubscribed
	}
	if err != nil {
		uc.l.Errorf(ctx, "uc.SetColors UpdateColors: %v", err)
		return subscription.SetColorsOutput{}, err
	}

	nick := input.Nick
	if nick == "" {
		nick = "nick"
	}
	return subscription.SetColorsOutput{
		Subscription: sub,
		Preview:      render.Preview(scheme, repoName, nick),
	}, nil
}
