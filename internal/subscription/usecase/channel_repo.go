package usecase

import (
	"context"

	"repo-relay/internal/subscription"
)

// SetChannelRepo sets the repository bare #123 references in channel resolve against.
func (uc *implUseCase) SetChannelRepo(ctx context.Context, channel, repoName string) error {
	ch, err := normalizeChannel(channel)
	if err != nil {
		return err
	}
	name, err := normalizeRepo(repoName)
	if err != nil {
		return err
	}
	if err := uc.repo.SetChannelRepo(ctx, ch, name); err != nil {
		uc.l.Errorf(ctx, "uc.SetChannelRepo: %v", err)
		return err
	}
	return nil
}

func (uc *implUseCase) GetChannelRepo(ctx context.Context, channel string) (string, error) {
	ch, err := normalizeChannel(channel)
	if err != nil {
		return "", err
	}
	name, err := uc.repo.GetChannelRepo(ctx, ch)
	if err != nil {
		uc.l.Errorf(ctx, "uc.GetChannelRepo: %v", err)
		return "", err
	}
	if name == "" {
		return "", subscription.ErrNoChannelRepo
	}
	return name, nil
}
