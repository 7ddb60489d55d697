// Package unfurl turns GitHub links and bare #N references posted in a
// channel into one-line summaries.
package unfurl

import (
	"context"

	"github.com/google/go-github/v68/github"

	"repo-relay/pkg/log"
)

// ChannelRepos resolves the repository bare #N references point at.
type ChannelRepos interface {
	GetChannelRepo(ctx context.Context, channel string) (string, error)
}

// Shortener shortens links appended to bare-reference summaries.
type Shortener interface {
	Shorten(ctx context.Context, longURL string) string
}

// Resolver fetches the objects behind links through the GitHub API.
type Resolver struct {
	gh       *github.Client
	channels ChannelRepos
	short    Shortener
	l        log.Logger
}

func New(gh *github.Client, channels ChannelRepos, short Shortener, l log.Logger) *Resolver {
	return &Resolver{
		gh:       gh,
		channels: channels,
		short:    short,
		l:        l,
	}
}
