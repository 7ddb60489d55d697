package hooksetup

import (
	"context"
	"fmt"
	"strings"
)

// AuthorizeURL returns the link the operator follows to grant the relay
// permission to create repo's webhook. The state carries repo and channel
// through the redirect.
func (s *Setup) AuthorizeURL(ctx context.Context, repo, channel string) (string, error) {
	if repo == "" || channel == "" {
		return "", ErrInvalidState
	}
	url := s.oauth.AuthCodeURL(encodeState(repo, channel))
	if s.short != nil {
		url = s.short.Shorten(ctx, url)
	}
	return url, nil
}

func encodeState(repo, channel string) string {
	return fmt.Sprintf("%s:%s", repo, channel)
}

// decodeState splits "<owner>/<name>:<channel>".
func decodeState(state string) (owner, name, channel string, err error) {
	repo, channel, ok := strings.Cut(state, ":")
	if !ok || channel == "" {
		return "", "", "", ErrInvalidState
	}
	owner, name, ok = strings.Cut(repo, "/")
	if !ok || owner == "" || name == "" || strings.Contains(name, "/") {
		return "", "", "", ErrInvalidState
	}
	return owner, name, channel, nil
}
