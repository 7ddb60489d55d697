package unfurl

import (
	"context"
	"errors"
	"strings"

	"repo-relay/internal/subscription"
	"repo-relay/pkg/ircfmt"
)

// APIErrorLine is posted when GitHub answers a lookup with an error.
const APIErrorLine = "[GitHub] API returned an error."

// Resolve returns one summary line per link or reference in text. Bare
// #N references are resolved against channel's linked repository and are
// skipped when the channel has none.
func (r *Resolver) Resolve(ctx context.Context, channel, text string) ([]string, error) {
	links := Parse(text)

	if refs := References(text); len(refs) > 0 && r.channels != nil && channel != "" {
		repo, err := r.channels.GetChannelRepo(ctx, channel)
		switch {
		case errors.Is(err, subscription.ErrNoChannelRepo):
		case err != nil:
			return nil, err
		default:
			owner, name, ok := splitRepo(repo)
			if ok {
				for _, n := range refs {
					links = append(links, Link{Kind: KindIssue, Owner: owner, Name: name, Number: n, Bare: true})
				}
			}
		}
	}

	var lines []string
	for _, link := range links {
		line, err := r.Summarize(ctx, link)
		if err != nil {
			r.l.Warnf(ctx, "unfurl.Resolve: %s: %v", link.Repo(), err)
			lines = append(lines, APIErrorLine)
			continue
		}
		if line != "" {
			lines = append(lines, ircfmt.TruncateBytes(line, ircfmt.MaxLineBytes))
		}
	}
	return lines, nil
}

// Summarize renders one link. An empty line with a nil error means the
// object is not worth posting, such as a directory.
func (r *Resolver) Summarize(ctx context.Context, link Link) (string, error) {
	switch link.Kind {
	case KindIssue:
		if link.CommentID != 0 {
			return r.issueComment(ctx, link)
		}
		return r.issue(ctx, link)
	case KindCommit:
		return r.commit(ctx, link)
	case KindFile:
		return r.file(ctx, link)
	default:
		return r.repository(ctx, link)
	}
}

func splitRepo(repo string) (string, string, bool) {
	owner, name, ok := strings.Cut(repo, "/")
	return owner, name, ok && owner != "" && name != ""
}
