package render

import (
	"context"

	"repo-relay/internal/model"
	"repo-relay/pkg/log"
)

// Shortener turns a long URL into a short one. Implementations return the
// input unchanged when shortening is unavailable.
type Shortener interface {
	Shorten(ctx context.Context, longURL string) string
}

// builtin holds what the built-in renderers share.
type builtin struct {
	short Shortener
	l     log.Logger
}

// NewDefault returns a registry with a renderer for every supported GitHub
// event type.
func NewDefault(short Shortener, l log.Logger) *Registry {
	b := &builtin{short: short, l: l}
	reg := NewRegistry()

	reg.MustRegister("ping", RendererFunc(b.ping))
	reg.MustRegister("push", RendererFunc(b.push))
	reg.MustRegister("create", RendererFunc(b.create))
	reg.MustRegister("delete", RendererFunc(b.delete))
	reg.MustRegister("issues", RendererFunc(b.issues))
	reg.MustRegister("issue_comment", RendererFunc(b.issueComment))
	reg.MustRegister("pull_request", RendererFunc(b.pullRequest))
	reg.MustRegister("pull_request_review", RendererFunc(b.pullRequestReview))
	reg.MustRegister("pull_request_review_comment", RendererFunc(b.pullRequestReviewComment))
	reg.MustRegister("commit_comment", RendererFunc(b.commitComment))
	reg.MustRegister("release", RendererFunc(b.release))
	reg.MustRegister("watch", RendererFunc(b.watch))
	reg.MustRegister("star", RendererFunc(b.star))
	reg.MustRegister("fork", RendererFunc(b.fork))
	reg.MustRegister("public", RendererFunc(b.public))
	reg.MustRegister("member", RendererFunc(b.member))
	reg.MustRegister("gollum", RendererFunc(b.gollum))

	return reg
}

// decode fills dst from the event body, logging any top-level block that
// had to be dropped.
func (b *builtin) decode(ctx context.Context, ev model.WebhookEvent, dst any) error {
	dropped, err := decodeLenient(ev.Body, dst)
	if err != nil {
		return err
	}
	if len(dropped) > 0 {
		b.l.Debugf(ctx, "render.decode: %s event dropped malformed fields %v", ev.EventType, dropped)
	}
	return nil
}

// shorten never fails; without a shortener the long URL is used.
func (b *builtin) shorten(ctx context.Context, url string) string {
	if url == "" || b.short == nil {
		return url
	}
	return b.short.Shorten(ctx, url)
}

// header starts every line with "[repo] actor". fallbackActor is used when
// the payload has no sender.
func header(ev model.WebhookEvent, fallbackActor string) (*Message, error) {
	repo := ev.Payload.Repository.ShortName()
	actor := ev.Payload.Sender.Login
	if actor == "" {
		actor = fallbackActor
	}
	if repo == "" || actor == "" {
		return nil, ErrMissingIdentity
	}
	m := &Message{}
	m.Text("[").Repo(repo).Text("] ").Name(actor)
	return m, nil
}
