package render

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/go-github/v68/github"

	"repo-relay/internal/model"
)

// ping is sent once when a hook is created, so the channel sees the setup
// succeed.
func (b *builtin) ping(ctx context.Context, ev model.WebhookEvent) (Message, error) {
	var p github.PingEvent
	if err := b.decode(ctx, ev, &p); err != nil {
		return Message{}, err
	}
	m, err := header(ev, "GitHub")
	if err != nil {
		return Message{}, err
	}

	m.Text(" configured a webhook")
	if hook := p.GetHook(); hook != nil && len(hook.Events) > 0 {
		m.Text(" for " + strings.Join(hook.Events, ", ") + " events")
	}
	if zen := p.GetZen(); zen != "" {
		m.Text(": " + flatten(zen))
	}
	return *m, nil
}

func (b *builtin) commitComment(ctx context.Context, ev model.WebhookEvent) (Message, error) {
	var p github.CommitCommentEvent
	if err := b.decode(ctx, ev, &p); err != nil {
		return Message{}, err
	}
	m, err := header(ev, "")
	if err != nil {
		return Message{}, err
	}

	comment := p.GetComment()
	m.Text(" commented on commit ").Hash(shortHash(comment.GetCommitID()))
	if path := comment.GetPath(); path != "" {
		m.Text(" at " + path)
	}
	m.Text(": " + orPlaceholder(flatten(comment.GetBody())))
	m.Link(b.shorten(ctx, comment.GetHTMLURL()))
	return *m, nil
}

func (b *builtin) release(ctx context.Context, ev model.WebhookEvent) (Message, error) {
	var p github.ReleaseEvent
	if err := b.decode(ctx, ev, &p); err != nil {
		return Message{}, err
	}
	m, err := header(ev, "")
	if err != nil {
		return Message{}, err
	}

	rel := p.GetRelease()
	action := p.GetAction()
	if action == "" {
		action = "updated"
	}
	kind := "release"
	if rel.GetPrerelease() {
		kind = "pre-release"
	}
	m.Text(" " + humanize(action) + " " + kind + " ").Tag(rel.GetTagName())
	if name := rel.GetName(); name != "" && name != rel.GetTagName() {
		m.Text(": " + excerpt(name))
	}
	m.Link(b.shorten(ctx, rel.GetHTMLURL()))
	return *m, nil
}

// watch is GitHub's legacy name for starring.
func (b *builtin) watch(ctx context.Context, ev model.WebhookEvent) (Message, error) {
	var p github.WatchEvent
	if err := b.decode(ctx, ev, &p); err != nil {
		return Message{}, err
	}
	m, err := header(ev, "")
	if err != nil {
		return Message{}, err
	}
	m.Text(" starred the repository")
	return *m, nil
}

func (b *builtin) star(ctx context.Context, ev model.WebhookEvent) (Message, error) {
	var p github.StarEvent
	if err := b.decode(ctx, ev, &p); err != nil {
		return Message{}, err
	}
	m, err := header(ev, "")
	if err != nil {
		return Message{}, err
	}
	if p.GetAction() == "deleted" {
		m.Text(" unstarred the repository")
	} else {
		m.Text(" starred the repository")
	}
	return *m, nil
}

func (b *builtin) fork(ctx context.Context, ev model.WebhookEvent) (Message, error) {
	var p github.ForkEvent
	if err := b.decode(ctx, ev, &p); err != nil {
		return Message{}, err
	}
	m, err := header(ev, "")
	if err != nil {
		return Message{}, err
	}

	forkee := p.GetForkee()
	m.Text(" forked the repository")
	if name := forkee.GetFullName(); name != "" {
		m.Text(" to ").Repo(name)
	}
	m.Link(b.shorten(ctx, forkee.GetHTMLURL()))
	return *m, nil
}

func (b *builtin) public(ctx context.Context, ev model.WebhookEvent) (Message, error) {
	m, err := header(ev, "")
	if err != nil {
		return Message{}, err
	}
	m.Text(" made the repository public")
	m.Link(b.shorten(ctx, ev.Payload.Repository.HTMLURL))
	return *m, nil
}

func (b *builtin) member(ctx context.Context, ev model.WebhookEvent) (Message, error) {
	var p github.MemberEvent
	if err := b.decode(ctx, ev, &p); err != nil {
		return Message{}, err
	}
	m, err := header(ev, "")
	if err != nil {
		return Message{}, err
	}

	member := p.GetMember().GetLogin()
	switch p.GetAction() {
	case "removed":
		m.Text(" removed ").Name(member).Text(" as a collaborator")
	case "edited":
		m.Text(" changed the permissions of ").Name(member)
	default:
		m.Text(" added ").Name(member).Text(" as a collaborator")
	}
	return *m, nil
}

// gollum covers wiki edits; several pages may change in one event.
func (b *builtin) gollum(ctx context.Context, ev model.WebhookEvent) (Message, error) {
	var p github.GollumEvent
	if err := b.decode(ctx, ev, &p); err != nil {
		return Message{}, err
	}
	m, err := header(ev, "")
	if err != nil {
		return Message{}, err
	}

	m.Text(" updated the wiki")
	var url string
	for i, page := range p.Pages {
		if page == nil {
			continue
		}
		if url == "" {
			url = page.GetHTMLURL()
		}
		if i >= MaxListedItems {
			continue
		}
		sep := ", "
		if i == 0 {
			sep = ": "
		}
		m.Text(fmt.Sprintf("%s%s %s", sep, page.GetAction(), orPlaceholder(excerpt(page.GetTitle()))))
	}
	m.Text(overflow(len(p.Pages)))
	m.Link(b.shorten(ctx, url))
	return *m, nil
}
