package render

import (
	"context"

	"github.com/google/go-github/v68/github"

	"repo-relay/internal/model"
)

// push renders branch and tag pushes. Commits are listed up to
// MaxListedItems, newest last as GitHub sends them.
func (b *builtin) push(ctx context.Context, ev model.WebhookEvent) (Message, error) {
	var p github.PushEvent
	if err := b.decode(ctx, ev, &p); err != nil {
		return Message{}, err
	}

	m, err := header(ev, p.GetPusher().GetName())
	if err != nil {
		return Message{}, err
	}

	ref := p.GetRef()
	name := refName(ref)
	target := func() {
		if isTagRef(ref) {
			m.Text("tag ").Tag(name)
			return
		}
		m.Branch(name)
	}

	switch {
	case p.GetDeleted():
		if isTagRef(ref) {
			m.Text(" deleted ")
		} else {
			m.Text(" deleted branch ")
		}
		target()
		return *m, nil

	case len(p.Commits) == 0:
		if p.GetCreated() {
			if isTagRef(ref) {
				m.Text(" pushed new ")
			} else {
				m.Text(" pushed new branch ")
			}
		} else {
			m.Text(" pushed to ")
		}
		target()
		m.Link(b.shorten(ctx, p.GetCompare()))
		return *m, nil
	}

	verb := " pushed "
	if p.GetForced() {
		verb = " force-pushed "
	}
	m.Text(verb + plural(len(p.Commits), "commit", "commits") + " to ")
	target()
	m.Text(": ")

	for i, c := range p.Commits {
		if i == MaxListedItems {
			break
		}
		if i > 0 {
			m.Text(", ")
		}
		if c == nil {
			m.Text(placeholder)
			continue
		}
		m.Hash(shortHash(c.GetID())).Text(" " + orPlaceholder(excerpt(c.GetMessage())))
	}
	m.Text(overflow(len(p.Commits)))

	url := p.GetCompare()
	if len(p.Commits) == 1 && p.Commits[0] != nil && p.Commits[0].GetURL() != "" {
		url = p.Commits[0].GetURL()
	}
	m.Link(b.shorten(ctx, url))
	return *m, nil
}
