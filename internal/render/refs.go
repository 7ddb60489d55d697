package render

import (
	"context"

	"github.com/google/go-github/v68/github"

	"repo-relay/internal/model"
)

func (b *builtin) create(ctx context.Context, ev model.WebhookEvent) (Message, error) {
	var p github.CreateEvent
	if err := b.decode(ctx, ev, &p); err != nil {
		return Message{}, err
	}
	m, err := header(ev, "")
	if err != nil {
		return Message{}, err
	}

	switch p.GetRefType() {
	case "tag":
		m.Text(" created tag ").Tag(p.GetRef())
		m.Link(b.shorten(ctx, ev.Payload.Repository.HTMLURL+"/releases/tag/"+p.GetRef()))
	case "branch":
		m.Text(" created branch ").Branch(p.GetRef())
		m.Link(b.shorten(ctx, ev.Payload.Repository.HTMLURL+"/tree/"+p.GetRef()))
	default:
		m.Text(" created the repository")
		m.Link(b.shorten(ctx, ev.Payload.Repository.HTMLURL))
	}
	return *m, nil
}

func (b *builtin) delete(ctx context.Context, ev model.WebhookEvent) (Message, error) {
	var p github.DeleteEvent
	if err := b.decode(ctx, ev, &p); err != nil {
		return Message{}, err
	}
	m, err := header(ev, "")
	if err != nil {
		return Message{}, err
	}

	if p.GetRefType() == "tag" {
		m.Text(" deleted tag ").Tag(p.GetRef())
	} else {
		m.Text(" deleted branch ").Branch(p.GetRef())
	}
	return *m, nil
}
