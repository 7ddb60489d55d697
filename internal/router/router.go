package router

import (
	"context"
	"fmt"

	"repo-relay/internal/model"
	"repo-relay/internal/render"
)

// Route looks up the channels subscribed to the event's repository and
// formats the event once per channel with that channel's colors.
// Unsupported or unrenderable events yield no messages and no error.
func (r *EventRouter) Route(ctx context.Context, ev model.WebhookEvent) (RouteOutput, error) {
	subs, err := r.subs.ListEnabledForRepo(ctx, ev.Repository())
	if err != nil {
		return RouteOutput{}, fmt.Errorf("%s: list subscriptions: %w", LogPrefixRoute, err)
	}
	if len(subs) == 0 {
		r.l.Debugf(ctx, "%s: %s %s", LogPrefixRoute, ReasonNoSubscribers, ev.Repository())
		return RouteOutput{Reason: ReasonNoSubscribers}, nil
	}

	renderer, ok := r.registry.Lookup(ev.EventType)
	if !ok {
		r.l.Debugf(ctx, "%s: %s %q", LogPrefixRoute, ReasonUnsupportedEvent, ev.EventType)
		return RouteOutput{Reason: ReasonUnsupportedEvent}, nil
	}

	msg, err := r.render(ctx, renderer, ev)
	if err != nil {
		r.l.Warnf(ctx, "%s: skipping %s event for %s: %v", LogPrefixRoute, ev.EventType, ev.Repository(), err)
		return RouteOutput{Reason: ReasonRenderSkipped}, nil
	}
	if msg.Empty() {
		return RouteOutput{Reason: ReasonEmptyRender}, nil
	}

	out := RouteOutput{Messages: make([]model.RenderedMessage, 0, len(subs))}
	for _, sub := range subs {
		out.Messages = append(out.Messages, model.RenderedMessage{
			Channel: sub.Channel,
			Text:    msg.Format(sub.Scheme()),
		})
	}
	return out, nil
}

// render shields the caller from a renderer that panics on an unexpected
// payload shape.
func (r *EventRouter) render(ctx context.Context, renderer render.Renderer, ev model.WebhookEvent) (msg render.Message, err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("renderer panic: %v", p)
		}
	}()
	return renderer.Render(ctx, ev)
}
