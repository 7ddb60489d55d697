package router

import (
	"context"

	"repo-relay/internal/model"
	"repo-relay/internal/render"
	"repo-relay/pkg/log"
)

// Router turns a validated webhook event into per-channel messages.
type Router interface {
	Route(ctx context.Context, ev model.WebhookEvent) (RouteOutput, error)
}

// SubscriptionLister is the part of the subscription use case the router needs.
type SubscriptionLister interface {
	ListEnabledForRepo(ctx context.Context, repo string) ([]model.Subscription, error)
}

// EventRouter dispatches events through the renderer registry.
type EventRouter struct {
	subs     SubscriptionLister
	registry *render.Registry
	l        log.Logger
}

// Ensure EventRouter implements Router interface
var _ Router = (*EventRouter)(nil)

// New creates a new EventRouter
// Convention: Factory function returns concrete type (not interface) for internal packages
func New(subs SubscriptionLister, registry *render.Registry, l log.Logger) *EventRouter {
	return &EventRouter{
		subs:     subs,
		registry: registry,
		l:        l,
	}
}
