package render

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"repo-relay/internal/model"
)

// Renderer turns one webhook event into a channel-independent Message.
// Implementations must not panic on partial payloads.
type Renderer interface {
	Render(ctx context.Context, ev model.WebhookEvent) (Message, error)
}

// RendererFunc adapts a plain function to Renderer.
type RendererFunc func(ctx context.Context, ev model.WebhookEvent) (Message, error)

func (f RendererFunc) Render(ctx context.Context, ev model.WebhookEvent) (Message, error) {
	return f(ctx, ev)
}

// Registry maps event-type names (the X-GitHub-Event header) to renderers.
type Registry struct {
	mu        sync.RWMutex
	renderers map[string]Renderer
}

func NewRegistry() *Registry {
	return &Registry{renderers: make(map[string]Renderer)}
}

// Register adds a renderer for eventType. Registering the same type twice
// is an error; existing entries are never replaced.
func (r *Registry) Register(eventType string, renderer Renderer) error {
	eventType = strings.ToLower(strings.TrimSpace(eventType))
	if eventType == "" || renderer == nil {
		return ErrInvalidRenderer
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.renderers[eventType]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateRenderer, eventType)
	}
	r.renderers[eventType] = renderer
	return nil
}

// MustRegister is Register for wiring code; it panics on error.
func (r *Registry) MustRegister(eventType string, renderer Renderer) {
	if err := r.Register(eventType, renderer); err != nil {
		panic(err)
	}
}

func (r *Registry) Lookup(eventType string) (Renderer, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	renderer, ok := r.renderers[strings.ToLower(eventType)]
	return renderer, ok
}

// Types lists the registered event types in sorted order.
func (r *Registry) Types() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	types := make([]string, 0, len(r.renderers))
	for t := range r.renderers {
		types = append(types, t)
	}
	sort.Strings(types)
	return types
}
