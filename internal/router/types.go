package router

import "repo-relay/internal/model"

// RouteOutput is the result of routing one webhook event.
type RouteOutput struct {
	Messages []model.RenderedMessage // one per subscribed channel, in channel order
	Reason   string                  // set when Messages is empty
}
