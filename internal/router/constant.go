package router

// Log prefixes
const (
	LogPrefixRoute = "internal.router.Route"
)

// Reasons reported when an event produces no messages
const (
	ReasonNoSubscribers    = "no enabled subscriptions for repository"
	ReasonUnsupportedEvent = "unsupported event type"
	ReasonRenderSkipped    = "event could not be rendered"
	ReasonEmptyRender      = "renderer produced no output"
)
