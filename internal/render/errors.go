package render

import "errors"

var (
	// ErrMissingIdentity means the payload lacks the repository or actor a
	// line must start with; the event is skipped for every channel.
	ErrMissingIdentity   = errors.New("payload is missing required identity fields")
	ErrDuplicateRenderer = errors.New("renderer already registered for event type")
	ErrInvalidRenderer   = errors.New("renderer must have an event type and an implementation")
)
