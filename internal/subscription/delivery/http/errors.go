package http

import (
	"errors"
	"net/http"

	"repo-relay/internal/subscription"
)

// mapError picks the status for a use-case error. The message is the same
// reply an operator would get in chat.
func (h *handler) mapError(err error, repo string) (int, error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, subscription.ErrInvalidRepo),
		errors.Is(err, subscription.ErrInvalidChannel),
		errors.Is(err, subscription.ErrInvalidColor),
		errors.Is(err, subscription.ErrInvalidColorCount):
		status = http.StatusBadRequest
	case errors.Is(err, subscription.ErrNotSubscribed),
		errors.Is(err, subscription.ErrNoChannelRepo):
		status = http.StatusNotFound
	}
	return status, errors.New(subscription.UserMessage(err, h.helpPrefix, repo))
}
