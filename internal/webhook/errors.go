package webhook

import (
	"errors"
	"net/http"
)

var (
	ErrMissingSignature  = errors.New("missing signature")
	ErrInvalidSignature  = errors.New("invalid signature")
	ErrMalformedPayload  = errors.New("malformed payload")
	ErrMissingRepository = errors.New("missing repository")
	ErrMissingEventType  = errors.New("missing event type header")
	ErrBodyTooLarge      = errors.New("request body too large")
	ErrIPNotAllowed      = errors.New("source address not allowed")
	ErrRateLimited       = errors.New("rate limit exceeded")
)

// statusFor maps a rejection to the HTTP status the sender sees.
func statusFor(err error) int {
	switch {
	case errors.Is(err, ErrMissingSignature):
		return http.StatusUnauthorized
	case errors.Is(err, ErrInvalidSignature), errors.Is(err, ErrIPNotAllowed):
		return http.StatusForbidden
	case errors.Is(err, ErrRateLimited):
		return http.StatusTooManyRequests
	case errors.Is(err, ErrMalformedPayload),
		errors.Is(err, ErrMissingRepository),
		errors.Is(err, ErrMissingEventType),
		errors.Is(err, ErrBodyTooLarge):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
