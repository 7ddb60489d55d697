package http

import (
	"repo-relay/internal/subscription"
	"repo-relay/pkg/log"
)

type handler struct {
	l          log.Logger
	uc         subscription.UseCase
	helpPrefix string
}

// New creates the operator HTTP handler for subscriptions. helpPrefix is
// the chat command prefix quoted in validation messages.
func New(l log.Logger, uc subscription.UseCase, helpPrefix string) *handler {
	return &handler{
		l:          l,
		uc:         uc,
		helpPrefix: helpPrefix,
	}
}
