package middleware

import (
	"repo-relay/pkg/log"
)

// Middleware holds the dependencies shared by the gin middlewares.
type Middleware struct {
	l        log.Logger
	apiToken string
}

func New(l log.Logger, apiToken string) Middleware {
	return Middleware{
		l:        l,
		apiToken: apiToken,
	}
}
