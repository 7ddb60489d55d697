package hooksetup

import "errors"

var (
	ErrNotConfigured = errors.New("hook setup requires a GitHub OAuth client id and secret")
	ErrMissingCode   = errors.New("missing code or state")
	ErrInvalidState  = errors.New("state must be <repo>:<channel>")
)
