// Package hooksetup installs the repository webhook on behalf of a channel
// operator through GitHub's OAuth web flow.
package hooksetup

import (
	"context"

	"golang.org/x/oauth2"
	oauthGitHub "golang.org/x/oauth2/github"

	"repo-relay/internal/subscription"
	"repo-relay/pkg/chat"
	"repo-relay/pkg/log"
)

// Scope lets the token create repository hooks and nothing else.
const Scope = "write:repo_hook"

// Shortener shortens the authorization link before it is shown in chat.
type Shortener interface {
	Shorten(ctx context.Context, longURL string) string
}

type Config struct {
	ClientID     string
	ClientSecret string
	CallbackURL  string // where the created hook delivers events
	Secret       string // hook secret, matches the listener's
	APIURL       string // enterprise API base, empty for github.com

	// Endpoint overrides github.com's OAuth endpoints.
	Endpoint *oauth2.Endpoint
}

// Setup builds authorization links and finishes the flow on callback.
type Setup struct {
	oauth       *oauth2.Config
	callbackURL string
	secret      string
	apiURL      string
	short       Shortener
	sender      chat.Sender
	l           log.Logger
}

var _ subscription.Authorizer = (*Setup)(nil)

func New(cfg Config, short Shortener, sender chat.Sender, l log.Logger) (*Setup, error) {
	if cfg.ClientID == "" || cfg.ClientSecret == "" {
		return nil, ErrNotConfigured
	}
	endpoint := oauthGitHub.Endpoint
	if cfg.Endpoint != nil {
		endpoint = *cfg.Endpoint
	}
	return &Setup{
		oauth: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			Endpoint:     endpoint,
			Scopes:       []string{Scope},
		},
		callbackURL: cfg.CallbackURL,
		secret:      cfg.Secret,
		apiURL:      cfg.APIURL,
		short:       short,
		sender:      sender,
		l:           l,
	}, nil
}
