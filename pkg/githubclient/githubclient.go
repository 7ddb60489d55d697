// Package githubclient builds go-github clients for github.com and GitHub
// Enterprise.
package githubclient

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/go-github/v68/github"
	"golang.org/x/oauth2"
)

type Options struct {
	Token  string // empty gives an unauthenticated client
	APIURL string // enterprise API base, e.g. https://ghe.example.com/api/v3/
}

// New returns a client authenticated with a static token.
func New(ctx context.Context, opt Options) (*github.Client, error) {
	var httpClient *http.Client
	if opt.Token != "" {
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: opt.Token})
		httpClient = oauth2.NewClient(ctx, ts)
	}
	return withBaseURL(github.NewClient(httpClient), opt.APIURL)
}

// NewFromToken returns a client for a token obtained from an OAuth exchange.
func NewFromToken(ctx context.Context, cfg *oauth2.Config, token *oauth2.Token, apiURL string) (*github.Client, error) {
	return withBaseURL(github.NewClient(cfg.Client(ctx, token)), apiURL)
}

func withBaseURL(client *github.Client, apiURL string) (*github.Client, error) {
	if apiURL == "" {
		return client, nil
	}
	base := strings.TrimRight(apiURL, "/") + "/"
	upload := base
	if strings.HasSuffix(base, "/api/v3/") {
		upload = strings.TrimSuffix(base, "/api/v3/") + "/api/uploads/"
	}
	c, err := client.WithEnterpriseURLs(base, upload)
	if err != nil {
		return nil, fmt.Errorf("configuring GitHub enterprise URLs: %w", err)
	}
	return c, nil
}
