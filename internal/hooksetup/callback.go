package hooksetup

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/go-github/v68/github"

	"repo-relay/pkg/githubclient"
	pkgLog "repo-relay/pkg/log"
	"repo-relay/pkg/response"
)

// Outcome of a callback, as reported to the browser.
const (
	StatusCreated = "created"
	StatusExists  = "exists"
)

// HandleCallback godoc
// @Summary     OAuth callback that installs the repository webhook
// @Description GitHub redirects here after the operator authorizes the relay. The code is
// @Description exchanged for a token, the webhook is created and the channel is told.
// @Tags        Webhook
// @Produce     json
// @Param       code  query string true "OAuth authorization code"
// @Param       state query string true "<owner>/<repo>:<channel>"
// @Success     200 {object} response.Resp "Webhook created"
// @Failure     400 {object} response.Resp "Missing code or state"
// @Failure     502 {object} response.Resp "GitHub rejected the request"
// @Router      /auth [GET]
func (s *Setup) HandleCallback(c *gin.Context) {
	code := c.Query("code")
	state := c.Query("state")
	if code == "" || state == "" {
		response.ErrorWithStatus(c, http.StatusBadRequest, ErrMissingCode)
		return
	}
	owner, name, channel, err := decodeState(state)
	if err != nil {
		response.ErrorWithStatus(c, http.StatusBadRequest, err)
		return
	}

	repo := owner + "/" + name
	ctx := pkgLog.WithFields(c.Request.Context(), "repo", repo, "channel", channel)

	status, err := s.install(ctx, code, owner, name)
	if err != nil {
		s.l.Errorf(ctx, "hooksetup.HandleCallback: %v", err)
		s.notify(ctx, channel, fmt.Sprintf("[GitHub] Failed to create webhook for %s: %s", repo, describe(err)))
		response.ErrorWithStatus(c, http.StatusBadGateway, err)
		return
	}

	msg := fmt.Sprintf("Successfully created webhook for %s", repo)
	if status == StatusExists {
		msg = fmt.Sprintf("A webhook for %s already exists, nothing to do", repo)
	}
	s.notify(ctx, channel, msg)
	response.OK(c, gin.H{
		"status":  status,
		"repo":    repo,
		"channel": channel,
	})
}

// install exchanges code for a token and creates the hook with it.
func (s *Setup) install(ctx context.Context, code, owner, name string) (string, error) {
	token, err := s.oauth.Exchange(ctx, code)
	if err != nil {
		return "", fmt.Errorf("exchange code: %w", err)
	}

	client, err := githubclient.NewFromToken(ctx, s.oauth, token, s.apiURL)
	if err != nil {
		return "", err
	}

	hook := &github.Hook{
		Name:   github.Ptr("web"),
		Active: github.Ptr(true),
		Events: []string{"*"},
		Config: &github.HookConfig{
			URL:         github.Ptr(s.callbackURL),
			ContentType: github.Ptr("json"),
			InsecureSSL: github.Ptr("0"),
		},
	}
	if s.secret != "" {
		hook.Config.Secret = github.Ptr(s.secret)
	}

	created, _, err := client.Repositories.CreateHook(ctx, owner, name, hook)
	if err != nil {
		if hookExists(err) {
			return StatusExists, nil
		}
		return "", fmt.Errorf("create hook: %w", err)
	}
	s.l.Infof(ctx, "hooksetup.install: created hook %d delivering to %s", created.GetID(), s.callbackURL)
	return StatusCreated, nil
}

func (s *Setup) notify(ctx context.Context, channel, text string) {
	if s.sender == nil {
		return
	}
	if err := s.sender.Send(ctx, channel, text); err != nil {
		s.l.Warnf(ctx, "hooksetup.notify: %v", err)
	}
}

// hookExists reports GitHub's validation error for a duplicate hook.
func hookExists(err error) bool {
	var ghErr *github.ErrorResponse
	if !errors.As(err, &ghErr) || ghErr.Response == nil || ghErr.Response.StatusCode != http.StatusUnprocessableEntity {
		return false
	}
	if strings.Contains(strings.ToLower(ghErr.Message), "already exists") {
		return true
	}
	for _, e := range ghErr.Errors {
		if strings.Contains(strings.ToLower(e.Message), "already exists") {
			return true
		}
	}
	return false
}

// describe keeps the chat line short: GitHub's own message when there is one.
func describe(err error) string {
	var ghErr *github.ErrorResponse
	if errors.As(err, &ghErr) && ghErr.Message != "" {
		return ghErr.Message
	}
	return "authorization failed, please try again"
}
