package render

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"repo-relay/internal/model"
	"repo-relay/pkg/ircfmt"
	"repo-relay/pkg/log"
)

type fakeShortener struct {
	calls []string
}

func (f *fakeShortener) Shorten(_ context.Context, longURL string) string {
	f.calls = append(f.calls, longURL)
	return "https://git.io/short"
}

func newEvent(t *testing.T, eventType, body string) model.WebhookEvent {
	t.Helper()
	var env model.Envelope
	require.NoError(t, json.Unmarshal([]byte(body), &env))
	return model.WebhookEvent{EventType: eventType, Body: []byte(body), Payload: env}
}

func render(t *testing.T, ev model.WebhookEvent) (Message, error) {
	t.Helper()
	reg := NewDefault(&fakeShortener{}, log.NewNop())
	renderer, ok := reg.Lookup(ev.EventType)
	require.True(t, ok, "no renderer for %s", ev.EventType)
	return renderer.Render(context.Background(), ev)
}

const repoBlock = `"repository": {"full_name": "acme/widget", "name": "widget", "html_url": "https://github.com/acme/widget"},
	"sender": {"login": "alice"}`

func pushBody(commits int) string {
	var list []string
	for i := 0; i < commits; i++ {
		list = append(list, fmt.Sprintf(`{"id": "%d%039d", "message": "change %d\n\nbody", "url": "https://github.com/acme/widget/commit/%d"}`, i+1, 0, i+1, i+1))
	}
	return fmt.Sprintf(`{"ref": "refs/heads/main", "compare": "https://github.com/acme/widget/compare/a...b",
		"commits": [%s], %s}`, strings.Join(list, ","), repoBlock)
}

func TestDefaultRegistryCoversCatalogue(t *testing.T) {
	reg := NewDefault(nil, log.NewNop())
	assert.Equal(t, []string{
		"commit_comment", "create", "delete", "fork", "gollum", "issue_comment", "issues",
		"member", "ping", "public", "pull_request", "pull_request_review",
		"pull_request_review_comment", "push", "release", "star", "watch",
	}, reg.Types())
}

func TestRegistryRejectsDuplicates(t *testing.T) {
	reg := NewRegistry()
	noop := RendererFunc(func(context.Context, model.WebhookEvent) (Message, error) { return Message{}, nil })

	require.NoError(t, reg.Register("push", noop))
	assert.ErrorIs(t, reg.Register("PUSH", noop), ErrDuplicateRenderer)
	assert.ErrorIs(t, reg.Register("", noop), ErrInvalidRenderer)
	assert.ErrorIs(t, reg.Register("x", nil), ErrInvalidRenderer)

	_, ok := reg.Lookup("Push")
	assert.True(t, ok)
	_, ok = reg.Lookup("deployment")
	assert.False(t, ok)
}

func TestPushThreeCommits(t *testing.T) {
	msg, err := render(t, newEvent(t, "push", pushBody(3)))
	require.NoError(t, err)

	line := msg.String()
	assert.True(t, strings.HasPrefix(line, "[widget] alice pushed 3 commits to main: "), line)
	assert.Contains(t, line, "1000000 change 1…")
	assert.NotContains(t, line, "more")
	assert.True(t, strings.HasSuffix(line, " https://git.io/short"), line)
}

func TestPushListsAtMostThreeCommits(t *testing.T) {
	msg, err := render(t, newEvent(t, "push", pushBody(5)))
	require.NoError(t, err)

	line := msg.String()
	assert.Contains(t, line, "pushed 5 commits")
	assert.Contains(t, line, "change 3")
	assert.NotContains(t, line, "change 4")
	assert.Contains(t, line, " and 2 more")
}

func TestPushTagAndDelete(t *testing.T) {
	created, err := render(t, newEvent(t, "push", `{"ref": "refs/tags/v1.0", "created": true, "commits": [], `+repoBlock+`}`))
	require.NoError(t, err)
	assert.Contains(t, created.String(), "pushed new tag v1.0")

	deleted, err := render(t, newEvent(t, "push", `{"ref": "refs/heads/old", "deleted": true, `+repoBlock+`}`))
	require.NoError(t, err)
	assert.Equal(t, "[widget] alice deleted branch old", deleted.String())
}

func TestPushFallsBackToPusher(t *testing.T) {
	body := `{"ref": "refs/heads/main", "commits": [], "pusher": {"name": "bob"},
		"repository": {"full_name": "acme/widget", "name": "widget"}}`
	msg, err := render(t, newEvent(t, "push", body))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(msg.String(), "[widget] bob pushed to main"))
}

func TestMissingIdentitySkips(t *testing.T) {
	_, err := render(t, newEvent(t, "issues", `{"action": "opened", "repository": {"full_name": "acme/widget"}}`))
	assert.True(t, errors.Is(err, ErrMissingIdentity))

	_, err = render(t, newEvent(t, "push", `{"ref": "refs/heads/main", "sender": {"login": "alice"}}`))
	assert.True(t, errors.Is(err, ErrMissingIdentity))
}

func TestMalformedSubFieldDegrades(t *testing.T) {
	// commits has the wrong shape: the event still renders, without commits.
	msg, err := render(t, newEvent(t, "push", `{"ref": "refs/heads/main", "commits": "oops", `+repoBlock+`}`))
	require.NoError(t, err)
	assert.Contains(t, msg.String(), "alice pushed to main")

	// a bad labels list inside the issue keeps number and title.
	body := `{"action": "opened", "issue": {"number": 7, "title": "Crash on start", "labels": "oops",
		"html_url": "https://github.com/acme/widget/issues/7"}, ` + repoBlock + `}`
	msg, err = render(t, newEvent(t, "issues", body))
	require.NoError(t, err)
	assert.Contains(t, msg.String(), "opened issue #7: Crash on start")
}

func TestColorsAppliedPositionally(t *testing.T) {
	msg, err := render(t, newEvent(t, "push", `{"ref": "refs/tags/v2", "created": true, "compare": "https://github.com/acme/widget/compare/v2", "commits": [
		{"id": "abcdef0123456789", "message": "release"}], `+repoBlock+`}`))
	require.NoError(t, err)

	scheme := model.ColorScheme{Repo: 1, Name: 2, Branch: 3, Tag: 4, Hash: 5, URL: 6}
	line := msg.Format(scheme)
	assert.Contains(t, line, ircfmt.Color("widget", 1))
	assert.Contains(t, line, ircfmt.Color("alice", 2))
	assert.Contains(t, line, ircfmt.Color("v2", 4))
	assert.Contains(t, line, ircfmt.Color("abcdef0", 5))
	assert.True(t, strings.HasSuffix(line, ircfmt.Color("https://git.io/short", 6)))

	branch, err := render(t, newEvent(t, "create", `{"ref": "feature", "ref_type": "branch", `+repoBlock+`}`))
	require.NoError(t, err)
	assert.Contains(t, branch.Format(scheme), ircfmt.Color("feature", 3))
}

func TestFreeTextTruncated(t *testing.T) {
	long := strings.Repeat("ü", 200)
	body := `{"action": "created", "issue": {"number": 3, "title": "t"}, "comment": {"body": "` + long + `"}, ` + repoBlock + `}`
	msg, err := render(t, newEvent(t, "issue_comment", body))
	require.NoError(t, err)

	line := msg.String()
	assert.Contains(t, line, strings.Repeat("ü", MaxTextRunes-1)+ircfmt.Ellipsis)
	assert.NotContains(t, line, strings.Repeat("ü", MaxTextRunes))
}

func TestLineBoundedWithoutSplittingRunes(t *testing.T) {
	m := &Message{}
	m.Text("[").Repo("widget").Text("] ").Name("alice").Text(" " + strings.Repeat("日本", 300))
	m.Link("https://git.io/short")

	line := m.Format(model.DefaultColorScheme)
	assert.LessOrEqual(t, len(line), ircfmt.MaxLineBytes)
	assert.True(t, utf8.ValidString(line))
	assert.True(t, strings.HasSuffix(line, ircfmt.Color("https://git.io/short", model.DefaultColorScheme.URL)))
}

func TestEventCatalogueLines(t *testing.T) {
	tests := []struct {
		event string
		body  string
		want  string
	}{
		{"ping", `{"zen": "Keep it logically awesome.", "hook": {"events": ["push", "issues"]}, ` + repoBlock + `}`,
			"[widget] alice configured a webhook for push, issues events: Keep it logically awesome."},
		{"create", `{"ref": "v1", "ref_type": "tag", ` + repoBlock + `}`, "[widget] alice created tag v1 https://git.io/short"},
		{"delete", `{"ref": "v1", "ref_type": "tag", ` + repoBlock + `}`, "[widget] alice deleted tag v1"},
		{"issues", `{"action": "labeled", "label": {"name": "bug"}, "issue": {"number": 4, "title": "Boom"}, ` + repoBlock + `}`,
			`[widget] alice labeled issue #4 with "bug": Boom`},
		{"issues", `{"action": "assigned", "assignee": {"login": "bob"}, "issue": {"number": 4, "title": "Boom"}, ` + repoBlock + `}`,
			"[widget] alice assigned bob to issue #4: Boom"},
		{"issue_comment", `{"action": "created", "issue": {"number": 9, "pull_request": {"url": "x"}}, "comment": {"body": "LGTM"}, ` + repoBlock + `}`,
			"[widget] alice commented on pull request #9: LGTM"},
		{"pull_request", `{"action": "closed", "number": 5, "pull_request": {"number": 5, "merged": true, "title": "Add thing",
			"head": {"ref": "feat"}, "base": {"ref": "main"}}, ` + repoBlock + `}`,
			"[widget] alice merged pull request #5 (feat → main): Add thing"},
		{"pull_request_review", `{"action": "submitted", "review": {"state": "approved"}, "pull_request": {"number": 5, "title": "Add thing"}, ` + repoBlock + `}`,
			"[widget] alice approved pull request #5: Add thing"},
		{"pull_request_review_comment", `{"action": "created", "comment": {"body": "nit", "path": "main.go"}, "pull_request": {"number": 5}, ` + repoBlock + `}`,
			"[widget] alice commented on pull request #5 at main.go: nit"},
		{"commit_comment", `{"action": "created", "comment": {"commit_id": "0123456789abcdef", "body": "why?"}, ` + repoBlock + `}`,
			"[widget] alice commented on commit 0123456: why?"},
		{"release", `{"action": "published", "release": {"tag_name": "v1.2.0", "name": "Spring", "prerelease": true}, ` + repoBlock + `}`,
			"[widget] alice published pre-release v1.2.0: Spring"},
		{"watch", `{"action": "started", ` + repoBlock + `}`, "[widget] alice starred the repository"},
		{"star", `{"action": "deleted", ` + repoBlock + `}`, "[widget] alice unstarred the repository"},
		{"fork", `{"forkee": {"full_name": "alice/widget"}, ` + repoBlock + `}`, "[widget] alice forked the repository to alice/widget"},
		{"member", `{"action": "added", "member": {"login": "carol"}, ` + repoBlock + `}`, "[widget] alice added carol as a collaborator"},
		{"gollum", `{"pages": [{"title": "Home", "action": "edited"}, {"title": "Setup", "action": "created"}], ` + repoBlock + `}`,
			"[widget] alice updated the wiki: edited Home, created Setup"},
	}

	for _, tc := range tests {
		t.Run(tc.event, func(t *testing.T) {
			msg, err := render(t, newEvent(t, tc.event, tc.body))
			require.NoError(t, err)
			assert.Equal(t, tc.want, msg.String())
		})
	}
}

func TestPublicLinksRepository(t *testing.T) {
	short := &fakeShortener{}
	reg := NewDefault(short, log.NewNop())
	renderer, _ := reg.Lookup("public")

	msg, err := renderer.Render(context.Background(), newEvent(t, "public", `{`+repoBlock+`}`))
	require.NoError(t, err)
	assert.Equal(t, "[widget] alice made the repository public https://git.io/short", msg.String())
	assert.Equal(t, []string{"https://github.com/acme/widget"}, short.calls)
}

func TestPreview(t *testing.T) {
	scheme := model.ColorScheme{Repo: 1, Name: 2, Branch: 3, Tag: 4, Hash: 5, URL: 6}
	line := Preview(scheme, "widget", "op")

	assert.Equal(t, "[widget] Example name: op tag: tag commit: c0mm17 branch: master url: http://git.io/", ircfmt.Strip(line))
	assert.Contains(t, line, ircfmt.Color("c0mm17", 5))
	assert.Contains(t, line, ircfmt.Color("master", 3))
}
