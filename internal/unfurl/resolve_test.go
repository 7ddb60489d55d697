package unfurl

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"repo-relay/internal/subscription"
	"repo-relay/pkg/githubclient"
	"repo-relay/pkg/ircfmt"
	"repo-relay/pkg/log"
)

type fakeChannels map[string]string

func (f fakeChannels) GetChannelRepo(_ context.Context, channel string) (string, error) {
	if repo, ok := f[channel]; ok {
		return repo, nil
	}
	return "", subscription.ErrNoChannelRepo
}

type fixedShortener struct{}

func (fixedShortener) Shorten(context.Context, string) string { return "https://git.io/s" }

func fakeAPI() http.Handler {
	mux := http.NewServeMux()
	reply := func(path, body string) {
		mux.HandleFunc("/api/v3"+path, func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			fmt.Fprint(w, body)
		})
	}

	reply("/repos/acme/widget/issues/12", `{"number": 12, "state": "open", "title": "Crash on start",
		"body": "Steps:\n1. run it", "user": {"login": "alice"}, "html_url": "https://github.com/acme/widget/issues/12"}`)
	reply("/repos/acme/widget/issues/7", `{"number": 7, "state": "closed", "title": "Fix crash", "body": "",
		"user": {"login": "bob"}, "pull_request": {"url": "x"}, "html_url": "https://github.com/acme/widget/pull/7"}`)
	reply("/repos/acme/widget/pulls/7", `{"number": 7, "merged": true}`)
	reply("/repos/acme/widget/issues/comments/99", `{"id": 99, "body": "Looks good", "user": {"login": "carol"}}`)
	reply("/repos/acme/widget/commits/deadbeef", `{"sha": "deadbeef", "author": null,
		"commit": {"message": "Add thing\n\nlonger text", "author": {"name": "Dana"}},
		"stats": {"total": 12}, "files": [{"filename": "a.go"}, {"filename": "b.go"}]}`)
	reply("/repos/acme/widget/contents/main.go", fmt.Sprintf(`{"type": "file", "path": "main.go", "encoding": "base64", "content": %q}`,
		base64.StdEncoding.EncodeToString([]byte("package main\n\nfunc main() {}\n"))))
	reply("/repos/acme/widget/contents/docs", `[{"type": "file", "path": "docs/a.md"}]`)
	reply("/repos/acme/widget", `{"full_name": "acme/widget", "description": "A widget", "pushed_at": "2024-05-01T15:30:00Z",
		"stargazers_count": 3, "subscribers_count": 2, "forks_count": 1, "network_count": 1, "open_issues_count": 4}`)
	reply("/repos/acme/widget/languages", `{"Go": 800, "Shell": 100, "Makefile": 60, "Dockerfile": 40}`)
	mux.HandleFunc("/api/v3/repos/acme/missing/issues/1", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprint(w, `{"message": "Not Found"}`)
	})
	return mux
}

func newTestResolver(t *testing.T) *Resolver {
	t.Helper()
	srv := httptest.NewServer(fakeAPI())
	t.Cleanup(srv.Close)

	gh, err := githubclient.New(context.Background(), githubclient.Options{APIURL: srv.URL})
	require.NoError(t, err)
	return New(gh, fakeChannels{"#dev": "acme/widget"}, fixedShortener{}, log.NewNop())
}

func resolveOne(t *testing.T, r *Resolver, channel, text string) string {
	t.Helper()
	lines, err := r.Resolve(context.Background(), channel, text)
	require.NoError(t, err)
	require.Len(t, lines, 1)
	return ircfmt.Strip(lines[0])
}

func TestResolveIssue(t *testing.T) {
	r := newTestResolver(t)
	assert.Equal(t, "[GitHub] [acme/widget #12] open issue by alice: Crash on start | Steps:…",
		resolveOne(t, r, "#dev", "https://github.com/acme/widget/issues/12"))
}

func TestResolveMergedPullRequest(t *testing.T) {
	r := newTestResolver(t)
	assert.Equal(t, "[GitHub] [acme/widget #7] merged PR by bob: Fix crash | No description provided.",
		resolveOne(t, r, "#dev", "https://github.com/acme/widget/pull/7"))
}

func TestResolveComment(t *testing.T) {
	r := newTestResolver(t)
	assert.Equal(t, "[GitHub] [acme/widget #7] comment by carol: Looks good",
		resolveOne(t, r, "#dev", "https://github.com/acme/widget/pull/7#issuecomment-99"))
}

func TestResolveBareReference(t *testing.T) {
	r := newTestResolver(t)
	assert.Equal(t, "[GitHub] [acme/widget #12] open issue by alice: Crash on start | Steps:… | https://git.io/s",
		resolveOne(t, r, "#dev", "is #12 fixed?"))

	lines, err := r.Resolve(context.Background(), "#elsewhere", "is #12 fixed?")
	require.NoError(t, err)
	assert.Empty(t, lines)
}

func TestResolveCommit(t *testing.T) {
	r := newTestResolver(t)
	assert.Equal(t, "[GitHub] [acme/widget] Dana: Add thing… | 12 changes in 2 files",
		resolveOne(t, r, "", "https://github.com/acme/widget/commit/deadbeef"))
}

func TestResolveFile(t *testing.T) {
	r := newTestResolver(t)
	assert.Equal(t, "[GitHub] [acme/widget] main.go @ main | L3: func main() {} […] (to L4)",
		resolveOne(t, r, "", "https://github.com/acme/widget/blob/main/main.go#L3-L4"))

	lines, err := r.Resolve(context.Background(), "", "https://github.com/acme/widget/tree/main/docs https://github.com/acme/widget/blob/main/docs")
	require.NoError(t, err)
	assert.Empty(t, lines)
}

func TestResolveRepository(t *testing.T) {
	r := newTestResolver(t)
	assert.Equal(t, "[GitHub] acme/widget - A widget | 80.0% Go 10.0% Shell 6.0% Makefile 4.0% Other"+
		" | Last Push: 2024-05-01 - 15:30:00UTC | Stargazers: 3 | Watchers: 2 | Forks: 1 | Network: 1 | Open Issues: 4",
		resolveOne(t, r, "", "https://github.com/acme/widget"))
}

func TestResolveAPIError(t *testing.T) {
	r := newTestResolver(t)
	assert.Equal(t, APIErrorLine, resolveOne(t, r, "", "https://github.com/acme/missing/issues/1"))
}

func TestLanguageSummaryEmpty(t *testing.T) {
	assert.Empty(t, languageSummary(nil))
}
