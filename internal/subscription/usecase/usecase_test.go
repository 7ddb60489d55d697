package usecase

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"repo-relay/internal/model"
	"repo-relay/internal/subscription"
	"repo-relay/internal/subscription/repository/sqldb"
	"repo-relay/pkg/ircfmt"
	"repo-relay/pkg/log"
)

type fakeAuthorizer struct {
	err   error
	repo  string
	state string
}

func (f *fakeAuthorizer) AuthorizeURL(_ context.Context, repo, channel string) (string, error) {
	f.repo, f.state = repo, repo+":"+channel
	if f.err != nil {
		return "", f.err
	}
	return "https://git.io/auth", nil
}

func newTestUseCase(t *testing.T, auth subscription.Authorizer) *implUseCase {
	t.Helper()
	r, err := sqldb.Open(context.Background(), sqldb.Options{Path: filepath.Join(t.TempDir(), "relay.db")}, log.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { r.Close() })
	return New(r, auth, log.NewNop())
}

func TestLink(t *testing.T) {
	ctx := context.Background()
	auth := &fakeAuthorizer{}
	uc := newTestUseCase(t, auth)

	out, err := uc.Link(ctx, subscription.LinkInput{Channel: "#Dev", Repo: "Acme/Widget", Enabled: true})
	require.NoError(t, err)
	assert.True(t, out.Created)
	assert.Equal(t, "#dev", out.Subscription.Channel)
	assert.Equal(t, "acme/widget", out.Subscription.Repo)
	assert.Equal(t, "https://git.io/auth", out.AuthorizeURL)
	assert.Equal(t, "acme/widget:#dev", auth.state)

	out, err = uc.Link(ctx, subscription.LinkInput{Channel: "#dev", Repo: "acme/widget", Enabled: false})
	require.NoError(t, err)
	assert.False(t, out.Created)
	assert.Empty(t, out.AuthorizeURL)

	sub, err := uc.Get(ctx, "#DEV", "ACME/widget")
	require.NoError(t, err)
	assert.False(t, sub.Enabled)
}

func TestLinkKeepsSubscriptionWhenAuthorizeFails(t *testing.T) {
	uc := newTestUseCase(t, &fakeAuthorizer{err: errors.New("no client id")})

	out, err := uc.Link(context.Background(), subscription.LinkInput{Channel: "#dev", Repo: "acme/widget", Enabled: true})
	require.NoError(t, err)
	assert.True(t, out.Subscription.Enabled)
	assert.Empty(t, out.AuthorizeURL)
}

func TestLinkValidatesRepo(t *testing.T) {
	uc := newTestUseCase(t, nil)
	ctx := context.Background()

	for _, bad := range []string{"widget", "https://github.com/acme/widget", "acme/", "/widget", "a/b/c"} {
		_, err := uc.Link(ctx, subscription.LinkInput{Channel: "#dev", Repo: bad, Enabled: true})
		assert.ErrorIs(t, err, subscription.ErrInvalidRepo, bad)
	}
	_, err := uc.Link(ctx, subscription.LinkInput{Channel: " ", Repo: "acme/widget"})
	assert.ErrorIs(t, err, subscription.ErrInvalidChannel)
}

func TestSetColors(t *testing.T) {
	ctx := context.Background()
	uc := newTestUseCase(t, nil)

	_, err := uc.SetColors(ctx, subscription.SetColorsInput{Channel: "#dev", Repo: "acme/widget", Colors: []string{"1", "2", "3", "4", "5", "6"}})
	assert.ErrorIs(t, err, subscription.ErrNotSubscribed)
	_, err = uc.Get(ctx, "#dev", "acme/widget")
	assert.ErrorIs(t, err, subscription.ErrNotSubscribed)

	_, err = uc.Link(ctx, subscription.LinkInput{Channel: "#dev", Repo: "acme/widget", Enabled: true})
	require.NoError(t, err)

	out, err := uc.SetColors(ctx, subscription.SetColorsInput{
		Channel: "#dev", Repo: "acme/widget", Nick: "op",
		Colors: []string{"1", "2", "3", "4", "5", "22"},
	})
	require.NoError(t, err)
	want := model.ColorScheme{Repo: 1, Name: 2, Branch: 3, Tag: 4, Hash: 5, URL: 6}
	require.NotNil(t, out.Subscription.Colors)
	assert.Equal(t, want, *out.Subscription.Colors)
	assert.Equal(t, "[acme/widget] Example name: op tag: tag commit: c0mm17 branch: master url: http://git.io/", ircfmt.Strip(out.Preview))

	sub, err := uc.Get(ctx, "#dev", "acme/widget")
	require.NoError(t, err)
	assert.Equal(t, want, sub.Scheme())
}

func TestSetColorsRejectsBadInput(t *testing.T) {
	ctx := context.Background()
	uc := newTestUseCase(t, nil)
	_, err := uc.Link(ctx, subscription.LinkInput{Channel: "#dev", Repo: "acme/widget", Enabled: true})
	require.NoError(t, err)

	_, err = uc.SetColors(ctx, subscription.SetColorsInput{Channel: "#dev", Repo: "acme/widget", Colors: []string{"1", "2", "3"}})
	assert.ErrorIs(t, err, subscription.ErrInvalidColorCount)

	_, err = uc.SetColors(ctx, subscription.SetColorsInput{Channel: "#dev", Repo: "acme/widget", Colors: []string{"1", "2", "3", "4", "5", "red"}})
	assert.ErrorIs(t, err, subscription.ErrInvalidColor)

	// Rejected updates leave the default scheme in place.
	sub, err := uc.Get(ctx, "#dev", "acme/widget")
	require.NoError(t, err)
	assert.Nil(t, sub.Colors)
	assert.Equal(t, model.DefaultColorScheme, sub.Scheme())
}

func TestListEnabledForRepo(t *testing.T) {
	ctx := context.Background()
	uc := newTestUseCase(t, nil)

	for _, in := range []subscription.LinkInput{
		{Channel: "#a", Repo: "acme/widget", Enabled: true},
		{Channel: "#b", Repo: "acme/widget", Enabled: false},
		{Channel: "#c", Repo: "acme/gadget", Enabled: true},
	} {
		_, err := uc.Link(ctx, in)
		require.NoError(t, err)
	}

	subs, err := uc.ListEnabledForRepo(ctx, "ACME/Widget")
	require.NoError(t, err)
	require.Len(t, subs, 1)
	assert.Equal(t, "#a", subs[0].Channel)

	subs, err = uc.ListEnabledForRepo(ctx, "")
	require.NoError(t, err)
	assert.Empty(t, subs)

	all, err := uc.List(ctx, subscription.ListInput{Repo: "acme/widget"})
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestChannelRepo(t *testing.T) {
	ctx := context.Background()
	uc := newTestUseCase(t, nil)

	_, err := uc.GetChannelRepo(ctx, "#dev")
	assert.ErrorIs(t, err, subscription.ErrNoChannelRepo)

	require.NoError(t, uc.SetChannelRepo(ctx, "#Dev", "Acme/Widget"))
	got, err := uc.GetChannelRepo(ctx, "#dev")
	require.NoError(t, err)
	assert.Equal(t, "acme/widget", got)

	assert.ErrorIs(t, uc.SetChannelRepo(ctx, "#dev", "widget"), subscription.ErrInvalidRepo)
}
