package subscription

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"repo-relay/internal/model"
)

func TestLinkReplies(t *testing.T) {
	sub := model.Subscription{Channel: "#dev", Repo: "acme/widget", Enabled: true}

	lines := LinkReplies(LinkOutput{Subscription: sub, Created: true, AuthorizeURL: "https://git.io/a"}, ".")
	assert.Len(t, lines, 3)
	assert.Equal(t, "Successfully enabled listening for acme/widget's events in #dev.", lines[0])
	assert.Contains(t, lines[1], "https://git.io/a")
	assert.Contains(t, lines[2], ".gh-hook-color")

	lines = LinkReplies(LinkOutput{Subscription: sub}, ".")
	assert.Equal(t, []string{"Successfully enabled the subscription to acme/widget's events"}, lines)

	sub.Enabled = false
	lines = LinkReplies(LinkOutput{Subscription: sub, AuthorizeURL: "https://git.io/a"}, ".")
	assert.Equal(t, []string{"Successfully disabled the subscription to acme/widget's events"}, lines)
}

func TestChannelRepoReply(t *testing.T) {
	assert.Equal(t, "Set linked repo for #dev to acme/widget.", ChannelRepoReply("#dev", "acme/widget"))
}
