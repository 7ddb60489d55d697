package subscription

import "fmt"

// LinkReplies are the chat lines confirming a Link call.
func LinkReplies(out LinkOutput, helpPrefix string) []string {
	sub := out.Subscription
	var lines []string
	switch {
	case out.Created && sub.Enabled:
		lines = append(lines, fmt.Sprintf("Successfully enabled listening for %s's events in %s.", sub.Repo, sub.Channel))
	case sub.Enabled:
		lines = append(lines, fmt.Sprintf("Successfully enabled the subscription to %s's events", sub.Repo))
	default:
		lines = append(lines, fmt.Sprintf("Successfully disabled the subscription to %s's events", sub.Repo))
	}

	if sub.Enabled && out.AuthorizeURL != "" {
		lines = append(lines,
			"Great! Please allow me to create my webhook by authorizing via this link: "+out.AuthorizeURL,
			fmt.Sprintf("Once that webhook is successfully created, I'll post a message in here. "+
				"Give me about a minute or so to set it up after you authorize. "+
				"You can configure the colors that I use to display webhooks with %sgh-hook-color", helpPrefix),
		)
	}
	return lines
}

// ChannelRepoReply confirms a SetChannelRepo call.
func ChannelRepoReply(channel, repo string) string {
	return fmt.Sprintf("Set linked repo for %s to %s.", channel, repo)
}
