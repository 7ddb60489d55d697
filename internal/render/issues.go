package render

import (
	"context"
	"fmt"

	"github.com/google/go-github/v68/github"

	"repo-relay/internal/model"
)

func issueKind(issue *github.Issue) string {
	if issue != nil && issue.IsPullRequest() {
		return "pull request"
	}
	return "issue"
}

func (b *builtin) issues(ctx context.Context, ev model.WebhookEvent) (Message, error) {
	var p github.IssuesEvent
	if err := b.decode(ctx, ev, &p); err != nil {
		return Message{}, err
	}
	m, err := header(ev, "")
	if err != nil {
		return Message{}, err
	}

	issue := p.GetIssue()
	subject := fmt.Sprintf("%s #%d", issueKind(issue), issue.GetNumber())

	switch action := p.GetAction(); action {
	case "assigned", "unassigned":
		m.Text(" " + action + " ").Name(p.GetAssignee().GetLogin())
		if action == "assigned" {
			m.Text(" to " + subject)
		} else {
			m.Text(" from " + subject)
		}
	case "labeled", "unlabeled":
		m.Text(fmt.Sprintf(" %s %s with %q", action, subject, p.GetLabel().GetName()))
	case "":
		m.Text(" updated " + subject)
	default:
		m.Text(" " + humanize(action) + " " + subject)
	}
	m.Text(": " + orPlaceholder(excerpt(issue.GetTitle())))
	m.Link(b.shorten(ctx, issue.GetHTMLURL()))
	return *m, nil
}

func (b *builtin) issueComment(ctx context.Context, ev model.WebhookEvent) (Message, error) {
	var p github.IssueCommentEvent
	if err := b.decode(ctx, ev, &p); err != nil {
		return Message{}, err
	}
	m, err := header(ev, "")
	if err != nil {
		return Message{}, err
	}

	issue := p.GetIssue()
	subject := fmt.Sprintf("%s #%d", issueKind(issue), issue.GetNumber())

	switch p.GetAction() {
	case "edited":
		m.Text(" edited a comment on " + subject)
	case "deleted":
		m.Text(" deleted a comment on " + subject)
	default:
		m.Text(" commented on " + subject)
	}
	m.Text(": " + orPlaceholder(flatten(p.GetComment().GetBody())))

	url := p.GetComment().GetHTMLURL()
	if url == "" {
		url = issue.GetHTMLURL()
	}
	m.Link(b.shorten(ctx, url))
	return *m, nil
}
