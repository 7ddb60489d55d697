package render

import (
	"context"
	"fmt"

	"github.com/google/go-github/v68/github"

	"repo-relay/internal/model"
)

func prNumber(pr *github.PullRequest, fallback int) int {
	if n := pr.GetNumber(); n != 0 {
		return n
	}
	return fallback
}

func (b *builtin) pullRequest(ctx context.Context, ev model.WebhookEvent) (Message, error) {
	var p github.PullRequestEvent
	if err := b.decode(ctx, ev, &p); err != nil {
		return Message{}, err
	}
	m, err := header(ev, "")
	if err != nil {
		return Message{}, err
	}

	pr := p.GetPullRequest()
	subject := fmt.Sprintf("pull request #%d", prNumber(pr, p.GetNumber()))

	switch action := p.GetAction(); action {
	case "closed":
		if pr.GetMerged() {
			m.Text(" merged " + subject)
		} else {
			m.Text(" closed " + subject)
		}
	case "synchronize":
		m.Text(" updated " + subject)
	case "review_requested", "review_request_removed":
		reviewer := p.GetRequestedReviewer().GetLogin()
		if reviewer == "" {
			reviewer = p.GetRequestedTeam().GetName()
		}
		if action == "review_requested" {
			m.Text(" requested a review from ").Name(reviewer).Text(" on " + subject)
		} else {
			m.Text(" removed the review request for ").Name(reviewer).Text(" on " + subject)
		}
	case "labeled", "unlabeled":
		m.Text(fmt.Sprintf(" %s %s with %q", action, subject, p.GetLabel().GetName()))
	case "":
		m.Text(" updated " + subject)
	default:
		m.Text(" " + humanize(action) + " " + subject)
	}

	if head, base := pr.GetHead().GetRef(), pr.GetBase().GetRef(); head != "" && base != "" {
		m.Text(" (").Branch(head).Text(" → ").Branch(base).Text(")")
	}
	m.Text(": " + orPlaceholder(excerpt(pr.GetTitle())))
	m.Link(b.shorten(ctx, pr.GetHTMLURL()))
	return *m, nil
}

func (b *builtin) pullRequestReview(ctx context.Context, ev model.WebhookEvent) (Message, error) {
	var p github.PullRequestReviewEvent
	if err := b.decode(ctx, ev, &p); err != nil {
		return Message{}, err
	}
	m, err := header(ev, "")
	if err != nil {
		return Message{}, err
	}

	pr := p.GetPullRequest()
	review := p.GetReview()
	subject := fmt.Sprintf("pull request #%d", pr.GetNumber())

	switch {
	case p.GetAction() == "dismissed":
		m.Text(" dismissed a review on " + subject)
	case p.GetAction() == "edited":
		m.Text(" edited a review on " + subject)
	default:
		switch review.GetState() {
		case "approved":
			m.Text(" approved " + subject)
		case "changes_requested":
			m.Text(" requested changes on " + subject)
		default:
			m.Text(" reviewed " + subject)
		}
	}

	if body := flatten(review.GetBody()); body != "" {
		m.Text(": " + body)
	} else {
		m.Text(": " + orPlaceholder(excerpt(pr.GetTitle())))
	}

	url := review.GetHTMLURL()
	if url == "" {
		url = pr.GetHTMLURL()
	}
	m.Link(b.shorten(ctx, url))
	return *m, nil
}

func (b *builtin) pullRequestReviewComment(ctx context.Context, ev model.WebhookEvent) (Message, error) {
	var p github.PullRequestReviewCommentEvent
	if err := b.decode(ctx, ev, &p); err != nil {
		return Message{}, err
	}
	m, err := header(ev, "")
	if err != nil {
		return Message{}, err
	}

	comment := p.GetComment()
	subject := fmt.Sprintf("pull request #%d", p.GetPullRequest().GetNumber())

	switch p.GetAction() {
	case "edited":
		m.Text(" edited a review comment on " + subject)
	case "deleted":
		m.Text(" deleted a review comment on " + subject)
	default:
		m.Text(" commented on " + subject)
	}
	if path := comment.GetPath(); path != "" {
		m.Text(" at " + path)
	}
	m.Text(": " + orPlaceholder(flatten(comment.GetBody())))

	url := comment.GetHTMLURL()
	if url == "" {
		url = p.GetPullRequest().GetHTMLURL()
	}
	m.Link(b.shorten(ctx, url))
	return *m, nil
}
