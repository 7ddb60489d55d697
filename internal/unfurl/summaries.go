package unfurl

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/google/go-github/v68/github"

	"repo-relay/pkg/ircfmt"
)

const (
	bodyRunes     = 250
	pushedFormat  = "2006-01-02 - 15:04:05MST"
	maxLanguages  = 3
	noDescription = "No description provided."
	noMessage     = "No commit message provided."
)

// Language shares cycle through these colors, the remainder takes the last.
var languageColors = []int{12, 13, 9, 8}

var (
	prefix    = ircfmt.Bold("[GitHub]")
	separator = ircfmt.Bold(" | ")
)

// issue: [GitHub] [owner/repo #12] open PR by alice: title | body
func (r *Resolver) issue(ctx context.Context, link Link) (string, error) {
	issue, _, err := r.gh.Issues.Get(ctx, link.Owner, link.Name, link.Number)
	if err != nil {
		return "", fmt.Errorf("get issue %d: %w", link.Number, err)
	}

	kind := "issue"
	state := issue.GetState()
	if issue.IsPullRequest() {
		kind = "PR"
		if state == "closed" {
			// Merge status only comes with the pull request itself.
			if pr, _, err := r.gh.PullRequests.Get(ctx, link.Owner, link.Name, link.Number); err == nil && pr.GetMerged() {
				state = "merged"
			}
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s [%s #%d] %s %s by %s: ", prefix, link.Repo(), link.Number, state, kind, issue.GetUser().GetLogin())
	if title := issue.GetTitle(); title != "" {
		b.WriteString(ircfmt.SingleLine(title))
		b.WriteString(separator)
	}
	b.WriteString(shortBody(issue.GetBody()))
	if link.Bare {
		b.WriteString(separator)
		b.WriteString(r.shorten(ctx, issue.GetHTMLURL()))
	}
	return b.String(), nil
}

// issueComment: [GitHub] [owner/repo #12] comment by bob: body
func (r *Resolver) issueComment(ctx context.Context, link Link) (string, error) {
	comment, _, err := r.gh.Issues.GetComment(ctx, link.Owner, link.Name, link.CommentID)
	if err != nil {
		return "", fmt.Errorf("get comment %d: %w", link.CommentID, err)
	}
	return fmt.Sprintf("%s [%s #%d] comment by %s: %s",
		prefix, link.Repo(), link.Number, comment.GetUser().GetLogin(), shortBody(comment.GetBody())), nil
}

// commit: [GitHub] [owner/repo] alice: subject | 12 changes in 3 files
func (r *Resolver) commit(ctx context.Context, link Link) (string, error) {
	commit, _, err := r.gh.Repositories.GetCommit(ctx, link.Owner, link.Name, link.SHA, nil)
	if err != nil {
		return "", fmt.Errorf("get commit %s: %w", link.SHA, err)
	}

	author := commit.GetAuthor().GetLogin()
	if author == "" {
		author = commit.GetCommit().GetAuthor().GetName()
	}
	message := ircfmt.FirstLine(commit.GetCommit().GetMessage())
	if strings.TrimSpace(message) == "" {
		message = noMessage
	}

	files := len(commit.Files)
	noun := "files"
	if files == 1 {
		noun = "file"
	}
	return fmt.Sprintf("%s [%s] %s: %s%s%d changes in %d %s",
		prefix, link.Repo(), author, message, separator, commit.GetStats().GetTotal(), files, noun), nil
}

// file: [GitHub] [owner/repo] path @ ref | L12: snippet […] (to L20)
func (r *Resolver) file(ctx context.Context, link Link) (string, error) {
	content, _, _, err := r.gh.Repositories.GetContents(ctx, link.Owner, link.Name, link.Path,
		&github.RepositoryContentGetOptions{Ref: link.Ref})
	if err != nil {
		return "", fmt.Errorf("get contents %s: %w", link.Path, err)
	}
	if content == nil || content.GetType() != "file" {
		return "", nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s [%s] %s @ %s", prefix, link.Repo(), content.GetPath(), link.Ref)

	if link.StartLine > 0 {
		if snippet := lineAt(content, link.StartLine); snippet != "" {
			fmt.Fprintf(&b, " | L%d: %s", link.StartLine, ircfmt.Monospace(snippet))
			if link.EndLine > 0 {
				fmt.Fprintf(&b, " […] (to L%d)", link.EndLine)
			}
		}
	}
	return b.String(), nil
}

// lineAt returns line n (1-based) of a file, or "" for a missing line or
// undecodable content.
func lineAt(content *github.RepositoryContent, n int) string {
	text, err := content.GetContent()
	if err != nil {
		return ""
	}
	lines := strings.Split(text, "\n")
	if n > len(lines) {
		return ""
	}
	return strings.TrimRight(lines[n-1], "\r")
}

// repository: [GitHub] owner/repo - description | 80.0% Go | Last Push: ... | Stargazers: 3 ...
func (r *Resolver) repository(ctx context.Context, link Link) (string, error) {
	repo, _, err := r.gh.Repositories.Get(ctx, link.Owner, link.Name)
	if err != nil {
		return "", fmt.Errorf("get repository: %w", err)
	}
	languages, _, err := r.gh.Repositories.ListLanguages(ctx, link.Owner, link.Name)
	if err != nil {
		return "", fmt.Errorf("list languages: %w", err)
	}

	var b strings.Builder
	b.WriteString(prefix)
	b.WriteString(" ")
	b.WriteString(repo.GetFullName())
	if desc := repo.GetDescription(); desc != "" {
		b.WriteString(" - ")
		b.WriteString(ircfmt.SingleLine(desc))
	}
	if langs := languageSummary(languages); langs != "" {
		b.WriteString(" | ")
		b.WriteString(langs)
	}
	fmt.Fprintf(&b, " | Last Push: %s | Stargazers: %d | Watchers: %d | Forks: %d | Network: %d | Open Issues: %d",
		repo.GetPushedAt().UTC().Format(pushedFormat),
		repo.GetStargazersCount(),
		repo.GetSubscribersCount(),
		repo.GetForksCount(),
		repo.GetNetworkCount(),
		repo.GetOpenIssuesCount(),
	)
	return b.String(), nil
}

// languageSummary lists the largest languages by share, folding the rest
// into "Other".
func languageSummary(languages map[string]int) string {
	type share struct {
		name  string
		bytes int
	}
	total := 0
	shares := make([]share, 0, len(languages))
	for name, n := range languages {
		shares = append(shares, share{name, n})
		total += n
	}
	if total == 0 {
		return ""
	}
	sort.Slice(shares, func(i, j int) bool {
		if shares[i].bytes != shares[j].bytes {
			return shares[i].bytes > shares[j].bytes
		}
		return shares[i].name < shares[j].name
	})

	percent := func(n int) string {
		return strconv.FormatFloat(float64(n)/float64(total)*100, 'f', 1, 64) + "%"
	}

	var parts []string
	for i, s := range shares {
		if i == maxLanguages {
			rest := 0
			for _, other := range shares[i:] {
				rest += other.bytes
			}
			parts = append(parts, ircfmt.Color(percent(rest)+" Other", languageColors[i]))
			break
		}
		parts = append(parts, ircfmt.Color(percent(s.bytes)+" "+s.name, languageColors[i]))
	}
	return strings.Join(parts, " ")
}

func shortBody(body string) string {
	if strings.TrimSpace(body) == "" {
		return noDescription
	}
	return ircfmt.Truncate(ircfmt.FirstLine(body), bodyRunes)
}

func (r *Resolver) shorten(ctx context.Context, url string) string {
	if r.short == nil || url == "" {
		return url
	}
	return r.short.Shorten(ctx, url)
}
