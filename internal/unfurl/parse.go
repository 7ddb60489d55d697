package unfurl

import (
	"regexp"
	"strconv"
	"strings"
)

// GitHub usernames are alphanumeric with single inner hyphens; repository
// names also allow dots.
const (
	userPattern = `[A-Za-z\d](?:[A-Za-z\d]|-[A-Za-z\d]){0,38}`
	repoPattern = `[A-Za-z0-9.\-_]+`
	basePattern = `https?://(?:www\.)?github\.com/(` + userPattern + `)/(` + repoPattern + `)`
)

var (
	issueRe   = regexp.MustCompile(basePattern + `/(?:issues|pull)/(\d+)(?:#issuecomment-(\d+))?`)
	commitRe  = regexp.MustCompile(basePattern + `/commit/([A-Za-z0-9\-]+)`)
	contentRe = regexp.MustCompile(basePattern + `/(?:blob|raw)/([^/\s]+)/([^#\s]+)(?:#L(\d+)(?:-L(\d+))?)?`)
	repoRe    = regexp.MustCompile(basePattern + `/?`)
	bareRe    = regexp.MustCompile(`(?:^|\s)/?#(\d+)\b`)
)

// trailingPunct is stripped from a URL that ends a sentence.
const trailingPunct = ".,;:!?)>'\""

// Parse returns the GitHub links in text in the order they appear. Each URL
// yields at most one link, preferring the most specific pattern.
func Parse(text string) []Link {
	var links []Link
	for _, field := range strings.Fields(text) {
		field = strings.TrimRight(field, trailingPunct)
		if link, ok := parseURL(field); ok {
			links = append(links, link)
		}
	}
	return links
}

func parseURL(s string) (Link, bool) {
	if m := issueRe.FindStringSubmatch(s); m != nil {
		link := Link{Kind: KindIssue, Owner: m[1], Name: m[2], Number: atoi(m[3])}
		if m[4] != "" {
			link.CommentID, _ = strconv.ParseInt(m[4], 10, 64)
		}
		return link, true
	}
	if m := commitRe.FindStringSubmatch(s); m != nil {
		return Link{Kind: KindCommit, Owner: m[1], Name: m[2], SHA: m[3]}, true
	}
	if m := contentRe.FindStringSubmatch(s); m != nil {
		return Link{
			Kind:      KindFile,
			Owner:     m[1],
			Name:      m[2],
			Ref:       m[3],
			Path:      m[4],
			StartLine: atoi(m[5]),
			EndLine:   atoi(m[6]),
		}, true
	}
	// A repository link must end right after the name.
	if loc := repoRe.FindStringSubmatchIndex(s); loc != nil && loc[1] == len(s) {
		return Link{Kind: KindRepo, Owner: s[loc[2]:loc[3]], Name: s[loc[4]:loc[5]]}, true
	}
	return Link{}, false
}

// References returns the bare #N issue numbers in text, without repeats.
func References(text string) []int {
	var out []int
	seen := map[int]bool{}
	for _, m := range bareRe.FindAllStringSubmatch(text, -1) {
		n := atoi(m[1])
		if n > 0 && !seen[n] {
			seen[n] = true
			out = append(out, n)
		}
	}
	return out
}

func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}
