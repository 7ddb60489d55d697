package render

import (
	"fmt"
	"strings"

	"repo-relay/pkg/ircfmt"
)

const (
	// MaxTextRunes bounds free text such as commit messages and comments.
	MaxTextRunes = 80
	// MaxListedItems is how many commits or pages a line lists before
	// summarizing the rest as "and N more".
	MaxListedItems = 3
	shortHashLen   = 7
	placeholder    = "(no title)"
)

func refName(ref string) string {
	for _, prefix := range []string{"refs/heads/", "refs/tags/"} {
		if strings.HasPrefix(ref, prefix) {
			return strings.TrimPrefix(ref, prefix)
		}
	}
	return ref
}

func isTagRef(ref string) bool {
	return strings.HasPrefix(ref, "refs/tags/")
}

func shortHash(sha string) string {
	if len(sha) > shortHashLen {
		return sha[:shortHashLen]
	}
	return sha
}

// excerpt is the first line of free text, bounded to MaxTextRunes.
func excerpt(s string) string {
	return ircfmt.Truncate(ircfmt.FirstLine(s), MaxTextRunes)
}

// flatten is the whole free text on one line, bounded to MaxTextRunes.
func flatten(s string) string {
	return ircfmt.Truncate(s, MaxTextRunes)
}

func orPlaceholder(s string) string {
	if strings.TrimSpace(s) == "" {
		return placeholder
	}
	return s
}

func plural(n int, singular, pluralForm string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, singular)
	}
	return fmt.Sprintf("%d %s", n, pluralForm)
}

// overflow returns the " and N more" suffix for a list of total items of
// which MaxListedItems were shown.
func overflow(total int) string {
	if total <= MaxListedItems {
		return ""
	}
	return fmt.Sprintf(" and %d more", total-MaxListedItems)
}

// humanize turns GitHub action names like review_requested into words.
func humanize(action string) string {
	return strings.ReplaceAll(action, "_", " ")
}
