package usecase

import (
	"strconv"
	"strings"

	"repo-relay/internal/model"
	"repo-relay/internal/subscription"
	"repo-relay/pkg/ircfmt"
)

// normalizeRepo validates an owner/name identity as typed by an operator.
func normalizeRepo(raw string) (string, error) {
	lower := strings.ToLower(strings.TrimSpace(raw))
	if strings.Contains(lower, "http://") || strings.Contains(lower, "https://") {
		return "", subscription.ErrInvalidRepo
	}
	repo := model.NormalizeRepo(lower)
	owner, name, ok := strings.Cut(repo, "/")
	if !ok || owner == "" || name == "" || strings.Contains(name, "/") || strings.ContainsAny(repo, " \t") {
		return "", subscription.ErrInvalidRepo
	}
	return repo, nil
}

func normalizeChannel(raw string) (string, error) {
	channel := model.NormalizeChannel(raw)
	if channel == "" || strings.ContainsAny(channel, " ,\x07") {
		return "", subscription.ErrInvalidChannel
	}
	return channel, nil
}

// parseColors turns exactly six integer arguments into a scheme, folding
// each value into the palette.
func parseColors(args []string) (model.ColorScheme, error) {
	values := make([]int, 0, len(args))
	for _, arg := range args {
		n, err := strconv.Atoi(strings.TrimSpace(arg))
		if err != nil {
			return model.ColorScheme{}, subscription.ErrInvalidColor
		}
		values = append(values, ircfmt.NormalizeColor(n))
	}
	if len(values) != model.ColorSlots {
		return model.ColorScheme{}, subscription.ErrInvalidColorCount
	}
	return model.ColorSchemeFromSlice(values)
}
