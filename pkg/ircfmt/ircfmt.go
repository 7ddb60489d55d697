// Package ircfmt produces mIRC-style formatting control sequences and
// chat-safe truncation helpers.
package ircfmt

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Control characters understood by IRC clients.
const (
	CodeBold      = "\x02"
	CodeColor     = "\x03"
	CodeReset     = "\x0f"
	CodeMonospace = "\x11"
)

// Palette bounds for mIRC color indices.
const (
	MinColor     = 0
	MaxColor     = 15
	PaletteSize  = MaxColor + 1
	Ellipsis     = "…"
	MaxLineBytes = 400
)

// ValidColor reports whether c is inside the palette.
func ValidColor(c int) bool {
	return c >= MinColor && c <= MaxColor
}

// NormalizeColor folds any integer into the palette the same way the
// color command does (modulo, never negative).
func NormalizeColor(c int) int {
	c %= PaletteSize
	if c < 0 {
		c += PaletteSize
	}
	return c
}

// Color wraps text in a foreground color. The index is always written with
// two digits so text starting with a digit is not swallowed by the code.
func Color(text string, fg int) string {
	if text == "" {
		return ""
	}
	return fmt.Sprintf("%s%02d%s%s", CodeColor, NormalizeColor(fg), text, CodeColor)
}

// Bold wraps text in bold toggles.
func Bold(text string) string {
	if text == "" {
		return ""
	}
	return CodeBold + text + CodeBold
}

// Monospace wraps text in monospace toggles.
func Monospace(text string) string {
	if text == "" {
		return ""
	}
	return CodeMonospace + text + CodeMonospace
}

// Strip removes formatting control sequences, including color indices.
func Strip(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case CodeBold[0], CodeReset[0], CodeMonospace[0]:
			continue
		case CodeColor[0]:
			// up to two digits for fg, optionally ",NN" for bg
			j := i + 1
			for k := 0; k < 2 && j < len(s) && isDigit(s[j]); k++ {
				j++
			}
			if j < len(s)-1 && s[j] == ',' && isDigit(s[j+1]) {
				j += 2
				if j < len(s) && isDigit(s[j]) {
					j++
				}
			}
			i = j - 1
			continue
		}
		b.WriteByte(s[i])
	}
	return b.String()
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

// Truncate shortens s to at most maxRunes runes, appending an ellipsis
// when anything was cut. Newlines are folded to spaces first so the
// result is always a single chat line.
func Truncate(s string, maxRunes int) string {
	s = SingleLine(s)
	if maxRunes <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= maxRunes {
		return s
	}
	keep := maxRunes - 1
	if keep < 0 {
		keep = 0
	}
	n := 0
	for i := range s {
		if n == keep {
			return strings.TrimRight(s[:i], " ") + Ellipsis
		}
		n++
	}
	return s
}

// FirstLine returns the first line of s, marking that more followed.
func FirstLine(s string) string {
	s = strings.TrimSpace(s)
	if idx := strings.IndexAny(s, "\r\n"); idx >= 0 {
		return strings.TrimSpace(s[:idx]) + Ellipsis
	}
	return s
}

// SingleLine replaces line breaks and tabs with single spaces.
func SingleLine(s string) string {
	s = strings.TrimSpace(s)
	if !strings.ContainsAny(s, "\r\n\t") {
		return s
	}
	return strings.Join(strings.Fields(s), " ")
}

// TruncateBytes bounds s to maxBytes bytes without splitting a multi-byte
// character. An open color or bold run cut in half is closed with a reset.
func TruncateBytes(s string, maxBytes int) string {
	if len(s) <= maxBytes {
		return s
	}
	budget := maxBytes - len(Ellipsis) - len(CodeReset)
	if budget < 0 {
		budget = 0
	}
	cut := 0
	for i, r := range s {
		size := utf8.RuneLen(r)
		if size < 0 {
			size = 1
		}
		if i+size > budget {
			break
		}
		cut = i + size
	}
	return s[:cut] + CodeReset + Ellipsis
}
