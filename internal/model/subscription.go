package model

import (
	"fmt"
	"time"
)

// ColorSlots is the number of customizable colors in a scheme.
const ColorSlots = 6

// ColorScheme holds the six mIRC color indices applied to rendered lines,
// in the order repo, name, branch, tag, hash, url.
type ColorScheme struct {
	Repo   int
	Name   int
	Branch int
	Tag    int
	Hash   int
	URL    int
}

// DefaultColorScheme is used until a channel customizes its colors.
var DefaultColorScheme = ColorScheme{
	Repo:   13,
	Name:   15,
	Branch: 6,
	Tag:    6,
	Hash:   14,
	URL:    2,
}

// Slice returns the scheme in positional order.
func (s ColorScheme) Slice() []int {
	return []int{s.Repo, s.Name, s.Branch, s.Tag, s.Hash, s.URL}
}

// ColorSchemeFromSlice builds a scheme from exactly six positional values.
func ColorSchemeFromSlice(colors []int) (ColorScheme, error) {
	if len(colors) != ColorSlots {
		return ColorScheme{}, fmt.Errorf("color scheme needs %d values, got %d", ColorSlots, len(colors))
	}
	return ColorScheme{
		Repo:   colors[0],
		Name:   colors[1],
		Branch: colors[2],
		Tag:    colors[3],
		Hash:   colors[4],
		URL:    colors[5],
	}, nil
}

// Subscription pairs a channel with a repository. Colors is nil until the
// channel customizes them.
type Subscription struct {
	Channel   string
	Repo      string
	Enabled   bool
	Colors    *ColorScheme
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Scheme returns the channel's colors, falling back to the default.
func (s Subscription) Scheme() ColorScheme {
	if s.Colors == nil {
		return DefaultColorScheme
	}
	return *s.Colors
}
