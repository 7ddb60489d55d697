package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestColorSchemeRoundTrip(t *testing.T) {
	s, err := ColorSchemeFromSlice([]int{1, 2, 3, 4, 5, 6})
	require.NoError(t, err)
	assert.Equal(t, ColorScheme{Repo: 1, Name: 2, Branch: 3, Tag: 4, Hash: 5, URL: 6}, s)
	assert.Equal(t, []int{1, 2, 3, 4, 5, 6}, s.Slice())
}

func TestColorSchemeFromSliceRejectsPartial(t *testing.T) {
	_, err := ColorSchemeFromSlice([]int{1, 2, 3})
	assert.Error(t, err)
}

func TestSubscriptionSchemeDefaults(t *testing.T) {
	assert.Equal(t, DefaultColorScheme, Subscription{}.Scheme())

	custom := ColorScheme{Repo: 1}
	assert.Equal(t, custom, Subscription{Colors: &custom}.Scheme())
}

func TestRepoHelpers(t *testing.T) {
	assert.Equal(t, "acme/widget", NormalizeRepo(" Acme/Widget/ "))
	assert.Equal(t, "widget", RepoShortName("acme/widget"))
	assert.Equal(t, "widget", EnvelopeRepo{FullName: "Acme/widget"}.ShortName())
	assert.Equal(t, "#chan", NormalizeChannel(" #Chan"))
}
