package ircfmt

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestColorPadsIndex(t *testing.T) {
	assert.Equal(t, "\x03061abc\x03", Color("1abc", 6))
	assert.Equal(t, "\x0313repo\x03", Color("repo", 13))
	assert.Equal(t, "", Color("", 4))
}

func TestNormalizeColor(t *testing.T) {
	tests := map[int]int{0: 0, 15: 15, 16: 0, 29: 13, -1: 15}
	for in, want := range tests {
		assert.Equal(t, want, NormalizeColor(in), "input %d", in)
	}
}

func TestValidColor(t *testing.T) {
	assert.True(t, ValidColor(0))
	assert.True(t, ValidColor(15))
	assert.False(t, ValidColor(16))
	assert.False(t, ValidColor(-1))
}

func TestStrip(t *testing.T) {
	in := Bold("[GitHub]") + " " + Color("repo", 13) + " \x0304,01x\x03"
	assert.Equal(t, "[GitHub] repo x", Strip(in))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", Truncate("short", 10))
	assert.Equal(t, "abcd…", Truncate("abcdefghij", 5))
	assert.Equal(t, "line one line two", Truncate("line one\nline two", 50))

	out := Truncate(strings.Repeat("é", 20), 5)
	assert.True(t, utf8.ValidString(out))
	assert.Equal(t, 5, utf8.RuneCountInString(out))
}

func TestFirstLine(t *testing.T) {
	assert.Equal(t, "fix bug…", FirstLine("fix bug\n\nlong body"))
	assert.Equal(t, "single", FirstLine("  single "))
}

func TestTruncateBytesKeepsRunesWhole(t *testing.T) {
	s := strings.Repeat("日本", 100)
	out := TruncateBytes(s, 50)
	assert.LessOrEqual(t, len(out), 50)
	assert.True(t, utf8.ValidString(out))
	assert.True(t, strings.HasSuffix(out, CodeReset+Ellipsis))

	assert.Equal(t, "fits", TruncateBytes("fits", 50))
}
