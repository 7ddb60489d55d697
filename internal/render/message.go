package render

import (
	"strings"

	"repo-relay/internal/model"
	"repo-relay/pkg/ircfmt"
)

// Role decides which slot of a color scheme a segment is painted with.
type Role int

const (
	RolePlain Role = iota
	RoleRepo
	RoleName
	RoleBranch
	RoleTag
	RoleHash
	RoleURL
)

// Color returns the scheme entry for the role, or -1 for plain text.
func (r Role) Color(s model.ColorScheme) int {
	switch r {
	case RoleRepo:
		return s.Repo
	case RoleName:
		return s.Name
	case RoleBranch:
		return s.Branch
	case RoleTag:
		return s.Tag
	case RoleHash:
		return s.Hash
	case RoleURL:
		return s.URL
	default:
		return -1
	}
}

type Segment struct {
	Text string
	Role Role
}

// Message is a rendered event before colors are applied. The same message
// is formatted once per subscribed channel with that channel's scheme.
type Message struct {
	segments []Segment
	link     string
}

func (m *Message) add(role Role, text string) *Message {
	if text != "" {
		m.segments = append(m.segments, Segment{Text: text, Role: role})
	}
	return m
}

func (m *Message) Text(s string) *Message   { return m.add(RolePlain, s) }
func (m *Message) Repo(s string) *Message   { return m.add(RoleRepo, s) }
func (m *Message) Name(s string) *Message   { return m.add(RoleName, s) }
func (m *Message) Branch(s string) *Message { return m.add(RoleBranch, s) }
func (m *Message) Tag(s string) *Message    { return m.add(RoleTag, s) }
func (m *Message) Hash(s string) *Message   { return m.add(RoleHash, s) }
func (m *Message) URL(s string) *Message    { return m.add(RoleURL, s) }

// Link sets the trailing URL. It is always kept intact when the line has
// to be shortened.
func (m *Message) Link(url string) *Message {
	m.link = url
	return m
}

// Segments returns the body segments in order, without the trailing link.
func (m Message) Segments() []Segment {
	return m.segments
}

func (m Message) LinkURL() string {
	return m.link
}

func (m Message) Empty() bool {
	return len(m.segments) == 0 && m.link == ""
}

// Format paints the message with scheme and bounds it to one chat line.
func (m Message) Format(scheme model.ColorScheme) string {
	var b strings.Builder
	for _, seg := range m.segments {
		if c := seg.Role.Color(scheme); c >= 0 {
			b.WriteString(ircfmt.Color(seg.Text, c))
			continue
		}
		b.WriteString(seg.Text)
	}
	body := b.String()

	if m.link == "" {
		return ircfmt.TruncateBytes(body, ircfmt.MaxLineBytes)
	}
	tail := ircfmt.Color(m.link, scheme.URL)
	if body != "" {
		tail = " " + tail
	}
	if len(tail) > ircfmt.MaxLineBytes/2 {
		return ircfmt.TruncateBytes(body+tail, ircfmt.MaxLineBytes)
	}
	return ircfmt.TruncateBytes(body, ircfmt.MaxLineBytes-len(tail)) + tail
}

// String is the uncolored line, used for logs.
func (m Message) String() string {
	return ircfmt.Strip(m.Format(model.DefaultColorScheme))
}

// Preview renders the sample line shown after a channel changes colors.
func Preview(scheme model.ColorScheme, repo, nick string) string {
	m := &Message{}
	m.Text("[").Repo(repo).Text("] Example name: ").Name(nick).
		Text(" tag: ").Tag("tag").
		Text(" commit: ").Hash("c0mm17").
		Text(" branch: ").Branch("master").
		Text(" url: ").URL("http://git.io/")
	return m.Format(scheme)
}
