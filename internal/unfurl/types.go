package unfurl

// Kind is the sort of GitHub object a link points at.
type Kind int

const (
	KindRepo Kind = iota
	KindIssue
	KindCommit
	KindFile
)

// Link is one GitHub reference found in a chat line.
type Link struct {
	Kind      Kind
	Owner     string
	Name      string
	Number    int    // issue or pull request number
	CommentID int64  // set for #issuecomment-N anchors
	SHA       string // commit
	Ref       string // file
	Path      string // file
	StartLine int    // file, 0 when absent
	EndLine   int    // file, 0 when absent
	Bare      bool   // a #N reference resolved through the channel's repository
}

// Repo is the owner/name the link belongs to.
func (l Link) Repo() string {
	return l.Owner + "/" + l.Name
}
