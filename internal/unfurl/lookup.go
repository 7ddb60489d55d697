package unfurl

import (
	"errors"
	"regexp"
	"strings"
)

// ErrRepoName means a lookup was given neither owner/name nor a bare name
// with an owner to fall back on.
var ErrRepoName = errors.New("need a repository name, or owner/name")

var (
	userRe = regexp.MustCompile(`^` + userPattern + `$`)
	nameRe = regexp.MustCompile(`^` + repoPattern + `$`)
)

// RepoLink builds a repository link for a lookup by name. A bare name is
// taken to belong to defaultOwner.
func RepoLink(name, defaultOwner string) (Link, error) {
	name = strings.TrimSpace(name)
	owner, repo, ok := strings.Cut(name, "/")
	if !ok {
		owner, repo = strings.TrimSpace(defaultOwner), name
	}
	if !userRe.MatchString(owner) || !nameRe.MatchString(repo) {
		return Link{}, ErrRepoName
	}
	return Link{Kind: KindRepo, Owner: owner, Name: repo}, nil
}
