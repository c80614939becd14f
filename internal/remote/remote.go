// Package remote parses and normalizes upstream repository references.
//
// A reference is either the "owner/name" shorthand or a full URL. Shorthands
// expand to an HTTPS clone URL on the configured host. Normalization is pure
// and idempotent: Normalize(Normalize(x)) == Normalize(x).
package remote

import (
	"fmt"
	"strings"
)

const (
	// DefaultHost is used to expand owner/name shorthands.
	DefaultHost = "github.com"
	// DefaultBranch is the upstream branch when none is given.
	DefaultBranch = "main"
)

// Ref identifies an upstream repository and branch.
type Ref struct {
	Repo   string // "owner/name" or a URL, as given by the operator
	Branch string
	Host   string // host for shorthand expansion; DefaultHost when empty
}

// URL returns the normalized clone URL for the reference.
func (r Ref) URL() string {
	return Normalize(r.Repo, r.Host)
}

// BranchOrDefault returns the branch, falling back to DefaultBranch.
func (r Ref) BranchOrDefault() string {
	if r.Branch == "" {
		return DefaultBranch
	}
	return r.Branch
}

func (r Ref) String() string {
	return fmt.Sprintf("%s@%s", r.URL(), r.BranchOrDefault())
}

// Parse validates repo and returns a Ref with defaults applied.
func Parse(repo, branch, host string) (Ref, error) {
	repo = strings.TrimSpace(repo)
	if repo == "" {
		return Ref{}, fmt.Errorf("repository reference is empty")
	}
	if !IsURL(repo) {
		owner, name, ok := strings.Cut(repo, "/")
		if !ok || owner == "" || name == "" || strings.Contains(name, "/") || strings.ContainsAny(repo, " \t:") {
			return Ref{}, fmt.Errorf("invalid repository %q: expected owner/name or a URL", repo)
		}
	}
	if branch == "" {
		branch = DefaultBranch
	}
	if host == "" {
		host = DefaultHost
	}
	return Ref{Repo: repo, Branch: branch, Host: host}, nil
}

// IsURL reports whether repo is a full URL rather than a shorthand.
func IsURL(repo string) bool {
	for _, p := range []string{"http://", "https://", "ssh://", "git://", "file://", "git@"} {
		if strings.HasPrefix(repo, p) {
			return true
		}
	}
	return false
}

// Normalize converts repo into a clone URL.
//
//	owner/name                       -> https://<host>/owner/name.git
//	https://github.com/owner/name    -> https://github.com/owner/name.git
//	https://github.com/owner/name.git -> unchanged
func Normalize(repo, host string) string {
	repo = strings.TrimSpace(repo)
	if IsURL(repo) {
		if strings.HasSuffix(repo, ".git") {
			return repo
		}
		return strings.TrimSuffix(repo, "/") + ".git"
	}
	if host == "" {
		host = DefaultHost
	}
	return fmt.Sprintf("https://%s/%s.git", host, strings.Trim(repo, "/"))
}
