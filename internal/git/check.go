package git

import (
	"context"
	"os/exec"
	"strings"

	"github.com/raphi011/fw/internal/errs"
)

// ErrGitNotFound indicates git is not installed or not in PATH
var ErrGitNotFound = errs.New(errs.VcsFailure, "git not found: please install git (https://git-scm.com)")

// CheckGit verifies that git is available in PATH
func CheckGit() error {
	_, err := exec.LookPath("git")
	if err != nil {
		return ErrGitNotFound
	}
	return nil
}

// IsInsideRepoPath returns true if the given path is inside a git repository
func IsInsideRepoPath(ctx context.Context, path string) bool {
	err := runGit(ctx, path, "rev-parse", "--is-inside-work-tree")
	return err == nil
}

// TopLevel returns the root of the working tree containing path.
func TopLevel(ctx context.Context, path string) (string, error) {
	out, err := outputGit(ctx, path, "rev-parse", "--show-toplevel")
	if err != nil {
		return "", errs.Wrap(err, errs.NotARepository, "not in a git repository")
	}
	return strings.TrimSpace(string(out)), nil
}
