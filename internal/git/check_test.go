package git

import (
	"context"
	"errors"
	"testing"

	"github.com/raphi011/fw/internal/errs"
)

func TestCheckGit_Available(t *testing.T) {
	t.Parallel()
	// git must be available in CI and dev environments
	if err := CheckGit(); err != nil {
		t.Fatalf("CheckGit() = %v, want nil (git should be in PATH)", err)
	}
}

func TestErrGitNotFound_Sentinel(t *testing.T) {
	t.Parallel()
	if !errors.Is(ErrGitNotFound, ErrGitNotFound) {
		t.Error("ErrGitNotFound should match itself with errors.Is")
	}
	if !errs.Is(ErrGitNotFound, errs.VcsFailure) {
		t.Error("ErrGitNotFound should carry VcsFailure")
	}
}

func TestTopLevel(t *testing.T) {
	t.Parallel()
	repo := setupTestRepo(t)
	ctx := context.Background()

	got, err := TopLevel(ctx, repo)
	if err != nil {
		t.Fatalf("TopLevel() = %v", err)
	}
	if got != repo {
		t.Errorf("TopLevel() = %q, want %q", got, repo)
	}

	_, err = TopLevel(ctx, t.TempDir())
	if !errs.Is(err, errs.NotARepository) {
		t.Errorf("TopLevel(non-repo) = %v, want NotARepository", err)
	}
}
