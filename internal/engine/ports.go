package engine

import (
	"context"
	"errors"

	"github.com/raphi011/fw/internal/git"
)

// VCS is the version-control port. [git.Repo] implements it.
type VCS interface {
	IsRepository(ctx context.Context) bool
	Fetch(ctx context.Context, url, branch string) error
	LogSince(ctx context.Context, base, prefix string) ([]string, error)
	DiffStat(ctx context.Context, base, head, prefix string) string
	DiffContent(ctx context.Context, a, b, prefix string) string
	TreeID(ctx context.Context, rev string) string
	AddTag(ctx context.Context, name string) error
	MergeSubtree(ctx context.Context, op git.SubtreeOp) error
	ShowFile(ctx context.Context, ref, path string) ([]byte, error)
	SetConfig(ctx context.Context, key, value string) error
}

var _ VCS = (*git.Repo)(nil)

// ErrCancelled is returned by a Prompter when the operator aborts a prompt.
// The engine treats it like a declined confirmation.
var ErrCancelled = errors.New("prompt cancelled")

// ConfirmRequest asks a yes/no question.
type ConfirmRequest struct {
	Message string
	Default bool
}

// SelectRequest asks the operator to pick one of Options.
type SelectRequest struct {
	Message string
	Options []string
	Default int
}

// InputRequest asks for free text.
type InputRequest struct {
	Message     string
	Placeholder string
	Default     string
}

// Prompter obtains answers from the operator. Implementations decide how:
// a terminal UI, flags, or a test script.
type Prompter interface {
	Confirm(ctx context.Context, req ConfirmRequest) (bool, error)
	Select(ctx context.Context, req SelectRequest) (int, error)
	Input(ctx context.Context, req InputRequest) (string, error)
}
