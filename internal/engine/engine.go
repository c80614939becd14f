// Package engine drives the framework lifecycle: install, update, push,
// version, status and repair.
//
// The engine talks to the outside world only through ports: [VCS] for git,
// [fsys.FS] for the working tree, [Prompter] for operator decisions and
// [report.Reporter] for progress. Given the same prompt answers it makes the
// same decisions, which is how the tests drive it.
package engine

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/raphi011/fw/internal/framework"
	"github.com/raphi011/fw/internal/fsys"
	"github.com/raphi011/fw/internal/log"
	"github.com/raphi011/fw/internal/overlay"
	"github.com/raphi011/fw/internal/remote"
	"github.com/raphi011/fw/internal/report"
)

// DefaultBaseRef is the ref local divergence is measured against.
const DefaultBaseRef = "origin/main"

// UpdateCheck selects how Update decides whether there is anything to pull.
type UpdateCheck string

const (
	// CheckUpstream compares the fetched upstream tree with the vendored tree.
	CheckUpstream UpdateCheck = "upstream"
	// CheckOutgoing looks for local commits under the prefix since BaseRef.
	CheckOutgoing UpdateCheck = "outgoing"
)

// Workspace is the explicit context every operation runs in.
type Workspace struct {
	Root        string
	Remote      remote.Ref
	BaseRef     string
	UpdateCheck UpdateCheck
}

func (w Workspace) baseRef() string {
	if w.BaseRef == "" {
		return DefaultBaseRef
	}
	return w.BaseRef
}

// Engine runs framework operations against one workspace.
type Engine struct {
	ws      Workspace
	vcs     VCS
	fs      fsys.FS
	prompt  Prompter
	r       report.Reporter
	now     func() time.Time
	state   *framework.State
	overlay *overlay.Manager
}

// Option configures an Engine.
type Option func(*Engine)

// WithClock overrides the clock used for backup tag names.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// New returns an Engine. A nil reporter discards events.
func New(ws Workspace, vcs VCS, fs fsys.FS, p Prompter, r report.Reporter, opts ...Option) *Engine {
	if r == nil {
		r = report.Discard
	}
	e := &Engine{
		ws:      ws,
		vcs:     vcs,
		fs:      fs,
		prompt:  p,
		r:       r,
		now:     time.Now,
		state:   framework.NewState(fs, ws.Root),
		overlay: overlay.New(fs, ws.Root, r),
	}
	for _, o := range opts {
		o(e)
	}
	return e
}

// Workspace returns the engine's workspace.
func (e *Engine) Workspace() Workspace {
	return e.ws
}

// confirm asks a yes/no question. A cancelled prompt counts as "no".
func (e *Engine) confirm(ctx context.Context, msg string, def bool) (bool, error) {
	ok, err := e.prompt.Confirm(ctx, ConfirmRequest{Message: msg, Default: def})
	if errors.Is(err, ErrCancelled) {
		log.FromContext(ctx).Debug("prompt cancelled", "prompt", msg)
		return false, nil
	}
	return ok, err
}

// showDiff offers to print a diff. Declining is not an error.
func (e *Engine) showDiff(ctx context.Context, a, b, prefix string) error {
	show, err := e.confirm(ctx, "Show detailed diff?", false)
	if err != nil || !show {
		return err
	}
	diff := e.vcs.DiffContent(ctx, a, b, prefix)
	if diff == "" {
		report.Info(e.r, "No diff available")
		return nil
	}
	report.Block(e.r, "DIFF", strings.Split(diff, "\n")...)
	return nil
}

// BackupTagName returns the rollback tag for an update started at t:
// "backup/" followed by the UTC timestamp with ':' and '.' replaced by
// '-', truncated to second precision. Names sort in creation order.
func BackupTagName(t time.Time) string {
	ts := t.UTC().Format("2006-01-02T15:04:05.000Z")
	ts = strings.NewReplacer(":", "-", ".", "-").Replace(ts)
	return "backup/" + ts[:19]
}
