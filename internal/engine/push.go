package engine

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/raphi011/fw/internal/errs"
	"github.com/raphi011/fw/internal/framework"
	"github.com/raphi011/fw/internal/git"
	"github.com/raphi011/fw/internal/report"
)

// PushOptions controls Push. Unset fields are asked for interactively.
type PushOptions struct {
	// Kind is a change type such as "feature" or "patch".
	Kind string
	// Description, when non-nil, is used instead of prompting. A blank
	// description is rejected before anything else happens.
	Description *string
}

// FollowUp is the manual release record left for the maintainer after a
// contribution is pushed.
type FollowUp struct {
	Kind             ChangeKind
	Description      string
	CurrentVersion   string
	SuggestedVersion string
}

// Lines renders the record for display.
func (f FollowUp) Lines() []string {
	lines := []string{
		"Change type: " + f.Kind.String(),
		"Description: " + f.Description,
	}
	if f.SuggestedVersion != "" {
		lines = append(lines, fmt.Sprintf("Suggested version: %s → %s", f.CurrentVersion, f.SuggestedVersion))
	}
	return append(lines,
		"",
		"Manual steps required:",
		"  1. Update the VERSION file upstream",
		"  2. Add an entry to CHANGELOG.md",
		"  3. Tag the release: git tag vX.Y.Z",
	)
}

// String renders the record as a changelog entry.
func (f FollowUp) String() string {
	version := f.SuggestedVersion
	if version == "" {
		version = "X.Y.Z"
	}
	return fmt.Sprintf("## %s (%s)\n\n- %s\n", version, f.Kind, f.Description)
}

// Divergence is the local history under the prefix that the base ref
// does not have.
type Divergence struct {
	Commits []string
	Stat    string
}

// Empty reports whether there is nothing to contribute.
func (d Divergence) Empty() bool {
	return len(d.Commits) == 0
}

// divergence lists commits since base touching the prefix. The diff stat is
// only computed when there are commits.
func (e *Engine) divergence(ctx context.Context, base string) (Divergence, error) {
	commits, err := e.vcs.LogSince(ctx, base, framework.Prefix)
	if err != nil {
		return Divergence{}, err
	}
	d := Divergence{Commits: commits}
	if !d.Empty() {
		d.Stat = e.vcs.DiffStat(ctx, base, "HEAD", framework.Prefix)
	}
	return d, nil
}

// PushResult describes what Push did.
type PushResult struct {
	Divergence
	NoChanges bool
	Pushed    bool
	FollowUp  *FollowUp
}

// Push contributes local commits under the prefix back upstream.
func (e *Engine) Push(ctx context.Context, opts PushOptions) (PushResult, error) {
	var res PushResult

	report.Step(e.r, "Step 1/4: Check for changes")
	if !e.state.Exists() {
		return res, notInstalled()
	}
	if opts.Description != nil && strings.TrimSpace(*opts.Description) == "" {
		return res, descriptionRequired()
	}
	var kind ChangeKind
	haveKind := opts.Kind != ""
	if haveKind {
		var err error
		if kind, err = ParseChangeKind(opts.Kind); err != nil {
			return res, err
		}
	}

	base := e.ws.baseRef()
	div, err := e.divergence(ctx, base)
	if err != nil {
		return res, err
	}
	if div.Empty() {
		res.NoChanges = true
		report.Warning(e.r, "No changes to push!")
		report.Info(e.r, "No local commits under %s since %s.", framework.Prefix, base)
		return res, nil
	}
	res.Divergence = div
	report.Success(e.r, "Changes found, ready to contribute!")

	report.Step(e.r, "Step 2/4: Review changes")
	report.Block(e.r, "Commits to push", div.Commits...)
	if res.Stat != "" {
		report.Block(e.r, "Files modified", strings.Split(res.Stat, "\n")...)
	}
	if err := e.showDiff(ctx, base, "HEAD", framework.Prefix); err != nil {
		return res, err
	}
	proceed, err := e.confirm(ctx, "Push these changes?", true)
	if err != nil {
		return res, err
	}
	if !proceed {
		report.Info(e.r, "Push cancelled")
		return res, nil
	}

	report.Step(e.r, "Step 3/4: Classify change")
	if !haveKind {
		report.Block(e.r, "SEMANTIC VERSIONING",
			"MAJOR (X.0.0): breaking changes, removed agents or commands, new layout",
			"MINOR (0.X.0): new agent, command or module",
			"PATCH (0.0.X): documentation, script and bug fixes",
		)
		labels := make([]string, len(ChangeKinds))
		for i, k := range ChangeKinds {
			labels[i] = k.Label()
		}
		idx, err := e.prompt.Select(ctx, SelectRequest{Message: "Change type?", Options: labels, Default: 2})
		if errors.Is(err, ErrCancelled) {
			report.Info(e.r, "Push cancelled")
			return res, nil
		}
		if err != nil {
			return res, err
		}
		if idx < 0 || idx >= len(ChangeKinds) {
			return res, errs.Newf(errs.InvalidInput, "invalid change type selection %d", idx)
		}
		kind = ChangeKinds[idx]
	}

	var description string
	if opts.Description != nil {
		description = strings.TrimSpace(*opts.Description)
	} else {
		text, err := e.prompt.Input(ctx, InputRequest{Message: "Brief description of change:"})
		if errors.Is(err, ErrCancelled) {
			report.Info(e.r, "Push cancelled")
			return res, nil
		}
		if err != nil {
			return res, err
		}
		description = strings.TrimSpace(text)
	}
	if description == "" {
		return res, descriptionRequired()
	}

	report.Step(e.r, "Step 4/4: Push to repository")
	report.Progress(e.r, "Pushing changes...")
	err = e.vcs.MergeSubtree(ctx, git.SubtreeOp{
		Mode:   git.SubtreePush,
		Prefix: framework.Prefix,
		URL:    e.ws.Remote.URL(),
		Branch: e.ws.Remote.BranchOrDefault(),
	})
	if err != nil {
		perr := pushError(err)
		switch perr.Code {
		case errs.AuthorizationDenied:
			report.Error(e.r, "Permission denied!")
			report.Block(e.r, "AUTHENTICATION ERROR", perr.Guidance...)
		case errs.RemoteDiverged:
			report.Error(e.r, "Remote has updates you don't have!")
			report.Block(e.r, "SYNC REQUIRED", perr.Guidance...)
		default:
			report.Error(e.r, "Push failed")
		}
		return res, perr
	}
	res.Pushed = true
	report.Success(e.r, "Changes pushed successfully!")

	current := e.state.CurrentVersion()
	res.FollowUp = &FollowUp{
		Kind:             kind,
		Description:      description,
		CurrentVersion:   current,
		SuggestedVersion: SuggestVersion(current, kind),
	}
	report.Block(e.r, "NEXT STEPS", res.FollowUp.Lines()...)
	report.Success(e.r, "Contribution pushed. Thank you for contributing!")
	return res, nil
}

// pushError maps a subtree push failure. The port's classification is used
// first; message matching covers ports that return plain errors.
func pushError(cause error) *errs.Error {
	code := errs.CodeOf(cause)
	if code == "" || code == errs.VcsFailure {
		msg := strings.ToLower(cause.Error())
		switch {
		case strings.Contains(msg, "permission denied") || strings.Contains(msg, "403"):
			code = errs.AuthorizationDenied
		case strings.Contains(msg, "non-fast-forward") || strings.Contains(msg, "rejected") || strings.Contains(msg, "conflict"):
			code = errs.RemoteDiverged
		}
	}
	switch code {
	case errs.AuthorizationDenied:
		return errs.Wrap(cause, errs.AuthorizationDenied, "push rejected: no write access").WithGuidance(
			"You do not have write access to the repository.",
			"",
			"Fork the repository, push to your fork and open a pull request,",
			"or configure authentication (SSH key or personal access token).",
		)
	case errs.RemoteDiverged, errs.Conflict:
		return errs.Wrap(cause, errs.RemoteDiverged, "push rejected: upstream has changes you don't have").WithGuidance(
			"Update first, then push:",
			"  1. fw update",
			"  2. Resolve conflicts if any",
			"  3. fw push",
		)
	default:
		return errs.Wrap(cause, errs.PushFailed, "push failed")
	}
}

func descriptionRequired() error {
	return errs.New(errs.DescriptionRequired, "a description of the change is required").
		WithGuidance("Pass --message \"...\" or enter a description when prompted")
}
