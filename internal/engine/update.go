package engine

import (
	"context"
	"strings"

	"github.com/raphi011/fw/internal/errs"
	"github.com/raphi011/fw/internal/framework"
	"github.com/raphi011/fw/internal/git"
	"github.com/raphi011/fw/internal/log"
	"github.com/raphi011/fw/internal/overlay"
	"github.com/raphi011/fw/internal/report"
)

// FetchHead is where Fetch leaves the upstream branch.
const FetchHead = "FETCH_HEAD"

// UpdateOptions controls Update.
type UpdateOptions struct {
	// Check overrides the workspace's UpdateCheck when set.
	Check UpdateCheck
}

// UpdateResult describes what Update did. PreviousVersion and BackupTag
// are set as soon as they are known, including when an error is returned.
type UpdateResult struct {
	PreviousVersion string
	Version         string
	UpstreamVersion string
	UpToDate        bool
	Updated         bool
	BackupTag       string
	Links           []overlay.LinkStatus
	LinksRepaired   bool
}

// Update pulls upstream changes into the prefix. A backup tag is created
// before merging; conflicts are left for the operator to resolve.
func (e *Engine) Update(ctx context.Context, opts UpdateOptions) (UpdateResult, error) {
	var res UpdateResult

	report.Step(e.r, "Step 1/5: Verify installation")
	if !e.state.Exists() {
		return res, notInstalled()
	}
	res.PreviousVersion = e.state.CurrentVersion()
	report.Success(e.r, "Current version: %s", res.PreviousVersion)

	report.Step(e.r, "Step 2/5: Check for updates")
	url, branch := e.ws.Remote.URL(), e.ws.Remote.BranchOrDefault()
	report.Progress(e.r, "Connecting to repository...")
	if err := e.vcs.Fetch(ctx, url, branch); err != nil {
		report.Error(e.r, "Cannot connect to repository")
		return res, errs.Wrap(err, errs.NetworkUnavailable, "cannot reach "+url).
			WithDetail(errs.DetailPreviousVersion, res.PreviousVersion).
			WithGuidance("Check your internet connection", "Verify access to "+e.ws.Remote.Repo, "Try again later")
	}
	report.Success(e.r, "Connected to repository")

	res.UpstreamVersion = e.upstreamVersion(ctx)
	report.Info(e.r, "Upstream version: %s", res.UpstreamVersion)

	check := opts.Check
	if check == "" {
		check = e.ws.UpdateCheck
	}
	pending, err := e.updatesPending(ctx, check)
	if err != nil {
		return res, err
	}
	if !pending {
		res.UpToDate = true
		res.Version = res.PreviousVersion
		report.Success(e.r, "Already up to date!")
		return res, nil
	}
	report.Warning(e.r, "Updates available!")

	report.Step(e.r, "Step 3/5: Preview changes")
	if err := e.showDiff(ctx, "HEAD:"+framework.Prefix, FetchHead, ""); err != nil {
		return res, err
	}
	proceed, err := e.confirm(ctx, "Proceed with update?", true)
	if err != nil {
		return res, err
	}
	if !proceed {
		report.Info(e.r, "Update cancelled")
		return res, nil
	}

	report.Step(e.r, "Step 4/5: Create backup")
	tag := BackupTagName(e.now())
	if err := e.vcs.AddTag(ctx, tag); err != nil {
		report.Error(e.r, "Could not create backup tag")
		code := errs.CodeOf(err)
		if code == "" {
			code = errs.VcsFailure
		}
		return res, errs.Wrapf(err, code, "create backup tag %s", tag).
			WithDetail(errs.DetailPreviousVersion, res.PreviousVersion)
	}
	res.BackupTag = tag
	report.Success(e.r, "Backup created: %s", tag)
	report.Block(e.r, "ROLLBACK INFO",
		"If something goes wrong, roll back with:",
		"  git checkout "+tag,
		"  git checkout -b recovery-branch",
	)

	report.Step(e.r, "Step 5/5: Update framework")
	report.Progress(e.r, "Updating framework...")
	err = e.vcs.MergeSubtree(ctx, git.SubtreeOp{
		Mode:   git.SubtreePull,
		Prefix: framework.Prefix,
		URL:    url,
		Branch: branch,
		Squash: true,
	})
	if err != nil {
		report.Error(e.r, "Update failed")
		uerr := updateError(err, tag, res.PreviousVersion)
		if errs.Is(err, errs.Conflict) {
			report.Block(e.r, "MERGE CONFLICT", uerr.Guidance...)
		}
		return res, uerr
	}
	res.Updated = true
	res.Version = e.state.CurrentVersion()
	report.Success(e.r, "Framework updated")
	change := DescribeVersionChange(res.PreviousVersion, res.Version)
	report.Success(e.r, "%s", change)

	report.Info(e.r, "Verifying symlinks")
	ok, statuses := e.overlay.VerifyLinks()
	res.Links = statuses
	if !ok {
		recreate, err := e.confirm(ctx, "Recreate broken symlinks?", true)
		if err != nil {
			return res, err
		}
		if recreate {
			if _, err := e.overlay.CreateAllLinks(); err != nil {
				report.Warning(e.r, "Some symlinks could not be recreated: %v", err)
			} else {
				res.LinksRepaired = true
			}
		}
	}

	report.Block(e.r, "WHAT CHANGED",
		change,
		"",
		"Review the changelog: cat "+framework.Prefix+"/CHANGELOG.md",
		"Check template updates: diff "+framework.Prefix+"/.claude/hooks/ .claude/hooks/",
		"",
		"Backup available: "+tag,
		"Remove when confident: git tag -d "+tag,
	)
	report.Success(e.r, "Framework updated successfully!")
	return res, nil
}

// upstreamVersion reads the version file from the fetched branch.
func (e *Engine) upstreamVersion(ctx context.Context) string {
	data, err := e.vcs.ShowFile(ctx, FetchHead, framework.VersionFileName)
	if err != nil {
		log.FromContext(ctx).Debug("upstream version unavailable", "error", err)
		return framework.UnknownVersion
	}
	if v := strings.TrimSpace(string(data)); v != "" {
		return v
	}
	return framework.UnknownVersion
}

// updatesPending decides whether there is anything to merge.
func (e *Engine) updatesPending(ctx context.Context, check UpdateCheck) (bool, error) {
	if check == CheckOutgoing {
		div, err := e.divergence(ctx, e.ws.baseRef())
		if err != nil {
			return false, err
		}
		return !div.Empty(), nil
	}

	upstream := e.vcs.TreeID(ctx, FetchHead+"^{tree}")
	vendored := e.vcs.TreeID(ctx, "HEAD:"+framework.Prefix)
	log.FromContext(ctx).Debug("comparing trees", "upstream", upstream, "vendored", vendored)
	if upstream == "" || vendored == "" {
		report.Warning(e.r, "Cannot compare with upstream; assuming updates are available")
		return true, nil
	}
	return upstream != vendored, nil
}

func updateError(cause error, tag, prev string) *errs.Error {
	var e *errs.Error
	switch errs.CodeOf(cause) {
	case errs.Conflict:
		e = errs.Wrap(cause, errs.Conflict, "merge conflict during update").WithGuidance(
			"Git found conflicts during update.",
			"",
			"Resolution:",
			"  1. Check conflicts: git status",
			"  2. For each conflicted file:",
			"     keep yours: git checkout --ours <file>",
			"     use upstream: git checkout --theirs <file>",
			"     or edit it manually",
			"  3. After resolving:",
			"     git add <files>",
			"     git commit -m \"Resolve framework update conflicts\"",
			"  4. Retry: fw update",
			"",
			"Or roll back:",
			"  git checkout "+tag,
		)
	case errs.NetworkUnavailable, errs.AuthorizationDenied:
		e = errs.Wrap(cause, errs.CodeOf(cause), "update failed").
			WithGuidance("Roll back if needed: git checkout " + tag)
	default:
		e = errs.Wrap(cause, errs.VcsFailure, "update failed").
			WithGuidance("Inspect the repository: git status", "Roll back if needed: git checkout "+tag)
	}
	return e.WithDetail(errs.DetailBackupTag, tag).WithDetail(errs.DetailPreviousVersion, prev)
}

func notInstalled() error {
	return errs.Newf(errs.NotInstalled, "framework not installed: %s/ not found", framework.Prefix).
		WithGuidance("Install first: fw install")
}
