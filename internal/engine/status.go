package engine

import (
	"context"

	"github.com/raphi011/fw/internal/errs"
	"github.com/raphi011/fw/internal/framework"
	"github.com/raphi011/fw/internal/overlay"
	"github.com/raphi011/fw/internal/report"
)

// Version reports the installed framework version. Not being installed is
// reported, not an error.
func (e *Engine) Version(ctx context.Context) (framework.Snapshot, error) {
	snap := e.state.Describe()
	if !snap.Exists {
		report.Warning(e.r, "Framework not installed")
		report.Info(e.r, "Install with: fw install")
		return snap, nil
	}
	report.Block(e.r, "FRAMEWORK VERSION",
		"Framework version: "+snap.Version,
		"Repository: "+e.ws.Remote.URL(),
		"Branch: "+e.ws.Remote.BranchOrDefault(),
	)
	return snap, nil
}

// StatusOptions controls Status.
type StatusOptions struct {
	// CheckRemote fetches upstream to see whether an update is pending.
	CheckRemote bool
}

// RemoteStatus is the outcome of the optional upstream check.
type RemoteStatus struct {
	Checked         bool
	Reachable       bool
	UpToDate        bool
	UpstreamVersion string
}

// StatusResult is a read-only health report.
type StatusResult struct {
	framework.Snapshot
	LinksValid bool
	Links      []overlay.LinkStatus
	Files      []overlay.FileStatus
	Remote     RemoteStatus
}

// Status inspects the installation, the overlay links and the customizable
// files. It never modifies the working tree.
func (e *Engine) Status(ctx context.Context, opts StatusOptions) (StatusResult, error) {
	res := StatusResult{Snapshot: e.state.Describe()}
	if !res.Exists {
		report.Warning(e.r, "Framework not installed")
		report.Info(e.r, "Install with: fw install")
		return res, nil
	}
	report.Success(e.r, "Framework installed: v%s", res.Version)

	report.Step(e.r, "Symlinks")
	res.LinksValid, res.Links = e.overlay.VerifyLinks()
	if !res.LinksValid {
		report.Warning(e.r, "Some symlinks are broken. Run: fw repair")
	}

	report.Step(e.r, "Customizable files")
	res.Files = e.overlay.CheckStatusFiles()

	if opts.CheckRemote {
		report.Step(e.r, "Update status")
		res.Remote = e.checkRemote(ctx)
	}

	installation := "Valid"
	if !res.LinksValid {
		installation = "Issues detected"
	}
	lines := []string{
		"Version: " + res.Version,
		"Installation: " + installation,
	}
	if res.Remote.Checked && res.Remote.Reachable {
		lines = append(lines, "Upstream: "+res.Remote.UpstreamVersion)
	}
	report.Block(e.r, "SUMMARY", lines...)
	return res, nil
}

func (e *Engine) checkRemote(ctx context.Context) RemoteStatus {
	rs := RemoteStatus{Checked: true}
	report.Progress(e.r, "Checking for updates...")
	if err := e.vcs.Fetch(ctx, e.ws.Remote.URL(), e.ws.Remote.BranchOrDefault()); err != nil {
		report.Warning(e.r, "Cannot check for updates (offline?): %v", err)
		return rs
	}
	rs.Reachable = true
	rs.UpstreamVersion = e.upstreamVersion(ctx)
	upstream := e.vcs.TreeID(ctx, FetchHead+"^{tree}")
	rs.UpToDate = upstream != "" && upstream == e.vcs.TreeID(ctx, "HEAD:"+framework.Prefix)
	if rs.UpToDate {
		report.Success(e.r, "Up to date")
	} else {
		report.Warning(e.r, "Update available (upstream %s). Run: fw update", rs.UpstreamVersion)
	}
	return rs
}

// RepairResult describes what Repair did.
type RepairResult struct {
	Links  []overlay.LinkResult
	Assets []overlay.AssetResult
	Valid  bool
}

// Repair recreates the overlay links and copies any missing customizable
// files. Existing customized files are left alone.
func (e *Engine) Repair(ctx context.Context) (RepairResult, error) {
	var res RepairResult
	if !e.state.Exists() {
		return res, notInstalled()
	}

	report.Step(e.r, "Recreate symlinks")
	links, linkErr := e.overlay.CreateAllLinks()
	res.Links = links

	report.Step(e.r, "Restore customizable files")
	if err := e.overlay.Scaffold(); err != nil {
		report.Warning(e.r, "Some directories could not be created: %v", err)
	}
	res.Assets, _ = e.overlay.CopyCustomizableAssets()

	report.Step(e.r, "Verify")
	var statuses []overlay.LinkStatus
	res.Valid, statuses = e.overlay.VerifyLinks()
	if !res.Valid {
		var lines []string
		for _, s := range overlay.Invalid(statuses) {
			lines = append(lines, s.Link.Path+": "+string(s.State))
		}
		cerr := errs.New(errs.OverlayCorruption, "overlay is still invalid").WithGuidance(lines...)
		cerr.Wrapped = linkErr
		return res, cerr
	}
	report.Success(e.r, "Overlay repaired")
	return res, nil
}
