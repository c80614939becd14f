package engine

import (
	"context"
	"strings"

	"go.uber.org/multierr"

	"github.com/raphi011/fw/internal/errs"
	"github.com/raphi011/fw/internal/framework"
	"github.com/raphi011/fw/internal/git"
	"github.com/raphi011/fw/internal/overlay"
	"github.com/raphi011/fw/internal/report"
)

// Aliases are the git aliases offered after install.
var Aliases = [][2]string{
	{"alias.fw-version", "!cat " + framework.VersionFile},
	{"alias.fw-update", "!fw update"},
	{"alias.fw-push", "!fw push"},
}

// InstallOptions controls Install.
type InstallOptions struct {
	// Force removes an existing installation without asking.
	Force bool
}

// InstallResult describes what Install did.
type InstallResult struct {
	Installed   bool
	Reinstalled bool
	Version     string
	Links       []overlay.LinkResult
	Assets      []overlay.AssetResult
	// OverlayErr collects overlay failures. They never fail the install.
	OverlayErr error
	Aliases    bool
}

// Install vendors the upstream framework under the prefix and builds the
// overlay. Declining any confirmation ends the operation successfully
// without further changes.
func (e *Engine) Install(ctx context.Context, opts InstallOptions) (InstallResult, error) {
	var res InstallResult

	report.Step(e.r, "Step 1/5: Verify environment")
	if !e.vcs.IsRepository(ctx) {
		return res, errs.Newf(errs.NotARepository, "%s is not a git repository", e.ws.Root).
			WithGuidance("Initialize git: git init", "Or run fw from inside your project")
	}
	report.Success(e.r, "Git repository verified")

	report.Step(e.r, "Step 2/5: Check existing installation")
	if e.state.Exists() {
		report.Warning(e.r, "Framework already installed (version %s)", e.state.CurrentVersion())
		reinstall := opts.Force
		if !reinstall {
			var err error
			reinstall, err = e.confirm(ctx, "Remove and reinstall? (You will lose customizations)", false)
			if err != nil {
				return res, err
			}
		}
		if !reinstall {
			report.Info(e.r, "Installation cancelled. Use \"fw update\" to update.")
			return res, nil
		}
		report.Warning(e.r, "Removing existing framework...")
		if err := e.fs.RemoveAll(e.state.PrefixPath()); err != nil {
			return res, errs.Wrapf(err, errs.InstallationFailed, "remove %s", framework.Prefix)
		}
		res.Reinstalled = true
	}
	report.Success(e.r, "Ready for installation")

	report.Step(e.r, "Step 3/5: Installation overview")
	report.Block(e.r, "WHAT WILL BE INSTALLED",
		"Framework sources in "+framework.Prefix+"/ from "+e.ws.Remote.String(),
		"Symlinks for auto-updated files (AGENTS.md, agents, .claude/agents, .claude/commands)",
		"Copies of customizable templates (hooks, guidelines, templates/)",
	)
	proceed, err := e.confirm(ctx, "Install framework?", true)
	if err != nil {
		return res, err
	}
	if !proceed {
		report.Info(e.r, "Installation cancelled")
		return res, nil
	}

	report.Step(e.r, "Step 4/5: Download framework")
	report.Progress(e.r, "Downloading from %s...", e.ws.Remote.URL())
	err = e.vcs.MergeSubtree(ctx, git.SubtreeOp{
		Mode:   git.SubtreeAdd,
		Prefix: framework.Prefix,
		URL:    e.ws.Remote.URL(),
		Branch: e.ws.Remote.BranchOrDefault(),
		Squash: true,
	})
	if err != nil {
		report.Error(e.r, "Failed to download framework")
		return res, installError(err, e.ws.Remote.Repo)
	}
	res.Installed = true
	res.Version = e.state.CurrentVersion()
	report.Success(e.r, "Framework downloaded")
	report.Success(e.r, "Version installed: %s", res.Version)

	report.Step(e.r, "Step 5/5: Set up project structure")
	res.OverlayErr = e.buildOverlay(&res)

	aliases, err := e.confirm(ctx, "Configure git aliases (fw-version, fw-update, fw-push)?", true)
	if err != nil {
		return res, err
	}
	if aliases {
		res.Aliases = e.configureAliases(ctx)
	}

	report.Block(e.r, "NEXT STEPS",
		"1. Customize the pre-commit hook:",
		"   edit .claude/hooks/lint-before-commit.sh.template",
		"   rename it to lint-before-commit.sh and make it executable",
		"2. Customize docs/references/ui-guidelines.template.md",
		"3. Copy templates/feature-card.template.yml into backlog/",
		"4. Read AGENTS.md",
	)
	report.Success(e.r, "Framework ready to use!")
	return res, nil
}

func (e *Engine) buildOverlay(res *InstallResult) error {
	var overlayErr error
	report.Info(e.r, "Creating directories...")
	if err := e.overlay.Scaffold(); err != nil {
		report.Warning(e.r, "Some directories could not be created: %v", err)
		overlayErr = multierr.Append(overlayErr, err)
	}

	links, err := e.overlay.CreateAllLinks()
	res.Links = links
	overlayErr = multierr.Append(overlayErr, err)

	assets, err := e.overlay.CopyCustomizableAssets()
	res.Assets = assets
	overlayErr = multierr.Append(overlayErr, err)

	if overlayErr != nil {
		report.Warning(e.r, "Overlay incomplete; run \"fw repair\" after fixing the problems above")
	}
	return overlayErr
}

func (e *Engine) configureAliases(ctx context.Context) bool {
	ok := true
	for _, a := range Aliases {
		if err := e.vcs.SetConfig(ctx, a[0], a[1]); err != nil {
			report.Warning(e.r, "Could not set %s: %v", a[0], err)
			ok = false
		}
	}
	if ok {
		report.Success(e.r, "Git aliases configured")
	}
	return ok
}

func installError(cause error, repo string) error {
	e := errs.Wrap(cause, errs.InstallationFailed, "installation failed")
	switch {
	case errs.Is(cause, errs.NetworkUnavailable):
		e = e.WithGuidance("Check your internet connection", "Try again later")
	case errs.Is(cause, errs.AuthorizationDenied):
		e = e.WithGuidance("Check that you can access "+repo, "Configure an SSH key or personal access token")
	case strings.Contains(strings.ToLower(cause.Error()), "working tree has modifications"):
		e = e.WithGuidance("Commit or stash your changes first (git status)")
	default:
		e = e.WithGuidance("Verify the repository exists: "+repo, "Check your internet connection")
	}
	return e
}
