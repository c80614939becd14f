package overlay

import (
	"fmt"
	"path/filepath"

	"go.uber.org/multierr"

	"github.com/raphi011/fw/internal/framework"
	"github.com/raphi011/fw/internal/fsys"
	"github.com/raphi011/fw/internal/report"
)

// Asset is a file copied out of the vendored tree. Paths are relative to the root.
type Asset struct {
	Source string
	Dest   string
}

// AssetState is the outcome of copying one asset.
type AssetState string

const (
	AssetCopied  AssetState = "copied"
	AssetSkipped AssetState = "skipped"
	AssetFailed  AssetState = "failed"
)

// AssetResult describes what happened to one asset.
type AssetResult struct {
	Asset Asset
	State AssetState
	Err   error
}

// TemplatesDir is the directory whose files are all copied as assets.
const TemplatesDir = "templates"

// HookTemplate is the pre-commit hook template destination.
var HookTemplate = filepath.Join(".claude", "hooks", "lint-before-commit.sh.template")

// FixedAssets are copied on every install regardless of upstream content.
var FixedAssets = []Asset{
	vendored(HookTemplate),
	vendored(filepath.Join("docs", "references", "ui-guidelines.template.md")),
	vendored(filepath.Join("docs", "references", "brand-guidelines.md")),
}

// ScaffoldDirs are created in the host tree on install.
var ScaffoldDirs = []string{
	".claude",
	filepath.Join("docs", "references"),
	TemplatesDir,
	"backlog",
}

// StatusFiles are the customizable files the status command looks for.
// The hook is listed twice because operators rename the template once
// they have customized it.
var StatusFiles = []string{
	HookTemplate,
	filepath.Join(".claude", "hooks", "lint-before-commit.sh"),
	filepath.Join("docs", "references", "ui-guidelines.template.md"),
	filepath.Join("docs", "references", "brand-guidelines.md"),
	filepath.Join(TemplatesDir, "feature-card.template.yml"),
}

func vendored(rel string) Asset {
	return Asset{Source: filepath.Join(framework.Prefix, rel), Dest: rel}
}

// Scaffold creates ScaffoldDirs.
func (m *Manager) Scaffold() error {
	var errs error
	for _, d := range ScaffoldDirs {
		errs = multierr.Append(errs, m.EnsureDirectory(d))
	}
	return errs
}

// Assets returns FixedAssets followed by every regular file currently in
// the vendored templates directory, sorted by name.
func (m *Manager) Assets() ([]Asset, error) {
	assets := append([]Asset(nil), FixedAssets...)
	src := filepath.Join(framework.Prefix, TemplatesDir)
	entries, err := m.fs.ReadDir(m.abs(src))
	if err != nil {
		return assets, fmt.Errorf("list %s: %w", src, err)
	}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		assets = append(assets, vendored(filepath.Join(TemplatesDir, e.Name())))
	}
	return assets, nil
}

// CopyFile copies src to dst (both relative to the root), creating the
// destination directory. It never overwrites: if dst exists it returns
// false without touching it. The source's permission bits are kept.
func (m *Manager) CopyFile(src, dst string) (bool, error) {
	info, err := m.fs.Stat(m.abs(src))
	if err != nil {
		return false, err
	}
	if err := m.EnsureDirectory(filepath.Dir(dst)); err != nil {
		return false, err
	}
	if fsys.LExists(m.fs, m.abs(dst)) {
		return false, nil
	}
	data, err := m.fs.ReadFile(m.abs(src))
	if err != nil {
		return false, err
	}
	if err := m.fs.WriteFile(m.abs(dst), data, info.Mode().Perm()); err != nil {
		return false, err
	}
	return true, nil
}

// CopyCustomizableAssets copies every asset whose destination does not
// exist yet. Existing destinations are reported as skipped. The templates
// directory is listed at call time.
func (m *Manager) CopyCustomizableAssets() ([]AssetResult, error) {
	assets, errs := m.Assets()
	if errs != nil {
		report.Warning(m.r, "Cannot list templates: %v", errs)
	}

	results := make([]AssetResult, 0, len(assets))
	for _, a := range assets {
		copied, err := m.CopyFile(a.Source, a.Dest)
		switch {
		case err != nil:
			err = fmt.Errorf("copy %s: %w", a.Dest, err)
			errs = multierr.Append(errs, err)
			results = append(results, AssetResult{Asset: a, State: AssetFailed, Err: err})
			report.Error(m.r, "Failed: %s: %v", a.Dest, err)
		case copied:
			results = append(results, AssetResult{Asset: a, State: AssetCopied})
			report.Success(m.r, "Copied: %s", a.Dest)
		default:
			results = append(results, AssetResult{Asset: a, State: AssetSkipped})
			report.Warning(m.r, "Skipped (already exists): %s", a.Dest)
		}
	}
	return results, errs
}

// FileStatus is the presence of one customizable file.
type FileStatus struct {
	Path    string
	Present bool
}

// CheckStatusFiles reports which StatusFiles exist.
func (m *Manager) CheckStatusFiles() []FileStatus {
	out := make([]FileStatus, 0, len(StatusFiles))
	for _, f := range StatusFiles {
		present := fsys.Exists(m.fs, m.abs(f))
		out = append(out, FileStatus{Path: f, Present: present})
		if present {
			report.Success(m.r, "Found: %s", f)
		} else {
			report.Warning(m.r, "Missing: %s", f)
		}
	}
	return out
}
