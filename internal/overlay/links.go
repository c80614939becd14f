package overlay

import (
	"fmt"
	"io/fs"
	"path/filepath"

	"go.uber.org/multierr"

	"github.com/raphi011/fw/internal/framework"
	"github.com/raphi011/fw/internal/fsys"
	"github.com/raphi011/fw/internal/report"
)

// Mode controls how a link's target is written.
type Mode int

const (
	// Absolute writes the absolute path of the target.
	Absolute Mode = iota
	// RelativeToLinkParent writes the target relative to the link's directory.
	RelativeToLinkParent
)

// BackupSuffix is appended to non-link content displaced by a link.
const BackupSuffix = ".backup"

// Link maps a path in the host tree to a target, both relative to the root.
type Link struct {
	Path   string
	Target string
	Mode   Mode
}

// Links is the fixed overlay link set, in creation order.
var Links = []Link{
	{Path: "AGENTS.md", Target: filepath.Join(framework.Prefix, "AGENTS.md"), Mode: Absolute},
	{Path: "agents", Target: filepath.Join(framework.Prefix, "agents"), Mode: Absolute},
	{Path: filepath.Join(".claude", "agents"), Target: filepath.Join(framework.Prefix, ".claude", "agents"), Mode: RelativeToLinkParent},
	{Path: filepath.Join(".claude", "commands"), Target: filepath.Join(framework.Prefix, ".claude", "commands"), Mode: RelativeToLinkParent},
}

// LinkState is the verification outcome for a single link.
type LinkState string

const (
	LinkValid      LinkState = "valid"
	LinkMissing    LinkState = "missing"
	LinkNotSymlink LinkState = "not_symlink"
	LinkDangling   LinkState = "dangling"
)

// LinkStatus is the verified state of one link.
type LinkStatus struct {
	Link  Link
	State LinkState
}

// LinkResult describes what CreateLink did.
type LinkResult struct {
	Link      Link
	BackupOf  string // non-empty when existing content was moved to this path
	Refreshed bool   // an existing symlink was replaced
	Err       error
}

// Manager creates, repairs and verifies the overlay under a repository root.
type Manager struct {
	fs   fsys.FS
	root string
	r    report.Reporter
}

// New returns a Manager for the repository at root.
func New(fs fsys.FS, root string, r report.Reporter) *Manager {
	if r == nil {
		r = report.Discard
	}
	return &Manager{fs: fs, root: root, r: r}
}

func (m *Manager) abs(rel string) string {
	return filepath.Join(m.root, rel)
}

// EnsureDirectory creates rel and its missing parents. Existing
// directories are not an error.
func (m *Manager) EnsureDirectory(rel string) error {
	if err := m.fs.MkdirAll(m.abs(rel), 0755); err != nil {
		return fmt.Errorf("create directory %s: %w", rel, err)
	}
	return nil
}

// linkValue computes what the symlink at linkPath should contain.
func (m *Manager) linkValue(target, linkPath string, mode Mode) (string, error) {
	absTarget := m.abs(target)
	if mode == Absolute {
		return absTarget, nil
	}
	rel, err := filepath.Rel(filepath.Dir(m.abs(linkPath)), absTarget)
	if err != nil {
		return "", fmt.Errorf("relative target for %s: %w", linkPath, err)
	}
	return rel, nil
}

// CreateLink points linkPath at target. Existing non-link content is
// renamed to linkPath+".backup"; an existing symlink is replaced.
func (m *Manager) CreateLink(target, linkPath string, mode Mode) (LinkResult, error) {
	res := LinkResult{Link: Link{Path: linkPath, Target: target, Mode: mode}}
	full := m.abs(linkPath)

	value, err := m.linkValue(target, linkPath, mode)
	if err != nil {
		res.Err = err
		return res, err
	}

	if info, err := m.fs.Lstat(full); err == nil {
		if info.Mode()&fs.ModeSymlink != 0 {
			if err := m.fs.Remove(full); err != nil {
				res.Err = fmt.Errorf("remove existing link %s: %w", linkPath, err)
				return res, res.Err
			}
			res.Refreshed = true
		} else {
			backup := linkPath + BackupSuffix
			if fsys.LExists(m.fs, m.abs(backup)) {
				res.Err = fmt.Errorf("cannot back up %s: %s already exists", linkPath, backup)
				return res, res.Err
			}
			report.Warning(m.r, "Backing up existing: %s → %s", linkPath, backup)
			if err := m.fs.Rename(full, m.abs(backup)); err != nil {
				res.Err = fmt.Errorf("back up %s: %w", linkPath, err)
				return res, res.Err
			}
			res.BackupOf = backup
		}
	} else if !fsys.IsNotExist(err) {
		res.Err = fmt.Errorf("inspect %s: %w", linkPath, err)
		return res, res.Err
	}

	if err := m.fs.Symlink(value, full); err != nil {
		res.Err = fmt.Errorf("create link %s: %w", linkPath, err)
		return res, res.Err
	}
	report.Success(m.r, "Symlink created: %s → %s", linkPath, target)
	return res, nil
}

// CreateAllLinks applies CreateLink to every entry of Links in order,
// creating parent directories first. A failing link does not stop the
// others; all failures are returned combined.
func (m *Manager) CreateAllLinks() ([]LinkResult, error) {
	results := make([]LinkResult, 0, len(Links))
	var errs error
	for _, l := range Links {
		if dir := filepath.Dir(l.Path); dir != "." {
			if err := m.EnsureDirectory(dir); err != nil {
				results = append(results, LinkResult{Link: l, Err: err})
				errs = multierr.Append(errs, err)
				report.Error(m.r, "Failed: %s: %v", l.Path, err)
				continue
			}
		}
		res, err := m.CreateLink(l.Target, l.Path, l.Mode)
		results = append(results, res)
		if err != nil {
			errs = multierr.Append(errs, err)
			report.Error(m.r, "Failed: %s: %v", l.Path, err)
		}
	}
	return results, errs
}

// CheckLink returns the state of a single link without reporting it.
func (m *Manager) CheckLink(l Link) LinkState {
	full := m.abs(l.Path)
	info, err := m.fs.Lstat(full)
	if err != nil {
		return LinkMissing
	}
	if info.Mode()&fs.ModeSymlink == 0 {
		return LinkNotSymlink
	}
	// Stat follows the link; relative targets resolve against its directory.
	if _, err := m.fs.Stat(full); err != nil {
		return LinkDangling
	}
	return LinkValid
}

// VerifyLinks checks every entry of Links and reports each one. It
// returns true only if all links are valid symlinks with existing targets.
func (m *Manager) VerifyLinks() (bool, []LinkStatus) {
	ok := true
	statuses := make([]LinkStatus, 0, len(Links))
	for _, l := range Links {
		st := m.CheckLink(l)
		statuses = append(statuses, LinkStatus{Link: l, State: st})
		switch st {
		case LinkValid:
			report.Success(m.r, "Valid: %s", l.Path)
		case LinkMissing:
			report.Warning(m.r, "Missing: %s", l.Path)
		case LinkNotSymlink:
			report.Warning(m.r, "Not a symlink: %s", l.Path)
		case LinkDangling:
			report.Warning(m.r, "Broken symlink: %s", l.Path)
		}
		if st != LinkValid {
			ok = false
		}
	}
	return ok, statuses
}

// Invalid returns the statuses that are not valid.
func Invalid(statuses []LinkStatus) []LinkStatus {
	var out []LinkStatus
	for _, s := range statuses {
		if s.State != LinkValid {
			out = append(out, s)
		}
	}
	return out
}
