package git

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/raphi011/fw/internal/errs"
	"github.com/raphi011/fw/internal/log"
)

// SubtreeMode selects the git subtree subcommand.
type SubtreeMode int

const (
	SubtreeAdd SubtreeMode = iota
	SubtreePull
	SubtreePush
)

func (m SubtreeMode) String() string {
	switch m {
	case SubtreeAdd:
		return "add"
	case SubtreePull:
		return "pull"
	case SubtreePush:
		return "push"
	default:
		return fmt.Sprintf("SubtreeMode(%d)", int(m))
	}
}

// SubtreeOp describes one git subtree invocation.
type SubtreeOp struct {
	Mode   SubtreeMode
	Prefix string
	URL    string
	Branch string
	// Squash collapses upstream history into one commit. Ignored for push.
	Squash bool
}

// Repo runs git against the working tree at Root. Every command is
// issued with -C Root so the process working directory never matters.
type Repo struct {
	root string
}

// NewRepo returns a Repo rooted at root.
func NewRepo(root string) *Repo {
	return &Repo{root: root}
}

// Root returns the working tree root.
func (r *Repo) Root() string {
	return r.root
}

// IsRepository reports whether Root is inside a git working tree.
func (r *Repo) IsRepository(ctx context.Context) bool {
	return IsInsideRepoPath(ctx, r.root)
}

// Fetch retrieves branch from url into FETCH_HEAD without touching the
// working tree.
func (r *Repo) Fetch(ctx context.Context, url, branch string) error {
	args := []string{"fetch", url, branch, "--quiet"}
	if err := runGit(ctx, r.root, args...); err != nil {
		return wrap(err, fmt.Sprintf("fetch %s %s", url, branch), args...)
	}
	return nil
}

// LogSince returns one-line summaries of commits reachable from HEAD but
// not from base, limited to prefix. An unknown base yields no commits.
func (r *Repo) LogSince(ctx context.Context, base, prefix string) ([]string, error) {
	if !r.refExists(ctx, base) {
		log.FromContext(ctx).Debug("base ref not found", "ref", base)
		return nil, nil
	}
	args := []string{"log", base + "..HEAD", "--oneline", "--", prefix}
	out, err := outputGit(ctx, r.root, args...)
	if err != nil {
		return nil, wrap(err, "list commits since "+base, args...)
	}
	return splitLines(string(out)), nil
}

// DiffStat returns the diff stat between base and head for prefix, or ""
// if it cannot be computed.
func (r *Repo) DiffStat(ctx context.Context, base, head, prefix string) string {
	out, err := outputGit(ctx, r.root, withPathspec([]string{"diff", "--stat", base + ".." + head}, prefix)...)
	if err != nil {
		log.FromContext(ctx).Debug("diff stat failed", "error", err)
		return ""
	}
	return strings.TrimRight(string(out), "\n")
}

// DiffContent returns the full diff between a and b for prefix, or "" if it
// cannot be computed. An empty prefix compares a and b whole, which lets
// callers diff trees such as "HEAD:.framework" against "FETCH_HEAD".
func (r *Repo) DiffContent(ctx context.Context, a, b, prefix string) string {
	out, err := outputGit(ctx, r.root, withPathspec([]string{"diff", a, b}, prefix)...)
	if err != nil {
		log.FromContext(ctx).Debug("diff failed", "error", err)
		return ""
	}
	return strings.TrimRight(string(out), "\n")
}

// TreeID resolves rev to an object hash, e.g. "FETCH_HEAD^{tree}" or
// "HEAD:.framework". It returns "" if rev does not resolve.
func (r *Repo) TreeID(ctx context.Context, rev string) string {
	out, err := outputGit(ctx, r.root, "rev-parse", "--verify", "--quiet", rev)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(out))
}

// AddTag creates a lightweight tag at HEAD. An existing tag of the same
// name is a TagConflict.
func (r *Repo) AddTag(ctx context.Context, name string) error {
	if r.refExists(ctx, "refs/tags/"+name) {
		return errs.Newf(errs.TagConflict, "tag %s already exists", name).
			WithGuidance("Wait a second and retry, or delete the tag: git tag -d " + name)
	}
	args := []string{"tag", name}
	if err := runGit(ctx, r.root, args...); err != nil {
		if strings.Contains(err.Error(), "already exists") {
			return errs.Wrapf(err, errs.TagConflict, "tag %s already exists", name)
		}
		return wrap(err, "create tag "+name, args...)
	}
	return nil
}

// MergeSubtree runs git subtree. Add requires the prefix to be absent;
// pull and push require it to be present.
func (r *Repo) MergeSubtree(ctx context.Context, op SubtreeOp) error {
	present := r.prefixExists(op.Prefix)
	switch {
	case op.Mode == SubtreeAdd && present:
		return errs.Newf(errs.VcsFailure, "subtree add: prefix %s already exists", op.Prefix)
	case op.Mode != SubtreeAdd && !present:
		return errs.Newf(errs.VcsFailure, "subtree %s: prefix %s does not exist", op.Mode, op.Prefix)
	}

	args := []string{"subtree", op.Mode.String(), "--prefix=" + op.Prefix}
	if op.Mode != SubtreePush {
		if op.Squash {
			args = append(args, "--squash")
		}
		args = append(args, "-m", fmt.Sprintf("Subtree %s %s@%s into %s", op.Mode, op.URL, op.Branch, op.Prefix))
	}
	args = append(args, op.URL, op.Branch)
	if _, err := combinedGit(ctx, r.root, args...); err != nil {
		return wrap(err, "git subtree "+op.Mode.String()+" failed", args...)
	}
	return nil
}

// ShowFile reads path at ref. An empty ref reads the working tree file.
// Missing files are NotFound.
func (r *Repo) ShowFile(ctx context.Context, ref, path string) ([]byte, error) {
	if ref == "" {
		data, err := os.ReadFile(filepath.Join(r.root, path))
		if os.IsNotExist(err) {
			return nil, errs.Wrapf(err, errs.NotFound, "%s not found", path)
		}
		if err != nil {
			return nil, errs.Wrapf(err, errs.VcsFailure, "read %s", path)
		}
		return data, nil
	}
	args := []string{"show", ref + ":" + path}
	out, err := outputGit(ctx, r.root, args...)
	if err != nil {
		msg := err.Error()
		if strings.Contains(msg, "does not exist") || strings.Contains(msg, "invalid object name") ||
			strings.Contains(msg, "not in") || strings.Contains(msg, "bad revision") {
			return nil, errs.Wrapf(err, errs.NotFound, "%s not found at %s", path, ref)
		}
		return nil, wrap(err, "show "+ref+":"+path, args...)
	}
	return out, nil
}

// SetConfig sets a repository-local git config value.
func (r *Repo) SetConfig(ctx context.Context, key, value string) error {
	args := []string{"config", key, value}
	if err := runGit(ctx, r.root, args...); err != nil {
		return wrap(err, "set git config "+key, args...)
	}
	return nil
}

func (r *Repo) refExists(ctx context.Context, ref string) bool {
	return runGit(ctx, r.root, "rev-parse", "--verify", "--quiet", ref+"^{commit}") == nil
}

func (r *Repo) prefixExists(prefix string) bool {
	_, err := os.Stat(filepath.Join(r.root, prefix))
	return err == nil
}

func withPathspec(args []string, prefix string) []string {
	if prefix == "" {
		return args
	}
	return append(args, "--", prefix)
}

func splitLines(s string) []string {
	var lines []string
	for _, l := range strings.Split(s, "\n") {
		if l = strings.TrimSpace(l); l != "" {
			lines = append(lines, l)
		}
	}
	return lines
}
